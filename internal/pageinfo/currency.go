package pageinfo

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/fgojunks/pageinfo/internal/analyzer"
)

// DetectCurrencyRegion locates the owned-QP band in the bottom-left quadrant
// of img. The returned rectangle is in img coordinates with the label on the
// left and padding on the right trimmed off. ok is false unless exactly one
// band was found.
func (g *Guesser) DetectCurrencyRegion(img image.Image) (rect image.Rectangle, ok bool, err error) {
	b := img.Bounds()
	cropRect := image.Rect(b.Min.X, b.Min.Y+b.Dy()/2, b.Min.X+b.Dx()/2, b.Max.Y)
	gray := analyzer.GrayCrop(img, cropRect)
	log.Debug().Int("width", gray.Rect.Dx()).Int("height", gray.Rect.Dy()).
		Msg("cropped image size (for currency)")

	regions, err := analyzer.NewScanner(g.Finder).Scan(gray, CurrencyThreshold, analyzer.CurrencyDisplay)
	if err != nil {
		return image.Rectangle{}, false, fmt.Errorf("scan currency: %w", err)
	}
	g.observe(StageCurrency, img, cropRect, regions)
	if len(regions) != 1 {
		return image.Rectangle{}, false, nil
	}

	return trimCurrency(regions[0]).Add(cropRect.Min), true, nil
}

// DetectCurrencyRegion runs the currency detection with the default finder.
func DetectCurrencyRegion(img image.Image) (image.Rectangle, bool, error) {
	var g Guesser
	return g.DetectCurrencyRegion(img)
}

func trimCurrency(r analyzer.Region) image.Rectangle {
	left := int(float64(r.Width) * currencyTrimLeft)
	right := int(float64(r.Width) * currencyTrimRight)
	x0 := r.X + left
	return image.Rect(x0, r.Y, x0+r.Width-left-right, r.Y+r.Height)
}
