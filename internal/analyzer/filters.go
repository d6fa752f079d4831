package analyzer

import "github.com/rs/zerolog/log"

// Filter decides whether a region is the UI element a scan is looking for.
// imgW and imgH are the dimensions of the analyzed (cropped) image.
type Filter func(r Region, imgW, imgH int) bool

const (
	// Minimum share of the analyzed area, expressed as area*N >= imgArea.
	currencyAreaDivisor = 25
	thumbAreaDivisor    = 80
	trackAreaDivisor    = 50

	// Aspect ratio gates.
	currencyMinWidthPerHeight = 6
	thumbMinHeightPerWidth    = 5
	trackMinHeightPerWidth    = 10

	// The currency band spans more than half but less than ~83% of the crop.
	currencyWidthLowerFactor = 1.2
	currencyWidthUpperFactor = 2.0
)

// CurrencyDisplay accepts the wide, short band holding the owned-QP counter.
// The width window rejects a full-width strip some devices render at the
// bottom of the screen.
func CurrencyDisplay(r Region, imgW, imgH int) bool {
	if r.Area*currencyAreaDivisor < imgW*imgH {
		return false
	}
	if r.Width < r.Height*currencyMinWidthPerHeight {
		return false
	}
	w := float64(r.Width)
	if !(w*currencyWidthLowerFactor < float64(imgW) && float64(imgW) < w*currencyWidthUpperFactor) {
		return false
	}
	log.Debug().Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("currency region")
	return true
}

// ScrollbarThumb accepts the solid, tall and narrow scrollbar indicator.
func ScrollbarThumb(r Region, imgW, imgH int) bool {
	if r.Area*thumbAreaDivisor < imgW*imgH {
		return false
	}
	log.Debug().Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("scrollbar thumb candidate")
	if r.Height < r.Width*thumbMinHeightPerWidth {
		return false
	}
	log.Debug().Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("scrollbar thumb region")
	return true
}

// ScrollbarTrack accepts the full scrollable extent. It must be narrower
// relative to its height than the thumb, since it spans the whole list.
func ScrollbarTrack(r Region, imgW, imgH int) bool {
	if r.Area*trackAreaDivisor < imgW*imgH {
		return false
	}
	log.Debug().Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("scrollbar track candidate")
	if r.Height < r.Width*trackMinHeightPerWidth {
		return false
	}
	log.Debug().Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("scrollbar track region")
	return true
}
