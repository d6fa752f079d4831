package analyzer

import (
	"fmt"
	"image"
)

// Scanner binarizes a grayscale image and keeps the contours accepted by a
// filter.
type Scanner struct {
	Finder ContourFinder
}

// NewScanner creates a scanner; a nil finder selects FloodFinder.
func NewScanner(finder ContourFinder) *Scanner {
	if finder == nil {
		finder = NewFloodFinder()
	}
	return &Scanner{Finder: finder}
}

// Scan returns the regions of gray, binarized at threshold, that pass filter.
func (s *Scanner) Scan(gray *image.Gray, threshold uint8, filter Filter) ([]Region, error) {
	mask := Binarize(gray, threshold)
	contours, err := s.Finder.FindContours(mask)
	if err != nil {
		return nil, fmt.Errorf("find contours at threshold %d: %w", threshold, err)
	}

	imgW, imgH := gray.Bounds().Dx(), gray.Bounds().Dy()
	var regions []Region
	for _, c := range contours {
		if filter(c, imgW, imgH) {
			regions = append(regions, c)
		}
	}
	return regions, nil
}
