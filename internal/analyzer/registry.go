package analyzer

import "fmt"

// gocvFactory is set by the gocv build variant.
var gocvFactory func() ContourFinder

// NewFinder creates a contour finder based on the specified variant
func NewFinder(variant string) (ContourFinder, error) {
	switch variant {
	case "flood", "":
		return NewFloodFinder(), nil
	case "gocv":
		if gocvFactory == nil {
			return nil, fmt.Errorf("gocv finder not compiled in (build with -tags gocv)")
		}
		return gocvFactory(), nil
	default:
		return nil, fmt.Errorf("unknown contour finder variant: %s", variant)
	}
}
