//go:build gocv

package analyzer

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

func init() {
	gocvFactory = func() ContourFinder { return &GocvFinder{} }
}

// GocvFinder delegates contour extraction to OpenCV. Areas come from
// cv::contourArea, so they can be slightly smaller than the pixel count
// reported by FloodFinder.
type GocvFinder struct{}

func (f *GocvFinder) FindContours(mask *image.Gray) ([]Region, error) {
	mat, err := gocv.ImageGrayToMatGray(mask)
	if err != nil {
		return nil, fmt.Errorf("gocv.ImageGrayToMatGray: %w", err)
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		rect := gocv.BoundingRect(contour)
		area := int(math.Round(gocv.ContourArea(contour)))
		regions = append(regions, NewRegion(rect, area))
	}
	return regions, nil
}
