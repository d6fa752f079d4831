package analyzer

import "image"

// Region is one connected component found after binarization.
// Coordinates are relative to the top-left corner of the analyzed image.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
	Area   int // pixel count of the component, not of the bounding box
}

// NewRegion builds a Region from a bounding rectangle and a pixel count.
func NewRegion(rect image.Rectangle, area int) Region {
	return Region{
		X:      rect.Min.X,
		Y:      rect.Min.Y,
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Area:   area,
	}
}

// Rect returns the bounding box as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BoxArea is the area of the bounding box.
func (r Region) BoxArea() int {
	return r.Width * r.Height
}

// Valid reports whether the region satisfies width > 0, height > 0 and
// area <= width*height.
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0 && r.Area <= r.BoxArea()
}

// AspectRatio is height divided by width.
func (r Region) AspectRatio() float64 {
	if r.Width == 0 {
		return 0
	}
	return float64(r.Height) / float64(r.Width)
}

func (r Region) WidthRatioTo(other Region) float64 {
	if other.Width == 0 {
		return 0
	}
	return float64(r.Width) / float64(other.Width)
}

func (r Region) HeightRatioTo(other Region) float64 {
	if other.Height == 0 {
		return 0
	}
	return float64(r.Height) / float64(other.Height)
}

// Translate shifts the region by p, used to map crop coordinates back onto
// the source image.
func (r Region) Translate(p image.Point) Region {
	r.X += p.X
	r.Y += p.Y
	return r
}

// ContourFinder extracts connected foreground regions from a binary mask.
// Foreground pixels are those with a non-zero value.
type ContourFinder interface {
	FindContours(mask *image.Gray) ([]Region, error)
}
