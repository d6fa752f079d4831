package analyzer

import (
	"image"
	"image/color"
)

// FloodFinder labels 8-connected foreground components with an iterative
// flood fill. It is the default ContourFinder and needs no cgo.
type FloodFinder struct{}

// NewFloodFinder creates the pure-Go contour finder
func NewFloodFinder() *FloodFinder {
	return &FloodFinder{}
}

// FindContours returns one Region per connected component, in raster order
// of each component's first pixel.
func (f *FloodFinder) FindContours(mask *image.Gray) ([]Region, error) {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	visited := make([]bool, w*h)

	regions := []Region{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !isForeground(mask, bounds.Min.X+x, bounds.Min.Y+y) {
				continue
			}
			regions = append(regions, floodFill(mask, visited, x, y))
		}
	}
	return regions, nil
}

// floodFill walks one component starting at (startX, startY), given in
// coordinates relative to mask.Bounds().Min, and returns its bounding box and
// pixel count.
func floodFill(mask *image.Gray, visited []bool, startX, startY int) Region {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	area := 0

	visited[startY*w+startX] = true
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				idx := ny*w + nx
				if visited[idx] || !isForeground(mask, bounds.Min.X+nx, bounds.Min.Y+ny) {
					continue
				}
				visited[idx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return NewRegion(image.Rect(minX, minY, maxX+1, maxY+1), area)
}

func isForeground(mask *image.Gray, x, y int) bool {
	return mask.GrayAt(x, y).Y != 0
}

// Binarize maps every pixel strictly above threshold to 255 and the rest to 0.
func Binarize(gray *image.Gray, threshold uint8) *image.Gray {
	bounds := gray.Bounds()
	mask := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return mask
}

// GrayCrop converts the rect portion of img to grayscale. The result is
// rebased so that its origin is (0, 0).
func GrayCrop(img image.Image, rect image.Rectangle) *image.Gray {
	rect = rect.Intersect(img.Bounds())
	gray := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			gray.Set(x-rect.Min.X, y-rect.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}
