package analyzer

import (
	"image"
	"image/color"
	"testing"
)

func fillGray(img *image.Gray, rect image.Rectangle, v uint8) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func TestFloodFinder(t *testing.T) {
	// Two white rectangles and a diagonal pair of pixels on black
	mask := image.NewGray(image.Rect(0, 0, 200, 200))
	fillGray(mask, image.Rect(50, 50, 150, 150), 255)
	fillGray(mask, image.Rect(10, 10, 20, 40), 255)
	mask.SetGray(180, 180, color.Gray{Y: 255})
	mask.SetGray(181, 181, color.Gray{Y: 255})

	regions, err := NewFloodFinder().FindContours(mask)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}

	if len(regions) != 3 {
		t.Fatalf("Expected 3 regions, got %d: %+v", len(regions), regions)
	}

	want := []Region{
		{X: 10, Y: 10, Width: 10, Height: 30, Area: 300},
		{X: 50, Y: 50, Width: 100, Height: 100, Area: 10000},
		{X: 180, Y: 180, Width: 2, Height: 2, Area: 2},
	}
	for i, r := range regions {
		if r != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, r, want[i])
		}
		if !r.Valid() {
			t.Errorf("region %d violates invariants: %+v", i, r)
		}
	}
}

func TestFloodFinderHollowFrame(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 40, 40))
	fillGray(mask, image.Rect(5, 5, 35, 35), 255)
	fillGray(mask, image.Rect(10, 10, 30, 30), 0)

	regions, err := NewFloodFinder().FindContours(mask)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}
	r := regions[0]
	if r.Rect() != image.Rect(5, 5, 35, 35) {
		t.Errorf("Rect = %v", r.Rect())
	}
	if r.Area != 30*30-20*20 {
		t.Errorf("Area = %d, want %d", r.Area, 30*30-20*20)
	}
}

func TestBinarize(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.SetGray(0, 0, color.Gray{Y: 60})
	gray.SetGray(1, 0, color.Gray{Y: 61})
	gray.SetGray(2, 0, color.Gray{Y: 10})

	mask := Binarize(gray, 60)
	got := []uint8{mask.GrayAt(0, 0).Y, mask.GrayAt(1, 0).Y, mask.GrayAt(2, 0).Y}
	want := []uint8{0, 255, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGrayCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 75; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	gray := GrayCrop(img, image.Rect(75, 0, 100, 50))
	if gray.Bounds() != image.Rect(0, 0, 25, 50) {
		t.Fatalf("Bounds = %v", gray.Bounds())
	}
	if v := gray.GrayAt(0, 0).Y; v != 255 {
		t.Errorf("GrayAt(0,0) = %d, want 255", v)
	}
}

func TestFilters(t *testing.T) {
	// Both analyzed areas are 100000 px
	const tallW, tallH = 100, 1000
	const wideW, wideH = 500, 200

	tests := []struct {
		name       string
		filter     Filter
		region     Region
		imgW, imgH int
		want       bool
	}{
		{"thumb ok", ScrollbarThumb, Region{Width: 10, Height: 200, Area: 1250}, tallW, tallH, true},
		{"thumb too small", ScrollbarThumb, Region{Width: 10, Height: 200, Area: 1249}, tallW, tallH, false},
		{"thumb aspect exact", ScrollbarThumb, Region{Width: 30, Height: 150, Area: 1250}, tallW, tallH, true},
		{"thumb aspect below", ScrollbarThumb, Region{Width: 30, Height: 149, Area: 1250}, tallW, tallH, false},
		{"track ok", ScrollbarTrack, Region{Width: 10, Height: 300, Area: 2000}, tallW, tallH, true},
		{"track too small", ScrollbarTrack, Region{Width: 10, Height: 900, Area: 1999}, tallW, tallH, false},
		{"track aspect below", ScrollbarTrack, Region{Width: 30, Height: 299, Area: 2000}, tallW, tallH, false},
		{"currency ok", CurrencyDisplay, Region{Width: 300, Height: 20, Area: 5000}, wideW, wideH, true},
		{"currency upper width bound", CurrencyDisplay, Region{Width: 416, Height: 20, Area: 5000}, wideW, wideH, true},
		{"currency too tall", CurrencyDisplay, Region{Width: 300, Height: 51, Area: 5000}, wideW, wideH, false},
		{"currency too small", CurrencyDisplay, Region{Width: 300, Height: 20, Area: 3999}, wideW, wideH, false},
		{"currency too wide", CurrencyDisplay, Region{Width: 417, Height: 20, Area: 5000}, wideW, wideH, false},
		{"currency too narrow", CurrencyDisplay, Region{Width: 250, Height: 20, Area: 4500}, wideW, wideH, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(tt.region, tt.imgW, tt.imgH); got != tt.want {
				t.Errorf("filter(%+v) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestScanner(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 100, 1000))
	fillGray(gray, image.Rect(40, 100, 50, 900), 40) // track-ish, dim
	fillGray(gray, image.Rect(40, 100, 50, 400), 200) // thumb, bright

	s := NewScanner(nil)

	thumbs, err := s.Scan(gray, 60, ScrollbarThumb)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(thumbs) != 1 || thumbs[0].Rect() != image.Rect(40, 100, 50, 400) {
		t.Fatalf("thumbs = %+v", thumbs)
	}

	tracks, err := s.Scan(gray, 25, ScrollbarTrack)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Rect() != image.Rect(40, 100, 50, 900) {
		t.Fatalf("tracks = %+v", tracks)
	}
}

func TestRegionRatios(t *testing.T) {
	a := Region{X: 1, Y: 2, Width: 10, Height: 40, Area: 400}
	b := Region{Width: 20, Height: 80}

	if got := a.WidthRatioTo(b); got != 0.5 {
		t.Errorf("WidthRatioTo = %v", got)
	}
	if got := a.HeightRatioTo(b); got != 0.5 {
		t.Errorf("HeightRatioTo = %v", got)
	}
	if got := a.AspectRatio(); got != 4 {
		t.Errorf("AspectRatio = %v", got)
	}
	if got := a.Translate(image.Pt(5, 5)).Rect(); got != image.Rect(6, 7, 16, 47) {
		t.Errorf("Translate = %v", got)
	}
	if (Region{}).WidthRatioTo(Region{}) != 0 {
		t.Error("zero width ratio should be 0")
	}
}

func TestFinderRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"flood", false},
		{"", false}, // default
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			finder, err := NewFinder(tt.variant)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if finder == nil {
					t.Error("Expected finder, got nil")
				}
			}
		})
	}
}
