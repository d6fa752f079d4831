package pageinfo

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/fgojunks/pageinfo/internal/analyzer"
)

const (
	shotW = 400
	shotH = 800

	trackLevel = 40  // between the two binarization levels
	thumbLevel = 200 // above both
)

type bar struct {
	x, y, w, h int
	level      uint8
}

// newScreenshot draws bars on a black 400x800 canvas. The right quarter
// (x >= 300) is what the classifier analyzes: 100x800 px.
func newScreenshot(bars ...bar) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, shotW, shotH))
	for y := 0; y < shotH; y++ {
		for x := 0; x < shotW; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	for _, b := range bars {
		c := color.RGBA{R: b.level, G: b.level, B: b.level, A: 255}
		for y := b.y; y < b.y+b.h; y++ {
			for x := b.x; x < b.x+b.w; x++ {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

func track(y, h int) bar { return bar{x: 340, y: y, w: 8, h: h, level: trackLevel} }
func thumb(y, h int) bar { return bar{x: 340, y: y, w: 8, h: h, level: thumbLevel} }

func TestGuessPageInfo(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want PageInfo
	}{
		{"blank", newScreenshot(), NoScrollbar},
		{"scrollbar outside right quarter", newScreenshot(
			bar{x: 100, y: 100, w: 8, h: 600, level: trackLevel},
			bar{x: 100, y: 100, w: 8, h: 300, level: thumbLevel},
		), NoScrollbar},
		{"thumb without track", newScreenshot(thumb(100, 150)), NoScrollbar},
		{"track without thumb", newScreenshot(track(100, 600)), NoScrollbar},
		{"single page", newScreenshot(track(100, 600), thumb(100, 560)), PageInfo{1, 1, 3}},
		{"two pages first", newScreenshot(track(100, 600), thumb(100, 400)), PageInfo{1, 2, 5}},
		{"two pages second", newScreenshot(track(100, 600), thumb(300, 400)), PageInfo{2, 2, 5}},
		{"three pages first", newScreenshot(track(100, 600), thumb(100, 200)), PageInfo{1, 3, 9}},
		{"three pages second", newScreenshot(track(100, 600), thumb(250, 200)), PageInfo{2, 3, 9}},
		{"three pages third", newScreenshot(track(100, 600), thumb(500, 200)), PageInfo{3, 3, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuessPageInfo(tt.img)
			if err != nil {
				t.Fatalf("GuessPageInfo() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GuessPageInfo() = %v, want %v", got, tt.want)
			}
			if got.CurrentPage > got.TotalPages {
				t.Errorf("current page %d exceeds total %d", got.CurrentPage, got.TotalPages)
			}
		})
	}
}

func TestGuessPageInfoErrors(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		wantErr error
	}{
		{"two thumbs", newScreenshot(track(100, 600), thumb(100, 150), thumb(400, 150)), ErrAmbiguousDetection},
		{"two tracks", newScreenshot(
			track(100, 600),
			thumb(100, 300),
			bar{x: 370, y: 100, w: 8, h: 600, level: trackLevel},
		), ErrAmbiguousDetection},
		{"track wider than thumb", newScreenshot(
			bar{x: 340, y: 100, w: 16, h: 600, level: trackLevel},
			thumb(100, 300),
		), ErrGeometryMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuessPageInfo(tt.img)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GuessPageInfo() = %v, %v; want error %v", got, err, tt.wantErr)
			}
			if got != (PageInfo{}) {
				t.Errorf("GuessPageInfo() returned %v alongside an error", got)
			}
		})
	}
}

func TestGuessPageInfoAmbiguousTarget(t *testing.T) {
	img := newScreenshot(track(100, 600), thumb(100, 150), thumb(400, 150))
	_, err := GuessPageInfo(img)

	var ad *AmbiguousDetectionError
	if !errors.As(err, &ad) {
		t.Fatalf("error = %v, want *AmbiguousDetectionError", err)
	}
	if ad.Target != StageThumb || ad.Count != 2 {
		t.Errorf("got %+v", ad)
	}
}

func TestGuessPageInfoIdempotent(t *testing.T) {
	img := newScreenshot(track(100, 600), thumb(300, 400))

	first, err1 := GuessPageInfo(img)
	second, err2 := GuessPageInfo(img)
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("results differ: %v vs %v", first, second)
	}
}

func TestGuessPageInfoOffsetBounds(t *testing.T) {
	// Same scrollbar inside a sub-image whose bounds do not start at 0
	full := image.NewRGBA(image.Rect(0, 0, shotW+50, shotH+30))
	src := newScreenshot(track(100, 600), thumb(300, 400))
	for y := 0; y < shotH; y++ {
		for x := 0; x < shotW; x++ {
			full.Set(x+50, y+30, src.At(x, y))
		}
	}
	sub := full.SubImage(image.Rect(50, 30, shotW+50, shotH+30))

	got, err := GuessPageInfo(sub)
	if err != nil {
		t.Fatalf("GuessPageInfo() error = %v", err)
	}
	if want := (PageInfo{2, 2, 5}); got != want {
		t.Errorf("GuessPageInfo() = %v, want %v", got, want)
	}
}

func TestEstimateClampsCurrentPage(t *testing.T) {
	// Two pages by size, but the offset ratio 318/600 = 0.53 is past the
	// second page cut.
	trk := analyzer.Region{X: 40, Y: 0, Width: 8, Height: 600, Area: 4800}
	thb := analyzer.Region{X: 40, Y: 318, Width: 8, Height: 280, Area: 2240}

	got, err := Estimate(thb, trk)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if got.TotalPages != 2 || got.CurrentPage != 2 {
		t.Errorf("Estimate() = %v, want current page clamped to 2 of 2", got)
	}
}

type recordingHook struct {
	stages []string
	counts []int
	crops  []image.Rectangle
}

func (h *recordingHook) Observe(stage string, src image.Image, crop image.Rectangle, regions []analyzer.Region) {
	h.stages = append(h.stages, stage)
	h.counts = append(h.counts, len(regions))
	h.crops = append(h.crops, crop)
}

func TestGuesserHook(t *testing.T) {
	img := newScreenshot(track(100, 600), thumb(100, 400))
	hook := &recordingHook{}
	g := NewGuesser(nil, hook)

	withHook, err := g.Guess(img)
	if err != nil {
		t.Fatalf("Guess() error = %v", err)
	}
	withoutHook, _ := GuessPageInfo(img)
	if withHook != withoutHook {
		t.Errorf("hook changed the result: %v vs %v", withHook, withoutHook)
	}

	if len(hook.stages) != 2 || hook.stages[0] != StageThumb || hook.stages[1] != StageTrack {
		t.Fatalf("stages = %v", hook.stages)
	}
	if hook.counts[0] != 1 || hook.counts[1] != 1 {
		t.Errorf("counts = %v", hook.counts)
	}
	if want := image.Rect(300, 0, shotW, shotH); hook.crops[0] != want {
		t.Errorf("crop = %v, want %v", hook.crops[0], want)
	}
}

func TestHookSkipsTrackWithoutThumb(t *testing.T) {
	hook := &recordingHook{}
	g := NewGuesser(nil, hook)

	got, err := g.Guess(newScreenshot())
	if err != nil || got != NoScrollbar {
		t.Fatalf("Guess() = %v, %v", got, err)
	}
	if len(hook.stages) != 1 {
		t.Errorf("stages = %v, want thumb only", hook.stages)
	}
}

func TestPageInfoString(t *testing.T) {
	if got := (PageInfo{2, 3, 7}).String(); got != "(2, 3, 7)" {
		t.Errorf("String() = %q", got)
	}
	if NoScrollbar.HasScrollbar() {
		t.Error("NoScrollbar should not report a scrollbar")
	}
}
