// Package pageinfo infers the page position and row count of a scrollable
// item list from a screenshot of it.
package pageinfo

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/fgojunks/pageinfo/internal/analyzer"
)

// PageInfo is the classification result.
type PageInfo struct {
	CurrentPage int `yaml:"current_page"`
	TotalPages  int `yaml:"total_pages"`
	// TotalLines is 0 when there is no scrollbar to measure.
	TotalLines int `yaml:"total_lines"`
}

// NoScrollbar is returned when no scrollbar was found: a single page whose
// row count cannot be estimated.
var NoScrollbar = PageInfo{CurrentPage: 1, TotalPages: 1, TotalLines: 0}

// HasScrollbar reports whether the row count was measured.
func (p PageInfo) HasScrollbar() bool {
	return p.TotalLines > 0
}

func (p PageInfo) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.CurrentPage, p.TotalPages, p.TotalLines)
}

// Stage names passed to a Hook.
const (
	StageThumb    = "thumb"
	StageTrack    = "track"
	StageCurrency = "currency"
)

// Hook observes intermediate detections, e.g. to render debug overlays.
// crop is the analyzed part of src; regions are relative to crop.Min.
// A hook must not modify src.
type Hook interface {
	Observe(stage string, src image.Image, crop image.Rectangle, regions []analyzer.Region)
}

// Guesser runs the scrollbar classifier. The zero value is ready to use.
type Guesser struct {
	Finder analyzer.ContourFinder
	Hook   Hook
}

// NewGuesser creates a Guesser with the given finder and optional hook.
func NewGuesser(finder analyzer.ContourFinder, hook Hook) *Guesser {
	return &Guesser{Finder: finder, Hook: hook}
}

// GuessPageInfo classifies img with the default contour finder.
func GuessPageInfo(img image.Image) (PageInfo, error) {
	var g Guesser
	return g.Guess(img)
}

// Guess returns the page info of img. Errors match ErrGeometryMismatch or
// ErrAmbiguousDetection; a missing scrollbar is not an error.
func (g *Guesser) Guess(img image.Image) (PageInfo, error) {
	// The vertical scrollbar lives in the rightmost quarter.
	b := img.Bounds()
	cropRect := image.Rect(b.Min.X+b.Dx()*3/4, b.Min.Y, b.Max.X, b.Max.Y)
	gray := analyzer.GrayCrop(img, cropRect)
	log.Debug().Int("width", gray.Rect.Dx()).Int("height", gray.Rect.Dy()).
		Msg("cropped image size (for scrollbar)")

	scanner := analyzer.NewScanner(g.Finder)

	thumbs, err := scanner.Scan(gray, ThumbThreshold, analyzer.ScrollbarThumb)
	if err != nil {
		return PageInfo{}, fmt.Errorf("scan thumb: %w", err)
	}
	g.observe(StageThumb, img, cropRect, thumbs)
	if len(thumbs) == 0 {
		return NoScrollbar, nil
	}

	tracks, err := scanner.Scan(gray, TrackThreshold, analyzer.ScrollbarTrack)
	if err != nil {
		return PageInfo{}, fmt.Errorf("scan track: %w", err)
	}
	g.observe(StageTrack, img, cropRect, tracks)
	// A thumb-shaped region without a track is background art, not a
	// scrollbar.
	if len(tracks) == 0 {
		return NoScrollbar, nil
	}

	if len(thumbs) > 1 {
		return PageInfo{}, &AmbiguousDetectionError{Target: StageThumb, Count: len(thumbs)}
	}
	if len(tracks) > 1 {
		return PageInfo{}, &AmbiguousDetectionError{Target: StageTrack, Count: len(tracks)}
	}

	return Estimate(thumbs[0], tracks[0])
}

// Estimate combines the three estimators for one thumb and one track, both
// measured in the same coordinate space.
func Estimate(thumb, track analyzer.Region) (PageInfo, error) {
	pages, err := EstimateTotalPages(thumb.Width, thumb.Height, track.Width, track.Height)
	if err != nil {
		return PageInfo{}, err
	}
	current, err := EstimateCurrentPage(thumb.X, thumb.Y, track.X, track.Y, track.Height)
	if err != nil {
		return PageInfo{}, err
	}
	lines, err := EstimateTotalLines(thumb.Width, thumb.Height, track.Width, track.Height)
	if err != nil {
		return PageInfo{}, err
	}

	// A thumb resting at the bottom of a two-page track can measure past
	// the second page cut.
	if current > pages {
		current = pages
	}

	info := PageInfo{CurrentPage: current, TotalPages: pages, TotalLines: lines}
	log.Debug().Int("pagenum", current).Int("pages", pages).Int("lines", lines).Msg("page info")
	return info, nil
}

func (g *Guesser) observe(stage string, src image.Image, crop image.Rectangle, regions []analyzer.Region) {
	if g.Hook == nil {
		return
	}
	g.Hook.Observe(stage, src, crop, regions)
}
