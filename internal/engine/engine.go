package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fgojunks/pageinfo/internal/analyzer"
	"github.com/fgojunks/pageinfo/internal/metrics"
	"github.com/fgojunks/pageinfo/internal/pageinfo"
	"github.com/fgojunks/pageinfo/internal/source"
)

// ErrSkipped marks images that were never classified because the run was
// cancelled or stopped after a failure.
var ErrSkipped = errors.New("skipped")

// Result is the outcome for one screenshot, at the same index as in the
// Source.
type Result struct {
	Index    int
	Name     string
	Info     pageinfo.PageInfo
	Err      error
	Duration time.Duration

	// Currency is set when currency detection ran and found the band.
	Currency *image.Rectangle
}

// HookFactory returns the hook for screenshot index of the source, or nil.
type HookFactory func(index int, name string) pageinfo.Hook

// Batch classifies every screenshot of a Source.
type Batch struct {
	Source   source.Source
	Finder   analyzer.ContourFinder
	Workers  int
	FailFast bool

	Hooks          HookFactory
	DetectCurrency bool
	Metrics        *metrics.Collector
}

func NewBatch(src source.Source, finder analyzer.ContourFinder, workers int) *Batch {
	return &Batch{Source: src, Finder: finder, Workers: workers}
}

// Run classifies all screenshots with at most Workers running at once.
// Per-image errors are stored in the results; the returned error is
// non-nil only for cancellation or, with FailFast, the first failure.
func (b *Batch) Run(ctx context.Context) ([]Result, error) {
	count := b.Source.Count()
	results := make([]Result, count)
	for i := range results {
		results[i] = Result{Index: i, Name: b.Source.Name(i), Err: ErrSkipped}
	}

	workers := b.Workers
	if workers <= 0 || workers > count {
		workers = count
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := b.classify(i, results[i].Name)
			results[i] = res
			if res.Err != nil && b.FailFast {
				return fmt.Errorf("%s: %w", res.Name, res.Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (b *Batch) classify(i int, name string) Result {
	res := Result{Index: i, Name: name}
	logger := log.With().Str("image", name).Logger()

	img, err := b.Source.Image(i)
	if err != nil {
		res.Err = err
		b.Metrics.Observe(metrics.ResultError, 0)
		logger.Error().Err(err).Msg("cannot load screenshot")
		return res
	}

	var hook pageinfo.Hook
	if b.Hooks != nil {
		hook = b.Hooks(i, name)
	}
	g := pageinfo.NewGuesser(b.Finder, hook)

	start := time.Now()
	res.Info, res.Err = g.Guess(img)
	res.Duration = time.Since(start)
	b.Metrics.Observe(resultLabel(res.Info, res.Err), res.Duration)

	if res.Err != nil {
		logger.Error().Err(res.Err).Msg("classification failed")
		return res
	}
	logger.Info().Int("current_page", res.Info.CurrentPage).
		Int("total_pages", res.Info.TotalPages).
		Int("total_lines", res.Info.TotalLines).
		Dur("took", res.Duration).
		Msg("classified")

	if b.DetectCurrency {
		rect, ok, err := g.DetectCurrencyRegion(img)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("currency detection failed")
		case ok:
			res.Currency = &rect
			logger.Debug().Stringer("rect", rect).Msg("currency region")
		default:
			logger.Debug().Msg("currency region not found")
		}
	}
	return res
}

func resultLabel(info pageinfo.PageInfo, err error) string {
	switch {
	case errors.Is(err, pageinfo.ErrAmbiguousDetection):
		return metrics.ResultAmbiguous
	case errors.Is(err, pageinfo.ErrGeometryMismatch):
		return metrics.ResultGeometry
	case err != nil:
		return metrics.ResultError
	case !info.HasScrollbar():
		return metrics.ResultNoScrollbar
	}
	return metrics.ResultOK
}
