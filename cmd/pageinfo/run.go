package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/fgojunks/pageinfo/internal/analyzer"
	"github.com/fgojunks/pageinfo/internal/config"
	"github.com/fgojunks/pageinfo/internal/engine"
	"github.com/fgojunks/pageinfo/internal/logger"
	"github.com/fgojunks/pageinfo/internal/metrics"
	"github.com/fgojunks/pageinfo/internal/overlay"
	"github.com/fgojunks/pageinfo/internal/pageinfo"
	"github.com/fgojunks/pageinfo/internal/report"
	"github.com/fgojunks/pageinfo/internal/source"
	"github.com/fgojunks/pageinfo/internal/system"
)

const (
	defaultInputDir = "input"
	benchmarkLog    = "benchmark.log"
)

func runAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	cfg.BuildVersion = buildVersion
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Console:    c.App.ErrWriter,
	}); err != nil {
		return err
	}
	defer logger.Close()

	runID := uuid.NewString()
	log.Logger = logger.With(runID)

	system.InitResourceLimits()
	if cfg.Workers == 0 {
		cfg.Workers = system.DefaultWorkers()
	}

	paths, err := resolveInputs(c.Args().Slice(), cfg.Inputs)
	if err != nil {
		return err
	}

	finder, err := analyzer.NewFinder(cfg.Finder)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	start := time.Now()
	var results []engine.Result
	for k, path := range paths {
		res, err := classifyPath(ctx, cfg, path, overlayDir(cfg.DebugDir, k, len(paths)), finder, collector)
		results = append(results, res...)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	if err := writeReport(c.App.Writer, cfg, runID, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := collector.WriteFile(cfg.MetricsFile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("cannot write metrics")
		}
	}

	stats := engine.Summarize(results, elapsed)
	if cfg.ShowStats {
		if err := stats.WriteReport(c.App.ErrWriter, cfg.BuildVersion); err != nil {
			return err
		}
		input := filepath.Base(paths[0])
		if err := stats.AppendBenchmarkLog(benchmarkLog, cfg.BuildVersion, input); err != nil {
			log.Warn().Err(err).Msg("cannot write benchmark.log")
		}
	}

	log.Info().Int("images", stats.Total).Int("failed", stats.Failed).
		Dur("elapsed", elapsed).Msg("run finished")

	if stats.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d images failed", stats.Failed, stats.Total), 1)
	}
	return nil
}

// applyFlags lets explicitly set flags override file and environment values.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("dpi") {
		cfg.DPI = c.Int("dpi")
	}
	if c.IsSet("finder") {
		cfg.Finder = c.String("finder")
	}
	if c.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("debug-currency") {
		cfg.DebugCurrency = c.Bool("debug-currency")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("fail-fast") {
		cfg.FailFast = c.Bool("fail-fast")
	}
	if c.IsSet("stats") {
		cfg.ShowStats = c.Bool("stats")
	}
}

// resolveInputs prefers command line paths, then configured ones, then the
// newest image in the default input directory.
func resolveInputs(args, configured []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(configured) > 0 {
		return configured, nil
	}
	latest, err := system.FindLatestImage(defaultInputDir)
	if err != nil {
		return nil, fmt.Errorf("no input given and %w", err)
	}
	log.Info().Str("path", latest).Msg("using newest screenshot")
	return []string{latest}, nil
}

// overlayDir gives every input path its own overlay directory when more
// than one is classified, since indexes restart per source.
func overlayDir(debugDir string, k, n int) string {
	if debugDir == "" || n <= 1 {
		return debugDir
	}
	return filepath.Join(debugDir, fmt.Sprintf("%02d", k+1))
}

func classifyPath(ctx context.Context, cfg *config.Config, path, debugDir string, finder analyzer.ContourFinder, collector *metrics.Collector) ([]engine.Result, error) {
	src, err := source.Open(path, cfg.DPI)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	log.Info().Str("source", path).Int("images", src.Count()).Int("workers", cfg.Workers).Msg("classifying")

	b := engine.NewBatch(src, finder, cfg.Workers)
	b.FailFast = cfg.FailFast
	b.DetectCurrency = cfg.DebugCurrency
	b.Metrics = collector
	if debugDir != "" {
		b.Hooks = func(i int, name string) pageinfo.Hook {
			return overlay.NewRecorder(debugDir, i, name)
		}
	}

	return b.Run(ctx)
}

func writeReport(stdout io.Writer, cfg *config.Config, runID string, results []engine.Result) error {
	toFile := cfg.Output != "" && cfg.Output != "-"

	if cfg.Format == config.FormatYAML {
		r := report.New(runID, results)
		if toFile {
			return r.WriteFile(cfg.Output)
		}
		return r.WriteYAML(stdout)
	}

	if !toFile {
		return report.WriteCSV(stdout, results)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
