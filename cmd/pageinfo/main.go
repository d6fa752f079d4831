package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pageinfo:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "pageinfo",
		Usage:     "estimate page position and row count of item list screenshots",
		Version:   buildVersion,
		ArgsUsage: "[PATH...]",
		Description: "PATH may be an image, a directory of images, a zip archive or a PDF.\n" +
			"Without PATH the newest image in input/ is classified.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "report file, stdout when empty or -"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "report format: csv or yaml"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "parallel classifications, 0 for one per CPU"},
			&cli.IntFlag{Name: "dpi", Usage: "PDF rendering resolution"},
			&cli.StringFlag{Name: "finder", Usage: "contour finder: flood or gocv"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
			&cli.StringFlag{Name: "debug-dir", Usage: "write detection overlays into this directory"},
			&cli.BoolFlag{Name: "debug-currency", Usage: "also locate the currency band"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics in text format"},
			&cli.BoolFlag{Name: "fail-fast", Usage: "stop at the first failed image"},
			&cli.BoolFlag{Name: "stats", Usage: "print performance report and append benchmark.log"},
		},
		Action: runAction,
	}
}
