package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fgojunks/pageinfo/internal/system"
)

// Stats summarizes a finished run.
type Stats struct {
	Total       int
	Classified  int
	NoScrollbar int
	Failed      int
	Skipped     int
	Elapsed     time.Duration
	Classifying time.Duration // summed over workers
	Memory      system.MemoryStats
}

func Summarize(results []Result, elapsed time.Duration) Stats {
	s := Stats{Total: len(results), Elapsed: elapsed, Memory: system.Memory()}
	for _, r := range results {
		s.Classifying += r.Duration
		switch {
		case errors.Is(r.Err, ErrSkipped):
			s.Skipped++
		case r.Err != nil:
			s.Failed++
		case !r.Info.HasScrollbar():
			s.NoScrollbar++
			s.Classified++
		default:
			s.Classified++
		}
	}
	return s
}

// ImagesPerSecond is the end-to-end throughput.
func (s Stats) ImagesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Classified+s.Failed) / s.Elapsed.Seconds()
}

// WriteReport prints the performance report.
func (s Stats) WriteReport(w io.Writer, build string) error {
	_, err := fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Images: %d (classified %d, no scrollbar %d, failed %d, skipped %d)\n"+
			"Total Time: %.2fs\n"+
			"Classifying (sum): %.2fs\n"+
			"Throughput: %.2f img/s\n"+
			"Heap: %d MB | System: %d/%d MB available\n"+
			"----------------------------\n",
		build, s.Total, s.Classified, s.NoScrollbar, s.Failed, s.Skipped,
		s.Elapsed.Seconds(), s.Classifying.Seconds(), s.ImagesPerSecond(),
		s.Memory.HeapMB, s.Memory.AvailableMB, s.Memory.TotalMB,
	)
	return err
}

// AppendBenchmarkLog adds a one-line summary of the run to path.
func (s Stats) AppendBenchmarkLog(path, build, input string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] Build: %s | Input: %s | Images: %d | Failed: %d | Total: %.2fs | Throughput: %.2f img/s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		build, input, s.Total, s.Failed, s.Elapsed.Seconds(), s.ImagesPerSecond(),
	)
	return err
}
