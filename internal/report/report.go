package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fgojunks/pageinfo/internal/engine"
)

// Version of the YAML report layout.
const Version = "1.0"

// Report is the YAML document of one batch run.
type Report struct {
	Version     string    `yaml:"version"`
	RunID       string    `yaml:"run_id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Results     []Entry   `yaml:"results"`
}

// Entry is the outcome for one screenshot. Page fields are zero when Error
// is set.
type Entry struct {
	Name        string     `yaml:"name"`
	CurrentPage int        `yaml:"current_page"`
	TotalPages  int        `yaml:"total_pages"`
	TotalLines  int        `yaml:"total_lines"`
	Error       string     `yaml:"error,omitempty"`
	Currency    *Rectangle `yaml:"currency,omitempty"`
}

// Rectangle is a bounding box in screenshot pixels.
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func New(runID string, results []engine.Result) *Report {
	r := &Report{
		Version:     Version,
		RunID:       runID,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Results:     make([]Entry, 0, len(results)),
	}
	for _, res := range results {
		e := Entry{
			Name:        res.Name,
			CurrentPage: res.Info.CurrentPage,
			TotalPages:  res.Info.TotalPages,
			TotalLines:  res.Info.TotalLines,
		}
		if res.Err != nil {
			e.Error = res.Err.Error()
		}
		if c := res.Currency; c != nil {
			e.Currency = &Rectangle{X: c.Min.X, Y: c.Min.Y, W: c.Dx(), H: c.Dy()}
		}
		r.Results = append(r.Results, e)
	}
	return r
}

// WriteYAML encodes r to w.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes r as YAML to path.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a YAML report written by WriteFile or WriteYAML.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteCSV writes one "name,current,total,lines" row per classified
// screenshot. Failed screenshots have no row.
func WriteCSV(w io.Writer, results []engine.Result) error {
	cw := csv.NewWriter(w)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		row := []string{
			res.Name,
			strconv.Itoa(res.Info.CurrentPage),
			strconv.Itoa(res.Info.TotalPages),
			strconv.Itoa(res.Info.TotalLines),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
