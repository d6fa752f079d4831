// Package overlay renders detection candidates onto the analyzed part of a
// screenshot and saves the result as PNG for inspection.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fgojunks/pageinfo/internal/analyzer"
	"github.com/fgojunks/pageinfo/internal/pageinfo"
)

const strokeWidth = 3

var stageColors = map[string]color.RGBA{
	pageinfo.StageThumb:    {G: 255, A: 255},
	pageinfo.StageTrack:    {B: 255, A: 255},
	pageinfo.StageCurrency: {R: 255, A: 255},
}

// Recorder is a pageinfo.Hook writing one PNG per stage into Dir, named
// <index>_<name>_<stage>.png. Index is the screenshot's position in its
// source and keeps file names unique when flattened names collide.
type Recorder struct {
	Dir   string
	Index int
	Name  string
	// Scale shrinks the saved image; 0 means 0.5.
	Scale float64

	mu    sync.Mutex
	files []string
	err   error
}

func NewRecorder(dir string, index int, name string) *Recorder {
	return &Recorder{Dir: dir, Index: index, Name: name, Scale: 0.5}
}

// Observe implements pageinfo.Hook. Write failures are logged and kept for
// Err; they never affect classification.
func (r *Recorder) Observe(stage string, src image.Image, crop image.Rectangle, regions []analyzer.Region) {
	img := Render(stage, src, crop, regions, r.scale())
	path := filepath.Join(r.Dir, fmt.Sprintf("%04d_%s_%s.png", r.Index, safeName(r.Name), stage))

	if err := writePNG(path, img); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot write debug overlay")
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
		return
	}

	r.mu.Lock()
	r.files = append(r.files, path)
	r.mu.Unlock()
	log.Debug().Str("path", path).Int("regions", len(regions)).Msg("debug overlay saved")
}

// Files lists the overlays written so far.
func (r *Recorder) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.files...)
}

// Err returns the first write error.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) scale() float64 {
	if r.Scale <= 0 {
		return 0.5
	}
	return r.Scale
}

// Render copies the crop of src, outlines regions (relative to crop.Min)
// in the stage color, scales the result and labels it.
func Render(stage string, src image.Image, crop image.Rectangle, regions []analyzer.Region, scale float64) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, crop.Min, draw.Src)

	c, ok := stageColors[stage]
	if !ok {
		c = color.RGBA{R: 255, G: 255, A: 255}
	}
	for _, reg := range regions {
		strokeRect(canvas, reg.Rect(), c)
	}

	out := canvas
	w := max(int(float64(crop.Dx())*scale), 1)
	h := max(int(float64(crop.Dy())*scale), 1)
	if w != crop.Dx() || h != crop.Dy() {
		out = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	}

	label(out, fmt.Sprintf("%s: %d", stage, len(regions)), c)
	return out
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+strokeWidth),
		image.Rect(r.Min.X, r.Max.Y-strokeWidth, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+strokeWidth, r.Max.Y),
		image.Rect(r.Max.X-strokeWidth, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), u, image.Point{}, draw.Src)
	}
}

func label(img *image.RGBA, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, 13),
	}
	d.DrawString(text)
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeName flattens a source name such as "dir/shot.png" or "doc.pdf#3"
// into a file name stem.
func safeName(name string) string {
	page := ""
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		name, page = name[:i], "_"+name[i+1:]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + page
	return strings.NewReplacer("/", "_", "\\", "_", "#", "_", " ", "_").Replace(name)
}
