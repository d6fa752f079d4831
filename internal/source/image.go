package source

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/fgojunks/pageinfo/internal/system"
)

// ImageSource reads screenshots from a single file or a directory tree.
type ImageSource struct {
	root  string
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return &ImageSource{root: filepath.Dir(path), paths: []string{path}}, nil
	}

	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		m, err := mimetype.DetectFile(p)
		if err != nil {
			return fmt.Errorf("detect type of %s: %w", p, err)
		}
		if !system.IsImageMIME(m) {
			log.Debug().Str("path", p).Str("mime", m.String()).Msg("skipping non-image file")
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	return &ImageSource{root: path, paths: paths}, nil
}

func (s *ImageSource) Count() int {
	return len(s.paths)
}

// Name is the path relative to the scanned directory.
func (s *ImageSource) Name(i int) string {
	if rel, err := filepath.Rel(s.root, s.paths[i]); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(s.paths[i])
}

func (s *ImageSource) Image(i int) (image.Image, error) {
	f, err := os.Open(s.paths[i])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(f, s.paths[i])
}

func (s *ImageSource) Close() error {
	return nil
}
