package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/fgojunks/pageinfo/internal/system"
)

// Source is an indexed set of screenshots.
type Source interface {
	Count() int
	// Name identifies screenshot i in reports and debug file names.
	Name(i int) string
	Image(i int) (image.Image, error)
	Close() error
}

// Open picks a Source for path: a directory or image file becomes an
// ImageSource, a zip archive a ZipSource and a PDF a FitzPDFSource rendered
// at dpi.
func Open(path string, dpi int) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return NewImageSource(path)
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}
	switch {
	case m.Is("application/pdf"):
		return NewFitzPDFSource(path, dpi)
	case m.Is("application/zip"):
		return NewZipSource(path)
	case system.IsImageMIME(m):
		return NewImageSource(path)
	}
	return nil, fmt.Errorf("%s: unsupported file type %s", path, m.String())
}

func decode(r io.Reader, name string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
