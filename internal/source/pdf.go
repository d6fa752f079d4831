package source

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// FitzPDFSource renders each PDF page as one screenshot.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewFitzPDFSource(path string, dpi int) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *FitzPDFSource) Count() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) Name(i int) string {
	return fmt.Sprintf("%s#%d", filepath.Base(f.path), i+1)
}

// Image renders page i with a document of its own; a fitz.Document must not
// be shared between goroutines.
func (f *FitzPDFSource) Image(i int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(i, float64(f.dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
