package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"io"
	"sort"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/fgojunks/pageinfo/internal/system"
)

// ZipSource reads screenshots stored in a zip archive.
type ZipSource struct {
	rc    *zip.ReadCloser
	files []*zip.File
}

func NewZipSource(path string) (*ZipSource, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", path, err)
	}

	var files []*zip.File
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		head, err := readHead(f)
		if err != nil {
			rc.Close()
			return nil, err
		}
		if m := mimetype.Detect(head); !system.IsImageMIME(m) {
			log.Debug().Str("entry", f.Name).Str("mime", m.String()).Msg("skipping non-image entry")
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return &ZipSource{rc: rc, files: files}, nil
}

// readHead returns the leading bytes mimetype needs for sniffing.
func readHead(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer r.Close()

	buf := make([]byte, 3072)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
	}
	return buf[:n], nil
}

func (s *ZipSource) Count() int {
	return len(s.files)
}

func (s *ZipSource) Name(i int) string {
	return s.files[i].Name
}

// Image decompresses entry i into memory; zip entries are not seekable and
// concurrent readers each need their own stream.
func (s *ZipSource) Image(i int) (image.Image, error) {
	f := s.files[i]
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
	}
	return decode(bytes.NewReader(data), f.Name)
}

func (s *ZipSource) Close() error {
	return s.rc.Close()
}
