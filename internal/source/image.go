package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageSource reads a single image file or every image in a directory.
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isImage(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) Count() int {
	return len(s.paths)
}

func (s *ImageSource) Tag(index int) int {
	return index + 1
}

func (s *ImageSource) Name(index int) string {
	return s.paths[index]
}

func (s *ImageSource) Load(index int) (image.Image, error) {
	return loadImage(s.paths[index])
}

func (s *ImageSource) Close() error {
	return nil
}

// NumberedSource reads <dir>/test<N>.jpg for N in [first, last].
type NumberedSource struct {
	dir         string
	first, last int
}

func NewNumberedSource(dir string, first, last int) (*NumberedSource, error) {
	if first < 0 || last < first {
		return nil, fmt.Errorf("invalid range %d..%d", first, last)
	}
	return &NumberedSource{dir: dir, first: first, last: last}, nil
}

// NumberedName returns the input file name for number n.
func NumberedName(n int) string {
	return fmt.Sprintf("test%d.jpg", n)
}

func (s *NumberedSource) Count() int {
	return s.last - s.first + 1
}

func (s *NumberedSource) Tag(index int) int {
	return s.first + index
}

func (s *NumberedSource) Name(index int) string {
	return filepath.Join(s.dir, NumberedName(s.Tag(index)))
}

func (s *NumberedSource) Load(index int) (image.Image, error) {
	return loadImage(s.Name(index))
}

func (s *NumberedSource) Close() error {
	return nil
}

func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Open picks the source for path: a PDF, an image file or a directory of
// images. An empty path selects the numbered test set in the working directory.
func Open(path string, first, last, dpi int) (Source, error) {
	switch {
	case path == "":
		return NewNumberedSource(".", first, last)
	case strings.HasSuffix(strings.ToLower(path), ".pdf"):
		return NewFitzPDFSource(path, dpi)
	default:
		return NewImageSource(path)
	}
}
