package export

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ivlev/ocrprep/internal/analyzer"
	"github.com/ivlev/ocrprep/internal/raster"
	"github.com/ivlev/ocrprep/internal/system"
)

type CandidateWriter interface {
	SaveCandidates(set *analyzer.CandidateSet, tag int) ([]string, error)
}

// CandidateFileName returns the file name for candidate i of input tag,
// e.g. image312.jpg for candidate 12 of input 3.
func CandidateFileName(tag, i int) string {
	return fmt.Sprintf("image%d%d.jpg", tag, i)
}

// JPEGWriter renders every patch to its own grayscale JPEG file.
type JPEGWriter struct {
	Dir          string
	Quality      int
	AutoContrast bool // stretch each patch to the full intensity range
}

func NewJPEGWriter(dir string, quality int) *JPEGWriter {
	return &JPEGWriter{Dir: dir, Quality: quality, AutoContrast: true}
}

// SaveCandidates writes one file per candidate and returns the written paths.
// The first write failure stops the export.
func (w *JPEGWriter) SaveCandidates(set *analyzer.CandidateSet, tag int) ([]string, error) {
	rect := image.Rect(0, 0, set.Size, set.Size)
	buf := system.GetGray(rect)
	defer system.PutGray(buf)

	paths := make([]string, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		patch := &raster.Image{Width: set.Size, Height: set.Size, Pix: set.Patch(i)}
		if w.AutoContrast {
			patch = stretch(patch)
		}
		patch.Gray(buf)

		path := filepath.Join(w.Dir, CandidateFileName(tag, i))
		if err := imaging.Save(buf, path, imaging.JPEGQuality(w.Quality)); err != nil {
			return paths, fmt.Errorf("save candidate %d: %w", i, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// stretch maps the patch's [min,max] range onto [0,1]. Flat patches are
// returned unchanged.
func stretch(m *raster.Image) *raster.Image {
	lo, hi := m.MinMax()
	if hi <= lo {
		return m
	}
	out := raster.New(m.Width, m.Height)
	for i, v := range m.Pix {
		out.Pix[i] = (v - lo) / (hi - lo)
	}
	return out
}
