package analyzer

import (
	"fmt"

	"github.com/ivlev/ocrprep/internal/raster"
)

// Mask is the binarized form of an image.
type Mask struct {
	Width, Height int
	Threshold     float64
	Binary        []bool // denoised > threshold, before closing
	Closed        []bool // Binary after morphological closing
}

// PreprocessOptions controls the denoise/threshold/closing chain.
type PreprocessOptions struct {
	DenoiseWeight float64
	ClosingSize   int
}

// DefaultPreprocessOptions returns weight 0.1 and a 2x2 closing element.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		DenoiseWeight: 0.1,
		ClosingSize:   2,
	}
}

// Preprocess denoises img, thresholds it with Otsu's method and closes small
// gaps between foreground pixels. The result is deterministic.
func Preprocess(img *raster.Image, opts PreprocessOptions) (*Mask, error) {
	denoised := DenoiseTV(img, opts.DenoiseWeight)

	thresh, binary, err := otsuBinarize(denoised)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}

	closed, err := closeSquare(binary, img.Width, img.Height, opts.ClosingSize)
	if err != nil {
		return nil, fmt.Errorf("closing: %w", err)
	}

	return &Mask{
		Width:     img.Width,
		Height:    img.Height,
		Threshold: thresh,
		Binary:    binary,
		Closed:    closed,
	}, nil
}

// Count returns the number of foreground pixels in the closed mask.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Closed {
		if v {
			n++
		}
	}
	return n
}
