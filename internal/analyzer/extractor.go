package analyzer

import (
	"fmt"
	"io"

	"github.com/ivlev/ocrprep/internal/raster"
	"golang.org/x/image/draw"
)

// Extractor cuts fixed-size candidate patches out of an image for every
// connected foreground region of its mask.
type Extractor struct {
	MinArea      int // regions with Area <= MinArea are noise
	Margin       int // pixels added on each side of a region's box before cropping
	PatchSize    int // side length of the resampled patch
	Interpolator draw.Interpolator
	Out          io.Writer // shape diagnostics; nil disables them
}

// NewExtractor returns an extractor with the default policy: area > 10,
// margin 3, 32x32 bilinear patches.
func NewExtractor() *Extractor {
	return &Extractor{
		MinArea:      10,
		Margin:       3,
		PatchSize:    32,
		Interpolator: draw.BiLinear,
	}
}

// Regions labels the closed mask and returns every region in label order.
// Pixels added by the closing step are excluded from area and bounding boxes.
func (e *Extractor) Regions(mask *Mask) []Region {
	labels, count := labelComponents(mask.Closed, mask.Width, mask.Height)
	for i := range labels {
		if mask.Closed[i] != mask.Binary[i] {
			labels[i] = sentinelLabel
		}
	}
	return regionProps(labels, count, mask.Width, mask.Height)
}

// Extract returns the candidate set for img. An image without surviving
// regions yields an empty set.
func (e *Extractor) Extract(img *raster.Image, mask *Mask) (*CandidateSet, error) {
	if img.Width != mask.Width || img.Height != mask.Height {
		return nil, fmt.Errorf("mask %dx%d does not match image %dx%d", mask.Width, mask.Height, img.Width, img.Height)
	}
	if e.PatchSize <= 0 {
		return nil, fmt.Errorf("invalid patch size: %d", e.PatchSize)
	}

	set := NewCandidateSet(e.PatchSize)
	for _, region := range e.Regions(mask) {
		if region.Area <= e.MinArea {
			continue
		}

		box := region.BBox.Expand(e.Margin).Clamp(img.Width, img.Height)
		if box.Empty() {
			continue
		}

		roi := img.Crop(box.Rect())
		patch := roi.Resize(e.PatchSize, e.PatchSize, e.Interpolator)
		set.Append(patch.Pix, region.BBox)
	}

	if e.Out != nil {
		n, h, w := set.Shape()
		fmt.Fprintf(e.Out, "[*] Candidates: fullscale (%d, %d, %d) | flattened (%d, %d) | coordinates (%d, 4)\n",
			n, h, w, n, h*w, len(set.Coordinates))
	}

	return set, nil
}
