package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// NewInterpolator returns the resampling kernel for the given variant name.
func NewInterpolator(variant string) (draw.Interpolator, error) {
	switch variant {
	case "bilinear", "":
		return draw.BiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown interpolator: %s", variant)
	}
}

// Resize resamples m to width x height. A nil interpolator means bilinear.
func (m *Image) Resize(width, height int, interp draw.Interpolator) *Image {
	if interp == nil {
		interp = draw.BiLinear
	}
	out := New(width, height)
	if m.Width == 0 || m.Height == 0 || width == 0 || height == 0 {
		return out
	}

	src := m.Gray16()
	dst := image.NewGray16(image.Rect(0, 0, width, height))
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	for i := range out.Pix {
		out.Pix[i] = float64(uint16(dst.Pix[2*i])<<8|uint16(dst.Pix[2*i+1])) / 0xffff
	}
	return out
}
