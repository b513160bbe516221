package raster

import (
	"image"
	"image/color"
	"math"
)

// Image is a grayscale intensity grid with values in [0,1], stored row-major.
type Image struct {
	Width, Height int
	Pix           []float64
}

// New returns a zeroed image of the given size.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// FromImage converts any image to grayscale using luminance weights
// 0.2125 R + 0.7154 G + 0.0721 B.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				out.Pix[y*out.Width+x] = float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 255
			}
		}
	case *image.Gray16:
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				out.Pix[y*out.Width+x] = float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y) / 0xffff
			}
		}
	default:
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				out.Pix[y*out.Width+x] = (0.2125*float64(r) + 0.7154*float64(g) + 0.0721*float64(b)) / 0xffff
			}
		}
	}

	return out
}

// At returns the intensity at row r, column c.
func (m *Image) At(r, c int) float64 {
	return m.Pix[r*m.Width+c]
}

// Set stores the intensity at row r, column c.
func (m *Image) Set(r, c int, v float64) {
	m.Pix[r*m.Width+c] = v
}

// Bounds returns the image rectangle in (x=col, y=row) coordinates.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := &Image{Width: m.Width, Height: m.Height, Pix: make([]float64, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// MinMax returns the smallest and largest intensity. An empty image yields 0, 0.
func (m *Image) MinMax() (float64, float64) {
	if len(m.Pix) == 0 {
		return 0, 0
	}
	lo, hi := m.Pix[0], m.Pix[0]
	for _, v := range m.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Crop copies the sub-grid at rect (x=col, y=row). The rectangle is clamped to
// the image bounds first, so the result may be smaller than requested or empty.
func (m *Image) Crop(rect image.Rectangle) *Image {
	rect = rect.Intersect(m.Bounds())
	out := New(rect.Dx(), rect.Dy())
	for y := 0; y < out.Height; y++ {
		row := (rect.Min.Y + y) * m.Width
		copy(out.Pix[y*out.Width:(y+1)*out.Width], m.Pix[row+rect.Min.X:row+rect.Max.X])
	}
	return out
}

// Gray16 renders the grid as a 16-bit grayscale image.
func (m *Image) Gray16() *image.Gray16 {
	dst := image.NewGray16(m.Bounds())
	for i, v := range m.Pix {
		dst.Pix[2*i], dst.Pix[2*i+1] = split16(quantize(v, 0xffff))
	}
	return dst
}

// Gray renders the grid into dst, which must have the same size. Values are
// clipped to [0,1] before quantization.
func (m *Image) Gray(dst *image.Gray) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			dst.SetGray(dst.Rect.Min.X+x, dst.Rect.Min.Y+y, color.Gray{Y: uint8(quantize(m.At(y, x), 0xff))})
		}
	}
}

func quantize(v float64, max float64) uint16 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return uint16(max)
	}
	return uint16(math.Round(v * max))
}

func split16(v uint16) (uint8, uint8) {
	return uint8(v >> 8), uint8(v)
}
