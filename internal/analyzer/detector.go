package analyzer

import "image"

// BBox is a region's bounding box in pixel rows/columns. Max values are exclusive.
type BBox struct {
	MinRow int `yaml:"min_row"`
	MinCol int `yaml:"min_col"`
	MaxRow int `yaml:"max_row"`
	MaxCol int `yaml:"max_col"`
}

// Rect converts the box to an image.Rectangle (x=col, y=row).
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.MinCol, b.MinRow, b.MaxCol, b.MaxRow)
}

// Expand grows the box by margin pixels on every side without clamping.
func (b BBox) Expand(margin int) BBox {
	return BBox{
		MinRow: b.MinRow - margin,
		MinCol: b.MinCol - margin,
		MaxRow: b.MaxRow + margin,
		MaxCol: b.MaxCol + margin,
	}
}

// Clamp clips the box to a width x height image. The result may be empty.
func (b BBox) Clamp(width, height int) BBox {
	return BBox{
		MinRow: clamp(b.MinRow, 0, height),
		MinCol: clamp(b.MinCol, 0, width),
		MaxRow: clamp(b.MaxRow, 0, height),
		MaxCol: clamp(b.MaxCol, 0, width),
	}
}

// Empty reports whether the box has zero width or height.
func (b BBox) Empty() bool {
	return b.MaxRow <= b.MinRow || b.MaxCol <= b.MinCol
}

// Region is a connected set of foreground pixels.
type Region struct {
	Label int
	Area  int
	BBox  BBox
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
