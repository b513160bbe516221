package analyzer

import "image"

// sentinelLabel marks pixels excluded from every region.
const sentinelLabel = -1

// labelComponents assigns 8-connected foreground pixels a positive label in
// raster discovery order. Background is 0. It returns the label grid and the
// number of labels.
func labelComponents(mask []bool, width, height int) ([]int, int) {
	labels := make([]int, len(mask))
	next := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y*width+x] && labels[y*width+x] == 0 {
				next++
				floodFill(mask, labels, width, height, x, y, next)
			}
		}
	}

	return labels, next
}

// floodFill labels the component containing (startX, startY).
func floodFill(mask []bool, labels []int, width, height, startX, startY, label int) {
	stack := []image.Point{{X: startX, Y: startY}}
	labels[startY*width+startX] = label

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := p.X+dx, p.Y+dy
				if x < 0 || x >= width || y < 0 || y >= height {
					continue
				}
				i := y*width + x
				if !mask[i] || labels[i] != 0 {
					continue
				}
				labels[i] = label
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}
}

// regionProps computes area and bounding box for labels 1..count, skipping
// background and sentinel pixels. Regions whose pixels were all excluded are
// returned with zero area.
func regionProps(labels []int, count, width, height int) []Region {
	regions := make([]Region, count)
	for i := range regions {
		regions[i] = Region{
			Label: i + 1,
			BBox:  BBox{MinRow: height, MinCol: width, MaxRow: 0, MaxCol: 0},
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := labels[y*width+x]
			if l <= 0 {
				continue
			}
			r := &regions[l-1]
			r.Area++
			if y < r.BBox.MinRow {
				r.BBox.MinRow = y
			}
			if x < r.BBox.MinCol {
				r.BBox.MinCol = x
			}
			if y+1 > r.BBox.MaxRow {
				r.BBox.MaxRow = y + 1
			}
			if x+1 > r.BBox.MaxCol {
				r.BBox.MaxCol = x + 1
			}
		}
	}

	for i := range regions {
		if regions[i].Area == 0 {
			regions[i].BBox = BBox{}
		}
	}

	return regions
}
