package analyzer

import (
	"fmt"
	"runtime"

	"gocv.io/x/gocv"
)

// closeSquare performs a binary morphological closing (dilation followed by
// erosion) with a size x size square structuring element. The element is
// anchored at index size/2 and mirrored between the two passes, so closing is
// extensive for even sizes too; MorphClose reuses one anchor and would shift
// the result by a pixel. Outside the grid is neutral for both passes.
func closeSquare(mask []bool, width, height, size int) ([]bool, error) {
	out := make([]bool, len(mask))
	if size <= 1 || len(mask) == 0 {
		copy(out, mask)
		return out, nil
	}
	lo := -(size / 2)
	hi := lo + size - 1

	data := make([]byte, len(mask))
	for i, v := range mask {
		if v {
			data[i] = 255
		}
	}
	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return nil, fmt.Errorf("wrap mask: %w", err)
	}
	defer src.Close()

	dilateKernel, dilateData, err := offsetKernel(lo, hi)
	if err != nil {
		return nil, err
	}
	defer dilateKernel.Close()
	erodeKernel, erodeData, err := offsetKernel(-hi, -lo)
	if err != nil {
		return nil, err
	}
	defer erodeKernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	closed := gocv.NewMat()
	defer closed.Close()

	gocv.Dilate(src, &dilated, dilateKernel)
	gocv.Erode(dilated, &closed, erodeKernel)
	runtime.KeepAlive(data)
	runtime.KeepAlive(dilateData)
	runtime.KeepAlive(erodeData)

	res := closed.ToBytes()
	for i := range out {
		out[i] = res[i] != 0
	}
	return out, nil
}

// offsetKernel builds a centered odd-sized kernel whose nonzero cells are the
// offsets lo..hi on both axes, so the default center anchor applies exactly
// those offsets. The returned bytes back the Mat.
func offsetKernel(lo, hi int) (gocv.Mat, []byte, error) {
	radius := max(-lo, hi, 0)
	k := 2*radius + 1
	data := make([]byte, k*k)
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			data[(dy+radius)*k+dx+radius] = 1
		}
	}
	mat, err := gocv.NewMatFromBytes(k, k, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return gocv.Mat{}, nil, fmt.Errorf("build kernel: %w", err)
	}
	return mat, data, nil
}
