package analyzer

import (
	"fmt"
	"math"
	"runtime"

	"gocv.io/x/gocv"

	"github.com/ivlev/ocrprep/internal/raster"
)

// toMat8 stretches img's value range onto 0..255 and wraps it in a
// single-channel 8-bit Mat. The returned byte slice backs the Mat and must
// outlive it. A constant image maps to all zeros.
func toMat8(img *raster.Image) (gocv.Mat, []byte, float64, float64, error) {
	lo, hi := img.MinMax()
	data := make([]byte, len(img.Pix))
	if hi > lo {
		for i, v := range img.Pix {
			data[i] = uint8(math.Round((v - lo) / (hi - lo) * 255))
		}
	}
	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return gocv.Mat{}, nil, 0, 0, fmt.Errorf("wrap image: %w", err)
	}
	return mat, data, lo, hi, nil
}

// otsuBinarize thresholds img with Otsu's method on its 8-bit rendering.
// It returns the threshold in img's units and the foreground mask
// (pixels strictly above the threshold). A constant image has no foreground
// and returns its single value.
func otsuBinarize(img *raster.Image) (float64, []bool, error) {
	mask := make([]bool, len(img.Pix))
	if len(img.Pix) == 0 {
		return 0, mask, nil
	}

	src, data, lo, hi, err := toMat8(img)
	if err != nil {
		return 0, nil, err
	}
	defer src.Close()

	binary := gocv.NewMat()
	defer binary.Close()

	t := gocv.Threshold(src, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	runtime.KeepAlive(data)

	out := binary.ToBytes()
	for i := range mask {
		mask[i] = out[i] != 0
	}

	if hi <= lo {
		return lo, mask, nil
	}
	return lo + float64(t)/255*(hi-lo), mask, nil
}

// OtsuThreshold returns the global Otsu threshold of img in its own units.
func OtsuThreshold(img *raster.Image) (float64, error) {
	t, _, err := otsuBinarize(img)
	return t, err
}
