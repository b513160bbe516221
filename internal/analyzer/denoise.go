package analyzer

import (
	"math"

	"github.com/ivlev/ocrprep/internal/raster"
)

const (
	tvEps        = 2e-4
	tvMaxNumIter = 200
)

// DenoiseTV applies Chambolle's total-variation denoising with the given
// weight. Higher weight removes more noise at the expense of fidelity.
func DenoiseTV(img *raster.Image, weight float64) *raster.Image {
	w, h := img.Width, img.Height
	n := w * h
	out := img.Clone()
	if n == 0 || weight <= 0 {
		return out
	}

	// Dual field p and gradient g, one plane per axis (0 = rows, 1 = cols).
	// The last row of g[0] and the last column of g[1] stay zero.
	p := [2][]float64{make([]float64, n), make([]float64, n)}
	g := [2][]float64{make([]float64, n), make([]float64, n)}
	d := make([]float64, n)

	const tau = 1.0 / 4.0
	var eInit, ePrev float64

	for iter := 0; iter < tvMaxNumIter; iter++ {
		if iter > 0 {
			// d = -div(p) with backward differences
			for i := 0; i < n; i++ {
				d[i] = -(p[0][i] + p[1][i])
			}
			for r := 1; r < h; r++ {
				for c := 0; c < w; c++ {
					d[r*w+c] += p[0][(r-1)*w+c]
				}
			}
			for r := 0; r < h; r++ {
				for c := 1; c < w; c++ {
					d[r*w+c] += p[1][r*w+c-1]
				}
			}
			for i := 0; i < n; i++ {
				out.Pix[i] = img.Pix[i] + d[i]
			}
		}

		energy := 0.0
		for _, v := range d {
			energy += v * v
		}

		for r := 0; r < h-1; r++ {
			for c := 0; c < w; c++ {
				g[0][r*w+c] = out.Pix[(r+1)*w+c] - out.Pix[r*w+c]
			}
		}
		for r := 0; r < h; r++ {
			for c := 0; c < w-1; c++ {
				g[1][r*w+c] = out.Pix[r*w+c+1] - out.Pix[r*w+c]
			}
		}

		for i := 0; i < n; i++ {
			norm := math.Sqrt(g[0][i]*g[0][i] + g[1][i]*g[1][i])
			energy += weight * norm
			scale := 1 + norm*tau/weight
			p[0][i] = (p[0][i] - tau*g[0][i]) / scale
			p[1][i] = (p[1][i] - tau*g[1][i]) / scale
		}

		energy /= float64(n)
		if iter == 0 {
			eInit, ePrev = energy, energy
			continue
		}
		if math.Abs(ePrev-energy) < tvEps*eInit {
			break
		}
		ePrev = energy
	}

	return out
}
