package mtf

import (
	"math"
	"math/rand"
	"testing"

	"slantededge/pkg/luminance"
)

// syntheticEdge builds a normalized luminance image containing a dark-to-light
// vertical edge tilted tiltDeg degrees away from vertical: the edge column on
// scanline r is interceptCol + tan(tiltDeg)*r, dark on the left and light on
// the right. With antialias the transition pixel carries its coverage
// fraction; otherwise the edge is a hard threshold. Gaussian noise with the
// given sigma is added from a fixed seed so images are reproducible.
func syntheticEdge(t *testing.T, height, width int, interceptCol, tiltDeg, noiseSigma float64, antialias bool) *luminance.Image {
	t.Helper()

	slope := math.Tan(tiltDeg * math.Pi / 180)
	rng := rand.New(rand.NewSource(42))

	samples := make([]float64, height*width)
	for row := 0; row < height; row++ {
		edge := interceptCol + slope*float64(row)
		for col := 0; col < width; col++ {
			var v float64
			switch {
			case antialias:
				v = math.Max(0, math.Min(1, float64(col)-edge+0.5))
			case float64(col) >= edge:
				v = 1
			}
			if noiseSigma > 0 {
				v += rng.NormFloat64() * noiseSigma
			}
			samples[row*width+col] = v
		}
	}

	img, err := luminance.FromRaw(samples, height, width, 1, 1.0)
	if err != nil {
		t.Fatalf("Failed to build synthetic edge image: %v", err)
	}
	return img
}
