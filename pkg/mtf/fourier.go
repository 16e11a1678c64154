package mtf

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// transferFunction computes the normalized magnitude spectrum of a line
// spread function. The input is zero-padded to fftSize samples for frequency
// resolution, only the first half of the spectrum is kept (the input is
// real-valued, so the rest is the mirror image), and the magnitudes are
// divided by their maximum so the curve peaks at 1. Sample i sits at
// frequency i/(fftSize/2-1) on a [0, 1] cycles/pixel axis, putting the
// Nyquist limit of 0.5 at the curve midpoint.
func transferFunction(lsf []float64) []float64 {
	padded := make([]float64, fftSize)
	copy(padded, lsf)

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, padded)

	half := fftSize / 2
	curve := make([]float64, half)
	maxMag := 0.0
	for i := 0; i < half; i++ {
		re := real(coeffs[i])
		im := imag(coeffs[i])
		mag := re*re + im*im
		curve[i] = mag
		if mag > maxMag {
			maxMag = mag
		}
	}
	// Normalize squared magnitudes in one pass, then take the root.
	for i := range curve {
		curve[i] = math.Sqrt(curve[i] / maxMag)
	}
	return curve
}

// frequencyAxis returns the spatial frequency of each curve sample,
// linearly spaced over [0, 1] cycles/pixel.
func frequencyAxis(n int) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i) / float64(n-1)
	}
	return axis
}

// crossingFrequency finds the spatial frequency at which the curve falls to
// the given level of its peak, by linear interpolation on the curve walked
// from the Nyquist end back towards DC. The curve is assumed to be
// monotonically non-increasing from its DC peak; locally rising samples on
// noisy data make the binary search land on an arbitrary crossing, which
// callers can gauge via nonMonotonicFraction.
func crossingFrequency(curve, freqs []float64, level float64) float64 {
	n := len(curve)
	reversed := make([]float64, n)
	reversedFreqs := make([]float64, n)
	for i := 0; i < n; i++ {
		reversed[i] = curve[n-1-i]
		reversedFreqs[i] = freqs[n-1-i]
	}

	if level <= reversed[0] {
		return reversedFreqs[0]
	}
	if level >= reversed[n-1] {
		return reversedFreqs[n-1]
	}

	i := sort.SearchFloat64s(reversed, level)
	lo, hi := reversed[i-1], reversed[i]
	if hi == lo {
		return reversedFreqs[i]
	}
	t := (level - lo) / (hi - lo)
	return reversedFreqs[i-1] + t*(reversedFreqs[i]-reversedFreqs[i-1])
}

// nonMonotonicFraction reports the fraction of curve samples that rise
// relative to their lower-frequency neighbor. Zero means the curve is
// perfectly non-increasing and the crossing interpolation is exact.
func nonMonotonicFraction(curve []float64) float64 {
	if len(curve) < 2 {
		return 0
	}
	rising := 0
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1] {
			rising++
		}
	}
	return float64(rising) / float64(len(curve)-1)
}
