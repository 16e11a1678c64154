package mtf

import (
	"math"
	"testing"
)

// TestEdgeSpreadFunction verifies the column-wise averaging of the profile.
func TestEdgeSpreadFunction(t *testing.T) {
	p := &Profile{
		Pix: []float64{
			0, 0.5, 1,
			0, 0.7, 1,
			0, 0.6, 1,
		},
		Rows:  3,
		Width: 3,
	}

	esf := edgeSpreadFunction(p)
	if len(esf) != p.Width {
		t.Fatalf("Expected ESF length %d, got %d", p.Width, len(esf))
	}
	want := []float64{0, 0.6, 1}
	for i := range want {
		if math.Abs(esf[i]-want[i]) > 1e-12 {
			t.Errorf("ESF[%d]: expected %g, got %g", i, want[i], esf[i])
		}
	}
}

// TestGradient verifies central differences in the interior and one-sided
// differences at the ends.
func TestGradient(t *testing.T) {
	lsf := gradient([]float64{0, 0, 1, 1})

	want := []float64{0, 0.5, 0.5, 0}
	for i := range want {
		if math.Abs(lsf[i]-want[i]) > 1e-12 {
			t.Errorf("Gradient[%d]: expected %g, got %g", i, want[i], lsf[i])
		}
	}
}

// TestGradientLinearRamp verifies that a linear signal has a constant
// derivative.
func TestGradientLinearRamp(t *testing.T) {
	signal := make([]float64, 20)
	for i := range signal {
		signal[i] = 0.25 * float64(i)
	}

	for i, v := range gradient(signal) {
		if math.Abs(v-0.25) > 1e-12 {
			t.Errorf("Gradient[%d] of linear ramp: expected 0.25, got %g", i, v)
		}
	}
}

// TestWienerPreservesInterior verifies that a constant signal passes through
// the filter unchanged away from the zero-padded ends.
func TestWienerPreservesInterior(t *testing.T) {
	signal := make([]float64, 30)
	for i := range signal {
		signal[i] = 0.8
	}

	out := wiener(signal, wienerWindow)
	if len(out) != len(signal) {
		t.Fatalf("Expected output length %d, got %d", len(signal), len(out))
	}
	half := wienerWindow / 2
	for i := half; i < len(out)-half; i++ {
		if math.Abs(out[i]-0.8) > 1e-12 {
			t.Errorf("Interior sample %d changed: expected 0.8, got %g", i, out[i])
		}
	}
}

// TestWienerKeepsMainLobe verifies that the filter keeps a strong isolated
// peak as the maximum of the output.
func TestWienerKeepsMainLobe(t *testing.T) {
	signal := make([]float64, 40)
	signal[20] = 1.0
	signal[19] = 0.5
	signal[21] = 0.5

	out := wiener(signal, wienerWindow)
	maxIdx := 0
	for i, v := range out {
		if v > out[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 20 {
		t.Errorf("Expected peak to stay at index 20, got %d", maxIdx)
	}
	if out[20] < 0.5 {
		t.Errorf("Peak suppressed too strongly: %g", out[20])
	}
}

// TestWienerReducesNoiseVariance verifies the noise-suppression property on
// a flat noisy signal.
func TestWienerReducesNoiseVariance(t *testing.T) {
	// Deterministic pseudo-noise around a flat level.
	signal := make([]float64, 99)
	for i := range signal {
		signal[i] = 0.5 + 0.05*math.Sin(float64(i)*12.9898)*math.Cos(float64(i)*4.1414)
	}

	out := wiener(signal, wienerWindow)

	variance := func(s []float64, lo, hi int) float64 {
		var mean float64
		for _, v := range s[lo:hi] {
			mean += v
		}
		mean /= float64(hi - lo)
		var sum float64
		for _, v := range s[lo:hi] {
			sum += (v - mean) * (v - mean)
		}
		return sum / float64(hi-lo)
	}

	half := wienerWindow / 2
	if variance(out, half, len(out)-half) >= variance(signal, half, len(signal)-half) {
		t.Error("Expected filtered signal to have lower variance than the input")
	}
}
