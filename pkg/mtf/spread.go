package mtf

// wienerWindow is the length of the adaptive smoothing window applied to
// the line spread function to suppress high-frequency sensor noise.
const wienerWindow = 7

// edgeSpreadFunction averages the straightened profile column-wise,
// yielding the step response of the imaging chain across the edge.
func edgeSpreadFunction(p *Profile) []float64 {
	esf := make([]float64, p.Width)
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Width; col++ {
			esf[col] += p.At(row, col)
		}
	}
	for col := range esf {
		esf[col] /= float64(p.Rows)
	}
	return esf
}

// gradient computes the discrete derivative of a signal with central
// differences in the interior and one-sided differences at the ends.
func gradient(signal []float64) []float64 {
	n := len(signal)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = signal[1] - signal[0]
	out[n-1] = signal[n-1] - signal[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (signal[i+1] - signal[i-1]) / 2
	}
	return out
}

// wiener applies an adaptive noise-suppression filter: where the local
// variance over the window is close to the estimated noise floor the output
// follows the local mean, and where the signal dominates it follows the
// input. The overall noise power is estimated as the mean of the local
// variances. Samples beyond the signal ends count as zero.
func wiener(signal []float64, window int) []float64 {
	n := len(signal)
	half := window / 2

	localMean := make([]float64, n)
	localVar := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum, sumSq float64
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= n {
				continue
			}
			sum += signal[j]
			sumSq += signal[j] * signal[j]
		}
		m := sum / float64(window)
		localMean[i] = m
		localVar[i] = sumSq/float64(window) - m*m
	}

	var noise float64
	for _, v := range localVar {
		noise += v
	}
	noise /= float64(n)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if localVar[i] < noise || localVar[i] == 0 {
			out[i] = localMean[i]
			continue
		}
		out[i] = localMean[i] + (signal[i]-localMean[i])*(1-noise/localVar[i])
	}
	return out
}
