package mtf

// EdgeWidth is the default width in pixels of the straightened edge window.
// It doubles as the minimum region height/width and the minimum number of
// scanlines the detected edge must cover.
const EdgeWidth = 99

// Default edge angle acceptance interval in degrees. The angle is measured
// between the edge line and the horizontal scanline axis, so a perfectly
// vertical edge would be 90 degrees and the usual 2-12 degree slant of a
// test chart lands inside [78, 88].
const (
	DefaultMinAngle = 78.0
	DefaultMaxAngle = 88.0
)

// fftSize is the zero-padded FFT length used for the MTF curves. The curve
// itself keeps only the first fftSize/2 samples (up to twice Nyquist on the
// normalized frequency axis).
const fftSize = 1024

// Corner identifies one of the five canonical edge regions on a test chart.
type Corner string

const (
	Center      Corner = "center"
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// Corners lists the canonical regions in reporting order.
var Corners = []Corner{Center, TopLeft, TopRight, BottomLeft, BottomRight}

// Region is a rectangular area of the source image believed to contain a
// slanted edge. Bounds are half-open: rows [MinRow, MaxRow) and columns
// [MinCol, MaxCol), matching the way crops are sliced out of the image.
type Region struct {
	// Corner is the canonical position label for this region
	Corner Corner

	// MinRow, MaxRow, MinCol, MaxCol are the region bounds in pixels
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Empty reports whether the region has no area and should be skipped.
func (r Region) Empty() bool {
	return r.MinRow == 0 && r.MaxRow == 0 && r.MinCol == 0 && r.MaxCol == 0
}

// Height returns the region height in scanlines.
func (r Region) Height() int { return r.MaxRow - r.MinRow }

// Width returns the region width in pixels.
func (r Region) Width() int { return r.MaxCol - r.MinCol }

// EdgeModel is a first-degree polynomial relating scanline to edge column,
// col = Slope*row + Intercept, fitted through the detected edge pixels with
// the row as the independent variable so that near-vertical edges fit
// robustly.
type EdgeModel struct {
	// Slope and Intercept define col = Slope*row + Intercept
	Slope     float64
	Intercept float64

	// AngleDegrees is the angle between the edge line and the horizontal
	// scanline axis, in degrees
	AngleDegrees float64
}

// ColumnAt returns the ideal edge column on the given scanline.
func (m EdgeModel) ColumnAt(row int) float64 {
	return m.Slope*float64(row) + m.Intercept
}

// RegionResult aggregates everything computed for one region: the
// intermediate artifacts of each pipeline stage, the final MTF curves and
// scalar metrics, and the success verdict. A failed stage leaves the later
// fields nil and records the failure in Err.
type RegionResult struct {
	// Corner is the canonical position label for this result
	Corner Corner

	// Region holds the analyzed bounds
	Region Region

	// Edge holds the fitted edge line; valid once edge location succeeds
	Edge EdgeModel

	// EdgeScanlines is the number of scanlines in the straightened profile
	EdgeScanlines int

	// Profile is the straightened edge, EdgeScanlines rows by edge-width
	// columns in row-major order
	Profile *Profile

	// ESF is the edge spread function, one sample per window column
	ESF []float64

	// LSF is the line spread function, the discrete gradient of ESF
	LSF []float64

	// SmoothedLSF is LSF after adaptive noise suppression
	SmoothedLSF []float64

	// MTF and SmoothedMTF are the normalized magnitude spectra of LSF and
	// SmoothedLSF over the [0, 1] cycles/pixel axis
	MTF         []float64
	SmoothedMTF []float64

	// MTF50 and MTF20 are the spatial frequencies, in cycles/pixel, at
	// which the smoothed MTF crosses 50% and 20% of its peak
	MTF50 float64
	MTF20 float64

	// NonMonotonicFrac is the fraction of samples on the smoothed MTF
	// curve that rise relative to their lower-frequency neighbor. The
	// MTF50/MTF20 interpolation assumes a non-increasing curve; a large
	// value here flags noisy data for which the metrics are suspect.
	NonMonotonicFrac float64

	// Success is true once every pipeline stage completed
	Success bool

	// Err records the stage failure when Success is false
	Err error
}

// Profile is a dense rectangular array of pixels: the region scanlines
// re-centered on the fitted edge. Rows is the number of surviving scanlines
// and Width the edge window width.
type Profile struct {
	// Pix holds the samples in row-major order, length Rows*Width
	Pix []float64

	// Rows and Width are the profile dimensions
	Rows, Width int
}

// At returns the sample at the given profile row and column.
func (p *Profile) At(row, col int) float64 {
	return p.Pix[row*p.Width+col]
}
