// Package luminance converts decoded raster images into the normalized
// single-channel representation the measurement pipeline works on: a
// row-major array of float64 intensities stretched so that the 0.1st and
// 99.9th intensity percentiles map to 0 and 1.
package luminance

import (
	"fmt"
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Luminance weights for the R, G and B channels, approximating human
// luminance perception (ITU-R BT.709 primaries).
const (
	weightR = 0.2125
	weightG = 0.7154
	weightB = 0.0721
)

// Percentiles used for the contrast stretch.
const (
	blackPercentile = 0.001
	whitePercentile = 0.999
)

// Image is a single-channel luminance image with intensities in [0, 1],
// stored row-major (scanline, column). It is treated as immutable once
// normalized.
type Image struct {
	// Pix holds the samples in row-major order, length Height*Width
	Pix []float64

	// Height and Width are the image dimensions in pixels
	Height, Width int
}

// At returns the intensity at the given scanline and column.
func (m *Image) At(row, col int) float64 {
	return m.Pix[row*m.Width+col]
}

// FromImage converts a decoded image to luminance and applies the contrast
// stretch. Sample values are read through the 16-bit color interface, so the
// source bit depth and its maximum representable value are handled by the
// decoder.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := &Image{
		Pix:    make([]float64, height*width),
		Height: height,
		Width:  width,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r) / 65535.0
			gf := float64(g) / 65535.0
			bf := float64(b) / 65535.0
			out.Pix[y*width+x] = weightR*rf + weightG*gf + weightB*bf
		}
	}
	out.normalize()
	return out
}

// FromRaw converts a raw interleaved sample array (height x width x channels)
// with the given maximum representable value. One channel is taken as-is;
// three channels are mixed with the luminance weights. Any other channel
// count is malformed.
func FromRaw(samples []float64, height, width, channels int, maxVal float64) (*Image, error) {
	if len(samples) != height*width*channels {
		return nil, fmt.Errorf("sample count %d does not match %d x %d x %d",
			len(samples), height, width, channels)
	}
	if maxVal <= 0 {
		return nil, fmt.Errorf("maximum sample value must be positive; was %g", maxVal)
	}

	out := &Image{
		Pix:    make([]float64, height*width),
		Height: height,
		Width:  width,
	}
	switch channels {
	case 1:
		for i := range out.Pix {
			out.Pix[i] = samples[i] / maxVal
		}
	case 3:
		for i := range out.Pix {
			r := samples[i*3]
			g := samples[i*3+1]
			b := samples[i*3+2]
			out.Pix[i] = (weightR*r + weightG*g + weightB*b) / maxVal
		}
	default:
		return nil, fmt.Errorf("unsupported channel count %d (want 1 or 3)", channels)
	}
	out.normalize()
	return out, nil
}

// normalize stretches the intensities so the black and white percentiles map
// to 0 and 1, clipping everything outside that range.
func (m *Image) normalize() {
	sorted := make([]float64, len(m.Pix))
	copy(sorted, m.Pix)
	sort.Float64s(sorted)

	black := stat.Quantile(blackPercentile, stat.LinInterp, sorted, nil)
	white := stat.Quantile(whitePercentile, stat.LinInterp, sorted, nil)
	scale := white - black
	if scale <= 0 {
		// Uniform image; leave intensities clipped to [0, 1] as-is.
		for i, v := range m.Pix {
			m.Pix[i] = math.Max(0, math.Min(1, v))
		}
		return
	}

	for i, v := range m.Pix {
		v = (v - black) / scale
		m.Pix[i] = math.Max(0, math.Min(1, v))
	}
}
