package mtf

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"gonum.org/v1/gonum/stat"

	"slantededge/pkg/luminance"
)

const (
	// blurRadius is the Gaussian pre-blur applied before thresholding to
	// suppress sensor noise; radius 2 corresponds to a 5x5 kernel.
	blurRadius = 2.0

	// openingIterations is how many erosion and dilation passes the
	// binary mask gets to remove isolated noise pixels.
	openingIterations = 3
)

// locateEdge finds the slanted edge inside the region and fits a straight
// line through it. The region is binarized with Otsu's threshold, cleaned up
// with morphological opening, and reduced to a sparse set of edge pixels by
// a Canny-style detector; a least-squares line col = a*row + b is then
// fitted through those pixels. It is a pure function of the region pixels
// and the configured thresholds.
func locateEdge(region *luminance.Image, corner Corner, minSpan int, minAngle, maxAngle float64) (EdgeModel, error) {
	mask := binarize(region)
	mask = opening(mask, region.Height, region.Width, openingIterations)
	rows, cols := cannyEdges(mask, region.Height, region.Width)

	span := distinctValues(rows)
	if span < minSpan {
		return EdgeModel{}, &InsufficientEdgeSpanError{Corner: corner, Scanlines: span, Minimum: minSpan}
	}

	// Fit with the row as the independent variable so near-vertical edges
	// (small column change per scanline) stay numerically well-behaved.
	rowsF := make([]float64, len(rows))
	colsF := make([]float64, len(cols))
	for i := range rows {
		rowsF[i] = float64(rows[i])
		colsF[i] = float64(cols[i])
	}
	intercept, slope := stat.LinearRegression(rowsF, colsF, nil, false)

	// The slope is columns-per-scanline, so atan(slope) is the tilt away
	// from vertical; the reported angle is measured against the scanline
	// axis to match the configured acceptance interval.
	angle := 90.0 - math.Abs(math.Atan(slope))*180.0/math.Pi
	if !(minAngle < angle && angle < maxAngle) {
		return EdgeModel{}, &EdgeAngleOutOfRangeError{
			Corner: corner, Angle: angle, MinAngle: minAngle, MaxAngle: maxAngle,
		}
	}

	return EdgeModel{Slope: slope, Intercept: intercept, AngleDegrees: angle}, nil
}

// binarize converts the region to a two-level mask separating the light and
// dark sides of the target, using Otsu's histogram-based global threshold on
// a Gaussian-blurred 8-bit rendition of the region.
func binarize(region *luminance.Image) []bool {
	gray := image.NewGray(image.Rect(0, 0, region.Width, region.Height))
	for row := 0; row < region.Height; row++ {
		for col := 0; col < region.Width; col++ {
			v := region.At(row, col) * 255.0
			if v > 255 {
				v = 255
			} else if v < 0 {
				v = 0
			}
			gray.Pix[row*gray.Stride+col] = uint8(v)
		}
	}

	blurred := blur.Gaussian(gray, blurRadius)

	var histo [256]int
	levels := make([]uint8, region.Height*region.Width)
	for row := 0; row < region.Height; row++ {
		for col := 0; col < region.Width; col++ {
			v := blurred.RGBAAt(col, row).R
			levels[row*region.Width+col] = v
			histo[v]++
		}
	}

	threshold := otsuThreshold(histo, len(levels))
	mask := make([]bool, len(levels))
	for i, v := range levels {
		mask[i] = v > threshold
	}
	return mask
}

// otsuThreshold picks the intensity level that maximizes the inter-class
// variance between the pixels below and above it.
func otsuThreshold(histo [256]int, totalPixels int) uint8 {
	var totalWeightedSum int
	for level, pixels := range histo {
		totalWeightedSum += level * pixels
	}

	var (
		bestThreshold uint8
		bestVariance  int

		darkPixels      int
		darkWeightedSum int
	)
	for level, pixels := range histo {
		darkPixels += pixels
		darkWeightedSum += level * pixels

		lightPixels := totalPixels - darkPixels
		lightWeightedSum := totalWeightedSum - darkWeightedSum
		if darkPixels == 0 || lightPixels == 0 {
			continue
		}

		darkMean := darkWeightedSum / darkPixels
		lightMean := lightWeightedSum / lightPixels
		diff := darkMean - lightMean

		variance := darkPixels * lightPixels * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = uint8(level)
		}
	}
	return bestThreshold
}

// opening applies a morphological opening to the mask: iterations passes of
// erosion followed by the same number of dilation passes, with a 3x3
// 8-connected structuring element. Pixels outside the mask count as false.
func opening(mask []bool, height, width, iterations int) []bool {
	for i := 0; i < iterations; i++ {
		mask = erode(mask, height, width)
	}
	for i := 0; i < iterations; i++ {
		mask = dilate(mask, height, width)
	}
	return mask
}

func erode(mask []bool, height, width int) []bool {
	out := make([]bool, len(mask))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			keep := true
			for dy := -1; dy <= 1 && keep; dy++ {
				for dx := -1; dx <= 1 && keep; dx++ {
					y, x := row+dy, col+dx
					if y < 0 || y >= height || x < 0 || x >= width || !mask[y*width+x] {
						keep = false
					}
				}
			}
			out[row*width+col] = keep
		}
	}
	return out
}

func dilate(mask []bool, height, width int) []bool {
	out := make([]bool, len(mask))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			set := false
			for dy := -1; dy <= 1 && !set; dy++ {
				for dx := -1; dx <= 1 && !set; dx++ {
					y, x := row+dy, col+dx
					if y >= 0 && y < height && x >= 0 && x < width && mask[y*width+x] {
						set = true
					}
				}
			}
			out[row*width+col] = set
		}
	}
	return out
}

// cannyEdges runs a multi-stage gradient edge detector on the binary mask
// and returns the (row, col) coordinates of the surviving edge pixels:
// Sobel gradients with L2 magnitude, non-maximum suppression along the
// gradient direction, then hysteresis thresholding. The hysteresis levels
// are derived from the mask's own minimum and maximum intensity, so on a
// clean two-level mask only the single boundary between the regions
// survives.
func cannyEdges(mask []bool, height, width int) (rows, cols []int) {
	// Render the mask at 8-bit intensity scale so gradient magnitudes are
	// comparable with the intensity-derived hysteresis levels.
	img := make([]float64, len(mask))
	minVal, maxVal := 255.0, 0.0
	for i, on := range mask {
		if on {
			img[i] = 255.0
		}
		if img[i] < minVal {
			minVal = img[i]
		}
		if img[i] > maxVal {
			maxVal = img[i]
		}
	}

	clampIdx := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	magnitude := make([]float64, len(img))
	direction := make([]float64, len(img))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var gx, gy float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					y := clampIdx(row+dy, height-1)
					x := clampIdx(col+dx, width-1)
					v := img[y*width+x]
					gx += v * sobelX[dy+1][dx+1]
					gy += v * sobelY[dy+1][dx+1]
				}
			}
			idx := row*width + col
			magnitude[idx] = math.Hypot(gx, gy)
			direction[idx] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction so the edge thins to one pixel.
	suppressed := make([]float64, len(img))
	for row := 1; row < height-1; row++ {
		for col := 1; col < width-1; col++ {
			idx := row*width + col
			angle := direction[idx]
			mag := magnitude[idx]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[idx-1]
				n2 = magnitude[idx+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[idx-width+1]
				n2 = magnitude[idx+width-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[idx-width]
				n2 = magnitude[idx+width]
			default:
				n1 = magnitude[idx-width-1]
				n2 = magnitude[idx+width+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[idx] = mag
			}
		}
	}

	lowThresh := minVal
	highThresh := maxVal

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			idx := row*width + col
			val := suppressed[idx]
			if val <= lowThresh {
				continue
			}
			strong := val > highThresh
			if !strong {
				// Weak edge pixels survive only next to a strong one.
				for dy := -1; dy <= 1 && !strong; dy++ {
					for dx := -1; dx <= 1 && !strong; dx++ {
						y := clampIdx(row+dy, height-1)
						x := clampIdx(col+dx, width-1)
						if suppressed[y*width+x] > highThresh {
							strong = true
						}
					}
				}
			}
			if strong {
				rows = append(rows, row)
				cols = append(cols, col)
			}
		}
	}
	return rows, cols
}

var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// distinctValues counts the number of distinct entries in a slice of sorted
// or unsorted coordinates.
func distinctValues(vals []int) int {
	seen := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
