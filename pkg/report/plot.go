package report

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"slantededge/pkg/luminance"
	"slantededge/pkg/mtf"
)

// Plot geometry. The MTF plot covers [0, 0.75] cycles/pixel horizontally
// and [0, 1] response vertically, with grid lines every 0.05 on both axes.
const (
	plotWidth  = 1200
	plotHeight = 700
	plotMargin = 40

	maxPlotFrequency = 0.75
	gridStep         = 0.05
)

// Per-region curve colors, one per canonical corner.
var curveColors = map[mtf.Corner]color.NRGBA{
	mtf.Center:      {0, 90, 200, 255},
	mtf.TopLeft:     {200, 60, 0, 255},
	mtf.TopRight:    {0, 150, 70, 255},
	mtf.BottomLeft:  {160, 0, 160, 255},
	mtf.BottomRight: {200, 140, 0, 255},
}

var (
	gridColor  = color.NRGBA{210, 210, 210, 255}
	guideColor = color.NRGBA{230, 80, 80, 255}
	frameColor = color.NRGBA{60, 60, 60, 255}
)

// MTFCurves renders the smoothed MTF curve of every successful region into
// one plot, with guide lines at the Nyquist limit (0.5 cycles/pixel) and at
// the 50% response level.
func MTFCurves(results []*mtf.RegionResult) *image.NRGBA {
	img := newCanvas(plotWidth, plotHeight)

	// Grid and guides.
	for f := 0.0; f <= maxPlotFrequency+1e-9; f += gridStep {
		x := plotX(f)
		drawVerticalLine(img, x, plotMargin, plotHeight-plotMargin, gridColor)
	}
	for v := 0.0; v <= 1.0+1e-9; v += gridStep {
		y := plotY(v)
		drawHorizontalLine(img, y, plotMargin, plotWidth-plotMargin, gridColor)
	}
	drawVerticalLine(img, plotX(0.5), plotMargin, plotHeight-plotMargin, guideColor)
	drawHorizontalLine(img, plotY(0.5), plotMargin, plotWidth-plotMargin, guideColor)

	for _, res := range results {
		if !res.Success {
			continue
		}
		c, ok := curveColors[res.Corner]
		if !ok {
			c = frameColor
		}
		n := len(res.SmoothedMTF)
		for i := 1; i < n; i++ {
			f0 := float64(i-1) / float64(n-1)
			f1 := float64(i) / float64(n-1)
			if f1 > maxPlotFrequency {
				break
			}
			drawLine(img,
				plotX(f0), plotY(res.SmoothedMTF[i-1]),
				plotX(f1), plotY(res.SmoothedMTF[i]), c)
		}
	}

	drawFrame(img)
	return img
}

// RegionOverlay renders the source image in grayscale with the analyzed
// regions outlined and the fitted edge line drawn through each successful
// one.
func RegionOverlay(src *luminance.Image, results []*mtf.RegionResult) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for row := 0; row < src.Height; row++ {
		for col := 0; col < src.Width; col++ {
			v := uint8(math.Max(0, math.Min(255, src.At(row, col)*255)))
			img.SetNRGBA(col, row, color.NRGBA{v, v, v, 255})
		}
	}

	for _, res := range results {
		r := res.Region
		c, ok := curveColors[res.Corner]
		if !ok {
			c = guideColor
		}
		drawRect(img, r.MinCol, r.MinRow, r.MaxCol-1, r.MaxRow-1, c)
		if res.Success {
			// Edge line in region-local coordinates, clipped to the region.
			for row := r.MinRow; row < r.MaxRow; row++ {
				col := r.MinCol + int(math.Round(res.Edge.ColumnAt(row-r.MinRow)))
				if col >= r.MinCol && col < r.MaxCol {
					img.SetNRGBA(col, row, guideColor)
				}
			}
		}
	}
	return img
}

// SaveAll writes the MTF plot and the region overlay for one source image
// into dir, named after the image base name the way the original chart
// outputs are: MTF-<name>-MTF.png and MTF-<name>-ROI.png.
func SaveAll(dir, imageName string, src *luminance.Image, results []*mtf.RegionResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	base := filepath.Base(imageName)
	mtfPath := filepath.Join(dir, fmt.Sprintf("MTF-%s-MTF.png", base))
	if err := imaging.Save(MTFCurves(results), mtfPath); err != nil {
		return fmt.Errorf("error saving MTF plot: %w", err)
	}

	roiPath := filepath.Join(dir, fmt.Sprintf("MTF-%s-ROI.png", base))
	if err := imaging.Save(RegionOverlay(src, results), roiPath); err != nil {
		return fmt.Errorf("error saving region overlay: %w", err)
	}
	return nil
}

func newCanvas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	white := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	return img
}

// plotX maps a spatial frequency to a canvas x coordinate.
func plotX(f float64) int {
	usable := plotWidth - 2*plotMargin
	return plotMargin + int(math.Round(f/maxPlotFrequency*float64(usable)))
}

// plotY maps an MTF response value to a canvas y coordinate.
func plotY(v float64) int {
	usable := plotHeight - 2*plotMargin
	return plotHeight - plotMargin - int(math.Round(v*float64(usable)))
}

func drawVerticalLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		img.SetNRGBA(x, y, c)
	}
}

func drawHorizontalLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	for x := x0; x <= x1; x++ {
		img.SetNRGBA(x, y, c)
	}
}

func drawRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	drawHorizontalLine(img, y0, x0, x1, c)
	drawHorizontalLine(img, y1, x0, x1, c)
	drawVerticalLine(img, x0, y0, y1, c)
	drawVerticalLine(img, x1, y0, y1, c)
}

// drawLine draws a straight segment with Bresenham's algorithm.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetNRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawFrame(img *image.NRGBA) {
	drawRect(img, plotMargin, plotMargin, plotWidth-plotMargin, plotHeight-plotMargin, frameColor)
}
