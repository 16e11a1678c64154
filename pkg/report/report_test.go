package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slantededge/pkg/luminance"
	"slantededge/pkg/mtf"
)

func sampleResults() []*mtf.RegionResult {
	curve := make([]float64, 512)
	for i := range curve {
		curve[i] = 1 - float64(i)/511.0
	}
	return []*mtf.RegionResult{
		{
			Corner:        mtf.Center,
			Region:        mtf.Region{Corner: mtf.Center, MinRow: 10, MaxRow: 150, MinCol: 10, MaxCol: 150},
			Edge:          mtf.EdgeModel{Slope: 0.12, Intercept: 60, AngleDegrees: 83.2},
			EdgeScanlines: 140,
			MTF:           curve,
			SmoothedMTF:   curve,
			MTF50:         0.31,
			MTF20:         0.52,
			Success:       true,
		},
		{
			Corner: mtf.TopLeft,
			Region: mtf.Region{Corner: mtf.TopLeft, MinRow: 0, MaxRow: 120, MinCol: 0, MaxCol: 120},
			Err:    errors.New("top-left: edge angle must be [78, 88] degrees; was 45.0"),
		},
	}
}

// TestWriteSummary verifies the text report for successful and failed
// regions.
func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sampleResults())
	out := buf.String()

	for _, want := range []string{
		"Results for center region:",
		"Edge angle: 83.2 degrees",
		"Edge height: 140 pixels",
		"MTF50: 0.310 cycles/pixel",
		"MTF20: 0.520 cycles/pixel",
		"MTF calculation for top-left region failed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q in output:\n%s", want, out)
		}
	}
}

// TestMTFCurvesCanvas verifies the plot dimensions and that the curve was
// drawn onto the white canvas.
func TestMTFCurvesCanvas(t *testing.T) {
	img := MTFCurves(sampleResults())

	bounds := img.Bounds()
	if bounds.Dx() != plotWidth || bounds.Dy() != plotHeight {
		t.Fatalf("Expected %dx%d canvas, got %dx%d", plotWidth, plotHeight, bounds.Dx(), bounds.Dy())
	}

	colored := 0
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := img.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				colored++
			}
		}
	}
	if colored == 0 {
		t.Error("Expected colored curve pixels on the plot")
	}
}

// TestSaveAll verifies the PNG artifacts land in the output directory.
func TestSaveAll(t *testing.T) {
	src := &luminance.Image{Pix: make([]float64, 200*200), Height: 200, Width: 200}
	dir := t.TempDir()

	if err := SaveAll(dir, "chart.png", src, sampleResults()); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	for _, name := range []string{"MTF-chart.png-MTF.png", "MTF-chart.png-ROI.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected artifact %s: %v", name, err)
		}
	}
}
