package mtf

import (
	"math"

	"slantededge/pkg/luminance"
)

// straighten resamples every scanline of the region into a fixed-width
// window centered on the fitted edge, producing a dense rectangular profile
// of the edge transition. Scanlines whose window would fall outside the
// region are discarded; if too few remain the region fails.
func straighten(region *luminance.Image, model EdgeModel, corner Corner, edgeWidth, minScanlines int) (*Profile, error) {
	half := edgeWidth / 2

	// Ideal edge column per scanline, and the window start for the rows
	// whose window fits entirely inside the region.
	starts := make([]int, 0, region.Height)
	srcRows := make([]int, 0, region.Height)
	for row := 0; row < region.Height; row++ {
		center := int(math.Round(model.ColumnAt(row)))
		first := center - half
		last := first + edgeWidth - 1
		if first < 0 || last >= region.Width {
			continue
		}
		starts = append(starts, first)
		srcRows = append(srcRows, row)
	}

	if len(srcRows) < minScanlines {
		return nil, &InsufficientValidScanlinesError{
			Corner: corner, Scanlines: len(srcRows), Minimum: minScanlines,
		}
	}

	profile := &Profile{
		Pix:   make([]float64, len(srcRows)*edgeWidth),
		Rows:  len(srcRows),
		Width: edgeWidth,
	}
	for i, row := range srcRows {
		src := row*region.Width + starts[i]
		copy(profile.Pix[i*edgeWidth:(i+1)*edgeWidth], region.Pix[src:src+edgeWidth])
	}
	return profile, nil
}
