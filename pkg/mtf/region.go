package mtf

import "slantededge/pkg/luminance"

// extractRegion crops the region out of the source image after validating
// its bounds and minimum size. The crop is a copy; the source image is never
// written to.
func extractRegion(img *luminance.Image, r Region, minSize int) (*luminance.Image, error) {
	if r.MinRow < 0 || r.MinCol < 0 ||
		r.MaxRow > img.Height || r.MaxCol > img.Width ||
		r.MinRow > r.MaxRow || r.MinCol > r.MaxCol {
		return nil, &BoundsError{Region: r, ImageHeight: img.Height, ImageWidth: img.Width}
	}
	if r.Height() < minSize || r.Width() < minSize {
		return nil, &RegionTooSmallError{Region: r, MinSize: minSize}
	}

	out := &luminance.Image{
		Pix:    make([]float64, r.Height()*r.Width()),
		Height: r.Height(),
		Width:  r.Width(),
	}
	for row := 0; row < out.Height; row++ {
		src := (r.MinRow+row)*img.Width + r.MinCol
		copy(out.Pix[row*out.Width:(row+1)*out.Width], img.Pix[src:src+out.Width])
	}
	return out, nil
}
