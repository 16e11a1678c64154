package mtf

import "fmt"

// The pipeline fails a region with one of the error types below. All of them
// reflect geometric or statistical preconditions that only a different region
// selection or different thresholds can fix, so none are retried.

// BoundsError reports a region whose bounds are negative or exceed the image
// extent. It is raised before any pixel of the region is processed.
type BoundsError struct {
	Region      Region
	ImageHeight int
	ImageWidth  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: selected region [%d:%d, %d:%d] is exceeding image boundaries (%d x %d)",
		e.Region.Corner, e.Region.MinRow, e.Region.MaxRow, e.Region.MinCol, e.Region.MaxCol,
		e.ImageWidth, e.ImageHeight)
}

// RegionTooSmallError reports a region below the minimum analyzable size.
type RegionTooSmallError struct {
	Region  Region
	MinSize int
}

func (e *RegionTooSmallError) Error() string {
	return fmt.Sprintf("%s: selected region must be at least %d x %d pixels; was %d x %d",
		e.Region.Corner, e.MinSize, e.MinSize, e.Region.Width(), e.Region.Height())
}

// InsufficientEdgeSpanError reports a detected edge that intersects too few
// distinct scanlines to fit a reliable line through.
type InsufficientEdgeSpanError struct {
	Corner    Corner
	Scanlines int
	Minimum   int
}

func (e *InsufficientEdgeSpanError) Error() string {
	return fmt.Sprintf("%s: edge must have at least %d scanlines; had %d",
		e.Corner, e.Minimum, e.Scanlines)
}

// EdgeAngleOutOfRangeError reports a fitted edge whose angle falls outside
// the configured acceptance interval.
type EdgeAngleOutOfRangeError struct {
	Corner   Corner
	Angle    float64
	MinAngle float64
	MaxAngle float64
}

func (e *EdgeAngleOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: edge angle must be [%g, %g] degrees; was %.1f",
		e.Corner, e.MinAngle, e.MaxAngle, e.Angle)
}

// InsufficientValidScanlinesError reports that too few scanlines survived
// edge straightening, typically because the edge runs too close to the
// region border for the window to fit.
type InsufficientValidScanlinesError struct {
	Corner    Corner
	Scanlines int
	Minimum   int
}

func (e *InsufficientValidScanlinesError) Error() string {
	return fmt.Sprintf("%s: edge must have at least %d valid scanlines; had %d",
		e.Corner, e.Minimum, e.Scanlines)
}
