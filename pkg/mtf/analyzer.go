// Package mtf measures the spatial resolution of an imaging system from a
// photograph of a high-contrast slanted edge target. Given a normalized
// luminance image and rectangular regions believed to contain a slanted
// edge, it locates each edge, builds a straightened edge profile, derives
// the edge and line spread functions, and computes the frequency-domain MTF
// curve together with the MTF50 and MTF20 sharpness metrics.
package mtf

import (
	"slantededge/pkg/luminance"
)

// ProgressFunc is an optional hook invoked after each pipeline stage of a
// region with the stage name and the result populated so far. It replaces
// in-pipeline display logic; the pipeline never blocks on it.
type ProgressFunc func(stage string, res *RegionResult)

// Params holds the analysis configuration for one run.
type Params struct {
	// Image is the normalized luminance image; it is only read
	Image *luminance.Image

	// Regions are the areas to analyze. Regions with empty bounds are
	// skipped entirely and produce no result.
	Regions []Region

	// EdgeWidth is the width in pixels of the straightened edge window.
	// It doubles as the minimum region size and minimum edge span.
	// Zero selects the default of 99.
	EdgeWidth int

	// MinAngle and MaxAngle bound the accepted edge angle in degrees.
	// Both zero selects the defaults of 78 and 88.
	MinAngle float64
	MaxAngle float64

	// Progress, when non-nil, is called after each completed stage
	Progress ProgressFunc
}

// Analyzer runs the edge-to-MTF measurement pipeline over the configured
// regions. Each region is processed independently through the stages:
//  1. Region extraction and size validation
//  2. Edge location (binarize, filter, edge pixels, line fit)
//  3. Edge straightening into a fixed-width profile
//  4. Edge and line spread function computation
//  5. MTF curve computation and MTF50/MTF20 interpolation
//
// A failed stage marks only that region unsuccessful, records the failure
// on its result, and the run continues with the next region.
type Analyzer struct {
	// params stores the analysis configuration
	params *Params

	// results collects one entry per analyzed (non-empty) region
	results []*RegionResult
}

// NewAnalyzer creates an analyzer for the provided parameters, filling in
// defaults for unset thresholds.
func NewAnalyzer(params *Params) *Analyzer {
	if params.EdgeWidth <= 0 {
		params.EdgeWidth = EdgeWidth
	}
	if params.MinAngle == 0 && params.MaxAngle == 0 {
		params.MinAngle = DefaultMinAngle
		params.MaxAngle = DefaultMaxAngle
	}
	return &Analyzer{params: params}
}

// Analyze processes every non-empty region and returns the per-region
// results together with the overall verdict, which is true only if every
// analyzed region succeeded. Results are deterministic: identical image,
// regions and thresholds yield identical output.
func (a *Analyzer) Analyze() ([]*RegionResult, bool) {
	a.results = a.results[:0]
	ok := true
	for _, region := range a.params.Regions {
		if region.Empty() {
			continue
		}
		res := a.analyzeRegion(region)
		a.results = append(a.results, res)
		if !res.Success {
			ok = false
		}
	}
	return a.results, ok
}

// Results returns the results of the last Analyze call.
func (a *Analyzer) Results() []*RegionResult {
	return a.results
}

func (a *Analyzer) analyzeRegion(region Region) *RegionResult {
	res := &RegionResult{Corner: region.Corner, Region: region}

	crop, err := extractRegion(a.params.Image, region, a.params.EdgeWidth)
	if err != nil {
		res.Err = err
		return res
	}
	a.progress("extract", res)

	edge, err := locateEdge(crop, region.Corner, a.params.EdgeWidth, a.params.MinAngle, a.params.MaxAngle)
	if err != nil {
		res.Err = err
		return res
	}
	res.Edge = edge
	a.progress("edge", res)

	profile, err := straighten(crop, edge, region.Corner, a.params.EdgeWidth, a.params.EdgeWidth)
	if err != nil {
		res.Err = err
		return res
	}
	res.Profile = profile
	res.EdgeScanlines = profile.Rows
	a.progress("straighten", res)

	res.ESF = edgeSpreadFunction(profile)
	res.LSF = gradient(res.ESF)
	res.SmoothedLSF = wiener(res.LSF, wienerWindow)
	a.progress("spread", res)

	res.MTF = transferFunction(res.LSF)
	res.SmoothedMTF = transferFunction(res.SmoothedLSF)

	freqs := frequencyAxis(len(res.SmoothedMTF))
	res.MTF50 = crossingFrequency(res.SmoothedMTF, freqs, 0.5)
	res.MTF20 = crossingFrequency(res.SmoothedMTF, freqs, 0.2)
	res.NonMonotonicFrac = nonMonotonicFraction(res.SmoothedMTF)
	res.Success = true
	a.progress("mtf", res)

	return res
}

func (a *Analyzer) progress(stage string, res *RegionResult) {
	if a.params.Progress != nil {
		a.params.Progress(stage, res)
	}
}
