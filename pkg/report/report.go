// Package report renders analysis results for human consumption: text
// summaries of the per-region metrics and PNG images of the MTF curves and
// the analyzed regions. The measurement pipeline itself performs no output;
// everything here consumes finished results.
package report

import (
	"fmt"
	"io"
	"strings"

	"slantededge/pkg/mtf"
)

// Write prints a per-region summary of the results to w, in the order the
// regions were analyzed.
func Write(w io.Writer, results []*mtf.RegionResult) {
	for _, res := range results {
		fmt.Fprintln(w, strings.Repeat("-", 60))
		if !res.Success {
			fmt.Fprintf(w, "MTF calculation for %s region failed.\n", res.Corner)
			if res.Err != nil {
				fmt.Fprintf(w, "  %v\n", res.Err)
			}
			continue
		}
		fmt.Fprintf(w, "Results for %s region:\n", res.Corner)
		fmt.Fprintf(w, "  Edge angle: %.1f degrees\n", res.Edge.AngleDegrees)
		fmt.Fprintf(w, "  Edge height: %d pixels\n", res.EdgeScanlines)
		fmt.Fprintf(w, "  MTF50: %.3f cycles/pixel = %.1f pixels/cycle\n", res.MTF50, 1.0/res.MTF50)
		fmt.Fprintf(w, "  MTF20: %.3f cycles/pixel = %.1f pixels/cycle\n", res.MTF20, 1.0/res.MTF20)
		if res.NonMonotonicFrac > 0 {
			fmt.Fprintf(w, "  Non-monotonic MTF samples: %.1f%%\n", res.NonMonotonicFrac*100)
		}
	}
}
