// Package render turns chart descriptions into image artifacts. Two
// backends are provided: a go-chart PNG renderer and a go-echarts renderer
// producing self-contained interactive HTML pages.
package render

import (
	"fmt"

	"github.com/najamsyed/ESPA/internal/plot"
)

// ChartRenderer renders one chart description into outDir and returns the
// path of the artifact written. Implementations must release any per-chart
// resources before returning, so a long batch never accumulates them.
type ChartRenderer interface {
	Render(desc *plot.Description, outDir string) (string, error)
}

// New selects a renderer by format name.
func New(format string) (ChartRenderer, error) {
	switch format {
	case "png":
		return NewGoChartRenderer(), nil
	case "html":
		return NewEChartsRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported chart format: %s", format)
	}
}
