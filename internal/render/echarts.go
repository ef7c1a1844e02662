package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/najamsyed/ESPA/internal/plot"
)

// EChartsRenderer renders chart descriptions to interactive HTML pages with
// go-echarts, as an alternative to the static PNG backend.
type EChartsRenderer struct{}

// NewEChartsRenderer creates an HTML renderer.
func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{}
}

// Render writes <outDir>/<OutputName>.html. Range charts draw each per-date
// minimum-to-maximum span as a vertical mark line attached to the sensor's
// trend series.
func (r *EChartsRenderer) Render(desc *plot.Description, outDir string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "1100px",
			Height:          "850px",
			BackgroundColor: desc.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: desc.Title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Date",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: desc.YMin,
			Max: desc.YMax,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
			Top:  "30px",
		}),
	)

	axis := dateAxis(desc)
	line.SetXAxis(axis)

	spans := segmentSpans(desc.Segments)
	for _, l := range desc.Lines {
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: l.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: l.Color}),
			charts.WithLineChartOpts(opts.LineChart{
				Symbol:     markerSymbol(desc.MarkerShape),
				SymbolSize: int(desc.MarkerSize),
			}),
		}
		if items := spans[l.Name]; len(items) > 0 {
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameCoordItemOpts(items...),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					Label:  &opts.Label{Show: false},
				}),
			)
		}
		line.AddSeries(l.Name, alignValues(axis, l.Dates, l.Values), seriesOpts...)
	}

	outPath := filepath.Join(outDir, desc.OutputName+".html")
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", desc.Title, err)
	}
	return outPath, nil
}

// markerSymbol maps the configured marker shape to an ECharts symbol name.
func markerSymbol(shape string) string {
	if shape == "" {
		return "circle"
	}
	return shape
}

// dateAxis builds the sorted union of all dates on the chart, formatted ISO.
func dateAxis(desc *plot.Description) []string {
	seen := map[string]bool{}
	for _, l := range desc.Lines {
		for _, d := range l.Dates {
			seen[d.Format("2006-01-02")] = true
		}
	}
	for _, s := range desc.Segments {
		seen[s.Date.Format("2006-01-02")] = true
	}
	axis := make([]string, 0, len(seen))
	for d := range seen {
		axis = append(axis, d)
	}
	sort.Strings(axis)
	return axis
}

// alignValues places series values on the shared category axis, leaving
// gaps ("-") where a series has no observation for a date.
func alignValues(axis []string, dates []time.Time, values []float64) []opts.LineData {
	byDate := make(map[string]float64, len(dates))
	for i, d := range dates {
		byDate[d.Format("2006-01-02")] = values[i]
	}
	data := make([]opts.LineData, len(axis))
	for i, d := range axis {
		if v, ok := byDate[d]; ok {
			data[i] = opts.LineData{Value: v}
		} else {
			data[i] = opts.LineData{Value: "-"}
		}
	}
	return data
}

// segmentSpans regroups segments into per-sensor vertical mark lines, one
// low-to-high coordinate pair per date.
func segmentSpans(segments []plot.Segment) map[string][]opts.MarkLineNameCoordItem {
	spans := map[string][]opts.MarkLineNameCoordItem{}
	for _, s := range segments {
		date := s.Date.Format("2006-01-02")
		spans[s.Sensor] = append(spans[s.Sensor], opts.MarkLineNameCoordItem{
			Coordinate0: []interface{}{date, s.Low},
			Coordinate1: []interface{}{date, s.High},
		})
	}
	return spans
}
