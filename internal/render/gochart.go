package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/najamsyed/ESPA/internal/plot"
)

// GoChartRenderer renders chart descriptions to PNG files with go-chart.
type GoChartRenderer struct{}

// NewGoChartRenderer creates a PNG renderer.
func NewGoChartRenderer() *GoChartRenderer {
	return &GoChartRenderer{}
}

// Render draws the chart and writes <outDir>/<OutputName>.png. The output
// file is the only resource held and it is closed before returning.
//
// go-chart draws series dots as circles only; the configured marker shape
// applies to the HTML backend, while MarkerSize controls the dot radius here.
func (r *GoChartRenderer) Render(desc *plot.Description, outDir string) (string, error) {
	background := colorFromHex(desc.Background)

	var series []chart.Series

	// Min-to-max span per date: a two-point vertical series. Unnamed so the
	// legend only carries the sensor trend lines.
	for _, seg := range desc.Segments {
		series = append(series, chart.TimeSeries{
			Style: chart.Style{
				StrokeColor: colorFromHex(seg.Color),
				StrokeWidth: 1,
			},
			XValues: []time.Time{seg.Date, seg.Date},
			YValues: []float64{seg.Low, seg.High},
		})
	}

	for _, line := range desc.Lines {
		color := colorFromHex(line.Color)
		series = append(series, chart.TimeSeries{
			Name: line.Name,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 1,
				DotColor:    color,
				DotWidth:    desc.MarkerSize,
			},
			XValues: line.Dates,
			YValues: line.Values,
		})
	}

	graph := chart.Chart{
		Title: desc.Title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			FillColor: background,
			Padding: chart.Box{
				Top:    50,
				Left:   25,
				Right:  25,
				Bottom: 25,
			},
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		Width:  1100,
		Height: 850,
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: chart.TimeDateValueFormatter,
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(desc.XMin),
				Max: chart.TimeToFloat64(desc.XMax),
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: desc.YMin,
				Max: desc.YMax,
			},
			Ticks: yAxisTicks(desc.YTicks),
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{FillColor: background}),
	}

	outPath := filepath.Join(outDir, desc.OutputName+".png")
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", desc.Title, err)
	}
	return outPath, nil
}

// yAxisTicks converts tick values to labeled go-chart ticks.
func yAxisTicks(values []float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

// colorFromHex parses a "#rrggbb" color; a bad value falls back to black so
// a typoed override degrades visibly instead of failing the run.
func colorFromHex(s string) drawing.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(s)
}
