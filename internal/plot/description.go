package plot

import (
	"strings"
	"time"

	"github.com/najamsyed/ESPA/internal/scene"
)

// Config is the immutable display configuration for one run: per-sensor
// colors, chart background and marker styling. It is constructed once at run
// start and passed explicitly wherever charts are built.
type Config struct {
	SensorColors map[scene.Sensor]string
	Background   string
	MarkerSize   float64
	MarkerShape  string
}

// DefaultConfig returns the stock palette: Terra brown, Aqua cyan, the
// Landsat sensors in red/blue/green, on a light gray background with
// 3-point (triangle) markers.
func DefaultConfig() Config {
	return Config{
		SensorColors: map[scene.Sensor]string{
			scene.Terra: "#664400",
			scene.Aqua:  "#00cccc",
			scene.LT4:   "#cc3333",
			scene.LT5:   "#0066cc",
			scene.LE7:   "#00cc33",
		},
		Background:  "#f3f3f3",
		MarkerSize:  5,
		MarkerShape: "triangle",
	}
}

// Line is one marker+line series on shared axes.
type Line struct {
	Name   string
	Color  string
	Dates  []time.Time
	Values []float64
}

// Segment is one vertical min-to-max span drawn at a single date.
type Segment struct {
	Sensor string
	Date   time.Time
	Low    float64
	High   float64
	Color  string
}

// Description is a fully specified chart, independent of any rendering
// backend. The plot builder produces it; a ChartRenderer consumes it.
type Description struct {
	Title      string
	OutputName string
	BandType   string

	Lines    []Line
	Segments []Segment
	Legend   []string

	XMin time.Time
	XMax time.Time
	YMin float64
	YMax float64
	// YTicks are the tick values laid across the display range; their count
	// respects the registry's tick bound.
	YTicks []float64

	Background  string
	MarkerSize  float64
	MarkerShape string
}

// outputName derives the artifact base name from a plot title: the "- "
// separator is stripped, the rest lowercased with spaces replaced by
// underscores, and "_plot" appended.
func outputName(title string) string {
	name := strings.ReplaceAll(title, "- ", "")
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name + "_plot"
}
