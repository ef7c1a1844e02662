package plot

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/najamsyed/ESPA/internal/bandtype"
	"github.com/najamsyed/ESPA/internal/scene"
	"github.com/najamsyed/ESPA/internal/stats"
)

// point is one scene's statistics dated for plotting.
type point struct {
	date    time.Time
	minimum float64
	maximum float64
	mean    float64
	stddev  float64
}

// Build turns the stat records of one band-type group into a chart
// description for the given subject. Records are keyed by stat file path;
// each file's scene date and sensor are resolved from its name. The scaling
// and display ranges come from the band-type range registry.
func Build(groupLabel string, subject Subject, bandTypeLabel string, records map[string]stats.Record, cfg Config) (*Description, error) {
	return build(groupLabel, subject.titleWords(), subject.plotKind(), bandTypeLabel, records, cfg)
}

func build(groupLabel string, subjectWords []string, kind plotKind, bandTypeLabel string, records map[string]stats.Record, cfg Config) (*Description, error) {
	if kind != plotRange && kind != plotValue {
		return nil, fmt.Errorf("plot kind %q must be one of (%q, %q)", kind, plotRange, plotValue)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no stat records to plot for %q", groupLabel)
	}

	spec, err := bandtype.RangesFor(bandTypeLabel)
	if err != nil {
		return nil, err
	}

	// Range charts always trend the mean alongside the min/max segments.
	lowerSubject := "mean"
	if kind == plotValue {
		lowerSubject = strings.ToLower(subjectWords[0])
	}

	// Group the records by sensor while tracking the observed date extent.
	bySensor := map[scene.Sensor][]point{}
	var dateMin, dateMax time.Time
	for path, rec := range records {
		id, ok, err := scene.Resolve(filepath.Base(path))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unrecognized scene filename %q", filepath.Base(path))
		}

		minimum, maximum, mean, stddev, err := rec.Values()
		if err != nil {
			return nil, fmt.Errorf("stat file %s: %w", path, err)
		}

		date := id.Date()
		bySensor[id.Sensor] = append(bySensor[id.Sensor], point{date, minimum, maximum, mean, stddev})
		if dateMin.IsZero() || date.Before(dateMin) {
			dateMin = date
		}
		if dateMax.IsZero() || date.After(dateMax) {
			dateMax = date
		}
	}

	sensors := make([]scene.Sensor, 0, len(bySensor))
	for sensor := range bySensor {
		sensors = append(sensors, sensor)
	}
	sort.Slice(sensors, func(i, j int) bool { return sensors[i] < sensors[j] })

	title := strings.Join(append([]string{groupLabel, "-"}, subjectWords...), " ")
	desc := &Description{
		Title:       title,
		OutputName:  outputName(title),
		BandType:    bandTypeLabel,
		XMin:        dateMin,
		XMax:        dateMax,
		YMin:        spec.DisplayMin - 0.025,
		YMax:        spec.DisplayMax + 0.025,
		YTicks:      yTicks(spec),
		Background:  cfg.Background,
		MarkerSize:  cfg.MarkerSize,
		MarkerShape: cfg.MarkerShape,
	}

	for _, sensor := range sensors {
		color, ok := cfg.SensorColors[sensor]
		if !ok {
			return nil, fmt.Errorf("no color configured for sensor %s", sensor)
		}

		points := bySensor[sensor]
		// Date leads the composite sort key so the series comes out in
		// chronological order.
		sort.Slice(points, func(i, j int) bool {
			if !points[i].date.Equal(points[j].date) {
				return points[i].date.Before(points[j].date)
			}
			return points[i].minimum < points[j].minimum
		})

		dates := make([]time.Time, len(points))
		minimums := make([]float64, len(points))
		maximums := make([]float64, len(points))
		means := make([]float64, len(points))
		stddevs := make([]float64, len(points))
		for i, p := range points {
			dates[i] = p.date
			minimums[i] = p.minimum
			maximums[i] = p.maximum
			means[i] = p.mean
			stddevs[i] = p.stddev
		}

		minimums = ScaleSlice(minimums, spec.DataMin, spec.DataMax, spec.ScaleMin, spec.ScaleMax)
		maximums = ScaleSlice(maximums, spec.DataMin, spec.DataMax, spec.ScaleMin, spec.ScaleMax)
		means = ScaleSlice(means, spec.DataMin, spec.DataMax, spec.ScaleMin, spec.ScaleMax)
		stddevs = ScaleSlice(stddevs, spec.DataMin, spec.DataMax, spec.ScaleMin, spec.ScaleMax)

		if kind == plotRange {
			for i := range dates {
				desc.Segments = append(desc.Segments, Segment{
					Sensor: string(sensor),
					Date:   dates[i],
					Low:    minimums[i],
					High:   maximums[i],
					Color:  color,
				})
			}
		}

		var values []float64
		switch lowerSubject {
		case "minimum":
			values = minimums
		case "maximum":
			values = maximums
		case "mean":
			values = means
		case "stddev":
			values = stddevs
		default:
			return nil, fmt.Errorf("unknown plot subject %q", lowerSubject)
		}

		desc.Lines = append(desc.Lines, Line{
			Name:   string(sensor),
			Color:  color,
			Dates:  dates,
			Values: values,
		})
		desc.Legend = append(desc.Legend, string(sensor))
	}

	desc.XMin, desc.XMax = padDates(desc.XMin, desc.XMax)
	return desc, nil
}

// padDates widens the observed date extent by 5 days on each end for every
// started 365-day increment it spans, so data points stay clear of the plot
// border. The loop always runs at least once.
func padDates(min, max time.Time) (time.Time, time.Time) {
	days := int(max.Sub(min).Hours() / 24)
	for i := 0; i <= days/365; i++ {
		min = min.AddDate(0, 0, -5)
		max = max.AddDate(0, 0, 5)
	}
	return min, max
}

// yTicks lays ticks across the display range. MaxTicks counts two extra
// slots for the padding above and below the range, so the range itself is
// divided into MaxTicks-2 intervals; that lands every band type on 0.1
// steps.
func yTicks(spec bandtype.RangeSpec) []float64 {
	intervals := spec.MaxTicks - 2
	if intervals < 1 {
		intervals = 1
	}
	step := (spec.DisplayMax - spec.DisplayMin) / float64(intervals)
	ticks := make([]float64, 0, intervals+1)
	for i := 0; i <= intervals; i++ {
		ticks = append(ticks, spec.DisplayMin+float64(i)*step)
	}
	return ticks
}
