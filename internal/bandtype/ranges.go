// Package bandtype holds the static configuration that drives a plotting
// run: the numeric scaling ranges for each band-type category and the catalog
// of filename patterns that group scenes by band type and sensor.
package bandtype

import (
	"fmt"
	"sort"
	"strings"
)

// RangeSpec defines how raw statistics for one band-type category are scaled
// and displayed.
//
//	Data:    the value range present in the raw statistics.
//	Scale:   the Data range is rescaled onto this range before plotting.
//	Display: the Y-axis range shown on the plot.
//	MaxTicks bounds the number of Y-axis tick intervals; it includes two
//	extra slots for the padding added above and below the display range.
type RangeSpec struct {
	DataMin    float64
	DataMax    float64
	ScaleMin   float64
	ScaleMax   float64
	DisplayMin float64
	DisplayMax float64
	MaxTicks   int
}

var (
	reflectanceSpec = RangeSpec{
		DataMin: 0, DataMax: 10000,
		ScaleMin: 0, ScaleMax: 1,
		DisplayMin: 0, DisplayMax: 1,
		MaxTicks: 12,
	}
	indexSpec = RangeSpec{
		DataMin: -1000, DataMax: 10000,
		ScaleMin: -0.1, ScaleMax: 1,
		DisplayMin: -0.1, DisplayMax: 1,
		MaxTicks: 13,
	}
	lstSpec = RangeSpec{
		DataMin: 7500, DataMax: 65535,
		ScaleMin: 0, ScaleMax: 1,
		DisplayMin: 0, DisplayMax: 1,
		MaxTicks: 12,
	}
	emisSpec = RangeSpec{
		DataMin: 1, DataMax: 255,
		ScaleMin: 0, ScaleMax: 1,
		DisplayMin: 0, DisplayMax: 1,
		MaxTicks: 12,
	}
)

// rangeEntry pairs a band-type label prefix with its spec.
type rangeEntry struct {
	prefix string
	spec   RangeSpec
}

// rangeEntries is ordered longest prefix first at init so that a label such
// as "NBR2" can never resolve to the "NBR" entry.
var rangeEntries = func() []rangeEntry {
	entries := []rangeEntry{
		{"SR", reflectanceSpec},
		{"TOA", reflectanceSpec},
		{"NDVI", indexSpec},
		{"EVI", indexSpec},
		{"SAVI", indexSpec},
		{"MSAVI", indexSpec},
		{"NBR", indexSpec},
		{"NBR2", indexSpec},
		{"NDMI", indexSpec},
		{"LST", lstSpec},
		{"Emis", emisSpec},
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].prefix) > len(entries[j].prefix)
	})
	return entries
}()

// RangesFor resolves the range spec for a band-type label by prefix match,
// most specific entry first. A label with no matching entry is a catalog /
// registry mismatch and reported as an error.
func RangesFor(label string) (RangeSpec, error) {
	for _, e := range rangeEntries {
		if strings.HasPrefix(label, e.prefix) {
			return e.spec, nil
		}
	}
	return RangeSpec{}, fmt.Errorf("no data range registered for band type %q", label)
}
