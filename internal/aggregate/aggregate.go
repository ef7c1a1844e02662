// Package aggregate merges the per-scene stat files of one sensor group into
// a single dated CSV table.
package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/najamsyed/ESPA/internal/scene"
	"github.com/najamsyed/ESPA/internal/stats"
)

// Header is the merged table's first row.
const Header = "DATE,MINIMUM,MAXIMUM,MEAN,STDDEV"

// OutputName derives the CSV filename from a group label: lowercased, spaces
// replaced with underscores, "_stats.csv" appended.
func OutputName(label string) string {
	name := strings.ToLower(strings.ReplaceAll(label, " ", "_"))
	return name + "_stats.csv"
}

// WriteSensorStats combines the stat files of one labeled sensor group into
// a merged CSV in outDir, one row per scene sorted ascending by date, and
// returns the path written. Values are carried through as read from the stat
// files; only the date column is derived.
func WriteSensorStats(label string, statFiles []string, outDir string) (string, error) {
	rows := make([]string, 0, len(statFiles))
	for _, statFile := range statFiles {
		rec, err := stats.ReadFile(statFile)
		if err != nil {
			return "", err
		}

		id, ok, err := scene.Resolve(filepath.Base(statFile))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("unrecognized scene filename %q", filepath.Base(statFile))
		}

		fields := make([]string, 0, 5)
		fields = append(fields, id.ISODate())
		for _, key := range stats.RequiredKeys {
			value, err := rec.Get(key)
			if err != nil {
				return "", fmt.Errorf("stat file %s: %w", statFile, err)
			}
			fields = append(fields, value)
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	// ISO dates sort chronologically, so a plain lexicographic sort orders
	// the table by date.
	sort.Strings(rows)

	var buf strings.Builder
	buf.WriteString(Header)
	for _, row := range rows {
		buf.WriteString("\n")
		buf.WriteString(row)
	}

	outPath := filepath.Join(outDir, OutputName(label))
	if err := os.WriteFile(outPath, []byte(buf.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write merged stats %s: %w", outPath, err)
	}
	return outPath, nil
}
