// Package stats reads per-scene statistic summary files. Each file holds
// one scene's band statistics as key=value lines, for example:
//
//	MINIMUM=120.0
//	MAXIMUM=8800.0
//	MEAN=3520.25
//	STDDEV=801.5
//
// Keys are matched case-insensitively; the whole line is lowercased before
// splitting, mirroring how the statistics generator writes them.
package stats

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Required keys every stat record must carry.
const (
	KeyMinimum = "minimum"
	KeyMaximum = "maximum"
	KeyMean    = "mean"
	KeyStdDev  = "stddev"
)

// RequiredKeys lists the fields a record must contain, in output column order.
var RequiredKeys = []string{KeyMinimum, KeyMaximum, KeyMean, KeyStdDev}

// Record is the lowercased key/value content of one stat file. Lines without
// a '=' contribute no key, so a malformed file surfaces as a missing required
// key at lookup time rather than a parse error.
type Record map[string]string

// ReadFile parses one stat file into a Record.
func ReadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stat file: %w", err)
	}
	defer f.Close()

	rec := Record{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		rec[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stat file %s: %w", path, err)
	}
	return rec, nil
}

// Get returns the value for a required key.
func (r Record) Get(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("stat record is missing required key %q", key)
	}
	return v, nil
}

// Float returns the value for a required key parsed as a float64.
func (r Record) Float(key string) (float64, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("stat key %q is not numeric: %w", key, err)
	}
	return f, nil
}

// Values returns the four required statistics in column order.
func (r Record) Values() (minimum, maximum, mean, stddev float64, err error) {
	if minimum, err = r.Float(KeyMinimum); err != nil {
		return
	}
	if maximum, err = r.Float(KeyMaximum); err != nil {
		return
	}
	if mean, err = r.Float(KeyMean); err != nil {
		return
	}
	stddev, err = r.Float(KeyStdDev)
	return
}
