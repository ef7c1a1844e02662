// Package scene derives a scene's acquisition date and sensor identity from
// its filename. Every supported sensor encodes the year and day-of-year in a
// product-specific position, so identification is an ordered list of naming
// conventions evaluated first match wins.
package scene

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sensor identifies the instrument/platform that produced a scene.
type Sensor string

const (
	Terra   Sensor = "Terra"
	Aqua    Sensor = "Aqua"
	LT4     Sensor = "LT4"
	LT5     Sensor = "LT5"
	LE7     Sensor = "LE7"
	Unknown Sensor = "Unknown"
)

// Identity is the date and sensor decoded from a scene filename.
type Identity struct {
	Year       int
	Month      int
	DayOfMonth int
	Sensor     Sensor
}

// Date returns the identity as a calendar date in UTC.
func (id Identity) Date() time.Time {
	return time.Date(id.Year, time.Month(id.Month), id.DayOfMonth, 0, 0, 0, 0, time.UTC)
}

// ISODate formats the identity as YYYY-MM-DD.
func (id Identity) ISODate() string {
	return fmt.Sprintf("%04d-%02d-%02d", id.Year, id.Month, id.DayOfMonth)
}

// convention pairs a filename matcher with a year/day-of-year extractor.
type convention struct {
	sensor  Sensor
	matches func(filename string) bool
	extract func(filename string) (year, dayOfYear int, err error)
}

// MODIS product IDs look like MOD09A1.A2016033.h09v05....; the second
// dot-separated element carries 'A', a 4-digit year and a 3-digit day-of-year.
func modisExtract(filename string) (int, int, error) {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 || len(parts[1]) < 8 {
		return 0, 0, fmt.Errorf("malformed MODIS scene name %q", filename)
	}
	date := parts[1]
	year, err := strconv.Atoi(date[1:5])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed MODIS year in %q: %w", filename, err)
	}
	doy, err := strconv.Atoi(date[5:8])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed MODIS day-of-year in %q: %w", filename, err)
	}
	return year, doy, nil
}

// Landsat scene IDs like LT50290302016033PAC01 carry a 4-digit year at offset
// 9 followed by a 3-digit day-of-year.
func landsatExtract(filename string) (int, int, error) {
	if len(filename) < 16 {
		return 0, 0, fmt.Errorf("malformed Landsat scene name %q", filename)
	}
	year, err := strconv.Atoi(filename[9:13])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed Landsat year in %q: %w", filename, err)
	}
	doy, err := strconv.Atoi(filename[13:16])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed Landsat day-of-year in %q: %w", filename, err)
	}
	return year, doy, nil
}

// conventions is evaluated in declared order; MODIS prefixes are checked
// before the Landsat substring rules.
var conventions = []convention{
	{
		sensor:  Terra,
		matches: func(f string) bool { return strings.HasPrefix(f, "MOD") },
		extract: modisExtract,
	},
	{
		sensor:  Aqua,
		matches: func(f string) bool { return strings.HasPrefix(f, "MYD") },
		extract: modisExtract,
	},
	{
		sensor:  LT4,
		matches: func(f string) bool { return strings.Contains(f, "LT4") },
		extract: landsatExtract,
	},
	{
		sensor:  LT5,
		matches: func(f string) bool { return strings.Contains(f, "LT5") },
		extract: landsatExtract,
	},
	{
		sensor:  LE7,
		matches: func(f string) bool { return strings.Contains(f, "LE7") },
		extract: landsatExtract,
	},
}

// Resolve decodes a scene filename into an Identity. The second return value
// reports whether any naming convention matched; when it is false the zero
// Identity (sensor Unknown) is returned and callers are expected to reject
// the file.
func Resolve(filename string) (Identity, bool, error) {
	for _, c := range conventions {
		if !c.matches(filename) {
			continue
		}
		year, doy, err := c.extract(filename)
		if err != nil {
			return Identity{Sensor: Unknown}, false, err
		}
		month, day, err := MonthDay(year, doy)
		if err != nil {
			return Identity{Sensor: Unknown}, false, fmt.Errorf("scene %q: %w", filename, err)
		}
		return Identity{Year: year, Month: month, DayOfMonth: day, Sensor: c.sensor}, true, nil
	}
	return Identity{Sensor: Unknown}, false, nil
}

// MonthDay converts a day-of-year into (month, day-of-month) using Gregorian
// leap-year rules.
func MonthDay(year, dayOfYear int) (int, int, error) {
	if dayOfYear < 1 || dayOfYear > 366 {
		return 0, 0, fmt.Errorf("day-of-year %d out of range", dayOfYear)
	}
	remaining := dayOfYear
	for month := 1; month <= 12; month++ {
		days := daysInMonth(year, month)
		if remaining <= days {
			return month, remaining, nil
		}
		remaining -= days
	}
	return 0, 0, fmt.Errorf("day-of-year %d out of range for year %d", dayOfYear, year)
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
