package plot

import "fmt"

// Subject selects which statistic a chart tracks. Range is the composite
// min/max/mean chart; the others plot a single statistic.
type Subject int

const (
	SubjectRange Subject = iota
	SubjectMinimum
	SubjectMaximum
	SubjectMean
	SubjectStdDev
)

// Subjects is the fixed set of charts generated for every qualifying band
// type, in generation order.
var Subjects = []Subject{
	SubjectRange,
	SubjectMinimum,
	SubjectMaximum,
	SubjectMean,
	SubjectStdDev,
}

func (s Subject) String() string {
	switch s {
	case SubjectRange:
		return "Range"
	case SubjectMinimum:
		return "Minimum"
	case SubjectMaximum:
		return "Maximum"
	case SubjectMean:
		return "Mean"
	case SubjectStdDev:
		return "StdDev"
	default:
		return fmt.Sprintf("Subject(%d)", int(s))
	}
}

// titleWords returns the subject names appended to the plot title.
func (s Subject) titleWords() []string {
	if s == SubjectRange {
		return []string{"Minimum", "Maximum", "Mean"}
	}
	return []string{s.String()}
}

// plotKind reports which rendering policy the subject uses.
func (s Subject) plotKind() plotKind {
	if s == SubjectRange {
		return plotRange
	}
	return plotValue
}

// plotKind is the rendering policy tag: Range charts draw a min-to-max
// vertical segment per date plus the mean trend, Value charts draw a single
// marker+line series per sensor.
type plotKind string

const (
	plotRange plotKind = "Range"
	plotValue plotKind = "Value"
)
