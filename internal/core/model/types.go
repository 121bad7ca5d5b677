package model

import "time"

// Sample is one raw logged ping: a timestamp plus the tags active at that
// moment. A line may carry zero tags, in which case the sample contributes
// nothing downstream.
type Sample struct {
	Time time.Time
	Tags []string
}

// Event is one derived contribution after tag filtering, multitag splitting
// and temporal smoothing. Several events may derive from a single sample.
type Event struct {
	Time  time.Time
	Tag   string
	Hours float64
}

// Point is one (timestamp, hours) observation in a tag's series.
type Point struct {
	Time  time.Time
	Hours float64
}

// MultitagMode selects how a ping with multiple tags is converted into
// per-tag durations.
type MultitagMode string

const (
	// MultitagFirst keeps only the first tag of a ping.
	MultitagFirst MultitagMode = "first"
	// MultitagSplit divides the sampling interval equally among tags.
	MultitagSplit MultitagMode = "split"
	// MultitagDouble assigns the full interval to every tag.
	MultitagDouble MultitagMode = "double"
)

// ChartKind tells the presentation layer how an aggregated result should be
// rendered.
type ChartKind string

const (
	KindPie        ChartKind = "pie"
	KindStackedBar ChartKind = "stacked-bar"
	KindLine       ChartKind = "line"
	KindSubplots   ChartKind = "subplots"
)
