package config

import (
	"fmt"
	"time"

	"tagvis/internal/core/model"
	"tagvis/internal/util"
)

// View names one of the aggregation views the tool can compute.
type View string

const (
	ViewPie       View = "pie"
	ViewDayOfWeek View = "day-of-week"
	ViewHourOfDay View = "hour-of-day"
	ViewHourOfWeek View = "hour-of-week"
	ViewTrend     View = "trend"
)

// InvalidConfigError reports a configuration value rejected before any
// parsing begins.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Config is the full configuration bundle consumed by the analyzer. It is
// immutable once validated; the CLI layer owns all flag parsing.
type Config struct {
	LogFile string
	Views   []View

	// Interval is the expected gap between pings, in hours.
	Interval float64
	Multitag model.MultitagMode

	// ExcludeWeekdays uses Monday=0 indices and is already resolved from
	// the include/exclude flag pair.
	ExcludeWeekdays []int
	ExcludeTags     []string

	// Tags limits the view to an explicit selection; nil means all.
	Tags []string
	// TopN ranks tags by total daily hours when positive.
	TopN int
	// ShowOther appends the aggregate of all non-selected tags.
	ShowOther bool

	// Resolution is the bucket width of the hour views, in hours.
	Resolution int

	Smoothing bool
	Sigma     float64

	// Start and End bound the analyzed range, inclusive. Zero values fall
	// back to epoch+1s and now.
	Start time.Time
	End   time.Time

	// TrendInterval is the resample interval of the trend view, e.g.
	// "1w", "2d", "12h" or the aliases D, W, M.
	TrendInterval string

	ColorMap  string
	Obfuscate bool
	ShowNow   bool

	// OnMalformed is the malformed-line policy, "strict" or "warn".
	OnMalformed string

	// Output selects the presentation: "chart" renders a PNG per view,
	// "table"/"json"/"csv" print the aggregate.
	Output string
	// OutPath is the chart output file; multiple views append a suffix.
	OutPath string

	Timezone string
	Watch    bool

	// Seed fixes the jitter and obfuscation random source when non-zero.
	Seed int64
}

var validOutputs = map[string]bool{"chart": true, "table": true, "json": true, "csv": true}

// Validate checks the bundle eagerly, before the log is opened. A
// resolution that does not divide 24 evenly is only warned about.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return &InvalidConfigError{Field: "logfile", Reason: "no log file given"}
	}
	if len(c.Views) == 0 {
		return &InvalidConfigError{Field: "views", Reason: "no view selected (use --pie, --day-of-week, --hour-of-day, --hour-of-week or --trends)"}
	}
	if c.Interval <= 0 {
		return &InvalidConfigError{Field: "interval", Reason: fmt.Sprintf("must be positive, got %v", c.Interval)}
	}
	switch c.Multitag {
	case model.MultitagFirst, model.MultitagSplit, model.MultitagDouble:
	default:
		return &InvalidConfigError{Field: "multitag", Reason: fmt.Sprintf("unknown mode %q (want first, split or double)", c.Multitag)}
	}
	if c.Smoothing && c.Sigma <= 0 {
		return &InvalidConfigError{Field: "smooth-sigma", Reason: fmt.Sprintf("must be positive, got %v", c.Sigma)}
	}
	if c.Resolution <= 0 || c.Resolution > 24 {
		return &InvalidConfigError{Field: "resolution", Reason: fmt.Sprintf("must be within 1..24, got %d", c.Resolution)}
	}
	if 24%c.Resolution != 0 {
		util.LogWarnf("Resolution %dh does not divide 24 evenly; the last hour bucket will be short", c.Resolution)
	}
	for _, d := range c.ExcludeWeekdays {
		if d < 0 || d > 6 {
			return &InvalidConfigError{Field: "exclude-weekdays", Reason: fmt.Sprintf("weekday index %d out of range 0..6", d)}
		}
	}
	if c.TopN < 0 {
		return &InvalidConfigError{Field: "top-n", Reason: fmt.Sprintf("must be non-negative, got %d", c.TopN)}
	}
	if !validOutputs[c.Output] {
		return &InvalidConfigError{Field: "output", Reason: fmt.Sprintf("unknown format %q (want chart, table, json or csv)", c.Output)}
	}
	if c.OnMalformed != "strict" && c.OnMalformed != "warn" {
		return &InvalidConfigError{Field: "on-malformed", Reason: fmt.Sprintf("unknown policy %q (want strict or warn)", c.OnMalformed)}
	}
	if hasView(c.Views, ViewTrend) {
		if _, err := ParseTrendInterval(c.TrendInterval); err != nil {
			return &InvalidConfigError{Field: "trend-interval", Reason: err.Error()}
		}
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.End.Before(c.Start) {
		return &InvalidConfigError{Field: "end", Reason: "end date precedes start date"}
	}
	return nil
}

func hasView(views []View, v View) bool {
	for _, w := range views {
		if w == v {
			return true
		}
	}
	return false
}

// ExcludesWeekday reports whether the Monday=0 index is excluded.
func (c *Config) ExcludesWeekday(day int) bool {
	for _, d := range c.ExcludeWeekdays {
		if d == day {
			return true
		}
	}
	return false
}
