package model

import (
	"fmt"
	"sort"
	"time"
)

// Table is the observation table: one time-sorted series of weighted
// durations per tag. Duplicate timestamps are allowed since smoothing can
// emit several events near the same instant. Once built it is only read;
// every derived view works on copies.
type Table struct {
	series map[string][]Point
}

// EmptyRangeError is returned when a requested date range yields no
// observations.
type EmptyRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no observations in range %s -- %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// NewTable creates an empty observation table.
func NewTable() *Table {
	return &Table{series: make(map[string][]Point)}
}

// Append adds one observation to a tag's series. Callers must SortTimes
// before reading range-dependent views.
func (t *Table) Append(tag string, p Point) {
	t.series[tag] = append(t.series[tag], p)
}

// SortTimes sorts every series chronologically.
func (t *Table) SortTimes() {
	for _, pts := range t.series {
		sort.Slice(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })
	}
}

// Tags returns all tag names in lexical order.
func (t *Table) Tags() []string {
	tags := make([]string, 0, len(t.series))
	for tag := range t.series {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Points returns the series for a tag, or nil if the tag is unknown.
func (t *Table) Points(tag string) []Point {
	return t.series[tag]
}

// Total sums all observed hours for a tag.
func (t *Table) Total(tag string) float64 {
	var sum float64
	for _, p := range t.series[tag] {
		sum += p.Hours
	}
	return sum
}

// NumPoints counts observations across all tags.
func (t *Table) NumPoints() int {
	n := 0
	for _, pts := range t.series {
		n += len(pts)
	}
	return n
}

// IsEmpty reports whether the table holds no observations.
func (t *Table) IsEmpty() bool {
	return t.NumPoints() == 0
}

// Span returns the earliest and latest observation timestamps. ok is false
// for an empty table.
func (t *Table) Span() (min, max time.Time, ok bool) {
	for _, pts := range t.series {
		for _, p := range pts {
			if !ok {
				min, max = p.Time, p.Time
				ok = true
				continue
			}
			if p.Time.Before(min) {
				min = p.Time
			}
			if p.Time.After(max) {
				max = p.Time
			}
		}
	}
	return min, max, ok
}

// Trim returns a new table holding only observations within [start, end],
// inclusive on both ends. An empty trimmed table yields EmptyRangeError.
func (t *Table) Trim(start, end time.Time) (*Table, error) {
	out := NewTable()
	for tag, pts := range t.series {
		for _, p := range pts {
			if p.Time.Before(start) || p.Time.After(end) {
				continue
			}
			out.Append(tag, p)
		}
	}
	if out.IsEmpty() {
		return nil, &EmptyRangeError{Start: start, End: end}
	}
	return out, nil
}

// RangeLabel renders the observed date span as "YYYY-MM-DD -- YYYY-MM-DD".
func (t *Table) RangeLabel() string {
	min, max, ok := t.Span()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s -- %s", min.Format("2006-01-02"), max.Format("2006-01-02"))
}
