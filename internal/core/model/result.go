package model

// Result is the finalized aggregate handed to the presentation layer: one
// row per bucket, one column per tag. The chart and text formatters never
// recompute aggregation, they only render what is here.
type Result struct {
	// Title is the chart headline, usually the observed date range.
	Title  string
	XLabel string
	YLabel string

	// Buckets are the row labels (weekday names, hour ranges, interval
	// start dates, or a single row for the pie).
	Buckets []string
	// Tags are the column labels, in presentation order.
	Tags []string
	// Values is indexed [bucket][tag].
	Values [][]float64

	Kind ChartKind

	// Times carries the bucket start times for time-axis charts (trend).
	// Nil for categorical buckets.
	Times []int64

	// YMax clamps the value axis when positive (60 for hour views, 24 for
	// the weekday view).
	YMax float64

	// NowX is the now-marker position in bucket-axis units, negative when
	// the marker is disabled.
	NowX float64
}

// Empty reports whether the result carries no columns. Views return an
// empty but valid result when nothing survives tag selection.
func (r *Result) Empty() bool {
	return len(r.Tags) == 0
}

// Column extracts one tag's values across all buckets.
func (r *Result) Column(j int) []float64 {
	col := make([]float64, len(r.Buckets))
	for i := range r.Buckets {
		col[i] = r.Values[i][j]
	}
	return col
}

// ColumnMax returns the largest value in any cell, used to share y-axis
// limits across subplot panels.
func (r *Result) ColumnMax() float64 {
	var max float64
	for _, row := range r.Values {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}
