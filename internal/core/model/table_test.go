package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppendAndTotal(t *testing.T) {
	table := NewTable()
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	table.Append("work", Point{Time: base, Hours: 0.75})
	table.Append("work", Point{Time: base.Add(time.Hour), Hours: 0.75})
	table.Append("sleep", Point{Time: base.Add(2 * time.Hour), Hours: 0.375})

	assert.Equal(t, []string{"sleep", "work"}, table.Tags())
	assert.InDelta(t, 1.5, table.Total("work"), 1e-9)
	assert.InDelta(t, 0.375, table.Total("sleep"), 1e-9)
	assert.Equal(t, 3, table.NumPoints())
	assert.False(t, table.IsEmpty())
}

func TestTableSortTimes(t *testing.T) {
	table := NewTable()
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	table.Append("work", Point{Time: base.Add(2 * time.Hour), Hours: 1})
	table.Append("work", Point{Time: base, Hours: 1})
	table.Append("work", Point{Time: base.Add(time.Hour), Hours: 1})
	table.SortTimes()

	pts := table.Points("work")
	require.Len(t, pts, 3)
	assert.True(t, pts[0].Time.Before(pts[1].Time))
	assert.True(t, pts[1].Time.Before(pts[2].Time))
}

func TestTableTrimRoundTrip(t *testing.T) {
	table := NewTable()
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		table.Append("work", Point{Time: base.Add(time.Duration(i) * time.Hour), Hours: 0.75})
	}
	table.SortTimes()

	min, max, ok := table.Span()
	require.True(t, ok)

	// Trimming to the full observed span must not drop or add rows.
	trimmed, err := table.Trim(min, max)
	require.NoError(t, err)
	assert.Equal(t, table.NumPoints(), trimmed.NumPoints())
	assert.InDelta(t, table.Total("work"), trimmed.Total("work"), 1e-9)
}

func TestTableTrim(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start      time.Time
		end        time.Time
		wantPoints int
		wantErr    bool
	}{
		{
			name:       "inclusive bounds",
			start:      base.Add(2 * time.Hour),
			end:        base.Add(5 * time.Hour),
			wantPoints: 4,
		},
		{
			name:       "everything",
			start:      time.Unix(1, 0),
			end:        base.Add(240 * time.Hour),
			wantPoints: 10,
		},
		{
			name:    "empty range",
			start:   base.Add(100 * time.Hour),
			end:     base.Add(200 * time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			for i := 0; i < 10; i++ {
				table.Append("work", Point{Time: base.Add(time.Duration(i) * time.Hour), Hours: 1})
			}
			table.SortTimes()

			trimmed, err := table.Trim(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				var rangeErr *EmptyRangeError
				assert.ErrorAs(t, err, &rangeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPoints, trimmed.NumPoints())
		})
	}
}

func TestTableRangeLabel(t *testing.T) {
	table := NewTable()
	table.Append("work", Point{Time: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), Hours: 1})
	table.Append("work", Point{Time: time.Date(2026, 4, 10, 23, 0, 0, 0, time.UTC), Hours: 1})

	assert.Equal(t, "2026-03-02 -- 2026-04-10", table.RangeLabel())
	assert.Equal(t, "", NewTable().RangeLabel())
}

func TestResultEmpty(t *testing.T) {
	res := &Result{}
	assert.True(t, res.Empty())

	res = &Result{
		Buckets: []string{"a", "b"},
		Tags:    []string{"x", "y"},
		Values:  [][]float64{{1, 2}, {3, 4}},
	}
	assert.False(t, res.Empty())
	assert.Equal(t, []float64{2, 4}, res.Column(1))
	assert.Equal(t, 4.0, res.ColumnMax())
}
