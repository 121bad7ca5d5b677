package aggregator

import (
	"math/rand"
	"testing"
	"time"

	"tagvis/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Monday, noon UTC.
var sampleTime = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestAggregator(t *testing.T, opts Options) *Aggregator {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(42))
	}
	return New(opts)
}

func sumHours(events []model.Event) float64 {
	var sum float64
	for _, e := range events {
		sum += e.Hours
	}
	return sum
}

func TestSplitConservesInterval(t *testing.T) {
	tests := []struct {
		name string
		tags []string
	}{
		{name: "single tag", tags: []string{"work"}},
		{name: "two tags", tags: []string{"work", "email"}},
		{name: "three tags", tags: []string{"work", "email", "meeting"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAggregator(t, Options{
				Interval: 0.75,
				Multitag: model.MultitagSplit,
			})
			events := a.Events(model.Sample{Time: sampleTime, Tags: tt.tags})
			require.Len(t, events, len(tt.tags))
			assert.InDelta(t, 0.75, sumHours(events), 1e-9)
		})
	}
}

func TestDoubleDuplicatesInterval(t *testing.T) {
	a := newTestAggregator(t, Options{
		Interval: 0.75,
		Multitag: model.MultitagDouble,
	})
	events := a.Events(model.Sample{Time: sampleTime, Tags: []string{"work", "email"}})
	require.Len(t, events, 2)
	for _, e := range events {
		assert.InDelta(t, 0.75, e.Hours, 1e-9)
	}
}

func TestFirstKeepsOnlyFirstTag(t *testing.T) {
	a := newTestAggregator(t, Options{
		Interval: 1.0,
		Multitag: model.MultitagFirst,
	})
	events := a.Events(model.Sample{Time: sampleTime, Tags: []string{"work", "email"}})
	require.Len(t, events, 1)
	assert.Equal(t, "work", events[0].Tag)
	assert.InDelta(t, 1.0, events[0].Hours, 1e-9)
}

func TestExcludedTagsRemoved(t *testing.T) {
	a := newTestAggregator(t, Options{
		Interval:    1.0,
		Multitag:    model.MultitagSplit,
		ExcludeTags: []string{"afk"},
	})

	events := a.Events(model.Sample{Time: sampleTime, Tags: []string{"afk", "work"}})
	require.Len(t, events, 1)
	assert.Equal(t, "work", events[0].Tag)
	assert.InDelta(t, 1.0, events[0].Hours, 1e-9)

	// A sample left without tags contributes nothing.
	events = a.Events(model.Sample{Time: sampleTime, Tags: []string{"afk"}})
	assert.Empty(t, events)
}

func TestSmoothingWeightsSumToOne(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
	}{
		{name: "narrow kernel", sigma: 0.1},
		{name: "default kernel", sigma: 0.25},
		{name: "wide kernel", sigma: 1.0},
		{name: "very wide kernel", sigma: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAggregator(t, Options{
				Interval:  0.75,
				Multitag:  model.MultitagFirst,
				Smoothing: true,
				Sigma:     tt.sigma,
			})
			weights := a.Weights()
			require.NotEmpty(t, weights)

			var sum float64
			for _, w := range weights {
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestSmoothingDisabledSingleEvent(t *testing.T) {
	a := newTestAggregator(t, Options{
		Interval: 0.75,
		Multitag: model.MultitagFirst,
	})
	events := a.Events(model.Sample{Time: sampleTime, Tags: []string{"work"}})
	require.Len(t, events, 1)
	assert.True(t, events[0].Time.Equal(sampleTime))
	assert.InDelta(t, 0.75, events[0].Hours, 1e-9)
}

func TestSmoothingConservesInterval(t *testing.T) {
	a := newTestAggregator(t, Options{
		Interval:  0.75,
		Multitag:  model.MultitagSplit,
		Smoothing: true,
		Sigma:     0.25,
	})
	events := a.Events(model.Sample{Time: sampleTime, Tags: []string{"work", "email"}})
	assert.InDelta(t, 0.75, sumHours(events), 1e-9)
}

func TestExcludedWeekdayDropsEvents(t *testing.T) {
	// Saturday index is 5 under the Monday=0 convention.
	saturday := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	require.Equal(t, 5, MondayIndex(saturday))

	a := newTestAggregator(t, Options{
		Interval:        0.75,
		Multitag:        model.MultitagFirst,
		ExcludeWeekdays: []int{5},
	})

	events := a.Events(model.Sample{Time: saturday, Tags: []string{"work"}})
	assert.Empty(t, events)
	assert.Equal(t, 1, a.ExcludedEntries())

	// The weight mass is lost, not redistributed: a Monday sample is
	// unaffected.
	events = a.Events(model.Sample{Time: sampleTime, Tags: []string{"work"}})
	assert.Len(t, events, 1)
	assert.Equal(t, 1, a.ExcludedEntries())
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want int
	}{
		{name: "monday", time: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), want: 0},
		{name: "wednesday", time: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), want: 2},
		{name: "saturday", time: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), want: 5},
		{name: "sunday", time: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayIndex(tt.time))
		})
	}
}

func TestBuildScenario(t *testing.T) {
	// Three pings: tagA alone, tagB alone, then both split an interval.
	t0 := sampleTime
	samples := []model.Sample{
		{Time: t0, Tags: []string{"tagA"}},
		{Time: t0.Add(time.Hour), Tags: []string{"tagB"}},
		{Time: t0.Add(2 * time.Hour), Tags: []string{"tagA", "tagB"}},
	}

	a := newTestAggregator(t, Options{
		Interval: 1.0,
		Multitag: model.MultitagSplit,
	})
	table := a.Build(samples)

	assert.InDelta(t, 1.5, table.Total("tagA"), 1e-9)
	assert.InDelta(t, 1.5, table.Total("tagB"), 1e-9)
	assert.Equal(t, 4, table.NumPoints())
}
