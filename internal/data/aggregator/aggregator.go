package aggregator

import (
	"fmt"
	"math/rand"
	"time"

	"tagvis/internal/core/model"
	"tagvis/internal/util"
)

// Options configures how samples are converted into weighted observations.
type Options struct {
	// Interval is the expected gap between pings, in hours.
	Interval float64
	Multitag model.MultitagMode
	// ExcludeTags are removed from every sample before the multitag policy
	// applies.
	ExcludeTags []string
	// ExcludeWeekdays uses Monday=0 indices. Events whose smoothed
	// timestamp lands on an excluded weekday are dropped, not
	// redistributed.
	ExcludeWeekdays []int
	Smoothing       bool
	Sigma           float64
	// Rand drives the smoothing offset jitter. Nil falls back to a
	// time-seeded source.
	Rand *rand.Rand
}

// Aggregator turns samples into events and accumulates them into the
// observation table.
type Aggregator struct {
	opts        Options
	kernel      smoothingKernel
	skipTags    map[string]bool
	skipDays    map[int]bool
	numExcluded int
}

// New creates an Aggregator with a fixed smoothing kernel.
func New(opts Options) *Aggregator {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	skipTags := make(map[string]bool, len(opts.ExcludeTags))
	for _, t := range opts.ExcludeTags {
		skipTags[t] = true
	}
	skipDays := make(map[int]bool, len(opts.ExcludeWeekdays))
	for _, d := range opts.ExcludeWeekdays {
		skipDays[d] = true
	}

	a := &Aggregator{
		opts:     opts,
		kernel:   newSmoothingKernel(opts.Smoothing, opts.Sigma, rng),
		skipTags: skipTags,
		skipDays: skipDays,
	}
	util.LogDebugf("Smoothing weights: %v", a.kernel.weights)
	return a
}

// Weights exposes the normalized smoothing weight vector.
func (a *Aggregator) Weights() []float64 {
	return a.kernel.weights
}

// ExcludedEntries reports how many smoothed events were dropped because
// they fell on an excluded weekday.
func (a *Aggregator) ExcludedEntries() int {
	return a.numExcluded
}

// MondayIndex maps a timestamp to the Monday=0..Sunday=6 weekday
// convention used throughout the tool.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Events derives the weighted event cluster for one sample. With smoothing
// disabled and a single surviving tag this is exactly one event carrying
// the full interval (or interval/n under the split policy).
func (a *Aggregator) Events(s model.Sample) []model.Event {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		if !a.skipTags[t] {
			tags = append(tags, t)
		}
	}
	if a.opts.Multitag == model.MultitagFirst && len(tags) > 1 {
		tags = tags[:1]
	}
	if len(tags) == 0 {
		return nil
	}

	duration := a.opts.Interval
	if a.opts.Multitag == model.MultitagSplit {
		duration /= float64(len(tags))
	}

	events := make([]model.Event, 0, len(tags)*len(a.kernel.offsets))
	for _, tag := range tags {
		for i, offset := range a.kernel.offsets {
			shifted := s.Time.Add(time.Duration(offset * a.opts.Interval * float64(time.Hour)))
			if a.skipDays[MondayIndex(shifted)] {
				a.numExcluded++
				continue
			}
			events = append(events, model.Event{
				Time:  shifted,
				Tag:   tag,
				Hours: a.kernel.weights[i] * duration,
			})
		}
	}
	return events
}

// Build accumulates all samples into a sorted observation table and logs
// the excluded-entry diagnostic.
func (a *Aggregator) Build(samples []model.Sample) *model.Table {
	table := model.NewTable()
	for _, s := range samples {
		for _, e := range a.Events(s) {
			table.Append(e.Tag, model.Point{Time: e.Time, Hours: e.Hours})
		}
	}
	table.SortTimes()

	util.LogInfo(fmt.Sprintf("Excluded %d entries", a.numExcluded))
	return table
}
