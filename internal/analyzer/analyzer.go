package analyzer

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"tagvis/internal/config"
	"tagvis/internal/core/model"
	"tagvis/internal/data/aggregator"
	"tagvis/internal/data/parser"
	"tagvis/internal/presentation/chart"
	"tagvis/internal/presentation/formatter"
	"tagvis/internal/util"
)

// Analyzer drives the full pipeline: parse the log, build the observation
// table, compute the requested views and hand them to the presentation
// layer.
type Analyzer struct {
	config     *config.Config
	table      *model.Table
	rangeLabel string
	loc        *time.Location
	rng        *rand.Rand
	showNow    bool
}

// New creates an Analyzer. The random source drives smoothing jitter and
// obfuscation pseudonyms; a non-zero Seed makes both reproducible.
func New(cfg *config.Config) *Analyzer {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Analyzer{
		config:  cfg,
		loc:     util.GetTimeProvider().Location(),
		rng:     rand.New(rand.NewSource(seed)),
		showNow: cfg.ShowNow,
	}
}

// Run executes the whole batch: the log file is fully parsed and
// materialized before any view is computed, and nothing is retained
// afterwards.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo("Starting analysis of ping log...")

	// Phase 1: parse the log into samples.
	parseStart := time.Now()
	p := parser.New(parser.Policy(a.config.OnMalformed), a.loc)
	samples, err := p.ParseFile(a.config.LogFile)
	if err != nil {
		return err
	}
	util.LogDebugf("Phase 1 - Parsed %d samples in %v", len(samples), time.Since(parseStart))

	// Phase 2: build the observation table.
	buildStart := time.Now()
	agg := aggregator.New(aggregator.Options{
		Interval:        a.config.Interval,
		Multitag:        a.config.Multitag,
		ExcludeTags:     a.config.ExcludeTags,
		ExcludeWeekdays: a.config.ExcludeWeekdays,
		Smoothing:       a.config.Smoothing,
		Sigma:           a.config.Sigma,
		Rand:            a.rng,
	})
	table := agg.Build(samples)
	util.LogDebugf("Phase 2 - Built table with %d observations across %d tags in %v",
		table.NumPoints(), len(table.Tags()), time.Since(buildStart))

	// Phase 3: trim to the requested date range.
	start, end := a.config.Start, a.config.End
	if start.IsZero() {
		start = time.Unix(1, 0).In(a.loc)
	}
	if end.IsZero() {
		end = util.GetTimeProvider().Now()
	}
	trimmed, err := table.Trim(start, end)
	if err != nil {
		return err
	}
	a.table = trimmed
	a.rangeLabel = trimmed.RangeLabel()
	util.LogDebugf("Phase 3 - Range %s holds %d observations", a.rangeLabel, trimmed.NumPoints())

	// The now-marker makes no sense on a day the user excluded.
	now := util.GetTimeProvider().Now()
	if a.showNow && a.config.ExcludesWeekday(aggregator.MondayIndex(now)) {
		a.showNow = false
	}

	// Phase 4: compute the requested views.
	viewStart := time.Now()
	type namedResult struct {
		view   config.View
		result *model.Result
	}
	results := make([]namedResult, 0, len(a.config.Views))
	for _, v := range a.config.Views {
		res, err := a.computeView(v)
		if err != nil {
			return err
		}
		results = append(results, namedResult{view: v, result: res})
	}
	util.LogDebugf("Phase 4 - Computed %d views in %v", len(results), time.Since(viewStart))

	// Phase 5: render.
	outputStart := time.Now()
	for _, nr := range results {
		if err := a.output(nr.view, nr.result); err != nil {
			return err
		}
	}
	util.LogDebugf("Phase 5 - Output in %v", time.Since(outputStart))

	util.LogDebugf("Total duration: %v", time.Since(startTime))
	return nil
}

func (a *Analyzer) computeView(v config.View) (*model.Result, error) {
	switch v {
	case config.ViewPie:
		return a.Pie(a.config.Tags, a.config.TopN, a.config.ShowOther), nil
	case config.ViewDayOfWeek:
		return a.DayOfWeek(a.config.Tags, a.config.TopN, a.config.ShowOther), nil
	case config.ViewHourOfDay:
		return a.HourOfDay(a.config.Tags, a.config.TopN, a.config.Resolution, a.config.ShowOther), nil
	case config.ViewHourOfWeek:
		return a.HourOfWeek(a.config.Tags, a.config.TopN, a.config.Resolution, a.config.ShowOther), nil
	case config.ViewTrend:
		return a.Trend(a.config.Tags, a.config.TopN, a.config.ShowOther, a.config.TrendInterval)
	default:
		return nil, fmt.Errorf("unknown view %q", v)
	}
}

func (a *Analyzer) output(v config.View, res *model.Result) error {
	if a.config.Output != "chart" {
		f, err := formatter.New(a.config.Output, os.Stdout)
		if err != nil {
			return err
		}
		return f.Format(res)
	}

	path := a.config.OutPath
	if len(a.config.Views) > 1 {
		path = viewPath(path, string(v))
	}
	r, err := chart.NewRenderer(a.config.ColorMap)
	if err != nil {
		return err
	}
	if err := r.Render(res, path); err != nil {
		return fmt.Errorf("render %s chart: %w", v, err)
	}
	util.LogInfo(fmt.Sprintf("Wrote %s", path))
	return nil
}

// viewPath inserts the view name before the file extension:
// tagvis.png -> tagvis-pie.png.
func viewPath(path, view string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + "-" + view + path[i:]
	}
	return path + "-" + view
}
