package analyzer

import (
	"fmt"
	"sort"
	"time"

	"tagvis/internal/config"
	"tagvis/internal/core/model"
	"tagvis/internal/data/aggregator"
	"tagvis/internal/util"
)

var weekdayTicks = []string{"M", "T", "W", "T", "F", "S", "S"}
var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayStart truncates a timestamp to midnight in the analyzer's location.
func (a *Analyzer) dayStart(t time.Time) time.Time {
	t = t.In(a.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.loc)
}

// dailyMatrix resamples the selection to one row per calendar day, summing
// within each day. The day axis spans the whole table range so days
// without observations appear as zero rows, like a zero-filled resample.
func (a *Analyzer) dailyMatrix(cols []column) (days []time.Time, m [][]float64) {
	min, max, ok := a.table.Span()
	if !ok {
		return nil, nil
	}
	first, last := a.dayStart(min), a.dayStart(max)

	index := make(map[int64]int)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		index[d.Unix()] = len(days)
		days = append(days, d)
	}

	m = make([][]float64, len(days))
	for i := range m {
		m[i] = make([]float64, len(cols))
	}
	for j, col := range cols {
		for _, p := range col.points {
			if row, ok := index[a.dayStart(p.Time).Unix()]; ok {
				m[row][j] += p.Hours
			}
		}
	}
	return days, m
}

func rowSum(row []float64) float64 {
	var s float64
	for _, v := range row {
		s += v
	}
	return s
}

// doubleKind picks the rendering for multitag=double charts: small
// multiples while they stay readable, one multi-line chart beyond that.
func (a *Analyzer) doubleKind(ncols int) model.ChartKind {
	if a.config.Multitag != model.MultitagDouble {
		return model.KindStackedBar
	}
	if ncols < 8 {
		return model.KindSubplots
	}
	return model.KindLine
}

// Pie computes the tag-share view: daily sums averaged over the observed
// calendar days, sorted descending, labels carrying absolute hours.
func (a *Analyzer) Pie(tags []string, topN int, other bool) *model.Result {
	cols := a.selectColumns(a.resolveTags(tags, topN), other)

	// Forced-inclusion tags with zero observations in range would average
	// to nothing meaningful; they are dropped rather than drawn as empty
	// wedges.
	kept := cols[:0]
	for _, c := range cols {
		if len(c.points) > 0 || c.name == OtherTag {
			kept = append(kept, c)
		}
	}
	cols = kept

	res := &model.Result{
		Title:   a.rangeLabel,
		Kind:    model.KindPie,
		Buckets: []string{"total"},
		NowX:    -1,
	}
	if len(cols) == 0 {
		res.Buckets = nil
		res.Values = [][]float64{}
		return res
	}

	days, m := a.dailyMatrix(cols)
	means := make([]float64, len(cols))
	for j := range cols {
		var total float64
		for i := range days {
			total += m[i][j]
		}
		means[j] = total / float64(len(days))
	}

	names := a.obfuscateNames(columnNames(cols))
	order := make([]int, len(cols))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return means[order[i]] > means[order[j]] })

	row := make([]float64, len(cols))
	for i, idx := range order {
		res.Tags = append(res.Tags, fmt.Sprintf("%s (%1.1f h)", names[idx], means[idx]))
		row[i] = means[idx]
	}
	res.Values = [][]float64{row}
	return res
}

// DayOfWeek computes average hours per tag for each weekday. Each observed
// day's row is normalized to the share of that day; days with no
// observations are excluded from the weekday mean rather than counted as
// zero. Shares are rescaled to hours so every weekday totals 24.
func (a *Analyzer) DayOfWeek(tags []string, topN int, other bool) *model.Result {
	cols := a.selectColumns(a.resolveTags(tags, topN), other)
	res := &model.Result{
		Title:   "Time Spent over Day of the Week",
		XLabel:  "Day of the Week",
		YLabel:  "Time Spent (h)",
		Kind:    a.doubleKind(len(cols)),
		Buckets: weekdayTicks,
		YMax:    24,
		NowX:    -1,
	}
	if len(cols) == 0 {
		res.Values = emptyRows(len(weekdayTicks))
		return res
	}

	days, m := a.dailyMatrix(cols)
	shareSum := make([][]float64, 7)
	for wd := range shareSum {
		shareSum[wd] = make([]float64, len(cols))
	}
	count := make([]int, 7)
	for i, day := range days {
		total := rowSum(m[i])
		if total == 0 {
			continue
		}
		wd := aggregator.MondayIndex(day)
		for j := range cols {
			shareSum[wd][j] += m[i][j] / total
		}
		count[wd]++
	}

	res.Values = make([][]float64, 7)
	for wd := 0; wd < 7; wd++ {
		row := make([]float64, len(cols))
		if count[wd] > 0 {
			for j := range cols {
				row[j] = shareSum[wd][j] / float64(count[wd])
			}
			if total := rowSum(row); total > 0 {
				for j := range row {
					row[j] *= 24 / total
				}
			}
		}
		res.Values[wd] = row
	}

	res.Tags = a.obfuscateNames(columnNames(cols))
	if a.config.Multitag == model.MultitagDouble {
		res.YMax = 0
	}
	if a.showNow {
		res.NowX = float64(aggregator.MondayIndex(util.GetTimeProvider().Now()))
	}
	return res
}

// HourOfDay buckets raw observations by hour of day (resolution hours per
// bucket), normalizes each bucket and rescales to minutes per hour.
func (a *Analyzer) HourOfDay(tags []string, topN, resolution int, other bool) *model.Result {
	cols := a.selectColumns(a.resolveTags(tags, topN), other)
	nb := (24 + resolution - 1) / resolution

	res := &model.Result{
		Title:  a.rangeLabel,
		XLabel: "Hour of the Day",
		YLabel: "Minutes",
		Kind:   a.doubleKind(len(cols)),
		YMax:   60,
		NowX:   -1,
	}
	for b := 0; b < nb; b++ {
		res.Buckets = append(res.Buckets, fmt.Sprintf("%d", b*resolution))
	}
	if len(cols) == 0 {
		res.Values = emptyRows(nb)
		return res
	}

	res.Values = a.hourBuckets(cols, nb, func(t time.Time) int {
		return t.In(a.loc).Hour() / resolution
	})
	res.Tags = a.obfuscateNames(columnNames(cols))
	if a.config.Multitag == model.MultitagDouble {
		res.YMax = 0
	}
	if a.showNow {
		now := util.GetTimeProvider().Now()
		res.NowX = (float64(now.Hour()) + float64(now.Minute())/60) / float64(resolution)
	}
	return res
}

// HourOfWeek is the hour-of-day view crossed with the weekday, one bucket
// per (weekday, hour range) pair across the whole week.
func (a *Analyzer) HourOfWeek(tags []string, topN, resolution int, other bool) *model.Result {
	cols := a.selectColumns(a.resolveTags(tags, topN), other)
	perDay := (24 + resolution - 1) / resolution
	nb := 7 * perDay

	res := &model.Result{
		Title:  a.rangeLabel,
		XLabel: "Hour of the Week",
		YLabel: "Minutes",
		Kind:   model.KindStackedBar,
		YMax:   60,
		NowX:   -1,
	}
	for wd := 0; wd < 7; wd++ {
		for b := 0; b < perDay; b++ {
			res.Buckets = append(res.Buckets, fmt.Sprintf("%s %02d", weekdayNames[wd], b*resolution))
		}
	}
	if len(cols) == 0 {
		res.Values = emptyRows(nb)
		return res
	}

	res.Values = a.hourBuckets(cols, nb, func(t time.Time) int {
		t = t.In(a.loc)
		return aggregator.MondayIndex(t)*perDay + t.Hour()/resolution
	})
	res.Tags = a.obfuscateNames(columnNames(cols))
	return res
}

// hourBuckets sums raw observations into nb buckets and normalizes each
// bucket's row to minutes (x60). Buckets with no observations stay zero.
func (a *Analyzer) hourBuckets(cols []column, nb int, bucket func(time.Time) int) [][]float64 {
	values := emptyRows(nb)
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for j, col := range cols {
		for _, p := range col.points {
			values[bucket(p.Time)][j] += p.Hours
		}
	}
	for i := range values {
		if total := rowSum(values[i]); total > 0 {
			for j := range values[i] {
				values[i][j] *= 60 / total
			}
		}
	}
	return values
}

// Trend resamples the selection to a caller-specified interval, summing
// within each bucket. No normalization: the chart shows absolute magnitude
// over time.
func (a *Analyzer) Trend(tags []string, topN int, other bool, interval string) (*model.Result, error) {
	dur, err := config.ParseTrendInterval(interval)
	if err != nil {
		return nil, err
	}
	cols := a.selectColumns(a.resolveTags(tags, topN), other)

	res := &model.Result{
		Title:  a.rangeLabel,
		XLabel: "Interval ID",
		YLabel: fmt.Sprintf("Time Spent (h) per Interval (%s)", interval),
		Kind:   model.KindLine,
		NowX:   -1,
	}
	if len(cols) == 0 {
		res.Values = [][]float64{}
		return res, nil
	}

	min, max, ok := a.table.Span()
	if !ok {
		res.Values = [][]float64{}
		return res, nil
	}
	origin := a.dayStart(min)
	nb := int(max.Sub(origin)/dur) + 1

	label := "2006-01-02"
	if dur < 24*time.Hour {
		label = "2006-01-02 15:04"
	}
	res.Values = emptyRows(nb)
	for b := 0; b < nb; b++ {
		start := origin.Add(time.Duration(b) * dur)
		res.Buckets = append(res.Buckets, start.Format(label))
		res.Times = append(res.Times, start.Unix())
		res.Values[b] = make([]float64, len(cols))
	}
	for j, col := range cols {
		for _, p := range col.points {
			b := int(p.Time.Sub(origin) / dur)
			if b >= 0 && b < nb {
				res.Values[b][j] += p.Hours
			}
		}
	}

	res.Tags = a.obfuscateNames(columnNames(cols))
	return res, nil
}

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

func emptyRows(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{}
	}
	return rows
}
