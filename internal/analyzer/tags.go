package analyzer

import (
	"sort"

	"tagvis/internal/core/model"
)

// OtherTag is the synthetic column aggregating every non-selected tag. It
// is never obfuscated, and pseudonyms deliberately cannot collide with it.
const OtherTag = "other"

// column is one selected series in presentation order.
type column struct {
	name   string
	points []model.Point
}

// TopNTags ranks tags by total daily hours, descending, and returns the
// top n followed by any mustInclude extras not already ranked. Ties break
// lexically so repeated runs agree.
func (a *Analyzer) TopNTags(n int, mustInclude []string) []string {
	tags := a.table.Tags()
	sort.SliceStable(tags, func(i, j int) bool {
		ti, tj := a.table.Total(tags[i]), a.table.Total(tags[j])
		if ti != tj {
			return ti > tj
		}
		return tags[i] < tags[j]
	})
	if n < len(tags) {
		tags = tags[:n]
	}

	for _, extra := range mustInclude {
		found := false
		for _, t := range tags {
			if t == extra {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, extra)
		}
	}
	return tags
}

// resolveTags turns the (explicit tags, topN) pair into the column
// selection: a positive topN ranks, an explicit list is used verbatim, and
// no constraint at all selects every tag in ranked order.
func (a *Analyzer) resolveTags(explicit []string, topN int) []string {
	if topN > 0 {
		return a.TopNTags(topN, explicit)
	}
	if explicit != nil {
		return explicit
	}
	return a.TopNTags(len(a.table.Tags()), nil)
}

// selectColumns builds the selected columns, optionally appending the
// "other" column merging every non-selected tag. The source table is never
// mutated; "other" is computed fresh per call.
func (a *Analyzer) selectColumns(tags []string, other bool) []column {
	selected := make(map[string]bool, len(tags))
	cols := make([]column, 0, len(tags)+1)
	for _, t := range tags {
		selected[t] = true
		cols = append(cols, column{name: t, points: a.table.Points(t)})
	}

	if other {
		var merged []model.Point
		for _, t := range a.table.Tags() {
			if !selected[t] {
				merged = append(merged, a.table.Points(t)...)
			}
		}
		cols = append(cols, column{name: OtherTag, points: merged})
	}
	return cols
}

const pseudonymChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// obfuscateNames replaces tag labels with random 4-character pseudonyms
// for sharing sanitized charts. OtherTag keeps its name; values and
// ordering are untouched.
func (a *Analyzer) obfuscateNames(names []string) []string {
	if !a.config.Obfuscate {
		return names
	}
	out := make([]string, len(names))
	for i, n := range names {
		if n == OtherTag {
			out[i] = n
			continue
		}
		b := make([]byte, 4)
		for j := range b {
			b[j] = pseudonymChars[a.rng.Intn(len(pseudonymChars))]
		}
		out[i] = string(b)
	}
	return out
}
