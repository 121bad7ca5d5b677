package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var reldateRe = regexp.MustCompile(`^(\d+)([DWM])$`)

// ParseRelativeDate resolves formats like "2D" (2 days ago), "3W" (3 weeks
// ago) and "1M" (4 weeks ago per month), truncated to midnight of that day
// in now's location.
func ParseRelativeDate(s string, now time.Time) (time.Time, error) {
	m := reldateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("unknown relative date format %q (want e.g. 2D, 3W, 1M)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown relative date format %q: %w", s, err)
	}

	var days int
	switch m[2] {
	case "D":
		days = n
	case "W":
		days = n * 7
	case "M":
		days = n * 28
	}

	d := now.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location()), nil
}

// ParseAbsoluteDate parses "YYYY-MM-DD" in the given location.
func ParseAbsoluteDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseWeekdaySet parses a delimiter-free list of Monday=0 weekday digits,
// e.g. "56" for Saturday and Sunday.
func ParseWeekdaySet(s string) ([]int, error) {
	days := make([]int, 0, len(s))
	seen := make(map[int]bool)
	for _, r := range s {
		if r < '0' || r > '6' {
			return nil, fmt.Errorf("invalid weekday character %q (want digits 0-6, Monday=0)", string(r))
		}
		d := int(r - '0')
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}

// ComplementWeekdays turns an include list into the exclude list the
// aggregator consumes.
func ComplementWeekdays(include []int) []int {
	keep := make(map[int]bool, len(include))
	for _, d := range include {
		keep[d] = true
	}
	var exclude []int
	for d := 0; d < 7; d++ {
		if !keep[d] {
			exclude = append(exclude, d)
		}
	}
	return exclude
}

var trendAliases = map[string]time.Duration{
	"D": 24 * time.Hour,
	"W": 7 * 24 * time.Hour,
	"M": 28 * 24 * time.Hour,
}

var trendRe = regexp.MustCompile(`^(\d+)([hdw])$`)

// ParseTrendInterval parses the trend resample interval: "12h", "2d", "1w"
// or the uppercase aliases D, W, M.
func ParseTrendInterval(s string) (time.Duration, error) {
	if d, ok := trendAliases[s]; ok {
		return d, nil
	}
	m := trendRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid interval %q (want e.g. 12h, 2d, 1w, or D/W/M)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid interval %q", s)
	}
	switch m[2] {
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	}
}
