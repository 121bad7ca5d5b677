package config

import (
	"testing"
	"time"

	"tagvis/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LogFile:       "ping.log",
		Views:         []View{ViewPie},
		Interval:      0.75,
		Multitag:      model.MultitagSplit,
		Resolution:    1,
		TrendInterval: "1w",
		Output:        "chart",
		OnMalformed:   "strict",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "valid baseline", mutate: func(c *Config) {}},
		{name: "missing log file", mutate: func(c *Config) { c.LogFile = "" }, wantField: "logfile"},
		{name: "no view selected", mutate: func(c *Config) { c.Views = nil }, wantField: "views"},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantField: "interval"},
		{name: "negative interval", mutate: func(c *Config) { c.Interval = -1 }, wantField: "interval"},
		{name: "unknown multitag mode", mutate: func(c *Config) { c.Multitag = "both" }, wantField: "multitag"},
		{name: "smoothing without sigma", mutate: func(c *Config) { c.Smoothing = true }, wantField: "smooth-sigma"},
		{name: "smoothing with sigma", mutate: func(c *Config) { c.Smoothing = true; c.Sigma = 0.25 }},
		{name: "zero resolution", mutate: func(c *Config) { c.Resolution = 0 }, wantField: "resolution"},
		{name: "resolution beyond a day", mutate: func(c *Config) { c.Resolution = 25 }, wantField: "resolution"},
		{name: "uneven resolution only warns", mutate: func(c *Config) { c.Resolution = 5 }},
		{name: "weekday out of range", mutate: func(c *Config) { c.ExcludeWeekdays = []int{7} }, wantField: "exclude-weekdays"},
		{name: "negative top n", mutate: func(c *Config) { c.TopN = -1 }, wantField: "top-n"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, wantField: "output"},
		{name: "unknown malformed policy", mutate: func(c *Config) { c.OnMalformed = "ignore" }, wantField: "on-malformed"},
		{
			name: "bad trend interval only when trend selected",
			mutate: func(c *Config) {
				c.Views = []View{ViewTrend}
				c.TrendInterval = "bogus"
			},
			wantField: "trend-interval",
		},
		{
			name: "bad trend interval ignored without trend view",
			mutate: func(c *Config) {
				c.TrendInterval = "bogus"
			},
		},
		{
			name: "end before start",
			mutate: func(c *Config) {
				c.Start = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
				c.End = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			},
			wantField: "end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *InvalidConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestExcludesWeekday(t *testing.T) {
	cfg := validConfig()
	cfg.ExcludeWeekdays = []int{5, 6}

	assert.True(t, cfg.ExcludesWeekday(5))
	assert.True(t, cfg.ExcludesWeekday(6))
	assert.False(t, cfg.ExcludesWeekday(0))
}
