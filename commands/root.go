package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tagvis/internal/analyzer"
	"tagvis/internal/config"
	"tagvis/internal/core/model"
	"tagvis/internal/presentation/chart"
	"tagvis/internal/util"

	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Chart selection
	showPie        bool
	showDayOfWeek  bool
	showHourOfDay  bool
	showHourOfWeek bool
	showTrends     bool
	trendInterval  string

	// Sampling and weighting
	interval    float64
	multitag    string
	noSmooth    bool
	smoothSigma float64

	// Filtering and selection
	excludeWeekdays string
	includeWeekdays string
	excludeTags     []string
	tags            []string
	topN            int
	showOther       bool
	resolution      int

	// Date range
	startDate string
	endDate   string
	rstart    string
	rend      string

	// Presentation
	colorMap     string
	obfuscate    bool
	noNow        bool
	outputFormat string
	outPath      string

	// Behavior
	onMalformed string
	timezone    string
	configFile  string
	watch       bool
	seed        int64

	rootCmd = &cobra.Command{
		Use:   "tagvis <logfile> [flags]",
		Short: "TagTime ping log visualizer",
		Long: `tagvis reads a TagTime ping log and renders descriptive statistics:
a pie chart of total time share per tag, bar charts per weekday and per
hour of the day or week, and long-term trend line charts.

Examples:
  tagvis ping.log --pie                                # time share pie chart
  tagvis ping.log --day-of-week --top-n 5 --other      # weekday bars, top 5 tags
  tagvis ping.log --hour-of-day --resolution 2         # 2-hour buckets
  tagvis ping.log --trends --trend-interval 1w         # weekly trend lines
  tagvis ping.log --pie --rstart 4W                    # last four weeks only
  tagvis ping.log --pie --output json                  # aggregate as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
)

const (
	defaultLogFile    = "~/.tagvis/logs/app.log"
	defaultConfigFile = "~/.tagvis.yaml"
)

func init() {
	// Chart selection
	rootCmd.Flags().BoolVar(&showPie, "pie", false,
		"display a pie chart of total time spent per tag")
	rootCmd.Flags().BoolVar(&showDayOfWeek, "day-of-week", false,
		"display a bar per day of the week")
	rootCmd.Flags().BoolVar(&showHourOfDay, "hour-of-day", false,
		"display a bar per hour of the day")
	rootCmd.Flags().BoolVar(&showHourOfWeek, "hour-of-week", false,
		"display a bar per hour of the week")
	rootCmd.Flags().BoolVar(&showTrends, "trends", false,
		"display a line chart of time spent per interval")
	rootCmd.Flags().StringVar(&trendInterval, "trend-interval", "1w",
		"interval to sum over for the trend chart (e.g. 12h, 2d, 1w)")

	// Sampling and weighting
	rootCmd.Flags().Float64Var(&interval, "interval", 0.75,
		"expected time between two pings, in hours")
	rootCmd.Flags().StringVar(&multitag, "multitag", "first",
		"how to handle pings with multiple tags (first, split, double)")
	rootCmd.Flags().BoolVar(&noSmooth, "no-smooth", false,
		"do not spread pings over the interval around the ping time")
	rootCmd.Flags().Float64Var(&smoothSigma, "smooth-sigma", 0.25,
		"smoothing kernel width, in multiples of the interval")

	// Filtering and selection
	rootCmd.Flags().StringVar(&excludeWeekdays, "exclude-weekdays", "",
		"skip days of the week (delimiter-free Monday=0 digits, e.g. 56)")
	rootCmd.Flags().StringVar(&includeWeekdays, "include-weekdays", "",
		"keep only these days of the week (same syntax)")
	rootCmd.Flags().StringSliceVar(&excludeTags, "exclude-tags", nil,
		"tags to skip (comma-delimited)")
	rootCmd.Flags().StringSliceVar(&tags, "tags", nil,
		"limit the charts to these tags")
	rootCmd.Flags().IntVar(&topN, "top-n", 0,
		"limit the charts to the N most popular tags (0 = no limit)")
	rootCmd.Flags().BoolVar(&showOther, "other", false,
		"show the aggregate 'other' category")
	rootCmd.Flags().IntVar(&resolution, "resolution", 2,
		"consecutive hours summed per bucket in the hour charts")

	// Date range
	rootCmd.Flags().StringVar(&startDate, "start", "",
		"start date of the range, inclusive (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "end", "",
		"end date of the range, inclusive (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&rstart, "rstart", "",
		"relative start date (2D: 2 days ago, 3W: 3 weeks ago, 1M)")
	rootCmd.Flags().StringVar(&rend, "rend", "",
		"relative end date, same syntax")

	// Presentation
	rootCmd.Flags().StringVar(&colorMap, "cmap", "Paired",
		"brewer color map for the charts (Paired, Set1, Set3, Dark2, ...)")
	rootCmd.Flags().BoolVar(&obfuscate, "obfuscate", false,
		"replace tag names with random pseudonyms")
	rootCmd.Flags().BoolVar(&noNow, "no-now", false,
		"do not mark the current day/time in the charts")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "chart",
		"output format (chart, table, json, csv)")
	rootCmd.Flags().StringVar(&outPath, "out", "tagvis.png",
		"chart output file (view name is appended for multiple charts)")

	// Behavior
	rootCmd.Flags().StringVar(&onMalformed, "on-malformed", "strict",
		"malformed line policy (strict aborts, warn skips and counts)")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Local",
		"timezone setting (e.g. Europe/Berlin, UTC)")
	rootCmd.Flags().StringVar(&configFile, "config", defaultConfigFile,
		"YAML defaults file")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"re-render whenever the log file changes")
	rootCmd.Flags().Int64Var(&seed, "seed", 0,
		"random seed for smoothing jitter and obfuscation (0 = time-based)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, true)

	if err := applyDefaultsFile(cmd); err != nil {
		return err
	}

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}
	loc := util.GetTimeProvider().Location()

	cfg := &config.Config{
		LogFile:       args[0],
		Interval:      interval,
		Multitag:      model.MultitagMode(multitag),
		ExcludeTags:   excludeTags,
		Tags:          tagSelection(cmd),
		TopN:          topN,
		ShowOther:     showOther,
		Resolution:    resolution,
		Smoothing:     !noSmooth,
		Sigma:         smoothSigma,
		TrendInterval: trendInterval,
		ColorMap:      colorMap,
		Obfuscate:     obfuscate,
		ShowNow:       !noNow,
		OnMalformed:   onMalformed,
		Output:        outputFormat,
		OutPath:       outPath,
		Timezone:      timezone,
		Watch:         watch,
		Seed:          seed,
	}

	cfg.Views = selectedViews()

	var err error
	cfg.ExcludeWeekdays, err = resolveWeekdays()
	if err != nil {
		return err
	}

	cfg.Start, cfg.End, err = resolveRange(loc)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Output == "chart" {
		// Fail on a bad color map before the log is parsed.
		if _, err := chart.NewRenderer(cfg.ColorMap); err != nil {
			return err
		}
	}

	if watch {
		return watchAndRun(cfg)
	}
	return analyzer.New(cfg).Run()
}

func selectedViews() []config.View {
	var views []config.View
	if showPie {
		views = append(views, config.ViewPie)
	}
	if showDayOfWeek {
		views = append(views, config.ViewDayOfWeek)
	}
	if showHourOfDay {
		views = append(views, config.ViewHourOfDay)
	}
	if showHourOfWeek {
		views = append(views, config.ViewHourOfWeek)
	}
	if showTrends {
		views = append(views, config.ViewTrend)
	}
	return views
}

// tagSelection distinguishes "no --tags flag" (nil: all tags) from an
// explicitly empty list.
func tagSelection(cmd *cobra.Command) []string {
	if !cmd.Flags().Changed("tags") {
		return nil
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// resolveWeekdays folds the include/exclude flag pair into one immutable
// exclusion set.
func resolveWeekdays() ([]int, error) {
	if includeWeekdays != "" {
		include, err := config.ParseWeekdaySet(includeWeekdays)
		if err != nil {
			return nil, &config.InvalidConfigError{Field: "include-weekdays", Reason: err.Error()}
		}
		return config.ComplementWeekdays(include), nil
	}
	if excludeWeekdays == "" {
		return nil, nil
	}
	exclude, err := config.ParseWeekdaySet(excludeWeekdays)
	if err != nil {
		return nil, &config.InvalidConfigError{Field: "exclude-weekdays", Reason: err.Error()}
	}
	return exclude, nil
}

// resolveRange merges absolute and relative date flags; the relative form
// wins when both are given.
func resolveRange(loc *time.Location) (start, end time.Time, err error) {
	now := util.GetTimeProvider().Now()
	if startDate != "" {
		start, err = config.ParseAbsoluteDate(startDate, loc)
		if err != nil {
			return start, end, &config.InvalidConfigError{Field: "start", Reason: err.Error()}
		}
	}
	if endDate != "" {
		end, err = config.ParseAbsoluteDate(endDate, loc)
		if err != nil {
			return start, end, &config.InvalidConfigError{Field: "end", Reason: err.Error()}
		}
	}
	if rstart != "" {
		start, err = config.ParseRelativeDate(rstart, now)
		if err != nil {
			return start, end, &config.InvalidConfigError{Field: "rstart", Reason: err.Error()}
		}
	}
	if rend != "" {
		end, err = config.ParseRelativeDate(rend, now)
		if err != nil {
			return start, end, &config.InvalidConfigError{Field: "rend", Reason: err.Error()}
		}
	}
	return start, end, nil
}

// applyDefaultsFile fills flags the user left unset from the YAML defaults
// file, if one exists.
func applyDefaultsFile(cmd *cobra.Command) error {
	defaults, err := config.LoadDefaults(expandPath(configFile))
	if err != nil {
		return err
	}
	if defaults == nil {
		return nil
	}

	flags := cmd.Flags()
	if !flags.Changed("interval") && defaults.Interval > 0 {
		interval = defaults.Interval
	}
	if !flags.Changed("multitag") && defaults.Multitag != "" {
		multitag = defaults.Multitag
	}
	if !flags.Changed("cmap") && defaults.ColorMap != "" {
		colorMap = defaults.ColorMap
	}
	if !flags.Changed("exclude-tags") && len(defaults.ExcludeTags) > 0 {
		excludeTags = defaults.ExcludeTags
	}
	if !flags.Changed("resolution") && defaults.Resolution > 0 {
		resolution = defaults.Resolution
	}
	if !flags.Changed("smooth-sigma") && defaults.SmoothSigma > 0 {
		smoothSigma = defaults.SmoothSigma
	}
	if !flags.Changed("timezone") && defaults.Timezone != "" {
		timezone = defaults.Timezone
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
