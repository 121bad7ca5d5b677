package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// FormatHours renders a duration value in hours with one decimal.
func FormatHours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatValue renders an aggregate cell with two decimals, trimming to a
// bare zero for empty cells.
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", v)
}

// DisplayWidth measures the rendered width of a string, accounting for
// wide Unicode characters in tag names.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a display width. leftAlign pads on the right.
func PadString(s string, width int, leftAlign bool) string {
	actual := DisplayWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TerminalWidth returns the current terminal width with a fallback for
// pipes and very narrow terminals.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 40 {
		return 120
	}
	return w
}
