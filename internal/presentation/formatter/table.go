package formatter

import (
	"fmt"
	"io"
	"strings"

	"tagvis/internal/core/model"
	"tagvis/internal/util"
)

type TableFormatter struct {
	w io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (f *TableFormatter) Format(res *model.Result) error {
	if res.Title != "" {
		fmt.Fprintln(f.w, res.Title)
	}
	if res.Empty() {
		fmt.Fprintln(f.w, "(no tags selected)")
		return nil
	}

	headers := append([]string{bucketHeader(res)}, res.Tags...)
	widths := f.calculateColumnWidths(res, headers)

	if total := len(widths) + 1; totalWidth(widths)+total > util.TerminalWidth() {
		util.LogWarnf("Table is wider than the terminal (%d columns)", len(headers))
	}

	f.printBorder(widths)
	f.printRow(headers, widths)
	f.printBorder(widths)

	totals := make([]float64, len(res.Tags))
	for i, bucket := range res.Buckets {
		row := make([]string, 0, len(headers))
		row = append(row, bucket)
		for j := range res.Tags {
			v := res.Values[i][j]
			totals[j] += v
			row = append(row, util.FormatValue(v))
		}
		f.printRow(row, widths)
	}

	f.printBorder(widths)
	totalRow := make([]string, 0, len(headers))
	totalRow = append(totalRow, "Total")
	for j := range res.Tags {
		totalRow = append(totalRow, util.FormatValue(totals[j]))
	}
	f.printRow(totalRow, widths)
	f.printBorder(widths)

	return nil
}

func bucketHeader(res *model.Result) string {
	if res.XLabel != "" {
		return res.XLabel
	}
	return "Bucket"
}

// calculateColumnWidths sizes each column to its widest cell, header and
// total row included.
func (f *TableFormatter) calculateColumnWidths(res *model.Result, headers []string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.DisplayWidth(h)
	}
	if w := util.DisplayWidth("Total"); w > widths[0] {
		widths[0] = w
	}

	totals := make([]float64, len(res.Tags))
	for i, bucket := range res.Buckets {
		if w := util.DisplayWidth(bucket); w > widths[0] {
			widths[0] = w
		}
		for j := range res.Tags {
			totals[j] += res.Values[i][j]
			if w := util.DisplayWidth(util.FormatValue(res.Values[i][j])); w > widths[j+1] {
				widths[j+1] = w
			}
		}
	}
	for j, t := range totals {
		if w := util.DisplayWidth(util.FormatValue(t)); w > widths[j+1] {
			widths[j+1] = w
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	sum := 0
	for _, w := range widths {
		sum += w + 2
	}
	return sum
}

func (f *TableFormatter) printBorder(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Fprintf(f.w, "+%s+\n", strings.Join(parts, "+"))
}

func (f *TableFormatter) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = " " + util.PadString(cell, widths[i], i == 0) + " "
	}
	fmt.Fprintf(f.w, "|%s|\n", strings.Join(parts, "|"))
}
