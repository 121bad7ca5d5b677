package formatter

import (
	"encoding/csv"
	"fmt"
	"io"

	"tagvis/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(res *model.Result) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	headers := append([]string{"bucket"}, res.Tags...)
	if err := w.Write(headers); err != nil {
		return err
	}

	for i, bucket := range res.Buckets {
		record := make([]string, 0, len(headers))
		record = append(record, bucket)
		for j := range res.Tags {
			record = append(record, fmt.Sprintf("%g", res.Values[i][j]))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}
