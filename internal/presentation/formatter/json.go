package formatter

import (
	"fmt"
	"io"

	"tagvis/internal/core/model"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonResult struct {
	Title   string      `json:"title,omitempty"`
	Buckets []string    `json:"buckets"`
	Tags    []string    `json:"tags"`
	Values  [][]float64 `json:"values"`
}

func (f *JSONFormatter) Format(res *model.Result) error {
	data, err := sonic.MarshalIndent(jsonResult{
		Title:   res.Title,
		Buckets: res.Buckets,
		Tags:    res.Tags,
		Values:  res.Values,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
