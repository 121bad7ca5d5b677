package formatter

import (
	"fmt"
	"io"

	"tagvis/internal/core/model"
)

// Formatter renders a finalized aggregate as text.
type Formatter interface {
	Format(res *model.Result) error
}

// New returns the formatter for the given output format name.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
