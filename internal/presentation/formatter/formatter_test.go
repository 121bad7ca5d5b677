package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"tagvis/internal/core/model"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *model.Result {
	return &model.Result{
		Title:   "2026-03-02 -- 2026-03-08",
		XLabel:  "Day of the Week",
		Buckets: []string{"M", "T"},
		Tags:    []string{"work", "rest"},
		Values: [][]float64{
			{8, 16},
			{6.5, 17.5},
		},
		Kind: model.KindStackedBar,
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "table"},
		{format: "json"},
		{format: "csv"},
		{format: "xml", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, &buf)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "2026-03-02 -- 2026-03-08")
	assert.Contains(t, out, "Day of the Week")
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "8.00")
	assert.Contains(t, out, "17.50")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "14.50")
	assert.True(t, strings.HasPrefix(strings.Split(out, "\n")[1], "+-"))
}

func TestTableFormatterEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	res := &model.Result{Title: "empty range"}
	require.NoError(t, NewTableFormatter(&buf).Format(res))

	assert.Contains(t, buf.String(), "(no tags selected)")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleResult()))

	var got jsonResult
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2026-03-02 -- 2026-03-08", got.Title)
	assert.Equal(t, []string{"M", "T"}, got.Buckets)
	assert.Equal(t, []string{"work", "rest"}, got.Tags)
	require.Len(t, got.Values, 2)
	assert.InDelta(t, 17.5, got.Values[1][1], 1e-9)
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).Format(sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"bucket", "work", "rest"}, records[0])
	assert.Equal(t, []string{"M", "8", "16"}, records[1])
	assert.Equal(t, []string{"T", "6.5", "17.5"}, records[2])
}
