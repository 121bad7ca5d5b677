package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicLines(t *testing.T) {
	input := "1767225600 work email\n1767228300 sleep\n1767231000\n"
	p := New(PolicyStrict, time.UTC)

	samples, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, int64(1767225600), samples[0].Time.Unix())
	assert.Equal(t, []string{"work", "email"}, samples[0].Tags)
	assert.Equal(t, []string{"sleep"}, samples[1].Tags)
	assert.Empty(t, samples[2].Tags)
}

func TestParseStripsAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantTags []string
	}{
		{
			name:     "trailing annotation",
			line:     "1767225600 work email [missed ping, filled in later]",
			wantTags: []string{"work", "email"},
		},
		{
			name:     "annotation only",
			line:     "1767225600 [what was I doing?]",
			wantTags: nil,
		},
		{
			name:     "no annotation",
			line:     "1767225600 work",
			wantTags: []string{"work"},
		},
		{
			name:     "brackets mid-line stay",
			line:     "1767225600 work [note] ",
			wantTags: []string{"work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(PolicyStrict, time.UTC)
			samples, err := p.Parse(strings.NewReader(tt.line + "\n"))
			require.NoError(t, err)
			require.Len(t, samples, 1)
			if tt.wantTags == nil {
				assert.Empty(t, samples[0].Tags)
			} else {
				assert.Equal(t, tt.wantTags, samples[0].Tags)
			}
		})
	}
}

func TestParseMalformedStrict(t *testing.T) {
	input := "1767225600 work\nnot-a-timestamp sleep\n1767231000 work\n"
	p := New(PolicyStrict, time.UTC)

	_, err := p.Parse(strings.NewReader(input))
	require.Error(t, err)

	var lineErr *MalformedLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Contains(t, lineErr.Text, "not-a-timestamp")
}

func TestParseMalformedWarn(t *testing.T) {
	input := "1767225600 work\nnot-a-timestamp sleep\n1767231000 work\n"
	p := New(PolicyWarn, time.UTC)

	samples, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.Equal(t, 1, p.Skipped())
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "1767225600 work\n\n   \n1767228300 sleep\n"
	p := New(PolicyStrict, time.UTC)

	samples, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestParseFileMissing(t *testing.T) {
	p := New(PolicyStrict, time.UTC)
	_, err := p.ParseFile("/nonexistent/ping.log")
	assert.Error(t, err)
}
