package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tagvis/internal/core/model"
	"tagvis/internal/util"
)

// Policy decides what happens when a log line cannot be parsed.
type Policy string

const (
	// PolicyStrict aborts the run on the first malformed line.
	PolicyStrict Policy = "strict"
	// PolicyWarn skips malformed lines and counts them.
	PolicyWarn Policy = "warn"
)

// MalformedLineError reports an unparsable log line by its 1-based number.
type MalformedLineError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed log line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// Trailing bracketed annotations carry free text and are discarded before
// tokenizing.
var annotationRe = regexp.MustCompile(`\s*\[.*?\]\s*$`)

// Parser reads a ping log into samples. One line per ping:
// "<unix-seconds> <tag1> <tag2> ... [optional annotation]".
type Parser struct {
	policy   Policy
	location *time.Location
	skipped  int
}

// New creates a Parser resolving timestamps in the given location.
func New(policy Policy, location *time.Location) *Parser {
	if location == nil {
		location = time.Local
	}
	return &Parser{policy: policy, location: location}
}

// ParseFile opens, fully consumes and closes the log file.
func (p *Parser) ParseFile(path string) ([]model.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	samples, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Parse consumes log lines from r and returns the samples in file order.
func (p *Parser) Parse(r io.Reader) ([]model.Sample, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var samples []model.Sample
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := annotationRe.ReplaceAllString(scanner.Text(), "")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		ts, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			lerr := &MalformedLineError{Line: lineNo, Text: scanner.Text(), Err: err}
			if p.policy == PolicyStrict {
				return nil, lerr
			}
			p.skipped++
			util.LogWarnf("Skipping %v", lerr)
			continue
		}

		samples = append(samples, model.Sample{
			Time: time.Unix(ts, 0).In(p.location),
			Tags: fields[1:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	util.LogDebugf("Parsed %d samples from %d lines (%d skipped)", len(samples), lineNo, p.skipped)
	return samples, nil
}

// Skipped reports how many malformed lines were dropped under PolicyWarn.
func (p *Parser) Skipped() int {
	return p.skipped
}
