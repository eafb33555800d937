// Package formatter renders scan output: matched lines with their optional
// source and line-number prefixes, bare source names for files-only runs,
// and the findings list handed to an external editor session.
package formatter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	fileStyle = color.New(color.FgCyan, color.Bold)
	lineStyle = color.New(color.FgHiBlue, color.Bold)
)

// Report writes per-hit output for one source. Prefixes follow the classic
// grep shape `[source: ][lineno: ]text`; the source prefix is omitted for
// standard input and the line-number prefix is opt-in.
type Report struct {
	w           io.Writer
	source      string
	lineNumbers bool
}

// NewReport returns a Report for one source. source may be empty when the
// input is standard input.
func NewReport(w io.Writer, source string, lineNumbers bool) *Report {
	return &Report{w: w, source: source, lineNumbers: lineNumbers}
}

// Line reports one hit: a matched line, a string body, or a comment body.
func (r *Report) Line(lineno int, text string) error {
	if r.source != "" {
		if _, err := fileStyle.Fprintf(r.w, "%s: ", r.source); err != nil {
			return err
		}
	}
	if r.lineNumbers {
		if _, err := lineStyle.Fprintf(r.w, "%4d: ", lineno); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "%s\n", text)
	return err
}

// SourceName reports the source name alone, for files-only runs.
func (r *Report) SourceName() error {
	_, err := fileStyle.Fprintf(r.w, "%s\n", r.source)
	return err
}
