// Package diag collects compiler diagnostics and owns the shared error counter
// that every pass of one compilation reports into.
package diag

import (
	"errors"
	"fmt"
	"io"
)

// Fatal conditions. These abort the compilation instead of being counted.
var (
	ErrParamLimit = errors.New("function parameter limit exceeded")
	ErrErrorLimit = errors.New("error limit exceeded")
)

// Kind classifies a diagnostic
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	}
	return "?"
}

// Diagnostic is one reported error
type Diagnostic struct {
	Kind   Kind
	Line   int
	Column int
	Msg    string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Msg // not tied to a source position
	}
	return fmt.Sprintf("line %d, col %d: %s", d.Line, d.Column, d.Msg)
}

// Reporter records diagnostics and echoes them to a writer.
// A nil writer discards the echo but still counts.
type Reporter struct {
	w     io.Writer
	diags []Diagnostic
}

// NewReporter creates a Reporter writing to w
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Errorf records a diagnostic at the given position
func (r *Reporter) Errorf(kind Kind, line, col int, format string, args ...any) {
	d := Diagnostic{Kind: kind, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
	r.diags = append(r.diags, d)
	if r.w != nil {
		fmt.Fprintf(r.w, "error: %s\n", d)
	}
}

// Count returns the number of errors reported so far
func (r *Reporter) Count() int {
	return len(r.diags)
}

// CountKind returns the number of errors of one kind
func (r *Reporter) CountKind(kind Kind) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Diagnostics returns all recorded diagnostics in report order
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}
