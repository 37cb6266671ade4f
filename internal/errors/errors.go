// Package errors renders Noxy diagnostics with source context, following
// the taxonomy in spec.md §7: LexError, ParseError, TypeError, ModuleError
// and RuntimeError all carry a source span and a human message.
package errors

import (
	"fmt"
	"strings"

	"github.com/noxy-lang/noxy/internal/token"
)

// Kind tags which stage of the pipeline raised a Diagnostic.
type Kind string

const (
	Lex     Kind = "LexError"
	Parse   Kind = "ParseError"
	Type    Kind = "TypeError"
	Module  Kind = "ModuleError"
	Runtime Kind = "RuntimeError"
)

// Diagnostic is a single reported error: a kind, a source span and a
// message, plus the source text needed to render a caret.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
	Source  string
}

// New builds a Diagnostic. Source may be empty when no source text is
// available (e.g. a runtime error raised deep inside a built-in).
func New(kind Kind, pos token.Position, source, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		Source:  source,
	}
}

// Error implements the error interface with the §7 wire format:
// "<file>:<line>:<col>: <kind>: <message>".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos.String(), d.Kind, d.Message)
}

// Report renders the diagnostic with a source line and a caret pointing at
// the offending column, for terminal-friendly output.
func (d *Diagnostic) Report() string {
	var sb strings.Builder
	sb.WriteString(d.Error())
	sb.WriteString("\n")

	line := sourceLine(d.Source, d.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// List is an ordered collection of diagnostics. The static stages (lex,
// parse, type, module) gather into a List but only the first entry is
// guaranteed to be reported, per spec.md §7's "first error wins" policy.
type List []*Diagnostic

func (l List) Error() string {
	var sb strings.Builder
	for i, d := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// First returns the earliest-reported diagnostic, or nil if empty.
func (l List) First() *Diagnostic {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}
