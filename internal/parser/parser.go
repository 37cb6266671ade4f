// Package parser implements Noxy's recursive-descent parser with explicit
// precedence-climbing functions, one per level of spec.md §4.2's table.
//
// Comparison operators are deliberately non-associative: parseComparison
// rejects a second comparison operator immediately following the first,
// so `a < b < c` is a syntax error rather than `(a < b) < c`.
package parser

import (
	"fmt"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/errors"
	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/token"
)

// Error is a single parse error (spec.md §4.2 "Failures").
type Error struct {
	Pos      token.Position
	Expected string
	Found    token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: ParseError: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Parser consumes a token stream and builds an *ast.Program. It reports
// only the first error encountered (spec.md §4.2: "succeeds over the whole
// file or reports the first error").
type Parser struct {
	source string
	file   string

	next func() token.Token // token source; swapped out when parsing f-string holes

	cur  token.Token
	peek token.Token

	err *Error
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, file, source string) *Parser {
	p := &Parser{file: file, source: source, next: l.NextToken}
	p.advance()
	p.advance()
	return p
}

// Err returns the first parse error, or nil if parsing succeeded.
func (p *Parser) Err() *Error { return p.err }

// Diagnostics converts Err into the shared errors.List form, empty if
// parsing succeeded.
func (p *Parser) Diagnostics() errors.List {
	if p.err == nil {
		return nil
	}
	return errors.List{errors.New(errors.Parse, p.err.Pos, p.source, "expected %s, found %s", p.err.Expected, p.err.Found)}
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.next()
}

func (p *Parser) failExpected(expected string) {
	if p.err != nil {
		return
	}
	p.err = &Error{Pos: p.cur.Pos, Expected: expected, Found: p.cur}
}

func (p *Parser) failAt(pos token.Position, expected string, found token.Token) {
	if p.err != nil {
		return
	}
	p.err = &Error{Pos: pos, Expected: expected, Found: found}
}

// expect asserts the current token has type t, consuming it; otherwise it
// records a parse error and leaves the cursor in place.
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.failExpected(t.String())
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) failed() bool { return p.err != nil }

// ParseProgram parses the full token stream into a Program. On the first
// error it stops walking further statements; Err() reports the failure.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}
