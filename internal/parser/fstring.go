package parser

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

// buildFString converts a lexer-produced FSTRING token into an
// ast.FStringLiteral, parsing each hole's buffered tokens as a full
// expression (spec.md §9 "F-string internal representation": holes are
// parsed eagerly at parse time from the lexer's pre-split chunks, never by
// re-entering the lexer at runtime).
func (p *Parser) buildFString(tok token.Token) *ast.FStringLiteral {
	lit := &ast.FStringLiteral{Token: tok}
	for _, chunk := range tok.Chunks {
		if chunk.Hole == nil {
			lit.AppendLiteral(chunk.Literal)
			continue
		}
		expr := p.parseHoleExpression(chunk.Hole.Tokens, chunk.Hole.Pos)
		lit.AppendHole(&ast.FStringHole{Expr: expr, Spec: chunk.Hole.Spec})
	}
	return lit
}

// parseHoleExpression parses a hole's pre-lexed token slice as a standalone
// expression, reusing every *Parser method by feeding it from the buffered
// slice instead of a live lexer. Errors are attributed to holePos and
// propagate into the enclosing Parser's single error slot.
func (p *Parser) parseHoleExpression(toks []token.Token, holePos token.Position) ast.Expression {
	idx := 0
	feed := func() token.Token {
		if idx >= len(toks) {
			return token.Token{Type: token.EOF, Pos: holePos}
		}
		t := toks[idx]
		idx++
		return t
	}

	sub := &Parser{file: p.file, source: p.source, next: feed}
	sub.advance()
	sub.advance()

	expr := sub.parseExpression()
	if sub.err == nil && sub.cur.Type != token.EOF {
		sub.failAt(holePos, "end of f-string hole expression", sub.cur)
	}
	if sub.err != nil && p.err == nil {
		p.err = &Error{Pos: holePos, Expected: "valid f-string hole expression", Found: sub.err.Found}
	}
	return expr
}
