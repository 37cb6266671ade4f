package parser

import (
	"strconv"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

var primitiveNames = map[token.Type]string{
	token.INT_KW:    "int",
	token.FLOAT_KW:  "float",
	token.STRING_KW: "string",
	token.STR_KW:    "string",
	token.BOOL_KW:   "bool",
	token.VOID_KW:   "void",
}

// parseTypeExpr parses a full type, including trailing `[]`/`[N]` array
// suffixes (spec.md §4.2 "Type syntax").
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	base := p.parseBaseTypeExpr()
	if p.failed() {
		return base
	}
	for p.cur.Type == token.LBRACKET {
		tok := p.cur
		p.advance()
		if p.cur.Type == token.RBRACKET {
			p.advance()
			base = &ast.ArrayTypeExpr{Token: tok, Elem: base, Fixed: false}
			continue
		}
		if p.cur.Type != token.INT {
			p.failExpected("array size integer literal")
			return base
		}
		size, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			p.failExpected("valid integer literal")
			return base
		}
		p.advance()
		p.expect(token.RBRACKET)
		base = &ast.ArrayTypeExpr{Token: tok, Elem: base, Fixed: true, Size: size}
	}
	return base
}

// parseBaseTypeExpr parses a type without any array suffix: a primitive, a
// named struct type, `map[K, V]` (where "map" is a contextual keyword
// recognized only in type position), or `ref T`.
func (p *Parser) parseBaseTypeExpr() ast.TypeExpr {
	switch p.cur.Type {
	case token.REF:
		tok := p.cur
		p.advance()
		inner := p.parseTypeExpr()
		return &ast.RefTypeExpr{Token: tok, Inner: inner}
	case token.INT_KW, token.FLOAT_KW, token.STRING_KW, token.STR_KW, token.BOOL_KW, token.VOID_KW:
		tok := p.cur
		p.advance()
		return &ast.PrimitiveTypeExpr{Token: tok, Name: primitiveNames[tok.Type]}
	case token.IDENT:
		if p.cur.Literal == "map" && p.peek.Type == token.LBRACKET {
			tok := p.cur
			p.advance()
			p.expect(token.LBRACKET)
			key := p.parseTypeExpr()
			p.expect(token.COMMA)
			val := p.parseTypeExpr()
			p.expect(token.RBRACKET)
			return &ast.MapTypeExpr{Token: tok, Key: key, Value: val}
		}
		tok := p.cur
		p.advance()
		return &ast.NamedTypeExpr{Token: tok, Name: tok.Literal}
	default:
		p.failExpected("type")
		return &ast.PrimitiveTypeExpr{Token: p.cur, Name: "void"}
	}
}
