package parser

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

// parseFuncDecl parses `func name(params) -> returnType body end`. The
// `-> returnType` suffix is optional; an omitted return type means Void
// (spec.md §4.2, §4.3).
func (p *Parser) parseFuncDecl() ast.Statement {
	tok := p.cur
	p.advance()
	if p.cur.Type != token.IDENT {
		p.failExpected("function name")
		return nil
	}
	name := p.cur.Literal
	p.advance()

	p.expect(token.LPAREN)
	var params []ast.Param
	for p.cur.Type != token.RPAREN && !p.failed() {
		params = append(params, p.parseParam())
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	var retType ast.TypeExpr
	if p.cur.Type == token.ARROW {
		p.advance()
		retType = p.parseTypeExpr()
	}

	body := p.parseBlockUntil(token.END)
	p.expect(token.END)

	return &ast.FuncDecl{Token: tok, Name: name, Params: params, ReturnType: retType, Body: body}
}

// parseParam parses `name: [ref] type`. The `ref` modifier here is the
// by-reference parameter-passing mode, not a Ref(T) value type
// (SPEC_FULL.md §A).
func (p *Parser) parseParam() ast.Param {
	if p.cur.Type != token.IDENT {
		p.failExpected("parameter name")
		return ast.Param{}
	}
	name := p.cur.Literal
	p.advance()
	p.expect(token.COLON)

	byRef := false
	if p.cur.Type == token.REF {
		byRef = true
		p.advance()
	}
	typ := p.parseTypeExpr()
	return ast.Param{Name: name, Type: typ, ByRef: byRef}
}

// parseStructDecl parses `struct Name field:type, field:type, ... end`.
// The comma between fields is optional, so fields may also be separated by
// whitespace or newlines alone.
func (p *Parser) parseStructDecl() ast.Statement {
	tok := p.cur
	p.advance()
	if p.cur.Type != token.IDENT {
		p.failExpected("struct name")
		return nil
	}
	name := p.cur.Literal
	p.advance()

	var fields []ast.Field
	for p.cur.Type != token.END && !p.failed() {
		if p.cur.Type != token.IDENT {
			p.failExpected("field name")
			return nil
		}
		fieldName := p.cur.Literal
		p.advance()
		p.expect(token.COLON)
		fieldType := p.parseTypeExpr()
		fields = append(fields, ast.Field{Name: fieldName, Type: fieldType})
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.END)

	return &ast.StructDecl{Token: tok, Name: name, Fields: fields}
}
