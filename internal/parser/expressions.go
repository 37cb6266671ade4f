package parser

import (
	"strconv"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

// parseExpression is the entry point at the lowest precedence, `|`
// (spec.md §4.2 table, level 1).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for !p.failed() && p.cur.Type == token.PIPE {
		tok := p.cur
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Token: tok, Operator: "|", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for !p.failed() && p.cur.Type == token.AMP {
		tok := p.cur
		p.advance()
		right := p.parseNot()
		left = &ast.BinaryExpr{Token: tok, Operator: "&", Left: left, Right: right}
	}
	return left
}

// parseNot handles unary `!`, level 3 — binding looser than comparison so
// that `!a < b` parses as `!(a < b)`.
func (p *Parser) parseNot() ast.Expression {
	if p.cur.Type == token.BANG {
		tok := p.cur
		p.advance()
		operand := p.parseNot()
		return &ast.UnaryExpr{Token: tok, Operator: "!", Operand: operand}
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Type]string{
	token.LT:     "<",
	token.GT:     ">",
	token.LT_EQ:  "<=",
	token.GT_EQ:  ">=",
	token.EQ:     "==",
	token.NOT_EQ: "!=",
}

// parseComparison handles the non-associative comparison tier, level 4.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	if p.failed() {
		return left
	}
	op, isCmp := comparisonOps[p.cur.Type]
	if !isCmp {
		return left
	}
	tok := p.cur
	p.advance()
	right := p.parseAdditive()
	node := &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}

	if _, stillCmp := comparisonOps[p.cur.Type]; stillCmp {
		p.failAt(p.cur.Pos, "non-chained expression (comparison operators cannot be chained)", p.cur)
	}
	return node
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for !p.failed() && (p.cur.Type == token.PLUS || p.cur.Type == token.MINUS) {
		tok := p.cur
		op := tok.Literal
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnaryMinus()
	for !p.failed() && (p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH || p.cur.Type == token.PERCENT) {
		tok := p.cur
		op := tok.Literal
		p.advance()
		right := p.parseUnaryMinus()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

// parseUnaryMinus handles prefix `-`, level 7.
func (p *Parser) parseUnaryMinus() ast.Expression {
	if p.cur.Type == token.MINUS {
		tok := p.cur
		p.advance()
		operand := p.parseUnaryMinus()
		return &ast.UnaryExpr{Token: tok, Operator: "-", Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix handles `.field`, `[index]`, `(args...)`, level 8,
// left-associative and applied in source order (spec.md §4.2).
func (p *Parser) parsePostfix() ast.Expression {
	left := p.parsePrimary()
	for !p.failed() {
		switch p.cur.Type {
		case token.DOT:
			tok := p.cur
			p.advance()
			if p.cur.Type != token.IDENT {
				p.failExpected("field name")
				return left
			}
			field := p.cur.Literal
			p.advance()
			left = &ast.FieldAccessExpr{Token: tok, Value: left, Field: field}
		case token.LBRACKET:
			tok := p.cur
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			left = &ast.IndexExpr{Token: tok, Value: left, Index: idx}
		case token.LPAREN:
			tok := p.cur
			p.advance()
			var args []ast.Expression
			for p.cur.Type != token.RPAREN && !p.failed() {
				args = append(args, p.parseExpression())
				if p.cur.Type == token.COMMA {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
			left = &ast.CallExpr{Token: tok, Callee: left, Args: args}
		default:
			return left
		}
	}
	return left
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.failAt(tok.Pos, "valid integer literal", tok)
		}
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.failAt(tok.Pos, "valid float literal", tok)
		}
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.FSTRING:
		p.advance()
		return p.buildFString(tok)
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.GroupedExpr{Token: tok, Inner: inner}
	case token.LBRACKET:
		p.advance()
		var elems []ast.Expression
		for p.cur.Type != token.RBRACKET && !p.failed() {
			elems = append(elems, p.parseExpression())
			if p.cur.Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
		return &ast.ArrayLiteral{Token: tok, Elements: elems}
	case token.LBRACE:
		p.advance()
		var entries []ast.MapEntry
		for p.cur.Type != token.RBRACE && !p.failed() {
			key := p.parseExpression()
			p.expect(token.COLON)
			val := p.parseExpression()
			entries = append(entries, ast.MapEntry{Key: key, Value: val})
			if p.cur.Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACE)
		return &ast.MapLiteral{Token: tok, Entries: entries}
	case token.ZEROS:
		p.advance()
		p.expect(token.LPAREN)
		count := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.ZerosExpr{Token: tok, Count: count}
	case token.REF:
		p.advance()
		target := p.parsePostfix()
		return &ast.RefExpr{Token: tok, Target: target}
	default:
		p.failExpected("expression")
		return &ast.NullLiteral{Token: tok}
	}
}
