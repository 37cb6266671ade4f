package parser

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// production (spec.md §4.2 "Statements").
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.LET:
		return p.parseLetStmt()
	case token.GLOBAL:
		return p.parseGlobalStmt()
	case token.FUNC:
		return p.parseFuncDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		tok := p.cur
		p.advance()
		return &ast.BreakStmt{Token: tok}
	case token.USE:
		return p.parseUseStmt()
	default:
		return p.parseAssignmentOrExpressionStmt()
	}
}

// parseBlockUntil parses statements until the current token is one of the
// given terminators (not consumed), introducing a nested scope
// (spec.md §3.3).
func (p *Parser) parseBlockUntil(terminators ...token.Type) *ast.BlockStmt {
	tok := p.cur
	block := &ast.BlockStmt{Token: tok}
	for !p.failed() && !p.atAny(terminators...) && p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block
}

func (p *Parser) atAny(types ...token.Type) bool {
	for _, t := range types {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) parseLetStmt() ast.Statement {
	tok := p.cur
	p.advance()
	if p.cur.Type != token.IDENT {
		p.failExpected("identifier")
		return nil
	}
	name := p.cur.Literal
	p.advance()
	p.expect(token.COLON)
	typ := p.parseTypeExpr()
	p.expect(token.ASSIGN)
	val := p.parseExpression()
	return &ast.LetStmt{Token: tok, Name: name, Type: typ, Value: val}
}

func (p *Parser) parseGlobalStmt() ast.Statement {
	tok := p.cur
	p.advance()
	if p.cur.Type != token.IDENT {
		p.failExpected("identifier")
		return nil
	}
	name := p.cur.Literal
	p.advance()
	p.expect(token.COLON)
	typ := p.parseTypeExpr()
	p.expect(token.ASSIGN)
	val := p.parseExpression()
	return &ast.GlobalStmt{Token: tok, Name: name, Type: typ, Value: val}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression()
	p.expect(token.THEN)
	then := p.parseBlockUntil(token.ELSE, token.END)
	var elseBlock *ast.BlockStmt
	if p.cur.Type == token.ELSE {
		p.advance()
		elseBlock = p.parseBlockUntil(token.END)
	}
	p.expect(token.END)
	return &ast.IfStmt{Token: tok, Condition: cond, Then: then, Else: elseBlock}
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression()
	p.expect(token.DO)
	body := p.parseBlockUntil(token.END)
	p.expect(token.END)
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	p.advance()
	if p.atAny(token.END, token.ELSE, token.EOF) {
		return &ast.ReturnStmt{Token: tok}
	}
	val := p.parseExpression()
	return &ast.ReturnStmt{Token: tok, Value: val}
}

// parseAssignmentOrExpressionStmt parses an l-value followed by `=` (an
// AssignStmt) or a bare expression statement such as a call to print
// (spec.md §4.2 "L-values", "Statements").
func (p *Parser) parseAssignmentOrExpressionStmt() ast.Statement {
	tok := p.cur
	expr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if p.cur.Type == token.ASSIGN {
		p.advance()
		val := p.parseExpression()
		return &ast.AssignStmt{Token: tok, Target: expr, Value: val}
	}
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}

// parseUseStmt parses the four `use` forms (spec.md §4.5).
func (p *Parser) parseUseStmt() ast.Statement {
	tok := p.cur
	p.advance()

	if p.cur.Type != token.IDENT {
		p.failExpected("module path")
		return nil
	}
	var path []string
	path = append(path, p.cur.Literal)
	p.advance()
	for p.cur.Type == token.DOT {
		p.advance()
		if p.cur.Type != token.IDENT {
			p.failExpected("module path segment")
			return nil
		}
		path = append(path, p.cur.Literal)
		p.advance()
	}

	switch p.cur.Type {
	case token.AS:
		p.advance()
		if p.cur.Type != token.IDENT {
			p.failExpected("alias identifier")
			return nil
		}
		alias := p.cur.Literal
		p.advance()
		return &ast.UseStmt{Token: tok, Path: path, Kind: ast.ImportNamespace, Alias: alias}
	case token.SELECT:
		p.advance()
		if p.cur.Type == token.ASTERISK {
			p.advance()
			return &ast.UseStmt{Token: tok, Path: path, Kind: ast.ImportWildcard}
		}
		var names []string
		for {
			if p.cur.Type != token.IDENT {
				p.failExpected("imported symbol name")
				return nil
			}
			names = append(names, p.cur.Literal)
			p.advance()
			if p.cur.Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		return &ast.UseStmt{Token: tok, Path: path, Kind: ast.ImportSelect, Names: names}
	default:
		return &ast.UseStmt{Token: tok, Path: path, Kind: ast.ImportNamespace}
	}
}
