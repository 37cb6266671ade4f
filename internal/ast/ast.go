// Package ast defines the Noxy syntax tree produced by the parser
// (spec.md §4.2) and walked by the semantic analyzer and evaluator.
package ast

import "github.com/noxy-lang/noxy/internal/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is a top-level or block-level statement.
type Statement interface {
	Node
	statementNode()
}

// Expression produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr is parsed type syntax (spec.md §4.2 "Type syntax"), resolved to
// a types.Type by the semantic analyzer.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var sb []byte
	for _, s := range p.Statements {
		sb = append(sb, s.String()...)
		sb = append(sb, '\n')
	}
	return string(sb)
}
