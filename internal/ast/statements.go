package ast

import (
	"strings"

	"github.com/noxy-lang/noxy/internal/token"
)

// LetStmt declares a local binding in the innermost scope (spec.md §4.4.2).
type LetStmt struct {
	Token token.Token
	Name  string
	Type  TypeExpr
	Value Expression
}

func (s *LetStmt) Pos() token.Position { return s.Token.Pos }
func (s *LetStmt) String() string {
	return "let " + s.Name + ": " + s.Type.String() + " = " + s.Value.String()
}
func (*LetStmt) statementNode() {}

// GlobalStmt declares a top-level binding, initialized exactly once when
// first evaluated (spec.md §4.4.2, §8 property 6).
type GlobalStmt struct {
	Token token.Token
	Name  string
	Type  TypeExpr
	Value Expression
}

func (s *GlobalStmt) Pos() token.Position { return s.Token.Pos }
func (s *GlobalStmt) String() string {
	return "global " + s.Name + ": " + s.Type.String() + " = " + s.Value.String()
}
func (*GlobalStmt) statementNode() {}

// Param is one function parameter. ByRef marks the `ref T` passing-mode
// modifier (SPEC_FULL.md §A), distinct from a `Ref(T)` struct-reference
// parameter type.
type Param struct {
	Name  string
	Type  TypeExpr
	ByRef bool
}

// FuncDecl declares a function (spec.md §4.3).
type FuncDecl struct {
	Token      token.Token
	Name       string
	Params     []Param
	ReturnType TypeExpr // nil means Void
	Body       *BlockStmt
}

func (s *FuncDecl) Pos() token.Position { return s.Token.Pos }
func (s *FuncDecl) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		prefix := ""
		if p.ByRef {
			prefix = "ref "
		}
		parts[i] = p.Name + ": " + prefix + p.Type.String()
	}
	ret := "void"
	if s.ReturnType != nil {
		ret = s.ReturnType.String()
	}
	return "func " + s.Name + "(" + strings.Join(parts, ", ") + ") -> " + ret + " " + s.Body.String() + " end"
}
func (*FuncDecl) statementNode() {}

// Field is one struct field declaration.
type Field struct {
	Name string
	Type TypeExpr
}

// StructDecl declares a named record type (spec.md §4.3).
type StructDecl struct {
	Token  token.Token
	Name   string
	Fields []Field
}

func (s *StructDecl) Pos() token.Position { return s.Token.Pos }
func (s *StructDecl) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ":" + f.Type.String()
	}
	return "struct " + s.Name + " " + strings.Join(parts, ", ") + " end"
}
func (*StructDecl) statementNode() {}

// BlockStmt groups statements that introduce a nested scope (spec.md §3.3).
type BlockStmt struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStmt) Pos() token.Position { return s.Token.Pos }
func (s *BlockStmt) String() string {
	var sb strings.Builder
	for _, st := range s.Statements {
		sb.WriteString(st.String())
		sb.WriteString("; ")
	}
	return sb.String()
}
func (*BlockStmt) statementNode() {}

// IfStmt is `if cond then ... [else ...] end`.
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      *BlockStmt
	Else      *BlockStmt // nil if absent
}

func (s *IfStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfStmt) String() string {
	str := "if " + s.Condition.String() + " then " + s.Then.String()
	if s.Else != nil {
		str += "else " + s.Else.String()
	}
	return str + "end"
}
func (*IfStmt) statementNode() {}

// WhileStmt is `while cond do ... end`.
type WhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStmt
}

func (s *WhileStmt) Pos() token.Position { return s.Token.Pos }
func (s *WhileStmt) String() string {
	return "while " + s.Condition.String() + " do " + s.Body.String() + "end"
}
func (*WhileStmt) statementNode() {}

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	Token token.Token
	Value Expression // nil means bare `return`
}

func (s *ReturnStmt) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}
func (*ReturnStmt) statementNode() {}

// BreakStmt is `break`.
type BreakStmt struct {
	Token token.Token
}

func (s *BreakStmt) Pos() token.Position { return s.Token.Pos }
func (s *BreakStmt) String() string      { return "break" }
func (*BreakStmt) statementNode()        {}

// LValue is an assignable expression: an Identifier, FieldAccessExpr, or
// IndexExpr, validated by the analyzer (spec.md §4.2 "L-values").
type LValue = Expression

// AssignStmt is `lvalue = expr`.
type AssignStmt struct {
	Token  token.Token
	Target LValue
	Value  Expression
}

func (s *AssignStmt) Pos() token.Position { return s.Token.Pos }
func (s *AssignStmt) String() string {
	return s.Target.String() + " = " + s.Value.String()
}
func (*AssignStmt) statementNode() {}

// ExpressionStmt wraps an expression used for its side effect (e.g. a bare
// call to print).
type ExpressionStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStmt) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStmt) String() string      { return s.Expr.String() }
func (*ExpressionStmt) statementNode()        {}

// ImportKind distinguishes the four `use` forms (spec.md §4.5).
type ImportKind int

const (
	ImportNamespace ImportKind = iota // use path [as alias]
	ImportSelect                      // use path select name1, name2
	ImportWildcard                    // use path select *
)

// UseStmt is a module import directive.
type UseStmt struct {
	Token token.Token
	Path  []string // dot-separated path segments
	Kind  ImportKind
	Alias string   // set when Kind == ImportNamespace and `as` was used
	Names []string // set when Kind == ImportSelect
}

func (s *UseStmt) Pos() token.Position { return s.Token.Pos }
func (s *UseStmt) String() string {
	path := strings.Join(s.Path, ".")
	switch s.Kind {
	case ImportSelect:
		return "use " + path + " select " + strings.Join(s.Names, ", ")
	case ImportWildcard:
		return "use " + path + " select *"
	default:
		if s.Alias != "" {
			return "use " + path + " as " + s.Alias
		}
		return "use " + path
	}
}
func (*UseStmt) statementNode() {}
