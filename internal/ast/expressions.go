package ast

import (
	"strings"

	"github.com/noxy-lang/noxy/internal/token"
)

// IntegerLiteral is an `Int` literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (e *IntegerLiteral) Pos() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) String() string      { return e.Token.Literal }
func (*IntegerLiteral) expressionNode()       {}

// FloatLiteral is a `Float` literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (e *FloatLiteral) Pos() token.Position { return e.Token.Pos }
func (e *FloatLiteral) String() string      { return e.Token.Literal }
func (*FloatLiteral) expressionNode()       {}

// StringLiteral is a plain double-quoted string.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return `"` + e.Value + `"` }
func (*StringLiteral) expressionNode()       {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BooleanLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}
func (*BooleanLiteral) expressionNode() {}

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NullLiteral) String() string      { return "null" }
func (*NullLiteral) expressionNode()       {}

// Identifier references a variable, function, struct, module alias, or
// constant by name.
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Name }
func (*Identifier) expressionNode()       {}

// FStringHole is one evaluated-and-formatted substitution inside an
// FStringLiteral.
type FStringHole struct {
	Expr Expression
	Spec string // raw format spec, "" if absent
}

// FStringLiteral is a formatted string literal, pre-split at lex time into
// literal runs and holes (spec.md §4.1, §9).
type FStringLiteral struct {
	Token  token.Token
	Chunks []fStringPart // ordered literal/hole sequence
}

// fStringPart is one element of an FStringLiteral's ordered body.
type fStringPart struct {
	Literal string
	Hole    *FStringHole
}

// Parts returns the ordered literal/hole sequence.
func (e *FStringLiteral) Parts() []fStringPart { return e.Chunks }

// AppendLiteral appends a literal chunk.
func (e *FStringLiteral) AppendLiteral(s string) {
	e.Chunks = append(e.Chunks, fStringPart{Literal: s})
}

// AppendHole appends a hole.
func (e *FStringLiteral) AppendHole(h *FStringHole) {
	e.Chunks = append(e.Chunks, fStringPart{Hole: h})
}

func (e *FStringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *FStringLiteral) String() string {
	var sb strings.Builder
	sb.WriteByte('f')
	sb.WriteByte('"')
	for _, c := range e.Chunks {
		if c.Hole != nil {
			sb.WriteByte('{')
			sb.WriteString(c.Hole.Expr.String())
			if c.Hole.Spec != "" {
				sb.WriteByte(':')
				sb.WriteString(c.Hole.Spec)
			}
			sb.WriteByte('}')
		} else {
			sb.WriteString(c.Literal)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
func (*FStringLiteral) expressionNode() {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ArrayLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*ArrayLiteral) expressionNode() {}

// MapEntry is one `key: value` pair inside a MapLiteral.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLiteral is `{k1: v1, k2: v2, ...}`, including the empty map `{}`.
type MapLiteral struct {
	Token   token.Token
	Entries []MapEntry
}

func (e *MapLiteral) Pos() token.Position { return e.Token.Pos }
func (e *MapLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		parts[i] = entry.Key.String() + ": " + entry.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*MapLiteral) expressionNode() {}

// ZerosExpr is `zeros(n)`.
type ZerosExpr struct {
	Token token.Token
	Count Expression
}

func (e *ZerosExpr) Pos() token.Position { return e.Token.Pos }
func (e *ZerosExpr) String() string      { return "zeros(" + e.Count.String() + ")" }
func (*ZerosExpr) expressionNode()       {}

// RefExpr is `ref expr`, taking a reference to a struct-valued l-value
// (spec.md §4.3).
type RefExpr struct {
	Token  token.Token
	Target Expression
}

func (e *RefExpr) Pos() token.Position { return e.Token.Pos }
func (e *RefExpr) String() string      { return "ref " + e.Target.String() }
func (*RefExpr) expressionNode()       {}

// UnaryExpr is a prefix `!` or `-` application.
type UnaryExpr struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *UnaryExpr) String() string      { return e.Operator + e.Operand.String() }
func (*UnaryExpr) expressionNode()       {}

// BinaryExpr is an infix operator application.
type BinaryExpr struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}
func (*BinaryExpr) expressionNode() {}

// CallExpr is `callee(args...)`: a user function call, a struct
// constructor, or a built-in, disambiguated by the semantic analyzer
// (spec.md §4.3 "Calls").
type CallExpr struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
	Resolved CallKind // set by the analyzer
}

// CallKind tags how a CallExpr was resolved.
type CallKind int

const (
	CallUnresolved CallKind = iota
	CallFunction
	CallConstructor
	CallBuiltin
)

func (e *CallExpr) Pos() token.Position { return e.Token.Pos }
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (*CallExpr) expressionNode() {}

// FieldAccessExpr is `v.field`. When Value is an Identifier naming an
// imported module, the analyzer sets IsModuleAccess so the evaluator
// resolves Field against that module's namespace instead of a struct
// instance (spec.md §4.5 "Namespacing").
type FieldAccessExpr struct {
	Token          token.Token
	Value          Expression
	Field          string
	IsModuleAccess bool
}

func (e *FieldAccessExpr) Pos() token.Position { return e.Token.Pos }
func (e *FieldAccessExpr) String() string      { return e.Value.String() + "." + e.Field }
func (*FieldAccessExpr) expressionNode()       {}

// IndexExpr is `a[i]`.
type IndexExpr struct {
	Token token.Token
	Value Expression
	Index Expression
}

func (e *IndexExpr) Pos() token.Position { return e.Token.Pos }
func (e *IndexExpr) String() string {
	return e.Value.String() + "[" + e.Index.String() + "]"
}
func (*IndexExpr) expressionNode() {}

// GroupedExpr is a parenthesized expression, kept only to preserve `(expr)`
// in String(); it has no semantic effect beyond disambiguating precedence
// during parsing.
type GroupedExpr struct {
	Token token.Token
	Inner Expression
}

func (e *GroupedExpr) Pos() token.Position { return e.Token.Pos }
func (e *GroupedExpr) String() string      { return "(" + e.Inner.String() + ")" }
func (*GroupedExpr) expressionNode()       {}
