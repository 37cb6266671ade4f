// Package debugdump serializes a compiled program's token stream and AST
// to JSON for the `--debug` CLI flag (SPEC_FULL.md §B). It builds the
// document incrementally with github.com/tidwall/sjson rather than
// reflecting over Go structs, so the dump's shape is controlled entirely
// by this package, not by internal/ast's field layout.
package debugdump

import (
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/token"
)

// Dump renders tokens and prog as one JSON document:
//
//	{"tokens": [{"type": "...", "literal": "...", "line": N, "column": N}, ...],
//	 "ast": "<program.String()>"}
//
// The AST is carried as its existing String() rendering rather than a
// node-by-node tree, since internal/ast has no separate structured
// serialization and none is needed beyond what `gjson.Get(doc, "ast")`
// can already inspect in tests.
func Dump(tokens []token.Token, prog *ast.Program) (string, error) {
	doc := "{}"
	var err error
	for i, tok := range tokens {
		doc, err = sjson.Set(doc, path(i, "type"), tok.Type.String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path(i, "literal"), tok.Literal)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path(i, "line"), tok.Pos.Line)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path(i, "column"), tok.Pos.Column)
		if err != nil {
			return "", err
		}
	}
	doc, err = sjson.Set(doc, "ast", prog.String())
	if err != nil {
		return "", err
	}
	return doc, nil
}

func path(i int, field string) string {
	return "tokens." + strconv.Itoa(i) + "." + field
}
