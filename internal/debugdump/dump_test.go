package debugdump

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/parser"
	"github.com/noxy-lang/noxy/internal/token"
)

func TestDumpProducesQueryableTokensAndAST(t *testing.T) {
	const file = "<test>"
	const source = "global x: int = 1\n"

	p := parser.New(lexer.New(file, source), file, source)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	lx := lexer.New(file, source)
	var tokens []token.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	doc, err := Dump(tokens, prog)
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}

	firstType := gjson.Get(doc, "tokens.0.type").String()
	if firstType != "global" {
		t.Errorf("tokens.0.type = %q, want %q", firstType, "global")
	}
	astDump := gjson.Get(doc, "ast").String()
	if !strings.Contains(astDump, "global x") {
		t.Errorf("ast dump missing declaration, got %q", astDump)
	}
}
