package lexer

import (
	"testing"

	"github.com/noxy-lang/noxy/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("test.nx", src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenOperatorsAndPunctuation(t *testing.T) {
	src := `let x: int = 1 + 2 * 3 / 4 % 5 == 6 != 7 <= 8 >= 9 -> ref !a & b | c (1,2) [3] {4} x.y`
	toks := collect(t, src)

	wantTypes := []token.Type{
		token.LET, token.IDENT, token.COLON, token.INT_KW, token.ASSIGN, token.INT,
		token.PLUS, token.INT, token.ASTERISK, token.INT, token.SLASH, token.INT,
		token.PERCENT, token.INT, token.EQ, token.INT, token.NOT_EQ, token.INT,
		token.LT_EQ, token.INT, token.GT_EQ, token.INT, token.ARROW, token.REF,
		token.BANG, token.IDENT, token.AMP, token.IDENT, token.PIPE, token.IDENT,
		token.LPAREN, token.INT, token.COMMA, token.INT, token.RPAREN,
		token.LBRACKET, token.INT, token.RBRACKET, token.LBRACE, token.INT, token.RBRACE,
		token.IDENT, token.DOT, token.IDENT,
		token.EOF,
	}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d:\n%v", len(toks), len(wantTypes), toks)
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, want)
		}
	}
}

func TestNumbers(t *testing.T) {
	toks := collect(t, "42 3.14 0 0.0")
	want := []struct {
		typ token.Type
		lit string
	}{
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.INT, "0"},
		{token.FLOAT, "0.0"},
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Literal != w.lit {
			t.Errorf("token %d: got %s(%q), want %s(%q)", i, toks[i].Type, toks[i].Literal, w.typ, w.lit)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := collect(t, `"a\nb\tc\"d\\e"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("got %s, want STRING", toks[0].Type)
	}
	want := "a\nb\tc\"d\\e"
	if toks[0].Literal != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("test.nx", `"abc`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
}

func TestKeywords(t *testing.T) {
	toks := collect(t, "let global func struct if then else end while do return break "+
		"int float string str bool void ref true false null use select zeros as")
	want := []token.Type{
		token.LET, token.GLOBAL, token.FUNC, token.STRUCT, token.IF, token.THEN,
		token.ELSE, token.END, token.WHILE, token.DO, token.RETURN, token.BREAK,
		token.INT_KW, token.FLOAT_KW, token.STRING_KW, token.STR_KW, token.BOOL_KW,
		token.VOID_KW, token.REF, token.TRUE, token.FALSE, token.NULL, token.USE,
		token.SELECT, token.ZEROS, token.AS, token.EOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestFStringChunksAndHoles(t *testing.T) {
	toks := collect(t, `f"n={n:05} {x}"`)
	if toks[0].Type != token.FSTRING {
		t.Fatalf("got %s", toks[0].Type)
	}
	chunks := toks[0].Chunks
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4: %+v", len(chunks), chunks)
	}
	if chunks[0].Literal != "n=" || chunks[0].Hole != nil {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if chunks[1].Hole == nil || chunks[1].Hole.Spec != "05" {
		t.Errorf("chunk 1 = %+v", chunks[1])
	}
	if len(chunks[1].Hole.Tokens) != 1 || chunks[1].Hole.Tokens[0].Literal != "n" {
		t.Errorf("hole 1 tokens = %+v", chunks[1].Hole.Tokens)
	}
	if chunks[2].Literal != " " {
		t.Errorf("chunk 2 literal = %q", chunks[2].Literal)
	}
}

func TestEmptyFString(t *testing.T) {
	toks := collect(t, `f""`)
	if len(toks[0].Chunks) != 0 {
		t.Errorf("expected no chunks, got %+v", toks[0].Chunks)
	}
}

func TestLineComment(t *testing.T) {
	toks := collect(t, "let x = 1 // trailing comment\nlet y = 2")
	var types []token.Type
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	// Comment must be fully skipped: two full "let x = 1" / "let y = 2" statements.
	count := 0
	for _, tp := range types {
		if tp == token.LET {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 'let' tokens, got %d in %v", count, types)
	}
}

func TestUnicodeColumns(t *testing.T) {
	l := New("test.nx", "// 🚀\nlet Δ = 1")
	var tok token.Token
	for {
		tok = l.NextToken()
		if tok.Type == token.IDENT {
			break
		}
	}
	if tok.Literal != "Δ" {
		t.Fatalf("got %q", tok.Literal)
	}
	if tok.Pos.Column != 5 {
		t.Errorf("got column %d, want 5", tok.Pos.Column)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("test.nx", "let x = @")
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			if tok.Literal != "@" {
				t.Errorf("got %q", tok.Literal)
			}
			return
		}
		if tok.Type == token.EOF {
			t.Fatal("expected ILLEGAL token before EOF")
		}
	}
}
