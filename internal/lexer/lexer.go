// Package lexer scans Noxy source text into a token stream (spec.md §4.1).
//
// # Unicode and Position
//
// Source bytes are NFC-normalized before scanning (golang.org/x/text's
// unicode/norm) so that combining-mark sequences compare equal regardless
// of the input's normalization form. Column positions count Unicode code
// points (runes), not bytes: a multi-byte rune like 'é' or '中' advances the
// column by exactly one, matching the teacher's documented rune-counting
// discipline.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/noxy-lang/noxy/internal/token"
)

// Error is a lexical error: an unterminated literal, bad escape or stray
// character (spec.md §4.1 "Failure").
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: LexError: %s", e.Pos, e.Message)
}

// Lexer turns source text into a stream of tokens via NextToken.
type Lexer struct {
	file   string
	input  string
	errors []*Error

	pos     int // byte offset of ch
	readPos int // byte offset of the next rune
	line    int
	column  int
	ch      rune
}

// New creates a Lexer for the named file's content.
func New(file, input string) *Lexer {
	normalized := norm.NFC.String(input)
	l := &Lexer{file: file, input: normalized, line: 1, column: 0}
	l.advance()
	return l
}

// Errors returns every lexical error encountered so far.
func (l *Lexer) Errors() []*Error { return l.errors }

func (l *Lexer) advance() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.pos = l.readPos
	l.readPos += size
	l.ch = r
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekRune() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) here() token.Position {
	return token.Position{File: l.file, Line: l.line, Column: l.column}
}

func (l *Lexer) errorf(pos token.Position, format string, args ...any) {
	l.errors = append(l.errors, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// NextToken scans and returns the next token, EOF once the input is
// exhausted.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.here()

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Pos: pos}
	}

	switch {
	case l.ch == 'f' && l.peekRune() == '"':
		l.advance() // consume 'f'
		return l.readFString(pos)
	case isIdentStart(l.ch):
		return l.readIdentifier(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '"':
		return l.readString(pos)
	}

	return l.readOperator(pos)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.advance()
	}
	lit := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.advance()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekRune()) {
		isFloat = true
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
	}
	lit := l.input[start:l.pos]
	if isFloat {
		return token.Token{Type: token.FLOAT, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.INT, Literal: lit, Pos: pos}
}

// readEscapedString scans a double-quoted literal body (the opening quote
// has not yet been consumed), honoring \n \t \" \\ and, when inFString,
// also \{ \}. It returns the decoded text.
func (l *Lexer) readEscapedString(pos token.Position, inFString bool) (string, bool) {
	l.advance() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.errorf(pos, "unterminated string literal")
			return sb.String(), false
		}
		if l.ch == '"' {
			l.advance()
			return sb.String(), true
		}
		if l.ch == '\\' {
			esc := l.peekRune()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '{':
				if inFString {
					sb.WriteByte('{')
					break
				}
				l.errorf(l.here(), "unknown escape sequence \\%c", esc)
			case '}':
				if inFString {
					sb.WriteByte('}')
					break
				}
				l.errorf(l.here(), "unknown escape sequence \\%c", esc)
			default:
				l.errorf(l.here(), "unknown escape sequence \\%c", esc)
			}
			l.advance() // backslash
			l.advance() // escaped char
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
}

func (l *Lexer) readString(pos token.Position) token.Token {
	s, _ := l.readEscapedString(pos, false)
	return token.Token{Type: token.STRING, Literal: s, Pos: pos}
}

// readFString scans an f-string body, pre-splitting it into literal chunks
// and holes (spec.md §4.1). The opening 'f' has already been consumed;
// l.ch is the opening '"'.
func (l *Lexer) readFString(pos token.Position) token.Token {
	l.advance() // consume opening quote
	var chunks []token.FChunk
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			chunks = append(chunks, token.FChunk{Literal: lit.String()})
			lit.Reset()
		}
	}

	for {
		if l.ch == 0 || l.ch == '\n' {
			l.errorf(pos, "unterminated f-string literal")
			break
		}
		if l.ch == '"' {
			l.advance()
			break
		}
		if l.ch == '\\' {
			esc := l.peekRune()
			switch esc {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			case '"':
				lit.WriteByte('"')
			case '\\':
				lit.WriteByte('\\')
			case '{':
				lit.WriteByte('{')
			case '}':
				lit.WriteByte('}')
			default:
				l.errorf(l.here(), "unknown escape sequence \\%c", esc)
			}
			l.advance()
			l.advance()
			continue
		}
		if l.ch == '{' {
			flush()
			chunks = append(chunks, l.readHole())
			continue
		}
		lit.WriteRune(l.ch)
		l.advance()
	}
	flush()

	return token.Token{Type: token.FSTRING, Pos: pos, Chunks: chunks}
}

// readHole scans `{expr[:spec]}`, re-lexing the expression into its own
// sub-token stream (spec.md §4.1, §4.2, §9 "F-string internal
// representation"). l.ch is '{' on entry.
func (l *Lexer) readHole() token.FChunk {
	holePos := l.here()
	l.advance() // consume '{'

	var exprSrc strings.Builder
	var spec string
	depth := 1
	for depth > 0 {
		if l.ch == 0 || l.ch == '\n' {
			l.errorf(holePos, "unterminated f-string hole")
			break
		}
		if l.ch == '{' {
			depth++
			exprSrc.WriteRune(l.ch)
			l.advance()
			continue
		}
		if l.ch == '}' {
			depth--
			if depth == 0 {
				l.advance()
				break
			}
			exprSrc.WriteRune(l.ch)
			l.advance()
			continue
		}
		if l.ch == ':' && depth == 1 {
			l.advance()
			var specSb strings.Builder
			for l.ch != '}' && l.ch != 0 && l.ch != '\n' {
				specSb.WriteRune(l.ch)
				l.advance()
			}
			spec = specSb.String()
			if l.ch == '}' {
				l.advance()
			}
			break
		}
		exprSrc.WriteRune(l.ch)
		l.advance()
	}

	sub := New(l.file, exprSrc.String())
	var toks []token.Token
	for {
		t := sub.NextToken()
		if t.Type == token.EOF {
			break
		}
		toks = append(toks, t)
	}
	l.errors = append(l.errors, sub.errors...)

	return token.FChunk{Hole: &token.FHole{Tokens: toks, Spec: spec, Pos: holePos}}
}

type opRule struct {
	ch1, ch2 rune
	two      bool
	t        token.Type
}

var twoCharOps = []opRule{
	{'=', '=', true, token.EQ},
	{'!', '=', true, token.NOT_EQ},
	{'<', '=', true, token.LT_EQ},
	{'>', '=', true, token.GT_EQ},
	{'-', '>', true, token.ARROW},
}

var oneCharOps = map[rune]token.Type{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.ASTERISK,
	'/': token.SLASH,
	'%': token.PERCENT,
	'<': token.LT,
	'>': token.GT,
	'=': token.ASSIGN,
	'!': token.BANG,
	'&': token.AMP,
	'|': token.PIPE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	':': token.COLON,
	'.': token.DOT,
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	for _, rule := range twoCharOps {
		if l.ch == rule.ch1 && l.peekRune() == rule.ch2 {
			lit := string(l.ch) + string(rule.ch2)
			l.advance()
			l.advance()
			return token.Token{Type: rule.t, Literal: lit, Pos: pos}
		}
	}
	if t, ok := oneCharOps[l.ch]; ok {
		lit := string(l.ch)
		l.advance()
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}

	lit := string(l.ch)
	l.errorf(pos, "unexpected character %q", lit)
	l.advance()
	return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
}
