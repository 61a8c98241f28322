package compiler

import (
	"fmt"
	"strings"
)

// tokenKind discriminates the lexical items of zone source. Comments never
// surface as tokens and parentheses are consumed internally to suppress
// newline emission, so neither appears here.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNewline
	tokenText      // unquoted item: name, number, type mnemonic
	tokenString    // quoted character-string, escapes decoded
	tokenDirective // $ORIGIN, $TTL, $INCLUDE, ...
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "eof"
	case tokenNewline:
		return "newline"
	case tokenText:
		return "text"
	case tokenString:
		return "string"
	case tokenDirective:
		return "directive"
	}

	return fmt.Sprintf("tokenKind(%d)", int(k))
}

// token is one lexical item together with where it came from. Immutable
// once produced.
type token struct {
	kind tokenKind
	text string
	pos  Pos
}

// quoted returns true for tokens that originated as a quoted string. A
// quoted empty string is a legitimate rdata field whereas an empty text
// token cannot occur.
func (t token) quoted() bool {
	return t.kind == tokenString
}

// isNumber reports whether the token could serve as a decimal TTL.
func (t token) isNumber() bool {
	if t.kind != tokenText || len(t.text) == 0 {
		return false
	}
	for i := 0; i < len(t.text); i++ {
		if t.text[i] < '0' || t.text[i] > '9' {
			return false
		}
	}

	return true
}

// tokenizer produces the token stream for one source file. A fresh
// tokenizer is created per included file; no state is shared between
// files. Parenthesized continuations suppress newline tokens until the
// matching close paren so that a record may span physical lines.
type tokenizer struct {
	file string
	src  string
	off  int
	line int
	col  int

	parens int // open-paren depth; >0 suppresses newlines
}

func newTokenizer(file, src string) *tokenizer {
	return &tokenizer{file: file, src: src, line: 1, col: 1}
}

func (t *tokenizer) pos() Pos {
	return Pos{File: t.file, Line: t.line, Col: t.col}
}

func (t *tokenizer) advance() byte {
	c := t.src[t.off]
	t.off++
	if c == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}

	return c
}

// next returns the next token or a fatal lexical error. After an error or
// EOF the tokenizer must not be used again.
func (t *tokenizer) next() (token, *Error) {
	for t.off < len(t.src) {
		start := t.pos()
		c := t.src[t.off]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			t.advance()

		case c == ';': // Comment runs to end of line, newline handled next
			for t.off < len(t.src) && t.src[t.off] != '\n' {
				t.advance()
			}

		case c == '\n':
			t.advance()
			if t.parens > 0 {
				continue
			}
			return token{kind: tokenNewline, pos: start}, nil

		case c == '(':
			t.advance()
			t.parens++

		case c == ')':
			if t.parens == 0 {
				return token{}, &Error{Kind: LexError, Pos: start,
					Msg: "close paren without matching open paren"}
			}
			t.advance()
			t.parens--

		case c == '"':
			return t.quotedString(start)

		default:
			return t.item(start)
		}
	}

	if t.parens > 0 {
		return token{}, &Error{Kind: LexError, Pos: t.pos(),
			Msg: "unterminated paren group at end of file"}
	}

	return token{kind: tokenEOF, pos: t.pos()}, nil
}

// quotedString consumes a double-quoted character-string, decoding the
// \" \\ and \DDD escape forms. The string must close before end of line.
func (t *tokenizer) quotedString(start Pos) (token, *Error) {
	t.advance() // opening quote
	var sb strings.Builder

	for t.off < len(t.src) {
		c := t.src[t.off]
		switch c {
		case '\n':
			return token{}, &Error{Kind: LexError, Pos: start,
				Msg: "unterminated quoted string"}

		case '"':
			t.advance()
			return token{kind: tokenString, text: sb.String(), pos: start}, nil

		case '\\':
			t.advance()
			b, err := t.escape(start)
			if err != nil {
				return token{}, err
			}
			sb.WriteByte(b)

		default:
			t.advance()
			sb.WriteByte(c)
		}
	}

	return token{}, &Error{Kind: LexError, Pos: start,
		Msg: "unterminated quoted string at end of file"}
}

// escape decodes the character after a backslash: either a literal byte or
// a three digit decimal byte value.
func (t *tokenizer) escape(start Pos) (byte, *Error) {
	if t.off >= len(t.src) || t.src[t.off] == '\n' {
		return 0, &Error{Kind: LexError, Pos: start,
			Msg: "dangling backslash escape"}
	}

	c := t.advance()
	if c < '0' || c > '9' {
		return c, nil
	}

	val := int(c - '0')
	for i := 0; i < 2; i++ {
		if t.off >= len(t.src) || t.src[t.off] < '0' || t.src[t.off] > '9' {
			return 0, &Error{Kind: LexError, Pos: start,
				Msg: "\\DDD escape requires three decimal digits"}
		}
		val = val*10 + int(t.advance()-'0')
	}
	if val > 255 {
		return 0, &Error{Kind: LexError, Pos: start,
			Msg: fmt.Sprintf("\\DDD escape %d exceeds 255", val)}
	}

	return byte(val), nil
}

// item consumes an unquoted run of non-delimiter bytes. Backslash escapes
// are carried through verbatim so that escaped dots survive into domain
// names untouched.
func (t *tokenizer) item(start Pos) (token, *Error) {
	var sb strings.Builder
	for t.off < len(t.src) {
		c := t.src[t.off]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			c == ';' || c == '(' || c == ')' || c == '"' {
			break
		}
		if c == '\\' {
			sb.WriteByte(t.advance())
			if t.off < len(t.src) && t.src[t.off] != '\n' {
				sb.WriteByte(t.advance())
			}
			continue
		}
		sb.WriteByte(t.advance())
	}

	tok := token{kind: tokenText, text: sb.String(), pos: start}
	if tok.text[0] == '$' {
		tok.kind = tokenDirective
	}

	return tok, nil
}

// lineTokens gathers one logical line worth of tokens, skipping blank
// lines. Returns nil at end of file. A logical line may span physical
// lines when parens are open; positions always point at the true source
// location.
func (t *tokenizer) lineTokens() ([]token, *Error) {
	var toks []token
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			if len(toks) == 0 {
				return nil, nil
			}
			return toks, nil
		case tokenNewline:
			if len(toks) == 0 {
				continue // blank line
			}
			return toks, nil
		default:
			toks = append(toks, tok)
		}
	}
}
