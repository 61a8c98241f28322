package compiler

import (
	"testing"
)

func collectTokens(t *testing.T, src string) (toks []token, lexErr *Error) {
	tz := newTokenizer("test.zone", src)
	for {
		tok, err := tz.next()
		if err != nil {
			return toks, err
		}
		if tok.kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func TestTokenizerBasics(t *testing.T) {
	testCases := []struct {
		input  string
		expect []string // kind:text per token
	}{
		{"www IN A 192.0.2.1\n",
			[]string{"text:www", "text:IN", "text:A", "text:192.0.2.1", "newline:"}},
		{"$TTL 3600\n", []string{"directive:$TTL", "text:3600", "newline:"}},
		{"a b ; trailing comment\nc",
			[]string{"text:a", "text:b", "newline:", "text:c"}},
		{"; whole line comment\nx", []string{"newline:", "text:x"}},
		{"", nil},
		{"\n\n\n", []string{"newline:", "newline:", "newline:"}},
		{"a\tb\r\n", []string{"text:a", "text:b", "newline:"}},
	}

	for ix, tc := range testCases {
		toks, err := collectTokens(t, tc.input)
		if err != nil {
			t.Error(ix, "Unexpected lex error", err)
			continue
		}
		if len(toks) != len(tc.expect) {
			t.Error(ix, "Token count mismatch. Got", len(toks), "expected", len(tc.expect))
			continue
		}
		for i, tok := range toks {
			got := tok.kind.String() + ":" + tok.text
			if got != tc.expect[i] {
				t.Error(ix, "Token", i, "mismatch. Got", got, "expected", tc.expect[i])
			}
		}
	}
}

func TestTokenizerParens(t *testing.T) {
	// Newlines inside parens must not surface so a record can span lines
	src := "@ IN SOA ns1 hostmaster (\n 1 ; serial\n 7200 3600\n 1209600 3600 )\nnext\n"
	toks, err := collectTokens(t, src)
	if err != nil {
		t.Fatal("Unexpected lex error", err)
	}

	var kinds []tokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}

	newlines := 0
	for _, k := range kinds {
		if k == tokenNewline {
			newlines++
		}
	}
	if newlines != 2 {
		t.Error("Paren group should suppress interior newlines. Got", newlines)
	}

	// The tokens inside the group keep their true source positions
	if toks[5].text != "1" || toks[5].pos.Line != 2 {
		t.Error("Expected serial token on line 2, got", toks[5].text, toks[5].pos)
	}
}

func TestTokenizerQuotedStrings(t *testing.T) {
	testCases := []struct {
		input  string
		expect string // Decoded text, or "" if a LexError is expected
		fails  bool
	}{
		{`"plain"`, "plain", false},
		{`"with space"`, "with space", false},
		{`"esc \" quote"`, `esc " quote`, false},
		{`"back \\ slash"`, `back \ slash`, false},
		{`"byte \065 escape"`, "byte A escape", false},
		{`"\256"`, "", true}, // Over 255
		{`"\06"`, "", true},  // Too few digits
		{`"unterminated`, "", true},
		{"\"crosses\nlines\"", "", true},
		{`""`, "", false}, // Empty string is legitimate
	}

	for ix, tc := range testCases {
		toks, err := collectTokens(t, tc.input)
		if tc.fails {
			if err == nil {
				t.Error(ix, "Expected LexError for", tc.input)
			} else if err.Kind != LexError {
				t.Error(ix, "Expected LexError kind, got", err.Kind)
			}
			continue
		}
		if err != nil {
			t.Error(ix, "Unexpected lex error for", tc.input, err)
			continue
		}
		if len(toks) != 1 || toks[0].kind != tokenString {
			t.Error(ix, "Expected a single string token for", tc.input)
			continue
		}
		if toks[0].text != tc.expect {
			t.Error(ix, "Decode mismatch. Got", toks[0].text, "expected", tc.expect)
		}
	}
}

func TestTokenizerUnbalancedParens(t *testing.T) {
	_, err := collectTokens(t, "a ( b c\n")
	if err == nil || err.Kind != LexError {
		t.Fatal("Unterminated paren group must be a LexError, got", err)
	}

	_, err = collectTokens(t, "a ) b\n")
	if err == nil || err.Kind != LexError {
		t.Fatal("Stray close paren must be a LexError, got", err)
	}
}

func TestTokenizerPositions(t *testing.T) {
	toks, err := collectTokens(t, "abc def\n  ghi\n")
	if err != nil {
		t.Fatal("Unexpected lex error", err)
	}

	expect := []Pos{
		{"test.zone", 1, 1},
		{"test.zone", 1, 5},
		{"test.zone", 1, 8},
		{"test.zone", 2, 3},
		{"test.zone", 2, 6},
	}
	if len(toks) != len(expect) {
		t.Fatal("Token count mismatch", len(toks))
	}
	for i, tok := range toks {
		if tok.pos != expect[i] {
			t.Error(i, "Position mismatch. Got", tok.pos, "expected", expect[i])
		}
	}
}
