package cexpr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	num := func(s string) lexToken { return lexToken{text: s, kind: tokenNum} }
	id := func(s string) lexToken { return lexToken{text: s, kind: tokenIdent} }
	op := func(s string) lexToken { return lexToken{text: s, kind: tokenOp} }
	open := lexToken{text: "(", kind: tokenOpen}
	closep := lexToken{text: ")", kind: tokenClose}
	bad := func(s string) lexToken { return lexToken{text: s, kind: tokenBad} }
	cases := []struct {
		name   string
		src    string
		tokens []lexToken
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		// numbers
		{"zero", "0", []lexToken{num("0")}},
		{"digits", "9876543210", []lexToken{num("9876543210")}},
		{"joined", "1 0", []lexToken{num("10")}},
		{"fraction", "1.25", []lexToken{num("1.25")}},
		{"emptyfrac", "1.", []lexToken{num("1.")}},
		{"twodots", "1.1.1", []lexToken{num("1.1"), bad("."), num("1")}},
		{"leadingdot", ".5", []lexToken{bad("."), num("5")}},
		{"numident", "2z", []lexToken{num("2"), id("z")}},
		{"noexponent", "1e5", []lexToken{num("1"), id("e5")}},
		{"neg", "-1", []lexToken{op("-"), num("1")}},
		// identifiers
		{"z", "z", []lexToken{id("z")}},
		{"func", "sin(z)", []lexToken{id("sin"), open, id("z"), closep}},
		{"splitfunc", "s i n ( z )", []lexToken{id("sin"), open, id("z"), closep}},
		{"word", "_a1", []lexToken{id("_a1")}},
		{"zz", "z z", []lexToken{id("zz")}},
		// operators
		{"ops", "+-*/^", []lexToken{op("+"), op("-"), op("*"), op("/"), op("^")}},
		{"expr", "2+3*4", []lexToken{num("2"), op("+"), num("3"), op("*"), num("4")}},
		// erroneous symbols
		{"at", "@z", []lexToken{bad("@"), id("z")}},
		{"unicode", "πz", []lexToken{bad("π"), id("z")}},
		{"brackets", "[z]", []lexToken{bad("["), id("z"), bad("]")}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _ := lex(c.src).tokens()
			if diff := cmp.Diff(c.tokens, got, cmp.AllowUnexported(lexToken{})); diff != "" {
				t.Errorf("scanning %q (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestLexBad(t *testing.T) {
	cases := []struct {
		src string
		bad string
	}{
		{"z", ""},
		{"@z", "@"},
		{"z+$+#", "$"},
		{"z,z", ","},
	}
	for _, c := range cases {
		_, bad := lex(c.src).tokens()
		switch {
		case c.bad == "" && bad != nil:
			t.Errorf("scanning %q: unexpected bad token %v", c.src, *bad)
		case c.bad != "" && bad == nil:
			t.Errorf("scanning %q: no bad token, want %q", c.src, c.bad)
		case c.bad != "" && bad.text != c.bad:
			t.Errorf("scanning %q: want bad token %q, got %q", c.src, c.bad, bad.text)
		}
	}
}

func TestLexEOF(t *testing.T) {
	l := lex("z")
	if tok := l.next(); tok.kind != tokenIdent {
		t.Fatalf("first token: want ident, got %v", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := l.next(); tok.kind != tokenEOF {
			t.Errorf("call %d after end: want EOF, got %v", i, tok)
		}
	}
}
