package cexpr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an unsigned decimal number.
	tokenNum
	// tokenIdent is a run of word characters that does not start with a digit.
	tokenIdent
	// tokenOp is a binary operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenBad is a rune that cannot begin any token.
	tokenBad
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenBad:
		return "Bad"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be binary operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	pos int
}

// lex creates a lexer over src. All whitespace is removed up front, so tokens
// may be split by spaces: "s in" scans as the single identifier "sin".
func lex(src string) *lexer {
	return &lexer{src: strings.Map(dropSpace, src)}
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

// next scans the next token. Once the input is exhausted, every call returns
// an EOF token.
func (l *lexer) next() lexToken {
	if l.pos >= len(l.src) {
		return lexToken{kind: tokenEOF}
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case isDigit(c):
		l.scanNum()
		return lexToken{text: l.src[start:l.pos], kind: tokenNum}
	case isWord(c):
		for l.pos < len(l.src) && isWord(l.src[l.pos]) {
			l.pos++
		}
		return lexToken{text: l.src[start:l.pos], kind: tokenIdent}
	case c == '(':
		l.pos++
		return lexToken{text: "(", kind: tokenOpen}
	case c == ')':
		l.pos++
		return lexToken{text: ")", kind: tokenClose}
	case strings.IndexByte(Operators, c) >= 0:
		l.pos++
		return lexToken{text: l.src[start:l.pos], kind: tokenOp}
	default:
		_, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += sz
		return lexToken{text: l.src[start:l.pos], kind: tokenBad}
	}
}

// scanNum scans digits with an optional fractional part. The fraction may be
// empty, as in "1.".
func (l *lexer) scanNum() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
}

// tokens scans the entire input. The result does not include the EOF token.
// If any rune cannot begin a token, the second result is the first such
// token.
func (l *lexer) tokens() ([]lexToken, *lexToken) {
	var toks []lexToken
	var bad *lexToken
	for {
		tok := l.next()
		switch tok.kind {
		case tokenEOF:
			return toks, bad
		case tokenBad:
			if bad == nil {
				bad = &tok
			}
		}
		toks = append(toks, tok)
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWord(c byte) bool {
	return c == '_' || isDigit(c) || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
