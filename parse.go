package cexpr

import (
	"errors"
	"strconv"
)

// Expr = Term { ('+' | '-') Term }
// Term = Factor { ('*' | '/' | '^') Factor }
// Factor = '(' Expr ')' | 'z' | funcname '(' Expr ')' | num
//
// With PowerBindsTighter:
// Term = Power { ('*' | '/') Power }
// Power = Factor [ '^' Power ]

// Expr is a parsed expression of the variable z. An Expr is immutable and may
// be evaluated concurrently. A nil *Expr is valid and evaluates to zero.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. The given options are applied in order. If src
// is not a valid expression, the error is a *ParseError.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := parser{parsectx: parsectx{maxdepth: DefaultMaxDepth}}
	for _, opt := range opts {
		p.parsectx = opt.parseOption(p.parsectx)
	}
	toks, bad := lex(src).tokens()
	if bad != nil {
		return nil, &ParseError{Reason: ReasonBadToken, Token: bad.text}
	}
	if len(toks) == 0 {
		return nil, &ParseError{Reason: ReasonEmpty}
	}
	p.toks = toks
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, p.fail(ReasonTrailing)
	}
	return &Expr{n: n}, nil
}

// parser is a cursor over the tokens of a single input.
type parser struct {
	parsectx
	toks []lexToken
	pos  int
	// nest is the current nesting of parenthesized or right-recursive
	// subexpressions.
	nest int
}

// peek returns the current token without consuming it. At the end of input,
// the result is an EOF token.
func (p *parser) peek() lexToken {
	if p.pos >= len(p.toks) {
		return lexToken{kind: tokenEOF}
	}
	return p.toks[p.pos]
}

// fail creates an error describing a failure at the current token.
func (p *parser) fail(r Reason) error {
	return &ParseError{Reason: r, Token: p.peek().text}
}

// enter records descent into a nested subexpression. Every successful enter
// must be paired with leave.
func (p *parser) enter() error {
	if p.nest >= p.maxdepth {
		return p.fail(ReasonTooDeep)
	}
	p.nest++
	return nil
}

func (p *parser) leave() {
	p.nest--
}

// join creates a binary node, checking the depth limit.
func (p *parser) join(kind nodeKind, left, right *node) (*node, error) {
	n := branch(kind, left, right)
	if n.height > p.maxdepth {
		return nil, p.fail(ReasonTooDeep)
	}
	return n, nil
}

// parseExpr parses a sum or difference of one or more terms.
func (p *parser) parseExpr() (*node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		kind := p.binop(p.peek(), exprprec)
		if kind == nodeNone {
			return n, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if n, err = p.join(kind, n, rhs); err != nil {
			return nil, err
		}
	}
}

// parseTerm parses a product, quotient, or (by default) power of one or more
// factors.
func (p *parser) parseTerm() (*node, error) {
	operand := p.parseFactor
	if p.powfirst {
		operand = p.parsePow
	}
	n, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		kind := p.binop(p.peek(), termprec)
		if kind == nodeNone {
			return n, nil
		}
		p.pos++
		rhs, err := operand()
		if err != nil {
			return nil, err
		}
		if n, err = p.join(kind, n, rhs); err != nil {
			return nil, err
		}
	}
}

// parsePow parses a right-associative chain of exponentiations. It is only
// used with PowerBindsTighter.
func (p *parser) parsePow() (*node, error) {
	n, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.binop(p.peek(), powprec) == nodeNone {
		return n, nil
	}
	p.pos++
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	rhs, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	return p.join(nodePow, n, rhs)
}

// parseFactor parses a parenthesized expression, the variable, a function
// call, or a number.
func (p *parser) parseFactor() (*node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenOpen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.pos++
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokenClose {
			return nil, p.fail(ReasonUnmatchedParen)
		}
		p.pos++
		return n, nil
	case tokenIdent:
		if tok.text == "z" {
			p.pos++
			return leaf(nodeVar, "", 0), nil
		}
		fn := lookupFunc(tok.text)
		if fn == funcNone {
			return nil, p.fail(ReasonUnexpected)
		}
		p.pos++
		return p.parseCall(fn)
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces digits with an optional fraction.
			panic("cexpr: invalid number token " + strconv.Quote(tok.text) + ": " + err.Error())
		}
		p.pos++
		return leaf(nodeNum, tok.text, complex(v, 0)), nil
	default:
		return nil, p.fail(ReasonUnexpected)
	}
}

// parseCall parses the parenthesized argument following a function name.
func (p *parser) parseCall(fn Func) (*node, error) {
	if p.peek().kind != tokenOpen {
		return nil, p.fail(ReasonIncompleteCall)
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenClose {
		return nil, p.fail(ReasonIncompleteCall)
	}
	p.pos++
	n := call(fn, arg)
	if n.height > p.maxdepth {
		return nil, p.fail(ReasonTooDeep)
	}
	return n, nil
}

// precedence levels for binop.
type level int8

const (
	exprprec level = iota
	termprec
	powprec
)

// binop gets the binary operator for a token if the operator belongs to the
// given precedence level under the current settings. Otherwise, the result is
// nodeNone.
func (p *parser) binop(tok lexToken, at level) nodeKind {
	if tok.kind != tokenOp {
		return nodeNone
	}
	var kind nodeKind
	var lv level
	switch tok.text {
	case "+":
		kind, lv = nodeAdd, exprprec
	case "-":
		kind, lv = nodeSub, exprprec
	case "*":
		kind, lv = nodeMul, termprec
	case "/":
		kind, lv = nodeDiv, termprec
	case "^":
		kind, lv = nodePow, termprec
		if p.powfirst {
			lv = powprec
		}
	default:
		return nodeNone
	}
	if lv != at {
		return nodeNone
	}
	return kind
}

// String creates a string representation of the parsed expression with every
// term parenthesized. The result parses to the same tree.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.n.String()
}

// Depth returns the height of the expression tree. A lone number or z has
// depth 1.
func (e *Expr) Depth() int {
	if e == nil {
		return 0
	}
	return e.n.height
}

// Size returns the number of nodes in the expression tree.
func (e *Expr) Size() int {
	if e == nil {
		return 0
	}
	return e.n.size()
}
