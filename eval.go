package cexpr

// Eval evaluates an expression at z. A nil expression evaluates to zero.
func Eval(e *Expr, z complex128) complex128 {
	return e.Eval(z)
}

// Eval evaluates the expression at z. If e is nil, the result is zero.
//
// Evaluation never fails. Division by zero, the logarithm of zero, overflow,
// and the like produce infinite or NaN parts as IEEE-754 arithmetic dictates.
func (e *Expr) Eval(z complex128) complex128 {
	if e == nil {
		return 0
	}
	return e.n.eval(z)
}

// Evaluator binds an expression into a function of z. The function may be
// called concurrently. If e is nil, the function always returns zero.
func Evaluator(e *Expr) func(complex128) complex128 {
	return e.Func()
}

// Func is the method form of Evaluator.
func (e *Expr) Func() func(complex128) complex128 {
	return func(z complex128) complex128 {
		return e.Eval(z)
	}
}

// eval computes the node's value at z.
func (n *node) eval(z complex128) complex128 {
	switch n.kind {
	case nodeNum:
		return n.val
	case nodeVar:
		return z
	case nodeCall:
		return n.fn.Call(n.left.eval(z))
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return n.binary(n.left.eval(z), n.right.eval(z))
	default:
		panic("cexpr: invalid AST node " + n.kind.String())
	}
}

// binary combines the values of a binary node's operands.
func (n *node) binary(l, r complex128) complex128 {
	switch n.kind {
	case nodeAdd:
		return complex(real(l)+real(r), imag(l)+imag(r))
	case nodeSub:
		return complex(real(l)-real(r), imag(l)-imag(r))
	case nodeMul:
		return mul(l, r)
	case nodeDiv:
		return div(l, r)
	default:
		return pow(l, r)
	}
}
