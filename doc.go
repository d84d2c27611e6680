// Package cexpr parses expressions of one complex variable and evaluates them.
//
// An expression is parsed once into a tree, and the tree can then be evaluated
// at any number of points without parsing again:
//
//	e, err := cexpr.Parse("sin(z) / (z + 1)")
//	if err != nil {
//		// handle err
//	}
//	f := cexpr.Evaluator(e)
//	w := f(complex(0.5, 2))
//
// The only variable is z. The functions are sin, cos, exp, and log, each of
// which takes a parenthesized argument. Numbers are unsigned decimals with an
// optional fractional part. Whitespace is ignored everywhere, even inside
// names and numbers.
//
// By default, "^" has the same precedence as "*" and "/" and, like them, is
// left-associative, so "2*3^2" is (2*3)^2. The PowerBindsTighter option
// selects conventional precedence instead.
//
// Parsed expressions are immutable, so they may be evaluated concurrently.
package cexpr
