package cexpr

// DefaultMaxDepth is the maximum depth of an expression when no MaxDepth
// option is given.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt int
	powopt   struct{}
)

// parsectx holds the settings for a parse.
type parsectx struct {
	// maxdepth limits both the height of the parsed tree and the nesting of
	// parentheses, calls, and right-associative exponents.
	maxdepth int
	// powfirst gives ^ higher precedence than * and / and makes it
	// right-associative.
	powfirst bool
}

// MaxDepth sets the maximum depth of parsed expressions. The limit applies
// separately to the height of the resulting tree and to the nesting of
// parentheses and calls, so MaxDepth(2) rejects both "z+z+z" and "(((z)))".
// Inputs exceeding the limit fail with ReasonTooDeep. A non-positive n
// restores DefaultMaxDepth.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth <= 0 {
		p.maxdepth = DefaultMaxDepth
	}
	return p
}

// PowerBindsTighter makes exponentiation bind more tightly than
// multiplication and division and associate to the right, so that "2*3^2" is
// 2*(3^2) and "2^3^2" is 2^(3^2). Without this option, ^ shares a precedence
// level with * and / and associates to the left.
func PowerBindsTighter() ParseOption {
	return powopt{}
}

func (powopt) parseOption(p parsectx) parsectx {
	p.powfirst = true
	return p
}
