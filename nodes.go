package cexpr

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a nodeNum.
	name string
	val  complex128
	fn   Func

	left  *node
	right *node

	// height is the number of nodes on the longest path from this node to a
	// leaf, including both.
	height int
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeVar  // z
	nodeCall // fn applied to left

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeVar:
		return "Var"
	case nodeCall:
		return "Call"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// leaf creates a node with no children.
func leaf(kind nodeKind, name string, val complex128) *node {
	return &node{kind: kind, name: name, val: val, height: 1}
}

// branch creates a binary operator node.
func branch(kind nodeKind, left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{kind: kind, left: left, right: right, height: h + 1}
}

// call creates a function call node.
func call(fn Func, arg *node) *node {
	return &node{kind: nodeCall, fn: fn, left: arg, height: arg.height + 1}
}

// size counts the nodes in the tree rooted at n.
func (n *node) size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.size() + n.right.size()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n with every subterm parenthesized. The result parses back to
// the same tree under either precedence mode.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodeVar:
		b.WriteByte('z')
	case nodeCall:
		b.WriteString(n.fn.String())
		n.left.fmt(b)
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ^ ")
		n.right.fmt(b)
	default:
		panic("cexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
