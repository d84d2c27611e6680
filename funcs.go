package cexpr

import (
	"math"
	"strconv"
)

// Func identifies one of the functions an expression may call.
type Func int8

const (
	funcNone Func = iota
	// FuncSin is the complex sine.
	FuncSin
	// FuncCos is the complex cosine.
	FuncCos
	// FuncExp is the complex exponential.
	FuncExp
	// FuncLog is the principal branch of the natural logarithm.
	FuncLog
)

var funcnames = map[string]Func{
	"sin": FuncSin,
	"cos": FuncCos,
	"exp": FuncExp,
	"log": FuncLog,
}

// lookupFunc returns the function with the given name, or funcNone.
func lookupFunc(name string) Func {
	return funcnames[name]
}

func (f Func) String() string {
	switch f {
	case FuncSin:
		return "sin"
	case FuncCos:
		return "cos"
	case FuncExp:
		return "exp"
	case FuncLog:
		return "log"
	default:
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
}

// Call applies the function to z. Calling an invalid Func panics.
func (f Func) Call(z complex128) complex128 {
	a, b := real(z), imag(z)
	switch f {
	case FuncSin:
		return complex(math.Sin(a)*math.Cosh(b), math.Cos(a)*math.Sinh(b))
	case FuncCos:
		return complex(math.Cos(a)*math.Cosh(b), -math.Sin(a)*math.Sinh(b))
	case FuncExp:
		ea := math.Exp(a)
		return complex(ea*math.Cos(b), ea*math.Sin(b))
	case FuncLog:
		return complex(math.Log(math.Hypot(a, b)), math.Atan2(b, a))
	default:
		panic("cexpr: call of invalid function " + f.String())
	}
}

// mul multiplies two complex numbers as (ac - bd) + (ad + bc)i.
func mul(x, y complex128) complex128 {
	a, b := real(x), imag(x)
	c, d := real(y), imag(y)
	return complex(a*c-b*d, a*d+b*c)
}

// div divides x by y without scaling. A divisor with zero modulus gives NaN
// or infinite parts according to IEEE-754 rather than a panic.
func div(x, y complex128) complex128 {
	a, b := real(x), imag(x)
	c, d := real(y), imag(y)
	m := c*c + d*d
	return complex((a*c+b*d)/m, (b*c-a*d)/m)
}

// pow raises x to the power y through the polar form of x. A zero base gives
// the values implied by log(0) = -Inf.
func pow(x, y complex128) complex128 {
	r := math.Hypot(real(x), imag(x))
	theta := math.Atan2(imag(x), real(x))
	c, d := real(y), imag(y)
	mod := math.Pow(r, c) * math.Exp(-d*theta)
	arg := c*theta + d*math.Log(r)
	return complex(mod*math.Cos(arg), mod*math.Sin(arg))
}
