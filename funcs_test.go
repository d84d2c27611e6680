package cexpr

import (
	"math"
	"testing"
)

func TestFuncNames(t *testing.T) {
	for name, fn := range funcnames {
		if got := fn.String(); got != name {
			t.Errorf("function %q has name %q", name, got)
		}
		if got := lookupFunc(name); got != fn {
			t.Errorf("lookup %q gave %v", name, got)
		}
	}
	for _, name := range []string{"", "z", "tan", "Sin", "ln", "sqrt", "pi", "e"} {
		if got := lookupFunc(name); got != funcNone {
			t.Errorf("lookup %q gave %v, want none", name, got)
		}
	}
}

func TestFuncCallInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("calling invalid function did not panic")
		}
	}()
	funcNone.Call(1)
}

func TestDivFormula(t *testing.T) {
	cases := []struct {
		x, y, r complex128
	}{
		{complex(1, 2), complex(3, 4), complex(11.0/25, 2.0/25)},
		{complex(4, 0), complex(2, 0), 2},
		{complex(0, 1), complex(0, 1), 1},
	}
	for _, c := range cases {
		r := div(c.x, c.y)
		if math.Abs(real(r)-real(c.r)) > 1e-15 || math.Abs(imag(r)-imag(c.r)) > 1e-15 {
			t.Errorf("%v / %v: want %v, got %v", c.x, c.y, c.r, r)
		}
	}
	// Unlike the built-in division, a zero divisor always gives NaN parts
	// for a finite dividend.
	r := div(complex(1, 0), 0)
	if !math.IsNaN(real(r)) || !math.IsNaN(imag(r)) {
		t.Errorf("1 / 0: want NaN parts, got %v", r)
	}
}

func TestPowPolar(t *testing.T) {
	// (-8)^(1/3) takes the principal root, not -2.
	r := pow(-8, complex(1.0/3, 0))
	want := complex(1, math.Sqrt(3))
	if math.Abs(real(r)-real(want)) > 1e-14 || math.Abs(imag(r)-imag(want)) > 1e-14 {
		t.Errorf("(-8)^(1/3): want %v, got %v", want, r)
	}
	// Zero base: log(0) = -Inf contaminates the angle.
	r = pow(0, 1)
	if !math.IsNaN(real(r)) {
		t.Errorf("0^1: want NaN, got %v", r)
	}
}
