package plot_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/plot"
)

func TestDefaultParamsValid(t *testing.T) {
	p := plot.DefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, 600, p.Width)
	assert.Equal(t, 320, p.Height)
	assert.Equal(t, 100, p.Cells)
	assert.Equal(t, 30.0, p.Range)
	assert.Equal(t, 0.4, p.Scale)
	assert.Equal(t, 1.0/12.0, p.Angle)
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(p *plot.Params)
	}{
		{"width", func(p *plot.Params) { p.Width = 0 }},
		{"height", func(p *plot.Params) { p.Height = -1 }},
		{"cells", func(p *plot.Params) { p.Cells = 0 }},
		{"manycells", func(p *plot.Params) { p.Cells = plot.MaxCells + 1 }},
		{"range", func(p *plot.Params) { p.Range = 0 }},
		{"nanrange", func(p *plot.Params) { p.Range = math.NaN() }},
		{"scale", func(p *plot.Params) { p.Scale = math.Inf(1) }},
		{"angle", func(p *plot.Params) { p.Angle = math.NaN() }},
		{"workers", func(p *plot.Params) { p.Workers = -2 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := plot.DefaultParams()
			c.edit(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestSample(t *testing.T) {
	p := plot.DefaultParams()
	p.Cells = 4
	p.Range = 8
	p.Workers = 3
	g, err := plot.Sample(context.Background(), func(z complex128) complex128 { return z }, p)
	require.NoError(t, err)
	require.Len(t, g.Heights, 25)
	assert.Equal(t, complex(-4, -4), g.Point(0, 0))
	assert.Equal(t, complex(0, 0), g.Point(2, 2))
	assert.Equal(t, complex(4, -2), g.Point(4, 1))
	assert.Equal(t, 0.0, g.At(2, 2))
	assert.InDelta(t, math.Hypot(4, 2), g.At(4, 1), 1e-12)
	for i := 0; i <= 4; i++ {
		for j := 0; j <= 4; j++ {
			z := g.Point(i, j)
			assert.InDelta(t, math.Hypot(real(z), imag(z)), g.At(i, j), 1e-12)
		}
	}
}

func TestSampleEvaluatesEveryPoint(t *testing.T) {
	var calls atomic.Int64
	p := plot.DefaultParams()
	p.Cells = 10
	_, err := plot.Sample(context.Background(), func(z complex128) complex128 {
		calls.Add(1)
		return z
	}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 121, calls.Load())
}

func TestSampleExpression(t *testing.T) {
	e, err := cexpr.Parse("1/(1+z*z)")
	require.NoError(t, err)
	p := plot.DefaultParams()
	p.Cells = 6
	g, err := plot.Sample(context.Background(), cexpr.Evaluator(e), p)
	require.NoError(t, err)
	for i := 0; i <= p.Cells; i++ {
		for j := 0; j <= p.Cells; j++ {
			w := e.Eval(g.Point(i, j))
			assert.Equal(t, math.Hypot(real(w), imag(w)), g.At(i, j))
		}
	}
}

func TestSampleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := plot.Sample(ctx, func(z complex128) complex128 { return z }, plot.DefaultParams())
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, context.Canceled), "want context.Canceled, got %v", err)
}

func TestSampleInvalid(t *testing.T) {
	p := plot.DefaultParams()
	p.Cells = -1
	_, err := plot.Sample(context.Background(), func(z complex128) complex128 { return z }, p)
	assert.Error(t, err)
}

func TestWriteSVG(t *testing.T) {
	e, err := cexpr.Parse("z*z")
	require.NoError(t, err)
	p := plot.DefaultParams()
	p.Cells = 5
	var b bytes.Buffer
	require.NoError(t, plot.Render(context.Background(), &b, cexpr.Evaluator(e), p))
	out := b.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `width="600"`)
	assert.Contains(t, out, `height="320"`)
	assert.Contains(t, out, "stroke:grey")
	assert.Equal(t, 25, strings.Count(out, "<polygon"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestWriteSVGSkipsNonFinite(t *testing.T) {
	// 1/z is NaN at the origin, which is the center lattice point.
	e, err := cexpr.Parse("1/z")
	require.NoError(t, err)
	p := plot.DefaultParams()
	p.Cells = 4
	var b bytes.Buffer
	require.NoError(t, plot.Render(context.Background(), &b, cexpr.Evaluator(e), p))
	assert.Equal(t, 12, strings.Count(b.String(), "<polygon"))
}

func TestWriteSVGMismatch(t *testing.T) {
	p := plot.DefaultParams()
	p.Cells = 2
	g, err := plot.Sample(context.Background(), func(z complex128) complex128 { return z }, p)
	require.NoError(t, err)
	p.Cells = 3
	assert.Error(t, plot.WriteSVG(&bytes.Buffer{}, g, p))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGWriteError(t *testing.T) {
	p := plot.DefaultParams()
	p.Cells = 2
	err := plot.Render(context.Background(), failWriter{}, func(z complex128) complex128 { return z }, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
