package plot

import (
	"context"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"
)

// surfaceStyle is the group style applied to every cell of the surface.
const surfaceStyle = "stroke:grey;fill:white;stroke-width:0.7"

// Render samples f over the region described by p and writes the surface
// to w as SVG.
func Render(ctx context.Context, w io.Writer, f func(complex128) complex128, p Params) error {
	g, err := Sample(ctx, f, p)
	if err != nil {
		return err
	}
	return WriteSVG(w, g, p)
}

// WriteSVG draws g as an isometric surface with one quadrilateral per grid
// cell. Cells with a non-finite corner are omitted.
func WriteSVG(w io.Writer, g *Grid, p Params) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid plot parameters")
	}
	if g.Cells != p.Cells {
		return errors.Errorf("grid has %d cells, parameters want %d", g.Cells, p.Cells)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(p.Width, p.Height)
	canvas.Gstyle(surfaceStyle)
	pr := newProjection(g, p)
	xs := make([]int, 4)
	ys := make([]int, 4)
	for i := 0; i < g.Cells; i++ {
		for j := 0; j < g.Cells; j++ {
			if !pr.cell(xs, ys, i, j) {
				continue
			}
			canvas.Polygon(xs, ys)
		}
	}
	canvas.Gend()
	canvas.End()
	return errors.Wrap(ew.err, "writing svg")
}

// projection maps lattice points onto image coordinates.
type projection struct {
	g               *Grid
	cx, cy          float64
	cos, sin        float64
	xyscale, zscale float64
}

func newProjection(g *Grid, p Params) projection {
	a := 2 * math.Pi * p.Angle
	return projection{
		g:       g,
		cx:      float64(p.Width) / 2,
		cy:      float64(p.Height) / 2,
		cos:     math.Cos(a),
		sin:     math.Sin(a),
		xyscale: float64(p.Width) / 2 / p.Range,
		zscale:  float64(p.Height) * p.Scale,
	}
}

// corner projects lattice point (i, j). The result is false if the surface
// height there is not finite.
func (pr projection) corner(i, j int) (sx, sy float64, ok bool) {
	h := pr.g.At(i, j)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, 0, false
	}
	z := pr.g.Point(i, j)
	x, y := real(z), imag(z)
	sx = pr.cx + (x-y)*pr.cos*pr.xyscale
	sy = pr.cy + (x+y)*pr.sin*pr.xyscale - h*pr.zscale
	return sx, sy, true
}

// cell fills xs and ys with the corners of cell (i, j).
func (pr projection) cell(xs, ys []int, i, j int) bool {
	corners := [4][2]int{{i + 1, j}, {i, j}, {i, j + 1}, {i + 1, j + 1}}
	for k, c := range corners {
		sx, sy, ok := pr.corner(c[0], c[1])
		if !ok {
			return false
		}
		// Huge moduli project far outside the image; clamp so the
		// conversion to int is defined.
		xs[k] = clamp(sx)
		ys[k] = clamp(sy)
	}
	return true
}

func clamp(v float64) int {
	const lim = 1 << 30
	switch {
	case v > lim:
		return lim
	case v < -lim:
		return -lim
	}
	return int(math.Round(v))
}

// errWriter remembers the first write error so that the canvas, which
// ignores errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.err = err
	return n, err
}
