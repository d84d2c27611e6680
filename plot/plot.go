// Package plot samples complex functions over a square region of the plane
// and renders the modulus |f(z)| as an isometric surface.
package plot

import (
	"context"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxCells is the largest grid resolution accepted by Validate.
const MaxCells = 1000

// Params describes the sampled region and the rendered image.
type Params struct {
	// Width and Height are the image dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Cells is the number of grid cells along each axis.
	Cells int `yaml:"cells"`
	// Range is the side length of the square region centered on the origin.
	Range float64 `yaml:"range"`
	// Scale multiplies the image height to give the vertical scale of the
	// surface.
	Scale float64 `yaml:"scale"`
	// Angle is the rotation of the axes as a fraction of a full turn.
	Angle float64 `yaml:"angle"`
	// Workers bounds the number of rows sampled concurrently. Zero means
	// GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultParams returns the default plot parameters.
func DefaultParams() Params {
	return Params{
		Width:  600,
		Height: 320,
		Cells:  100,
		Range:  30,
		Scale:  0.4,
		Angle:  1.0 / 12.0,
	}
}

// Validate checks that p describes a drawable plot.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return errors.Errorf("image size %dx%d must be positive", p.Width, p.Height)
	case p.Cells <= 0 || p.Cells > MaxCells:
		return errors.Errorf("cells must be between 1 and %d, got %d", MaxCells, p.Cells)
	case !(p.Range > 0) || math.IsInf(p.Range, 0):
		return errors.Errorf("range must be positive and finite, got %g", p.Range)
	case !(p.Scale > 0) || math.IsInf(p.Scale, 0):
		return errors.Errorf("scale must be positive and finite, got %g", p.Scale)
	case math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0):
		return errors.Errorf("angle must be finite, got %g", p.Angle)
	case p.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", p.Workers)
	}
	return nil
}

// Grid holds |f(z)| at the (Cells+1)² lattice points of a sampled region.
type Grid struct {
	Cells int
	Range float64
	// Heights is row-major, indexed by i*(Cells+1)+j where i steps along the
	// real axis and j along the imaginary axis.
	Heights []float64
}

// At returns the sampled modulus at lattice point (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.Heights[i*(g.Cells+1)+j]
}

// Point returns the complex number at lattice point (i, j).
func (g *Grid) Point(i, j int) complex128 {
	return point(g.Range, g.Cells, i, j)
}

func point(r float64, cells, i, j int) complex128 {
	x := r * (float64(i)/float64(cells) - 0.5)
	y := r * (float64(j)/float64(cells) - 0.5)
	return complex(x, y)
}

// Sample evaluates f at every lattice point of the region described by p.
// Rows are evaluated concurrently, so f must be safe for concurrent use.
func Sample(ctx context.Context, f func(complex128) complex128, p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid plot parameters")
	}
	n := p.Cells + 1
	g := &Grid{Cells: p.Cells, Range: p.Range, Heights: make([]float64, n*n)}
	workers := p.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := g.Heights[i*n : (i+1)*n]
			for j := range row {
				w := f(point(p.Range, p.Cells, i, j))
				row[j] = math.Hypot(real(w), imag(w))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "sampling stopped")
	}
	// Wait returns nil if the context ended before any row started.
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "sampling stopped")
	}
	return g, nil
}
