package main

import (
	"bufio"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/plot"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		outname string
		p       plot.Params
	)
	cmd := &cobra.Command{
		Use:   "plot EXPR",
		Short: "Render |f(z)| over a square region as an SVG surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.parse(args[0])
			if err != nil {
				return err
			}
			params := a.cfg.Plot
			f := cmd.Flags()
			if f.Changed("width") {
				params.Width = p.Width
			}
			if f.Changed("height") {
				params.Height = p.Height
			}
			if f.Changed("cells") {
				params.Cells = p.Cells
			}
			if f.Changed("range") {
				params.Range = p.Range
			}
			if f.Changed("scale") {
				params.Scale = p.Scale
			}
			if f.Changed("angle") {
				params.Angle = p.Angle
			}
			if f.Changed("workers") {
				params.Workers = p.Workers
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			if outname != "" && outname != "-" {
				file, err := os.Create(outname)
				if err != nil {
					return errors.Wrap(err, "creating output")
				}
				defer file.Close()
				w = bufio.NewWriter(file)
			}
			start := time.Now()
			if err := plot.Render(cmd.Context(), w, cexpr.Evaluator(e), params); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return errors.Wrap(err, "writing plot")
			}
			a.log.Info("plotted", "expr", args[0], "cells", params.Cells, "elapsed", time.Since(start))
			return nil
		},
	}
	d := plot.DefaultParams()
	f := cmd.Flags()
	f.StringVarP(&outname, "out", "o", "", "output file (default standard output)")
	f.IntVar(&p.Width, "width", d.Width, "image width in pixels")
	f.IntVar(&p.Height, "height", d.Height, "image height in pixels")
	f.IntVar(&p.Cells, "cells", d.Cells, "grid cells along each axis")
	f.Float64Var(&p.Range, "range", d.Range, "side length of the plotted square")
	f.Float64Var(&p.Scale, "scale", d.Scale, "vertical scale as a fraction of the height")
	f.Float64Var(&p.Angle, "angle", d.Angle, "axis rotation as a fraction of a turn")
	f.IntVar(&p.Workers, "workers", 0, "rows sampled concurrently (default GOMAXPROCS)")
	return cmd
}
