package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/cexpr"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		at     []string
		inname string
		verb   string
		echo   bool
	)
	cmd := &cobra.Command{
		Use:   "eval [EXPR...]",
		Short: "Evaluate expressions at points of the complex plane",
		Long: `Evaluate each expression at each point given by --at. Points are written
as re,im or just re. Expressions come from the arguments, and also from the
file named by --in, one per line. With no arguments and no --in, expressions
are read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parsePoints(at)
			if err != nil {
				return err
			}
			srcs, err := readExprs(cmd.InOrStdin(), inname, args)
			if err != nil {
				return err
			}
			exprs := make([]*cexpr.Expr, len(srcs))
			for i, src := range srcs {
				if exprs[i], err = a.parse(src); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			format := verb + "\n"
			for _, e := range exprs {
				f := cexpr.Evaluator(e)
				for _, z := range points {
					if echo {
						fmt.Fprintf(out, "%v at %v : ", e, z)
					}
					fmt.Fprintf(out, format, f(z))
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&at, "at", []string{"0,0"}, "point re,im at which to evaluate (any number of times)")
	f.StringVar(&inname, "in", "", "file of expressions, one per line; - for standard input")
	f.StringVar(&verb, "fmt", "%g", "result formatting verb")
	f.BoolVar(&echo, "echo", false, "print parse trees and points with results")
	return cmd
}

// parsePoints parses complex numbers written as re,im or re.
func parsePoints(at []string) ([]complex128, error) {
	points := make([]complex128, 0, len(at))
	for _, s := range at {
		re, im, _ := strings.Cut(s, ",")
		x, err := strconv.ParseFloat(strings.TrimSpace(re), 64)
		if err != nil {
			return nil, errors.Errorf("bad point %q", s)
		}
		var y float64
		if strings.TrimSpace(im) != "" {
			y, err = strconv.ParseFloat(strings.TrimSpace(im), 64)
			if err != nil {
				return nil, errors.Errorf("bad point %q", s)
			}
		}
		points = append(points, complex(x, y))
	}
	return points, nil
}

// readExprs collects expressions from args and from the named input file.
// Blank lines are skipped.
func readExprs(stdin io.Reader, inname string, args []string) ([]string, error) {
	var r io.Reader
	switch {
	case inname == "-", inname == "" && len(args) == 0:
		r = stdin
	case inname != "":
		f, err := os.Open(inname)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		defer f.Close()
		r = f
	}
	var srcs []string
	if r != nil {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				srcs = append(srcs, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
	}
	srcs = append(srcs, args...)
	if len(srcs) == 0 {
		return nil, errors.New("no expressions given")
	}
	return srcs, nil
}
