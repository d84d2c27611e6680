package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/internal/config"
	"github.com/zephyrtronium/cexpr/internal/logging"
)

// app holds global flags and the state derived from them.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	maxDepth  int
	powFirst  bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cexpr",
		Short: "Parse, evaluate, and plot functions of a complex variable",
		Long: `cexpr parses expressions in the variable z using + - * / ^, parentheses,
decimal numbers, and the functions sin, cos, exp, and log, then evaluates them
over the complex numbers.

By default ^ has the same precedence as * and /, so 2*3^2 is (2*3)^2.
Use --power-binds-tighter for the conventional reading.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	f := root.PersistentFlags()
	f.StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	f.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	f.IntVar(&a.maxDepth, "max-depth", 0, "maximum expression depth (default from config)")
	f.BoolVar(&a.powFirst, "power-binds-tighter", false, "give ^ higher precedence than * and /")

	root.AddCommand(
		newEvalCmd(a),
		newTreeCmd(a),
		newPlotCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides, and creates the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if f.Changed("max-depth") {
		cfg.Parse.MaxDepth = a.maxDepth
	}
	if f.Changed("power-binds-tighter") {
		cfg.Parse.PowerBindsTighter = a.powFirst
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	l, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l
	return nil
}

// parse parses src with the configured options.
func (a *app) parse(src string) (*cexpr.Expr, error) {
	e, err := cexpr.Parse(src, a.cfg.Parse.Options()...)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", src)
	}
	a.log.Debug("parsed", "expr", src, "depth", e.Depth(), "size", e.Size())
	return e, nil
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
