package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/cexpr/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluation, parse trees, and plots over HTTP",
		Long: `Serve the HTTP API:

  GET /eval?expr=E&re=X&im=Y   evaluate E at X+Yi
  GET /tree?expr=E             parse tree, depth, and size of E
  GET /plot?expr=E&cells=N...  SVG surface of |E|
  GET /healthz                 liveness
  GET /metrics                 Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			s, err := server.New(a.cfg, a.log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
