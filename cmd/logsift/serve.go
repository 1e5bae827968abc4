package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/app"
	"github.com/five82/logsift/internal/logging"
)

func (c *cli) newServeCmd() *cobra.Command {
	var (
		addr  string
		limit float64
		burst int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve log queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.APIBind
			}
			engine, err := app.NewEngine(c.cfg, logging.Component(c.logger, "query"))
			if err != nil {
				return err
			}
			apiLogger := logging.Component(c.logger, "api")
			srv := api.NewServer(engine, api.ServerOptions{
				RateLimit: rate.Limit(limit),
				Burst:     burst,
				Logger:    &apiLogger,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "", "listen address (default api_bind from the config)")
	flags.Float64Var(&limit, "rate", 0, "requests per second per client (0 uses the server default)")
	flags.IntVar(&burst, "burst", 0, "request burst per client (0 uses the server default)")
	return cmd
}
