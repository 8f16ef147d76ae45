package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/server"
)

// NewServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Starts the HTTP API:

  POST /v1/parse           parse {"text", "category", "equivalents"}
  GET  /v1/classify?text=  classify a description
  GET  /v1/factors         list factors (?category=)
  GET  /v1/factors/:name   look up one factor
  GET  /healthz            liveness
  GET  /metrics            Prometheus metrics`,
		Example: `  ecotrack serve
  ecotrack serve --addr 127.0.0.1:9090 --no-cache`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			parser, err := newParser(cfg)
			if err != nil {
				return err
			}

			var ttl time.Duration
			if cfg.Server.CacheEnabled && !noCache {
				ttl = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
			}

			srv := server.New(parser, server.Options{
				CacheTTL: ttl,
				Logger:   logging.ComponentLogger(baseLogger, "server"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse result cache")
	return cmd
}
