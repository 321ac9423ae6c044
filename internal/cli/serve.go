package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"styleguide/internal/config"
	"styleguide/internal/mcp"
	"styleguide/internal/metrics"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		transport   string
		addr        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP tool server",
		Long: `Start the MCP tool server.

With the stdio transport, stdout carries JSON-RPC only and logs go to
stderr. The http transport serves the streamable HTTP endpoint at /mcp.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = strings.ToLower(transport)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.HTTPAddr = addr
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Server.MetricsAddr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "Transport to use (stdio, http)")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultHTTPAddr, "Listen address for the http transport")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	m, err := metrics.New()
	if err != nil {
		return err
	}

	reg := mcp.NewMCPRegistry(cfg.Server.Name, Version, mcp.Instructions)
	srv := mcp.NewServer(a.service(cfg, m), reg, a.logger, mcp.WithMetrics(m))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.MetricsAddr != "" {
		a.logger.Info("Serving metrics", "addr", cfg.Server.MetricsAddr, "path", metrics.DefaultPath)
		g.Go(func() error {
			return m.Serve(ctx, cfg.Server.MetricsAddr)
		})
	}

	g.Go(func() error {
		// The metrics endpoint lives only as long as the transport.
		defer cancel()
		switch cfg.Server.Transport {
		case config.TransportHTTP:
			return srv.ServeStreamableHTTP(ctx, cfg.Server.HTTPAddr)
		case config.TransportStdio:
			return srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported transport: %s", cfg.Server.Transport)
		}
	})

	return g.Wait()
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run every offline tool once on sample input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			cfg.Enrichment.Enabled = false

			srv := mcp.NewServer(a.service(cfg, nil), mcp.NewMockRegistry(), a.logger)
			results := srv.SelfCheck(cmd.Context())

			failed := 0
			for _, r := range results {
				if !r.OK {
					failed++
				}
			}

			if a.opts.jsonOut {
				if err := a.emit(cmd, "", results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, r := range results {
					status := "ok"
					if !r.OK {
						status = "FAIL"
					}
					fmt.Fprintf(out, "%-4s  %-22s  %s\n", status, r.Tool, r.Detail)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tools failed", failed, len(results))
			}
			return nil
		},
	}
}
