package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
	"github.com/kilianp07/creator/infra/metrics"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build every configured object and expose construction metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withService(cmd, opts, func(svc *app.Service) error {
				log := svc.Logger()
				if err := svc.Warm(); err != nil {
					log.Warnf("warm-up: %v", err)
				}
				return metrics.StartPromServer(ctx, addr, prometheus.DefaultGatherer, log)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9100", "metrics listen address")
	return cmd
}
