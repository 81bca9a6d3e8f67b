package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/feetracker-io/wallet-fee-tracker/internal/api"
	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/tracing"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the wallet fee tracker api server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(tracing.InjectTraceID(cmd.Context()))
	defer cancel()
	log := log.Ctx(ctx)

	cfg, service, store, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store)

	if err := service.DoHealthCheck(ctx); err != nil {
		return err
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	server := api.New(&cfg.Server, service)

	var wg conc.WaitGroup
	wg.Go(func() {
		// the poller has nothing to do without the api
		defer cancel()
		if err := server.Start(ctx); err != nil {
			log.Error().Err(err).Msg("api server stopped")
		}
	})
	wg.Go(func() {
		service.RunPricePoller(ctx)
	})
	wg.Wait()

	log.Info().Msg("wallet fee tracker stopped")
	return nil
}
