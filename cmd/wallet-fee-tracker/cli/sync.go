package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/tracing"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
)

// SyncCmd computes the fee summary of one address and prints it as json.
// Usage: ./wallet-fee-tracker sync <address> --config config.yml [--manual]
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <address>",
		Short: "Prints the lifetime fee summary of an address, aggregating it on a cache miss",
		Args:  cobra.ExactArgs(1),
		RunE:  syncAddress,
	}

	cmd.Flags().Bool("manual", false, "Force a re-sync from the ledger, subject to the cooldown")

	return cmd
}

func syncAddress(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	manual, err := cmd.Flags().GetBool("manual")
	if err != nil {
		return fmt.Errorf("failed to parse manual flag: %w", err)
	}

	_, service, store, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store)

	var report *services.FeeReport
	if manual {
		report, err = service.Resync(ctx, args[0])
	} else {
		report, err = service.GetFees(ctx, args[0])
	}
	if err != nil {
		return err
	}

	log.Ctx(ctx).Debug().Bool("from_cache", report.FromCache).Msg("fee summary ready")

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fee report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
