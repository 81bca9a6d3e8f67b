package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/tracing"
)

// DumpCacheCmd prints the stored cache entry and cooldown of an address without touching the ledger.
func DumpCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-cache <address>",
		Short: "Dumps the locally cached fee summary and cooldown of an address",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpCache,
	}
}

func dumpCache(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	_, service, store, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store)

	entry, err := service.GetCacheEntry(ctx, args[0])
	if err != nil {
		return err
	}
	cooldown, err := service.GetCooldown(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if entry == nil {
		fmt.Fprintln(out, "no cached entry")
	} else {
		spew.Fdump(out, entry)
	}
	spew.Fdump(out, cooldown)
	return nil
}
