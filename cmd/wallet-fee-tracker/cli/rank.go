package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
)

func RankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <balance>",
		Short: "Prints the tier of a display balance such as 12,345.67",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := services.ClassifyBalance(args[0])
			if r.Tier == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no tier\n", r.Balance)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Balance, *r.Tier)
			return nil
		},
	}
}
