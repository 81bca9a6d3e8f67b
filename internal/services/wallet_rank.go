package services

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/rank"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

type BalanceRank struct {
	Balance string     `json:"balance"`
	Tier    *rank.Tier `json:"tier,omitempty"`
}

type WalletRank struct {
	Address      string `json:"address"`
	BalanceUnits string `json:"balance_units"`
	BalanceRank
	MeetsRequirement bool `json:"meets_requirement"`
}

// ClassifyBalance ranks a display balance such as "12,345.67".
func ClassifyBalance(balance string) *BalanceRank {
	r := &BalanceRank{Balance: balance}
	if tier, ok := rank.Classify(balance); ok {
		r.Tier = &tier
	}
	return r
}

// GetWalletRank looks up the native balance of address and ranks it.
func (s *Service) GetWalletRank(ctx context.Context, address string) (*WalletRank, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	rawBalance, err := s.ledger.GetAccountBalance(ctx, addr)
	if err != nil {
		return nil, err
	}
	units, ok := sdkmath.NewIntFromString(rawBalance)
	if !ok || units.IsNegative() {
		return nil, types.NewShapeError(fmt.Sprintf("balance %q is not a non negative integer", rawBalance))
	}

	display := fees.FormatUnits(units, fees.NativeDecimals)
	walletRank := &WalletRank{
		Address:          addr,
		BalanceUnits:     units.String(),
		BalanceRank:      *ClassifyBalance(display),
		MeetsRequirement: rank.MeetsRequirement(display, s.minBalance),
	}

	log.Ctx(ctx).Debug().
		Str("address", addr).
		Str("balance", display).
		Bool("meets_requirement", walletRank.MeetsRequirement).
		Msg("wallet ranked")

	return walletRank, nil
}
