package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/ledgerclient"
	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/priceclient"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

// newService loads the config and wires the fee engine. The returned store must be closed
// by the caller.
func newService(ctx context.Context) (*config.Config, *services.Service, db.KeyValueStore, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	store, err := db.NewStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error while opening store: %w", err)
	}

	ledgerClient := ledgerclient.NewClient(&cfg.Ledger)

	// leave the interface nil rather than holding a nil *priceclient.Client
	var priceClient priceclient.PriceInterface
	if cfg.Price != nil {
		priceClient = priceclient.NewClient(cfg.Price)
	}

	service := services.NewService(cfg, ledgerClient, priceClient, store, utils.SystemClock())
	return cfg, service, store, nil
}

func closeStore(ctx context.Context, store db.KeyValueStore) {
	if err := store.Close(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to close store")
	}
}
