package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db/model"
)

// NewStore opens the configured backend wrapped with latency metrics.
func NewStore(ctx context.Context, cfg config.StoreConfig) (KeyValueStore, error) {
	var store KeyValueStore

	switch cfg.Backend {
	case config.StoreBackendBolt:
		boltStore, err := NewBoltStore(cfg.Bolt)
		if err != nil {
			return nil, err
		}
		store = boltStore
	case config.StoreBackendMongo:
		if err := model.Setup(ctx, cfg.Db); err != nil {
			return nil, fmt.Errorf("error while setting up mongo model: %w", err)
		}
		database, err := New(ctx, *cfg.Db)
		if err != nil {
			return nil, fmt.Errorf("error while creating db client: %w", err)
		}
		store = database
	case config.StoreBackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	log.Ctx(ctx).Info().Str("backend", cfg.Backend).Msg("store opened")
	return NewDbWithMetrics(store), nil
}
