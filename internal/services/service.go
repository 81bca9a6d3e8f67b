package services

import (
	"context"
	"net/http"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"

	"github.com/feetracker-io/wallet-fee-tracker/internal/cache"
	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/ledgerclient"
	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/priceclient"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
	"github.com/feetracker-io/wallet-fee-tracker/pkg"
)

type Service struct {
	cfg        *config.Config
	ledger     ledgerclient.LedgerInterface
	price      priceclient.PriceInterface
	store      db.KeyValueStore
	clock      utils.Clock
	cache      *cache.Store
	cooldown   *cache.Limiter
	fetcher    *fees.Fetcher
	minBalance sdkmath.Int

	// guards generations and syncStatuses
	mu           sync.Mutex
	generations  map[string]uint64
	syncStatuses map[string]*SyncStatus

	priceMu  sync.RWMutex
	usdPrice *decimal.Decimal
}

// NewService wires the fee engine. price may be nil, fees are then reported without usd values.
func NewService(
	cfg *config.Config,
	ledger ledgerclient.LedgerInterface,
	price priceclient.PriceInterface,
	store db.KeyValueStore,
	clock utils.Clock,
) *Service {
	// validated by config.WalletConfig
	minBalance, ok := sdkmath.NewIntFromString(cfg.Wallet.MinBalance)
	if !ok {
		minBalance = sdkmath.ZeroInt()
	}

	return &Service{
		cfg:          cfg,
		ledger:       ledger,
		price:        price,
		store:        store,
		clock:        clock,
		cache:        cache.NewStore(store, clock),
		cooldown:     cache.NewLimiter(store, clock),
		fetcher:      fees.NewFetcher(ledger, cfg.Ledger.PageSize, cfg.Ledger.MaxPages),
		minBalance:   minBalance,
		generations:  make(map[string]uint64),
		syncStatuses: make(map[string]*SyncStatus),
	}
}

// DoHealthCheck pings the local store.
func (s *Service) DoHealthCheck(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

func normalizeAddress(address string) (string, error) {
	addr, err := pkg.NormalizeAddress(address)
	if err != nil {
		return "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return addr, nil
}
