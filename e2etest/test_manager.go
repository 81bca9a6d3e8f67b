package e2etest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/e2etest/container"
	"github.com/feetracker-io/wallet-fee-tracker/internal/api"
	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/ledgerclient"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

type TestManager struct {
	Config       *config.Config
	Ledger       *FakeLedger
	LedgerServer *httptest.Server
	APIServer    *httptest.Server
	store        db.KeyValueStore
	manager      *container.Manager
}

// StartManager runs mongo in docker, a fake ledger over http and the api backed by both.
func StartManager(t *testing.T, ledger *FakeLedger) *TestManager {
	manager, err := container.NewManager(t)
	require.NoError(t, err)

	dbCfg, err := manager.RunMongoResource(t)
	require.NoError(t, err)

	ledgerServer := httptest.NewServer(ledger.Handler())
	t.Cleanup(ledgerServer.Close)

	cfg := DefaultFeeTrackerConfig(ledgerServer.URL, dbCfg)
	require.NoError(t, cfg.Validate())

	tm := &TestManager{
		Config:       cfg,
		Ledger:       ledger,
		LedgerServer: ledgerServer,
		manager:      manager,
	}
	tm.startService(t)
	t.Cleanup(func() { tm.stopService(t) })

	return tm
}

func DefaultFeeTrackerConfig(ledgerURL string, dbCfg *config.DbConfig) *config.Config {
	ledgerCfg := config.DefaultLedgerConfig()
	ledgerCfg.URL = ledgerURL
	ledgerCfg.RetryInterval = 10 * time.Millisecond

	return &config.Config{
		Ledger: *ledgerCfg,
		Store: config.StoreConfig{
			Backend: config.StoreBackendMongo,
			Db:      dbCfg,
		},
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Minute,
			WriteTimeout: time.Minute,
		},
		Metrics: config.MetricsConfig{Host: "127.0.0.1", Port: 0},
		Wallet:  config.WalletConfig{MinBalance: "1000"},
		Poller:  config.PollerConfig{PricePollingInterval: time.Minute},
	}
}

func (tm *TestManager) startService(t *testing.T) {
	ctx := context.Background()

	store, err := db.NewStore(ctx, tm.Config.Store)
	require.NoError(t, err)

	service := services.NewService(
		tm.Config,
		ledgerclient.NewClient(&tm.Config.Ledger),
		nil,
		store,
		utils.SystemClock(),
	)

	tm.store = store
	tm.APIServer = httptest.NewServer(api.NewRouter(service))
}

func (tm *TestManager) stopService(t *testing.T) {
	if tm.APIServer == nil {
		return
	}
	tm.APIServer.Close()
	require.NoError(t, tm.store.Close(context.Background()))
	tm.APIServer = nil
}

// RestartService drops every in-memory state, only what the store persisted survives.
func (tm *TestManager) RestartService(t *testing.T) {
	tm.stopService(t)
	tm.startService(t)
}

// Call sends a request to the api and decodes the response body into out.
func (tm *TestManager) Call(t *testing.T, method, path string, out any) int {
	req, err := http.NewRequestWithContext(context.Background(), method, tm.APIServer.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
