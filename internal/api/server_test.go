package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/internal/api/handlers"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
	"github.com/feetracker-io/wallet-fee-tracker/tests/mocks"
)

const testAddress = "0x1f"

func setupTestServer(t *testing.T) (*httptest.Server, *mocks.LedgerInterface, *mocks.KeyValueStore) {
	cfg := &config.Config{
		Ledger: config.LedgerConfig{PageSize: 2, MaxPages: 5},
		Wallet: config.WalletConfig{MinBalance: "1000"},
	}

	ledger := mocks.NewLedgerInterface(t)
	kv := mocks.NewKeyValueStore(t)
	// every call except Ping goes to a real in-memory store
	memory := db.NewMemoryStore()
	kv.On("Get", mock.Anything, mock.Anything).Return(memory.Get).Maybe()
	kv.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(memory.Put).Maybe()

	clock := utils.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := services.NewService(cfg, ledger, nil, kv, clock)

	server := httptest.NewServer(NewRouter(svc))
	t.Cleanup(server.Close)
	return server, ledger, kv
}

func doRequest(t *testing.T, method, url string) (*http.Response, []byte) {
	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp, raw
}

func ledgerPage(n int, cursor *string) *types.TransactionsPage {
	records := make([]types.LedgerRecord, n)
	for i := range records {
		records[i] = types.LedgerRecord{
			"header": map[string]any{
				"gas_unit_price": json.Number("100"),
				"max_gas_amount": json.Number("1000"),
			},
		}
	}
	return &types.TransactionsPage{Records: records, Cursor: cursor}
}

func TestWalletFeesRoutes(t *testing.T) {
	server, ledger, _ := setupTestServer(t)

	next := "2"
	ledger.On("GetAccountTransactions", mock.Anything, testAddress, uint64(2), "0").
		Return(ledgerPage(2, &next), nil).Twice()
	ledger.On("GetAccountTransactions", mock.Anything, testAddress, uint64(2), "2").
		Return(ledgerPage(1, nil), nil).Twice()

	t.Run("first load aggregates", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0x1F/fees")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data services.FeeReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		assert.False(t, result.Data.FromCache)
		assert.Equal(t, testAddress, result.Data.Address)
		assert.Equal(t, uint64(3), result.Data.Fees.TxCount)
		assert.Equal(t, "0.003000", result.Data.Fees.TotalFeeDisplay)
		assert.Equal(t, "0.001000", result.Data.Fees.AvgFeeDisplay)
	})

	t.Run("second load is cached", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0x1f/fees")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data services.FeeReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		assert.True(t, result.Data.FromCache)
		ledger.AssertNumberOfCalls(t, "GetAccountTransactions", 2)
	})

	t.Run("sync status", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0x1f/sync-status")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data services.SyncStatus `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		assert.Equal(t, services.SyncStateIdle, result.Data.State)
		assert.Equal(t, 3, result.Data.RecordsFetched)
	})

	t.Run("resync then cooldown", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/v1/wallets/0x1f/resync")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0x1f/cooldown")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var cooldown struct {
			Data struct {
				Active      bool  `json:"active"`
				RemainingMs int64 `json:"remaining_ms"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &cooldown))
		assert.True(t, cooldown.Data.Active)
		assert.Equal(t, int64(60000), cooldown.Data.RemainingMs)

		resp, body = doRequest(t, http.MethodPost, server.URL+"/v1/wallets/0x1f/resync")
		require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		var errResp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, string(types.CooldownActive), errResp.ErrorCode)
		assert.Equal(t, "re-sync available in 60s", errResp.Message)
	})
}

func TestWalletFees_Errors(t *testing.T) {
	server, ledger, _ := setupTestServer(t)

	t.Run("invalid address", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/nope/fees")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, string(types.BadRequest), errResp.ErrorCode)
	})

	t.Run("ledger failure", func(t *testing.T) {
		ledger.On("GetAccountTransactions", mock.Anything, "0xdead", uint64(2), "0").
			Return(nil, errors.New("dial tcp: connection refused")).Once()

		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0xdead/fees")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var errResp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, string(types.NetworkError), errResp.ErrorCode)
		assert.Contains(t, errResp.Message, "connection refused")
	})
}

func TestRankRoutes(t *testing.T) {
	server, ledger, _ := setupTestServer(t)

	t.Run("classify balance", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/rank?balance=1,000.5")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data services.BalanceRank `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		require.NotNil(t, result.Data.Tier)
		assert.EqualValues(t, "tier_2", *result.Data.Tier)
	})

	t.Run("missing balance", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, server.URL+"/v1/rank")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wallet rank", func(t *testing.T) {
		ledger.On("GetAccountBalance", mock.Anything, testAddress).Return("100000000000", nil).Once()

		resp, body := doRequest(t, http.MethodGet, server.URL+"/v1/wallets/0x1f/rank")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data services.WalletRank `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		assert.Equal(t, "1000.00000000", result.Data.Balance)
		assert.True(t, result.Data.MeetsRequirement)
		require.NotNil(t, result.Data.Tier)
		assert.EqualValues(t, "tier_2", *result.Data.Tier)
	})
}

func TestHealthCheck(t *testing.T) {
	server, _, kv := setupTestServer(t)

	kv.On("Ping", mock.Anything).Return(nil).Once()
	resp, _ := doRequest(t, http.MethodGet, server.URL+"/healthcheck")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	kv.On("Ping", mock.Anything).Return(errors.New("store closed")).Once()
	resp, body := doRequest(t, http.MethodGet, server.URL+"/healthcheck")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "Internal service error", errResp.Message)
}
