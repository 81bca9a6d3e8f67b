//go:build e2e

package e2etest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/internal/api/handlers"
	"github.com/feetracker-io/wallet-fee-tracker/internal/cache"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const walletPath = "/v1/wallets/0xC0FFEE"

type feeReportResponse struct {
	Data services.FeeReport `json:"data"`
}

func TestWalletFeesLifecycle(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ledger := NewFakeLedger(250, start, 90*24*time.Hour, "500000000000")
	tm := StartManager(t, ledger)

	// 250 records over 3 pages of 100
	var report feeReportResponse
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/fees", &report))
	assert.False(t, report.Data.FromCache)
	assert.Equal(t, "0xc0ffee", report.Data.Address)
	assert.Equal(t, uint64(250), report.Data.Fees.TxCount)
	assert.Equal(t, "0.002500", report.Data.Fees.TotalFeeDisplay)
	assert.Equal(t, "0.000010", report.Data.Fees.AvgFeeDisplay)
	assert.Equal(t, int64(3), report.Data.Fees.MonthCount)
	require.NotNil(t, report.Data.Fees.MonthlyAvgFeeDisplay)
	assert.Equal(t, "0.000833", *report.Data.Fees.MonthlyAvgFeeDisplay)
	require.NotNil(t, report.Data.LastSyncTimestampMs)
	assert.Equal(t, start.Add(90*24*time.Hour).UnixMilli(), *report.Data.LastSyncTimestampMs)
	assert.Equal(t, int64(3), tm.Ledger.TransactionRequests())

	// the persisted entry survives a restart and is served without touching the ledger
	tm.RestartService(t)
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/fees", &report))
	assert.True(t, report.Data.FromCache)
	assert.Equal(t, uint64(250), report.Data.Fees.TxCount)
	assert.Equal(t, int64(3), tm.Ledger.TransactionRequests())

	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodPost, walletPath+"/resync", &report))
	assert.False(t, report.Data.FromCache)
	assert.Equal(t, int64(6), tm.Ledger.TransactionRequests())

	// the cooldown is persisted as well
	tm.RestartService(t)
	var cooldown struct {
		Data cache.CooldownStatus `json:"data"`
	}
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/cooldown", &cooldown))
	assert.True(t, cooldown.Data.Active)
	assert.Greater(t, cooldown.Data.RemainingMs, int64(0))
	assert.LessOrEqual(t, cooldown.Data.ProgressRatio, 1.0)

	var errResp handlers.ErrorResponse
	require.Equal(t, http.StatusTooManyRequests, tm.Call(t, http.MethodPost, walletPath+"/resync", &errResp))
	assert.Equal(t, string(types.CooldownActive), errResp.ErrorCode)
	assert.Equal(t, int64(6), tm.Ledger.TransactionRequests())

	var status struct {
		Data services.SyncStatus `json:"data"`
	}
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/sync-status", &status))
	// sync status lives in memory only
	assert.Equal(t, services.SyncStateIdle, status.Data.State)
	assert.Zero(t, status.Data.RecordsFetched)
}

func TestWalletRank(t *testing.T) {
	ledger := NewFakeLedger(0, time.Now(), 0, "250000000000000")
	tm := StartManager(t, ledger)

	var walletRank struct {
		Data services.WalletRank `json:"data"`
	}
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/rank", &walletRank))
	assert.Equal(t, "2500000.00000000", walletRank.Data.Balance)
	require.NotNil(t, walletRank.Data.Tier)
	assert.EqualValues(t, "tier_4", *walletRank.Data.Tier)
	assert.True(t, walletRank.Data.MeetsRequirement)

	// an empty history aggregates to zero
	var report feeReportResponse
	require.Equal(t, http.StatusOK, tm.Call(t, http.MethodGet, walletPath+"/fees", &report))
	assert.Zero(t, report.Data.Fees.TxCount)
	assert.Equal(t, "0.000000", report.Data.Fees.TotalFeeDisplay)
	assert.Nil(t, report.Data.Fees.MonthlyAvgFeeDisplay)
}
