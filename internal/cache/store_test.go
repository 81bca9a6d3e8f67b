package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
	"github.com/feetracker-io/wallet-fee-tracker/pkg"
	"github.com/feetracker-io/wallet-fee-tracker/tests/mocks"
)

func testResult() *fees.Result {
	return &fees.Result{
		TxCount:         140,
		TotalFeeUnits:   sdkmath.NewInt(14000),
		TotalFeeDisplay: "0.000140",
		AvgFeeDisplay:   "0.000001",
		MonthCount:      1,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := utils.NewManualClock(now)
	store := NewStore(db.NewMemoryStore(), clock)

	t.Run("miss", func(t *testing.T) {
		entry, ok := store.Get(ctx, "0xabc")
		assert.False(t, ok)
		assert.Nil(t, entry)
	})

	t.Run("put then get ignores address case", func(t *testing.T) {
		written, err := store.Put(ctx, "0xABC", testResult(), pkg.Ptr(int64(1709294400000)))
		require.NoError(t, err)
		assert.Equal(t, "0xabc", written.Address)
		assert.Equal(t, now.UnixMilli(), written.UpdatedAtMs)

		entry, ok := store.Get(ctx, "0xabc")
		require.True(t, ok)
		assert.Equal(t, uint64(140), entry.Result.TxCount)
		assert.True(t, entry.Result.TotalFeeUnits.Equal(sdkmath.NewInt(14000)))
		assert.Equal(t, "0.000140", entry.Result.TotalFeeDisplay)
		require.NotNil(t, entry.LastSyncTimestampMs)
		assert.Equal(t, int64(1709294400000), *entry.LastSyncTimestampMs)
	})

	t.Run("entries never expire", func(t *testing.T) {
		clock.Advance(365 * 24 * time.Hour)
		_, ok := store.Get(ctx, "0xAbC")
		assert.True(t, ok)
	})

	t.Run("newer put replaces entry", func(t *testing.T) {
		result := testResult()
		result.TxCount = 1
		_, err := store.Put(ctx, "0xabc", result, nil)
		require.NoError(t, err)

		entry, ok := store.Get(ctx, "0xabc")
		require.True(t, ok)
		assert.Equal(t, uint64(1), entry.Result.TxCount)
		assert.Nil(t, entry.LastSyncTimestampMs)
	})

	t.Run("nil result is rejected", func(t *testing.T) {
		_, err := store.Put(ctx, "0xabc", nil, nil)
		assert.Error(t, err)
	})
}

func TestStore_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	store := NewStore(kv, utils.SystemClock())

	require.NoError(t, kv.Put(ctx, "cache:0xdead", []byte("{not json")))
	_, ok := store.Get(ctx, "0xdead")
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "cache:0xbeef", []byte(`{"address":"0xbeef"}`)))
	_, ok = store.Get(ctx, "0xbeef")
	assert.False(t, ok)
}

func TestStore_StorageFailures(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewKeyValueStore(t)
	store := NewStore(kv, utils.SystemClock())

	kv.On("Get", mock.Anything, "cache:0xabc").Return(nil, errors.New("disk gone")).Once()
	_, ok := store.Get(ctx, "0xABC")
	assert.False(t, ok)

	kv.On("Put", mock.Anything, "cache:0xabc", mock.Anything).Return(errors.New("disk full")).Once()
	_, err := store.Put(ctx, "0xabc", testResult(), nil)
	assert.ErrorContains(t, err, "disk full")
}
