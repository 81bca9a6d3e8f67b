package fees

import (
	"encoding/json"
	"fmt"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const dayMs = 24 * 60 * 60 * 1000

func feeRecord(unitPrice, maxUnits any, timestampMs int64) types.LedgerRecord {
	header := map[string]any{
		unitPriceField: unitPrice,
		maxUnitsField:  maxUnits,
	}
	if timestampMs > 0 {
		header["timestamp"] = json.Number(fmt.Sprint(timestampMs))
	}
	return types.LedgerRecord{"header": header}
}

func feeRecords(n int, unitPrice, maxUnits string) []types.LedgerRecord {
	records := make([]types.LedgerRecord, n)
	for i := range records {
		records[i] = feeRecord(json.Number(unitPrice), json.Number(maxUnits), 0)
	}
	return records
}

func TestAggregate_TwoPages(t *testing.T) {
	res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{
		feeRecords(100, "2", "50"),
		feeRecords(40, "2", "50"),
	})

	assert.Equal(t, uint64(140), res.TxCount)
	assert.Equal(t, "14000", res.TotalFeeUnits.String())
	// avg = 14000 / 140 = 100 base units
	assert.Equal(t, "0.000001", res.AvgFeeDisplay)
	assert.Equal(t, "0.000140", res.TotalFeeDisplay)
	assert.Nil(t, res.MonthlyAvgFeeDisplay)
	assert.Nil(t, res.LatestTimestampMs)
	assert.Equal(t, int64(1), res.MonthCount)
}

func TestAggregate_ZeroTotal(t *testing.T) {
	records := []types.LedgerRecord{
		feeRecord(json.Number("0"), json.Number("50"), 1_700_000_000_000),
		feeRecord("abc", json.Number("50"), 1_700_000_000_000+90*dayMs),
		{"hash": "0x01"},
	}
	res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{records})

	assert.Equal(t, uint64(3), res.TxCount)
	assert.True(t, res.TotalFeeUnits.IsZero())
	assert.Equal(t, "0.000000", res.AvgFeeDisplay)
	assert.Equal(t, "0.000000", res.TotalFeeDisplay)
	assert.Nil(t, res.MonthlyAvgFeeDisplay)
	require.NotNil(t, res.LatestTimestampMs)
	assert.Equal(t, int64(1_700_000_000_000+90*dayMs), *res.LatestTimestampMs)
}

func TestAggregate_MonthlyAverage(t *testing.T) {
	start := int64(1_700_000_000_000)

	t.Run("three months", func(t *testing.T) {
		records := []types.LedgerRecord{
			feeRecord("100", "1000", start),
			feeRecord("100", "1000", start+45*dayMs),
			feeRecord("100", "1000", start+90*dayMs),
		}
		res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{records})

		assert.Equal(t, int64(3), res.MonthCount)
		require.NotNil(t, res.MonthlyAvgFeeDisplay)
		// 300000 / 3 = 100000 base units
		assert.Equal(t, "0.001000", *res.MonthlyAvgFeeDisplay)
		assert.Equal(t, start, *res.EarliestTimestampMs)
		assert.Equal(t, start+90*dayMs, *res.LatestTimestampMs)
	})

	t.Run("rounds half up", func(t *testing.T) {
		records := []types.LedgerRecord{
			feeRecord("1", "1", start),
			feeRecord("1", "1", start+45*dayMs),
		}
		res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{records})
		assert.Equal(t, int64(2), res.MonthCount)
		assert.NotNil(t, res.MonthlyAvgFeeDisplay)
	})

	t.Run("under a month and a half is a single month", func(t *testing.T) {
		records := []types.LedgerRecord{
			feeRecord("1", "1", start),
			feeRecord("1", "1", start+44*dayMs),
		}
		res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{records})
		assert.Equal(t, int64(1), res.MonthCount)
		assert.Nil(t, res.MonthlyAvgFeeDisplay)
	})
}

func TestAggregate_TxCountIncludesZeroFeeRecords(t *testing.T) {
	var pages [][]types.LedgerRecord
	expected := 0
	for range gofakeit.IntRange(1, 10) {
		n := gofakeit.IntRange(0, 50)
		page := make([]types.LedgerRecord, 0, n)
		for range n {
			if gofakeit.Bool() {
				page = append(page, feeRecord(fmt.Sprint(gofakeit.IntRange(1, 1000)), fmt.Sprint(gofakeit.IntRange(1, 1000)), 0))
			} else {
				page = append(page, types.LedgerRecord{"header": map[string]any{unitPriceField: "-5"}})
			}
		}
		expected += n
		pages = append(pages, page)
	}

	res := Aggregate(zerolog.Nop(), pages)
	assert.Equal(t, uint64(expected), res.TxCount)
}

func TestAggregate_ArbitraryPrecision(t *testing.T) {
	// both factors exceed uint64, the product must stay exact
	price := "123456789012345678901234567890"
	units := "98765432109876543210"
	res := Aggregate(zerolog.Nop(), [][]types.LedgerRecord{{feeRecord(price, units, 0)}})

	p, _ := sdkmath.NewIntFromString(price)
	u, _ := sdkmath.NewIntFromString(units)
	assert.Equal(t, p.Mul(u).String(), res.TotalFeeUnits.String())
}

func TestParseUnits(t *testing.T) {
	n, err := parseUnits(json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n.Int64())

	n, err = parseUnits(nil)
	require.NoError(t, err)
	assert.True(t, n.IsZero())

	for _, bad := range []any{"-1", "1.5", "0x10", true, 3.0} {
		_, err := parseUnits(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
