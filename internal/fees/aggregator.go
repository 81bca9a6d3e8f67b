package fees

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const (
	unitPriceField = "gas_unit_price"
	maxUnitsField  = "max_gas_amount"

	monthMs int64 = 30 * 24 * 60 * 60 * 1000
)

// Result is the lifetime fee summary of one address.
type Result struct {
	TxCount              uint64      `json:"tx_count"`
	TotalFeeUnits        sdkmath.Int `json:"total_fee_units"`
	TotalFeeDisplay      string      `json:"total_fee_display"`
	AvgFeeDisplay        string      `json:"avg_fee_display"`
	MonthlyAvgFeeDisplay *string     `json:"monthly_avg_fee_display,omitempty"`
	MonthCount           int64       `json:"month_count"`
	EarliestTimestampMs  *int64      `json:"earliest_timestamp_ms,omitempty"`
	LatestTimestampMs    *int64      `json:"latest_timestamp_ms,omitempty"`
}

// Aggregator accumulates fee totals page by page. The zero value is not usable, use NewAggregator.
type Aggregator struct {
	logger   zerolog.Logger
	decimals uint

	txCount uint64
	total   sdkmath.Int
	minTs   *int64
	maxTs   *int64
}

func NewAggregator(logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger:   logger,
		decimals: NativeDecimals,
		total:    sdkmath.ZeroInt(),
	}
}

// AddPage counts every record and adds the fee of each record with a well formed fee header.
func (a *Aggregator) AddPage(records []types.LedgerRecord) {
	for _, record := range records {
		a.txCount++

		fee, err := recordFee(record)
		if err != nil {
			a.logger.Debug().Err(err).Msg("record fee treated as zero")
		} else if total, err := a.total.SafeAdd(fee); err != nil {
			a.logger.Warn().Err(err).Msg("fee total overflow, record fee treated as zero")
		} else {
			a.total = total
		}

		ts, ok := ExtractTimestampMs(record)
		if !ok {
			continue
		}
		if a.minTs == nil || ts < *a.minTs {
			a.minTs = &ts
		}
		if a.maxTs == nil || ts > *a.maxTs {
			a.maxTs = &ts
		}
	}
}

// Result derives the averages from everything added so far.
func (a *Aggregator) Result() *Result {
	res := &Result{
		TxCount:             a.txCount,
		TotalFeeUnits:       a.total,
		MonthCount:          a.monthCount(),
		EarliestTimestampMs: copyInt64(a.minTs),
		LatestTimestampMs:   copyInt64(a.maxTs),
	}

	if a.total.IsZero() {
		zero := ZeroDisplay(a.decimals)
		res.TotalFeeDisplay = zero
		res.AvgFeeDisplay = zero
		return res
	}

	// a non zero total implies at least one record
	avg := a.total.Quo(sdkmath.NewIntFromUint64(a.txCount))
	res.TotalFeeDisplay = FormatDisplay(a.total, a.decimals)
	res.AvgFeeDisplay = FormatDisplay(avg, a.decimals)

	if res.MonthCount >= 2 {
		monthly := FormatDisplay(a.total.Quo(sdkmath.NewInt(res.MonthCount)), a.decimals)
		res.MonthlyAvgFeeDisplay = &monthly
	}
	return res
}

// monthCount is the observed history span in 30 day months, rounded half up, never below 1.
func (a *Aggregator) monthCount() int64 {
	if a.minTs == nil || a.maxTs == nil || *a.maxTs <= *a.minTs {
		return 1
	}
	span := *a.maxTs - *a.minTs
	return max(1, (span+monthMs/2)/monthMs)
}

// Aggregate is a convenience for already fetched pages.
func Aggregate(logger zerolog.Logger, pages [][]types.LedgerRecord) *Result {
	agg := NewAggregator(logger)
	for _, page := range pages {
		agg.AddPage(page)
	}
	return agg.Result()
}

// recordFee returns unitPrice * maxUnits, or zero when either is missing or not positive.
func recordFee(record types.LedgerRecord) (sdkmath.Int, error) {
	header := record.Header()
	if header == nil {
		return sdkmath.ZeroInt(), nil
	}

	unitPrice, err := parseUnits(header[unitPriceField])
	if err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("invalid %s: %w", unitPriceField, err)
	}
	maxUnits, err := parseUnits(header[maxUnitsField])
	if err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("invalid %s: %w", maxUnitsField, err)
	}
	if !unitPrice.IsPositive() || !maxUnits.IsPositive() {
		return sdkmath.ZeroInt(), nil
	}

	fee, err := unitPrice.SafeMul(maxUnits)
	if err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("fee overflow: %w", err)
	}
	return fee, nil
}

// parseUnits accepts a non negative base ten integer given as a JSON number or string.
// A missing value is zero.
func parseUnits(value any) (sdkmath.Int, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return sdkmath.ZeroInt(), nil
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return sdkmath.ZeroInt(), fmt.Errorf("unsupported type %T", value)
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("%q is not an integer", s)
	}
	if n.Sign() < 0 {
		return sdkmath.ZeroInt(), fmt.Errorf("%q is negative", s)
	}
	if n.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.ZeroInt(), fmt.Errorf("%q is out of range", s)
	}
	return sdkmath.NewIntFromBigInt(n), nil
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
