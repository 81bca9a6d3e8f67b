package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/cache"
	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/tracing"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

type Trigger string

const (
	// TriggerLoad is the aggregation started by a cache miss
	TriggerLoad Trigger = "load"
	// TriggerManual is a user requested re-sync, it is subject to the cooldown
	TriggerManual Trigger = "manual"
)

type FeeReport struct {
	Address             string       `json:"address"`
	FromCache           bool         `json:"from_cache"`
	UpdatedAtMs         int64        `json:"updated_at_ms"`
	LastSyncTimestampMs *int64       `json:"last_sync_timestamp_ms,omitempty"`
	Fees                *fees.Result `json:"fees"`
	USD                 *USDValues   `json:"usd,omitempty"`
}

// GetFees returns the cached fee summary of address. Only on a cache miss the ledger is
// queried, in which case the summary of the whole history is computed and cached.
func (s *Service) GetFees(ctx context.Context, address string) (*FeeReport, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	if entry, ok := s.cache.Get(ctx, addr); ok {
		metrics.RecordCacheLookup(true)
		return s.feeReport(entry, true), nil
	}
	metrics.RecordCacheLookup(false)

	entry, err := s.aggregate(ctx, addr, TriggerLoad)
	if err != nil {
		return nil, err
	}
	return s.feeReport(entry, false), nil
}

// Resync recomputes the fee summary of address from the whole ledger history, replacing the
// cached one. It is rejected while the cooldown of a previous re-sync is running.
func (s *Service) Resync(ctx context.Context, address string) (*FeeReport, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	if status := s.cooldown.Status(ctx, addr); status.Active {
		seconds := (status.RemainingMs + 999) / 1000
		return nil, types.NewErrorWithMsg(
			http.StatusTooManyRequests,
			types.CooldownActive,
			fmt.Sprintf("re-sync available in %ds", seconds),
		)
	}

	entry, err := s.aggregate(ctx, addr, TriggerManual)
	if err != nil {
		return nil, err
	}
	return s.feeReport(entry, false), nil
}

// GetCooldown reports the manual re-sync cooldown of address.
func (s *Service) GetCooldown(ctx context.Context, address string) (*cache.CooldownStatus, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	status := s.cooldown.Status(ctx, addr)
	return &status, nil
}

// GetCacheEntry returns the raw cached entry of address, nil when there is none.
func (s *Service) GetCacheEntry(ctx context.Context, address string) (*cache.Entry, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	entry, ok := s.cache.Get(ctx, addr)
	if !ok {
		return nil, nil
	}
	return entry, nil
}

// aggregate runs one full pass over the ledger history of address. A run that is overtaken
// by a newer run of the same address leaves no trace: no cache write, no cooldown and no sync
// status change.
func (s *Service) aggregate(ctx context.Context, address string, trigger Trigger) (*cache.Entry, error) {
	ctx = tracing.InjectAddress(ctx, address)
	log := log.Ctx(ctx).With().Str("trigger", string(trigger)).Logger()

	generation := s.beginRun(address)
	startTime := time.Now()
	log.Debug().Uint64("generation", generation).Msg("starting fee aggregation")

	aggregator := fees.NewAggregator(log)
	_, fetchErr := s.fetcher.FetchAll(ctx, address, aggregator.AddPage, s.reportProgress(address, generation))

	if !s.isCurrentRun(address, generation) {
		metrics.IncSupersededRuns()
		log.Info().Uint64("generation", generation).Msg("aggregation superseded by a newer run, result discarded")
		return nil, types.NewErrorWithMsg(
			http.StatusConflict,
			types.Superseded,
			"aggregation superseded by a newer run",
		)
	}

	if fetchErr != nil {
		metrics.RecordAggregationDuration(time.Since(startTime), string(trigger), true)
		s.finishRun(address, generation, fetchErr)
		log.Error().Err(fetchErr).Msg("fee aggregation failed")
		return nil, fetchErr
	}

	result := aggregator.Result()
	entry, err := s.cache.Put(ctx, address, result, result.LatestTimestampMs)
	if err != nil {
		// the result is still served, it is just not remembered
		log.Error().Err(err).Msg("failed to cache fee aggregation result")
		entry = &cache.Entry{
			Address:             address,
			UpdatedAtMs:         utils.NowMs(s.clock),
			Result:              result,
			LastSyncTimestampMs: result.LatestTimestampMs,
		}
	}

	if trigger == TriggerManual {
		if err := s.cooldown.Start(ctx, address); err != nil {
			log.Error().Err(err).Msg("failed to start re-sync cooldown")
		}
	}

	s.finishRun(address, generation, nil)
	metrics.RecordAggregationDuration(time.Since(startTime), string(trigger), false)

	log.Info().
		Uint64("tx_count", result.TxCount).
		Str("total_fee", result.TotalFeeDisplay).
		Int64("month_count", result.MonthCount).
		Msg("fee aggregation completed")

	return entry, nil
}

func (s *Service) feeReport(entry *cache.Entry, fromCache bool) *FeeReport {
	return &FeeReport{
		Address:             entry.Address,
		FromCache:           fromCache,
		UpdatedAtMs:         entry.UpdatedAtMs,
		LastSyncTimestampMs: entry.LastSyncTimestampMs,
		Fees:                entry.Result,
		USD:                 s.usdValues(entry.Result),
	}
}
