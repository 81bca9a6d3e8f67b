package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

const cacheKeyPrefix = "cache:"

// Entry is the persisted outcome of the last completed aggregation of an address.
type Entry struct {
	Address     string       `json:"address"`
	UpdatedAtMs int64        `json:"updated_at_ms"`
	Result      *fees.Result `json:"result"`
	// LastSyncTimestampMs is the newest transaction timestamp seen by the run, if any
	LastSyncTimestampMs *int64 `json:"last_sync_timestamp_ms,omitempty"`
}

// Store keeps one Entry per address. Entries never expire, they are only replaced by a
// newer completed run.
type Store struct {
	kv    db.KeyValueStore
	clock utils.Clock
}

func NewStore(kv db.KeyValueStore, clock utils.Clock) *Store {
	return &Store{
		kv:    kv,
		clock: clock,
	}
}

func cacheKey(address string) string {
	return cacheKeyPrefix + strings.ToLower(address)
}

// Get returns the cached entry of address. Storage failures and corrupted entries are
// reported as a miss.
func (s *Store) Get(ctx context.Context, address string) (*Entry, bool) {
	log := log.Ctx(ctx)

	raw, err := s.kv.Get(ctx, cacheKey(address))
	if err != nil {
		if !db.IsNotFoundError(err) {
			log.Warn().Err(err).Msg("cache read failed, treating as miss")
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Warn().Err(err).Msg("corrupted cache entry, treating as miss")
		return nil, false
	}
	if entry.Result == nil {
		log.Warn().Msg("cache entry without result, treating as miss")
		return nil, false
	}

	return &entry, true
}

// Put overwrites the entry of address with result.
func (s *Store) Put(ctx context.Context, address string, result *fees.Result, lastSyncTimestampMs *int64) (*Entry, error) {
	if result == nil {
		return nil, errors.New("nil result")
	}

	entry := &Entry{
		Address:             strings.ToLower(address),
		UpdatedAtMs:         utils.NowMs(s.clock),
		Result:              result,
		LastSyncTimestampMs: lastSyncTimestampMs,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := s.kv.Put(ctx, cacheKey(address), raw); err != nil {
		return nil, fmt.Errorf("failed to write cache entry: %w", err)
	}

	return entry, nil
}
