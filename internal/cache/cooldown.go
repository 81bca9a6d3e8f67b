package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/db"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

const (
	cooldownKeyPrefix = "cooldown:"

	// CooldownDuration is the minimum time between two manual re-syncs of one address.
	CooldownDuration = 60 * time.Second
)

type cooldownState struct {
	CooldownEndMs int64 `json:"cooldown_end_ms"`
}

// CooldownStatus describes the cooldown of one address at a point in time.
type CooldownStatus struct {
	Active      bool  `json:"active"`
	RemainingMs int64 `json:"remaining_ms"`
	// ProgressRatio is the share of the cooldown still left, 1 right after Start and 0 once expired
	ProgressRatio float64 `json:"progress_ratio"`
}

// Limiter reports whether an address is cooling down after a manual re-sync.
// It never blocks anything itself, callers decide what to reject.
type Limiter struct {
	kv       db.KeyValueStore
	clock    utils.Clock
	duration time.Duration
}

func NewLimiter(kv db.KeyValueStore, clock utils.Clock) *Limiter {
	return &Limiter{
		kv:       kv,
		clock:    clock,
		duration: CooldownDuration,
	}
}

func cooldownKey(address string) string {
	return cooldownKeyPrefix + strings.ToLower(address)
}

// Start begins a new cooldown for address, replacing any running one.
func (l *Limiter) Start(ctx context.Context, address string) error {
	state := cooldownState{
		CooldownEndMs: utils.NowMs(l.clock) + l.duration.Milliseconds(),
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cooldown: %w", err)
	}
	if err := l.kv.Put(ctx, cooldownKey(address), raw); err != nil {
		return fmt.Errorf("failed to write cooldown: %w", err)
	}
	return nil
}

// Status is computed from the stored expiry only; an unreadable expiry counts as no cooldown.
func (l *Limiter) Status(ctx context.Context, address string) CooldownStatus {
	raw, err := l.kv.Get(ctx, cooldownKey(address))
	if err != nil {
		if !db.IsNotFoundError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("cooldown read failed, treating as inactive")
		}
		return CooldownStatus{}
	}

	var state cooldownState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("corrupted cooldown, treating as inactive")
		return CooldownStatus{}
	}

	remaining := state.CooldownEndMs - utils.NowMs(l.clock)
	if remaining <= 0 {
		return CooldownStatus{}
	}

	ratio := float64(remaining) / float64(l.duration.Milliseconds())
	return CooldownStatus{
		Active:        true,
		RemainingMs:   remaining,
		ProgressRatio: min(ratio, 1),
	}
}
