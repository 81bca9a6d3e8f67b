package services

import (
	"context"
)

type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateSyncing SyncState = "syncing"
	SyncStateFailed  SyncState = "failed"
)

// SyncStatus is the observable progress of the latest aggregation run of an address.
type SyncStatus struct {
	Address        string    `json:"address"`
	State          SyncState `json:"state"`
	RecordsFetched int       `json:"records_fetched"`
	LastError      string    `json:"last_error,omitempty"`
	UpdatedAtMs    int64     `json:"updated_at_ms"`
}

// beginRun hands out the next generation token of address. Every earlier run of the
// address becomes stale.
func (s *Service) beginRun(address string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generations[address]++
	s.syncStatuses[address] = &SyncStatus{
		Address:     address,
		State:       SyncStateSyncing,
		UpdatedAtMs: s.clock.Now().UnixMilli(),
	}
	return s.generations[address]
}

func (s *Service) isCurrentRun(address string, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[address] == generation
}

// updateRun applies update to the sync status of address only while generation is current.
func (s *Service) updateRun(address string, generation uint64, update func(status *SyncStatus)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[address] != generation {
		return false
	}
	status, ok := s.syncStatuses[address]
	if !ok {
		return false
	}
	update(status)
	status.UpdatedAtMs = s.clock.Now().UnixMilli()
	return true
}

func (s *Service) reportProgress(address string, generation uint64) func(int) {
	return func(recordsFetched int) {
		s.updateRun(address, generation, func(status *SyncStatus) {
			status.RecordsFetched = recordsFetched
		})
	}
}

func (s *Service) finishRun(address string, generation uint64, runErr error) {
	s.updateRun(address, generation, func(status *SyncStatus) {
		if runErr != nil {
			status.State = SyncStateFailed
			status.LastError = runErr.Error()
			return
		}
		status.State = SyncStateIdle
		status.LastError = ""
	})
}

// GetSyncStatus returns the status of the latest run of address, idle if it never ran.
func (s *Service) GetSyncStatus(_ context.Context, address string) (*SyncStatus, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.syncStatuses[addr]
	if !ok {
		return &SyncStatus{Address: addr, State: SyncStateIdle}, nil
	}
	copied := *status
	return &copied, nil
}
