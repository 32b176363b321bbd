package data

import "time"

type MenuItem struct {
	ID          int
	Title       string
	Description string
	Price       float64
	Image       string // URL
	Category    string
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SyncStatus string

const (
	SyncNotSynced SyncStatus = "not_synced"
	SyncSyncing   SyncStatus = "syncing"
	SyncSynced    SyncStatus = "synced"
	SyncFailed    SyncStatus = "failed"
)

// SyncState is the persisted outcome of the one-time menu sync.
type SyncState struct {
	Status    SyncStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"` // set when Status is SyncFailed
	AttemptID string     `json:"attempt_id,omitempty"`
	Items     int        `json:"items"`
	Skipped   int        `json:"skipped"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NeedsSync reports whether a sync should run. A state stuck in
// SyncSyncing belongs to an attempt that never finished.
func (s *SyncState) NeedsSync() bool {
	return s == nil || s.Status != SyncSynced
}
