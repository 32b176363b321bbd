package components

import (
	"fmt"

	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/services"
)

// SyncStatus tracks the menu sync for display on the home screen.
type SyncStatus struct {
	state    *data.SyncState
	progress *services.SyncProgress
}

func NewSyncStatus() *SyncStatus {
	return &SyncStatus{}
}

// SetState records the persisted state. Progress that disagrees with a
// settled state is stale and dropped.
func (s *SyncStatus) SetState(state *data.SyncState) {
	s.state = state
	if state == nil || s.progress == nil {
		return
	}
	switch state.Status {
	case data.SyncSynced:
		if s.progress.Status != services.ProgressComplete && s.progress.Status != services.ProgressSkipped {
			s.progress = nil
		}
	case data.SyncFailed:
		if s.progress.Status != services.ProgressError {
			s.progress = nil
		}
	}
}

func (s *SyncStatus) Update(progress services.SyncProgress) {
	p := progress // Copy
	s.progress = &p
}

// Active reports whether a sync is running.
func (s *SyncStatus) Active() bool {
	if s.progress == nil {
		return false
	}
	return s.progress.Status == services.ProgressFetching || s.progress.Status == services.ProgressStoring
}

// CanRetry reports whether the retry control should be offered.
func (s *SyncStatus) CanRetry() bool {
	if s.Active() {
		return false
	}
	if s.progress != nil && s.progress.Status == services.ProgressError {
		return true
	}
	return s.state != nil && s.state.NeedsSync() && s.state.Status != data.SyncSyncing
}

func (s *SyncStatus) View() string {
	if s.progress != nil {
		switch s.progress.Status {
		case services.ProgressFetching:
			return styles.StatusSyncing.Render("⟳ Fetching menu...")
		case services.ProgressStoring:
			return styles.StatusSyncing.Render(fmt.Sprintf("⟳ Saving %d items...", s.progress.Fetched-s.progress.Skipped))
		case services.ProgressError:
			return styles.StatusError.Render(fmt.Sprintf("✗ Menu sync failed: %s", s.progress.Error))
		case services.ProgressComplete:
			text := fmt.Sprintf("✓ Menu updated (%d items)", s.progress.Stored)
			if s.progress.Skipped > 0 {
				text += fmt.Sprintf(", %d skipped", s.progress.Skipped)
			}
			return styles.StatusCompleted.Render(text)
		}
	}

	if s.state == nil {
		return ""
	}
	switch s.state.Status {
	case data.SyncFailed:
		return styles.StatusError.Render(fmt.Sprintf("✗ Menu sync failed: %s", s.state.Reason))
	case data.SyncNotSynced:
		return styles.MutedStyle.Render("Menu not downloaded yet")
	case data.SyncSyncing:
		return styles.StatusSyncing.Render("⟳ Syncing menu...")
	}
	return ""
}
