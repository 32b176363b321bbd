package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/sources"
	"github.com/sirupsen/logrus"
)

var ErrSyncInProgress = errors.New("menu sync already in progress")

// progress statuses
const (
	ProgressFetching = "fetching"
	ProgressStoring  = "storing"
	ProgressComplete = "complete"
	ProgressSkipped  = "skipped" // already synced, nothing to do
	ProgressError    = "error"
)

// SyncProgress is published while a sync runs.
type SyncProgress struct {
	AttemptID string
	Status    string
	Fetched   int
	Stored    int
	Skipped   int
	Error     error
}

type SyncResult struct {
	AttemptID     string
	AlreadySynced bool
	Fetched       int // records in the payload
	Stored        int
	Skipped       int // records dropped for an invalid price
}

// Repository interface needed by the syncer and the session service
type Repository interface {
	SaveMenu(ctx context.Context, items []*data.MenuItem) error
	ListMenuItems() ([]*data.MenuItem, error)
	GetSyncState() (*data.SyncState, error)
	SaveSyncState(state *data.SyncState) error
	GetUser() (*data.User, error)
	SaveUser(user *data.User) error
	DeleteUser() error
}

// Syncer populates the local store from the remote menu once. The persisted
// SyncState only becomes SyncSynced after every item has been committed.
type Syncer struct {
	source sources.Source
	repo   Repository
	log    logrus.FieldLogger

	mu           sync.Mutex
	running      bool
	closed       bool
	task         *SyncTask
	progressChan chan SyncProgress

	now func() time.Time
}

func NewSyncer(source sources.Source, repo Repository, log logrus.FieldLogger) *Syncer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Syncer{
		source:       source,
		repo:         repo,
		log:          log,
		progressChan: make(chan SyncProgress, 16),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetProgressChannel returns the channel for receiving sync progress updates
func (s *Syncer) GetProgressChannel() <-chan SyncProgress {
	return s.progressChan
}

// State returns the persisted sync state.
func (s *Syncer) State() (*data.SyncState, error) {
	return s.repo.GetSyncState()
}

// Running reports whether a sync is in flight.
func (s *Syncer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Syncer) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("syncer is closed")
	}
	if s.running {
		return ErrSyncInProgress
	}
	s.running = true
	return nil
}

func (s *Syncer) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Run performs the sync in the calling goroutine. When the store is already
// synced it returns immediately without touching the network or the store.
func (s *Syncer) Run(ctx context.Context) (*SyncResult, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.run(ctx)
}

func (s *Syncer) run(ctx context.Context) (*SyncResult, error) {
	state, err := s.repo.GetSyncState()
	if err != nil {
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}
	if !state.NeedsSync() {
		s.sendProgress(SyncProgress{AttemptID: state.AttemptID, Status: ProgressSkipped, Stored: state.Items})
		return &SyncResult{AttemptID: state.AttemptID, AlreadySynced: true, Stored: state.Items, Skipped: state.Skipped}, nil
	}

	result := &SyncResult{AttemptID: uuid.NewString()}
	log := s.log.WithField("attempt", result.AttemptID)
	if state.Status == data.SyncSyncing {
		log.WithField("previous", state.AttemptID).Warn("previous menu sync did not finish, starting over")
	}

	if err := s.repo.SaveSyncState(&data.SyncState{
		Status:    data.SyncSyncing,
		AttemptID: result.AttemptID,
		UpdatedAt: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to save sync state: %w", err)
	}

	s.sendProgress(SyncProgress{AttemptID: result.AttemptID, Status: ProgressFetching})
	log.Info("fetching menu")

	records, err := s.source.FetchMenu(ctx)
	if err != nil {
		return nil, s.fail(result, fmt.Errorf("failed to fetch menu: %w", err))
	}
	result.Fetched = len(records)

	items := make([]*data.MenuItem, 0, len(records))
	for i := range records {
		item, err := records[i].ToMenuItem()
		if err != nil {
			// one bad price must not block the rest of the menu
			log.WithFields(logrus.Fields{
				"id":    records[i].ID,
				"title": records[i].Title,
				"price": records[i].Price,
			}).WithError(err).Warn("skipping menu item")
			result.Skipped++
			continue
		}
		items = append(items, item)
	}

	s.sendProgress(SyncProgress{
		AttemptID: result.AttemptID,
		Status:    ProgressStoring,
		Fetched:   result.Fetched,
		Skipped:   result.Skipped,
	})

	if err := s.repo.SaveMenu(ctx, items); err != nil {
		return nil, s.fail(result, fmt.Errorf("failed to store menu: %w", err))
	}
	result.Stored = len(items)

	if err := s.repo.SaveSyncState(&data.SyncState{
		Status:    data.SyncSynced,
		AttemptID: result.AttemptID,
		Items:     result.Stored,
		Skipped:   result.Skipped,
		UpdatedAt: s.now(),
	}); err != nil {
		return nil, s.fail(result, fmt.Errorf("failed to save sync state: %w", err))
	}

	log.WithFields(logrus.Fields{
		"items":   result.Stored,
		"skipped": result.Skipped,
	}).Info("menu synced")

	s.sendProgress(SyncProgress{
		AttemptID: result.AttemptID,
		Status:    ProgressComplete,
		Fetched:   result.Fetched,
		Stored:    result.Stored,
		Skipped:   result.Skipped,
	})
	return result, nil
}

// fail records a failed attempt so the next startup or an explicit retry
// runs the sync again.
func (s *Syncer) fail(result *SyncResult, err error) error {
	log := s.log.WithField("attempt", result.AttemptID)
	log.WithError(err).Error("menu sync failed")

	if saveErr := s.repo.SaveSyncState(&data.SyncState{
		Status:    data.SyncFailed,
		Reason:    err.Error(),
		AttemptID: result.AttemptID,
		UpdatedAt: s.now(),
	}); saveErr != nil {
		log.WithError(saveErr).Error("failed to record sync failure")
	}

	s.sendProgress(SyncProgress{
		AttemptID: result.AttemptID,
		Status:    ProgressError,
		Fetched:   result.Fetched,
		Skipped:   result.Skipped,
		Error:     err,
	})
	return err
}

// sendProgress sends a progress update (non-blocking)
func (s *Syncer) sendProgress(progress SyncProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// SyncTask is a handle on a sync running in the background.
type SyncTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	result *SyncResult
	err    error
}

// Start launches the sync in a new goroutine. The task stops early when ctx
// is done or Cancel is called.
func (s *Syncer) Start(ctx context.Context) (*SyncTask, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	task := &SyncTask{cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.task = task
	s.mu.Unlock()

	go func() {
		defer close(task.done)
		defer cancel()
		defer s.release()
		task.result, task.err = s.run(ctx)
	}()
	return task, nil
}

func (t *SyncTask) Cancel() {
	t.cancel()
}

// Done is closed when the task has finished.
func (t *SyncTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its outcome.
func (t *SyncTask) Wait() (*SyncResult, error) {
	<-t.done
	return t.result, t.err
}

// Close cancels a running task, waits for it and closes the progress channel.
func (s *Syncer) Close() {
	s.mu.Lock()
	task := s.task
	s.mu.Unlock()

	if task != nil {
		task.Cancel()
		<-task.Done()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.progressChan)
	}
}
