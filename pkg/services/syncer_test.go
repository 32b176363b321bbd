package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/sources"
	"github.com/kerbaras/littlelemon/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncer(source sources.Source, repo Repository) (*Syncer, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewSyncer(source, repo, logger), hook
}

func drainProgress(s *Syncer) []SyncProgress {
	var out []SyncProgress
	for {
		select {
		case p := <-s.GetProgressChannel():
			out = append(out, p)
		default:
			return out
		}
	}
}

func TestNewSyncer(t *testing.T) {
	source := &mockSource{}
	repo := newMockRepository()

	syncer := NewSyncer(source, repo, nil)
	defer syncer.Close()

	if syncer.source != source {
		t.Error("Syncer source not set correctly")
	}
	if syncer.repo != repo {
		t.Error("Syncer repo not set correctly")
	}
	if syncer.log == nil {
		t.Error("Syncer logger not initialized")
	}
	if syncer.GetProgressChannel() == nil {
		t.Error("GetProgressChannel() returned nil")
	}
}

func TestSyncer_RunStoresEveryItem(t *testing.T) {
	records := menuRecords()
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return records, nil
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.AlreadySynced)
	assert.NotEmpty(t, result.AttemptID)
	assert.Equal(t, len(records), result.Fetched)
	assert.Equal(t, len(records), result.Stored)
	assert.Zero(t, result.Skipped)

	items, _ := repo.ListMenuItems()
	require.Len(t, items, len(records))
	for i, item := range items {
		want, err := records[i].ToMenuItem()
		require.NoError(t, err)
		assert.Equal(t, want, item)
	}

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncSynced, state.Status)
	assert.Equal(t, len(records), state.Items)
	assert.Equal(t, result.AttemptID, state.AttemptID)
	assert.Equal(t, []data.SyncStatus{data.SyncSyncing, data.SyncSynced}, repo.savedStates())

	var statuses []string
	for _, p := range drainProgress(syncer) {
		statuses = append(statuses, p.Status)
	}
	assert.Equal(t, []string{ProgressFetching, ProgressStoring, ProgressComplete}, statuses)
}

func TestSyncer_RunGreekSalad(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return sources.DecodeMenuBytes([]byte(`{"menu":[{"id":1,"title":"Greek Salad","description":"...","price":"12.99","image":"http://x/img.png","category":"starters"}]}`))
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	items, _ := repo.ListMenuItems()
	require.Len(t, items, 1)
	assert.Equal(t, &data.MenuItem{
		ID:          1,
		Title:       "Greek Salad",
		Description: "...",
		Price:       12.99,
		Image:       "http://x/img.png",
		Category:    "starters",
	}, items[0])
}

func TestSyncer_RunAlreadySynced(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		t.Fatal("FetchMenu must not be called when already synced")
		return nil, nil
	}}
	repo := newMockRepository()
	repo.state = &data.SyncState{Status: data.SyncSynced, AttemptID: "earlier", Items: 12}
	repo.saveMenuFunc = func(ctx context.Context, items []*data.MenuItem) error {
		t.Fatal("SaveMenu must not be called when already synced")
		return nil
	}
	syncer, _ := newTestSyncer(source, repo)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AlreadySynced)
	assert.Equal(t, "earlier", result.AttemptID)
	assert.Equal(t, 12, result.Stored)
	assert.Zero(t, source.Calls())
	assert.Empty(t, repo.savedStates())

	progress := drainProgress(syncer)
	require.Len(t, progress, 1)
	assert.Equal(t, ProgressSkipped, progress[0].Status)
}

func TestSyncer_RunSkipsInvalidPrices(t *testing.T) {
	records := menuRecords()
	records[1].Price = "free"
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return records, nil
	}}
	repo := newMockRepository()
	syncer, hook := newTestSyncer(source, repo)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(records), result.Fetched)
	assert.Equal(t, len(records)-1, result.Stored)
	assert.Equal(t, 1, result.Skipped)

	items, _ := repo.ListMenuItems()
	require.Len(t, items, len(records)-1)
	for _, item := range items {
		assert.NotEqual(t, 2, item.ID)
	}

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncSynced, state.Status)
	assert.Equal(t, 1, state.Skipped)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "skipping menu item" {
			warned = true
			assert.Equal(t, 2, entry.Data["id"])
			assert.Equal(t, "free", entry.Data["price"])
		}
	}
	assert.True(t, warned, "expected a warning for the skipped item")
}

func TestSyncer_RunFetchErrorLeavesStateFailed(t *testing.T) {
	fetchErr := &utils.FetchError{URL: "http://menu", StatusCode: 503}
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return nil, fetchErr
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	result, err := syncer.Run(context.Background())
	assert.Nil(t, result)
	require.Error(t, err)

	var fe *utils.FetchError
	assert.True(t, errors.As(err, &fe))

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncFailed, state.Status)
	assert.Contains(t, state.Reason, "failed to fetch menu")
	assert.True(t, state.NeedsSync())
	assert.Zero(t, repo.itemCount())

	progress := drainProgress(syncer)
	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, ProgressError, last.Status)
	assert.Error(t, last.Error)
}

func TestSyncer_RunDecodeErrorLeavesStateFailed(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return sources.DecodeMenuBytes([]byte(`not json`))
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	_, err := syncer.Run(context.Background())

	var de *sources.DecodeError
	require.True(t, errors.As(err, &de))

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncFailed, state.Status)
	assert.Zero(t, repo.itemCount())
}

func TestSyncer_RunStoreErrorLeavesStateFailed(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return menuRecords(), nil
	}}
	repo := newMockRepository()
	repo.saveMenuFunc = func(ctx context.Context, items []*data.MenuItem) error {
		return errors.New("disk full")
	}
	syncer, _ := newTestSyncer(source, repo)

	_, err := syncer.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncFailed, state.Status)
	assert.Zero(t, repo.itemCount())
}

func TestSyncer_RetryAfterFailure(t *testing.T) {
	fail := true
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		if fail {
			return nil, &utils.FetchError{URL: "http://menu", Err: errors.New("connection refused")}
		}
		return menuRecords(), nil
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	_, err := syncer.Run(context.Background())
	require.Error(t, err)

	fail = false
	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(menuRecords()), result.Stored)
	assert.Equal(t, 2, source.Calls())

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncSynced, state.Status)
	assert.Empty(t, state.Reason)
}

func TestSyncer_RunResumesInterruptedSync(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return menuRecords(), nil
	}}
	repo := newMockRepository()
	repo.state = &data.SyncState{Status: data.SyncSyncing, AttemptID: "crashed"}
	syncer, hook := newTestSyncer(source, repo)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "crashed", result.AttemptID)
	assert.Equal(t, 1, source.Calls())

	entry := hook.Entries[0]
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "crashed", entry.Data["previous"])
}

func TestSyncer_RunStateReadError(t *testing.T) {
	source := &mockSource{}
	repo := newMockRepository()
	repo.getSyncStateFunc = func() (*data.SyncState, error) {
		return nil, errors.New("locked")
	}
	syncer, _ := newTestSyncer(source, repo)

	_, err := syncer.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, source.Calls())
}

func TestSyncer_StartAndWait(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		return menuRecords(), nil
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)
	defer syncer.Close()

	task, err := syncer.Start(context.Background())
	require.NoError(t, err)

	result, err := task.Wait()
	require.NoError(t, err)
	assert.Equal(t, len(menuRecords()), result.Stored)
	assert.False(t, syncer.Running())

	select {
	case <-task.Done():
	default:
		t.Error("Done() should be closed after Wait returns")
	}
}

func TestSyncer_StartRejectsConcurrentRun(t *testing.T) {
	release := make(chan struct{})
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		<-release
		return menuRecords(), nil
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)
	defer syncer.Close()

	task, err := syncer.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, syncer.Running())

	_, err = syncer.Start(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	_, err = syncer.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	_, err = task.Wait()
	require.NoError(t, err)
}

func TestSyncer_CancelMarksFailed(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		<-ctx.Done()
		return nil, &utils.FetchError{URL: "http://menu", Err: ctx.Err()}
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)
	defer syncer.Close()

	task, err := syncer.Start(context.Background())
	require.NoError(t, err)

	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not stop after Cancel")
	}

	_, err = task.Wait()
	assert.ErrorIs(t, err, context.Canceled)

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncFailed, state.Status)
	assert.Zero(t, repo.itemCount())
}

func TestSyncer_CloseCancelsRunningTask(t *testing.T) {
	source := &mockSource{fetchMenuFunc: func(ctx context.Context) ([]sources.MenuItem, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	repo := newMockRepository()
	syncer, _ := newTestSyncer(source, repo)

	task, err := syncer.Start(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		syncer.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	_, err = task.Wait()
	assert.Error(t, err)

	// progress channel is closed once drained
	for range syncer.GetProgressChannel() {
	}

	_, err = syncer.Start(context.Background())
	assert.Error(t, err)
}
