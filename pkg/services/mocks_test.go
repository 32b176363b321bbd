package services

import (
	"context"
	"sync"

	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/sources"
)

// Mock implementations for testing

type mockSource struct {
	mu            sync.Mutex
	calls         int
	fetchMenuFunc func(ctx context.Context) ([]sources.MenuItem, error)
}

func (m *mockSource) FetchMenu(ctx context.Context) ([]sources.MenuItem, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.fetchMenuFunc != nil {
		return m.fetchMenuFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRepository keeps everything in memory; the func fields override a
// single operation.
type mockRepository struct {
	mu     sync.Mutex
	items  map[int]*data.MenuItem
	state  *data.SyncState
	user   *data.User
	states []data.SyncStatus // every status saved, in order

	saveMenuFunc      func(ctx context.Context, items []*data.MenuItem) error
	saveSyncStateFunc func(state *data.SyncState) error
	getSyncStateFunc  func() (*data.SyncState, error)
	getUserFunc       func() (*data.User, error)
	saveUserFunc      func(user *data.User) error
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[int]*data.MenuItem)}
}

func (m *mockRepository) SaveMenu(ctx context.Context, items []*data.MenuItem) error {
	if m.saveMenuFunc != nil {
		if err := m.saveMenuFunc(ctx, items); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		copied := *item
		m.items[item.ID] = &copied
	}
	return nil
}

func (m *mockRepository) ListMenuItems() ([]*data.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*data.MenuItem, 0, len(m.items))
	for id := 0; len(out) < len(m.items); id++ {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockRepository) GetSyncState() (*data.SyncState, error) {
	if m.getSyncStateFunc != nil {
		return m.getSyncStateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return &data.SyncState{Status: data.SyncNotSynced}, nil
	}
	copied := *m.state
	return &copied, nil
}

func (m *mockRepository) SaveSyncState(state *data.SyncState) error {
	if m.saveSyncStateFunc != nil {
		if err := m.saveSyncStateFunc(state); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *state
	m.state = &copied
	m.states = append(m.states, state.Status)
	return nil
}

func (m *mockRepository) GetUser() (*data.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, nil
}

func (m *mockRepository) SaveUser(user *data.User) error {
	if m.saveUserFunc != nil {
		return m.saveUserFunc(user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

func (m *mockRepository) DeleteUser() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

func (m *mockRepository) itemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *mockRepository) savedStates() []data.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]data.SyncStatus(nil), m.states...)
}

// Test helpers

func menuRecords() []sources.MenuItem {
	return []sources.MenuItem{
		{ID: 1, Title: "Greek Salad", Description: "Crispy lettuce, peppers, olives", Price: "12.99", Image: "http://x/greek.png", Category: "starters"},
		{ID: 2, Title: "Lemon Desert", Description: "Traditional homemade lemon cake", Price: "10", Image: "http://x/lemon.png", Category: "desserts"},
		{ID: 3, Title: "Grilled Fish", Description: "Fish marinated in fresh orange and lemon juice", Price: "20.00", Image: "http://x/fish.png", Category: "mains"},
		{ID: 4, Title: "Pasta", Description: "Penne with fried aubergines", Price: "18.99", Image: "http://x/pasta.png", Category: "mains"},
		{ID: 5, Title: "Bruschetta", Description: "Grilled bread smeared with garlic", Price: "7.99", Image: "http://x/bruschetta.png", Category: "starters"},
	}
}
