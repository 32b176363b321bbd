package services

import (
	"errors"
	"testing"

	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(repo Repository) *SessionService {
	logger, _ := test.NewNullLogger()
	return NewSessionService(repo, logger)
}

func TestSessionService_Register(t *testing.T) {
	repo := newMockRepository()
	sessions := newTestSessions(repo)

	user, err := sessions.Register("  Tilly ", " tilly@littlelemon.com ")
	require.NoError(t, err)
	assert.Equal(t, &data.User{Name: "Tilly", Email: "tilly@littlelemon.com"}, user)

	current, err := sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestSessionService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		email string
		field string
	}{
		{"missing name", "", "tilly@littlelemon.com", "name"},
		{"blank name", "   ", "tilly@littlelemon.com", "name"},
		{"missing email", "Tilly", "", "email"},
		{"no at sign", "Tilly", "tilly.littlelemon.com", "email"},
		{"no domain", "Tilly", "tilly@", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			sessions := newTestSessions(repo)

			_, err := sessions.Register(tt.user, tt.email)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, ve.Field)

			_, err = sessions.Current()
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestSessionService_RegisterSaveError(t *testing.T) {
	repo := newMockRepository()
	repo.saveUserFunc = func(user *data.User) error {
		return errors.New("read-only")
	}

	_, err := newTestSessions(repo).Register("Tilly", "tilly@littlelemon.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestSessionService_CurrentWithoutSession(t *testing.T) {
	_, err := newTestSessions(newMockRepository()).Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionService_CurrentLoadError(t *testing.T) {
	repo := newMockRepository()
	repo.getUserFunc = func() (*data.User, error) {
		return nil, errors.New("corrupt")
	}

	_, err := newTestSessions(repo).Current()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSession))
}

func TestSessionService_SignOutKeepsMenu(t *testing.T) {
	repo := newMockRepository()
	repo.state = &data.SyncState{Status: data.SyncSynced, Items: 5}
	repo.items[1] = &data.MenuItem{ID: 1, Title: "Greek Salad"}
	sessions := newTestSessions(repo)

	_, err := sessions.Register("Tilly", "tilly@littlelemon.com")
	require.NoError(t, err)

	require.NoError(t, sessions.SignOut())

	_, err = sessions.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	state, _ := repo.GetSyncState()
	assert.Equal(t, data.SyncSynced, state.Status)
	assert.Equal(t, 1, repo.itemCount())
}

func TestValidateFields(t *testing.T) {
	assert.NoError(t, ValidateName("Tilly"))
	assert.Error(t, ValidateName(""))
	assert.NoError(t, ValidateEmail("tilly@littlelemon.com"))
	assert.Error(t, ValidateEmail("tilly"))
}
