package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	PrefSyncState = "sync_state"
	PrefUser      = "user"
)

// GetPreference returns the stored value for key and whether it exists.
func (r *Repository) GetPreference(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT pref_value FROM preferences WHERE pref_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Repository) SetPreference(key, value string) error {
	_, err := r.db.Exec(`INSERT OR REPLACE INTO preferences (pref_key, pref_value) VALUES (?, ?)`, key, value)
	return err
}

func (r *Repository) DeletePreference(key string) error {
	_, err := r.db.Exec(`DELETE FROM preferences WHERE pref_key = ?`, key)
	return err
}

func (r *Repository) getJSON(key string, v any) (bool, error) {
	raw, ok, err := r.GetPreference(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("corrupt preference %q: %w", key, err)
	}
	return true, nil
}

func (r *Repository) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.SetPreference(key, string(raw))
}

// GetSyncState returns the persisted sync state. A database that has never
// synced reports SyncNotSynced.
func (r *Repository) GetSyncState() (*SyncState, error) {
	state := &SyncState{}
	ok, err := r.getJSON(PrefSyncState, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &SyncState{Status: SyncNotSynced}, nil
	}
	return state, nil
}

func (r *Repository) SaveSyncState(state *SyncState) error {
	if state == nil {
		return fmt.Errorf("sync state cannot be nil")
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	return r.setJSON(PrefSyncState, state)
}

// GetUser returns the stored user, or nil when nobody has onboarded.
func (r *Repository) GetUser() (*User, error) {
	user := &User{}
	ok, err := r.getJSON(PrefUser, user)
	if err != nil || !ok {
		return nil, err
	}
	return user, nil
}

func (r *Repository) SaveUser(user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	return r.setJSON(PrefUser, user)
}

func (r *Repository) DeleteUser() error {
	return r.DeletePreference(PrefUser)
}
