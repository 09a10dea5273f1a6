package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/repositories"
)

// loadUserFromStorage restores the session saved under [repositories.CurrentUserKey].
//
// A missing, unparseable or nameless value leaves the manager anonymous.
func (m *Manager) loadUserFromStorage(ctx context.Context) {
	m.current = nil

	var session *models.Session
	found, err := repositories.ReadJSON(ctx, m.store, repositories.CurrentUserKey, &session)
	if err != nil {
		m.logFailure("failed to load current user", err)
		return
	}
	if !found || session == nil {
		return
	}
	if session.Username == "" {
		m.logFailure("failed to load current user", fmt.Errorf("%w: session without username", repositories.ErrCorruptValue))
		return
	}

	m.current = session
}

// saveUserToStorage persists the session and flushes its partition, or removes the session key when anonymous.
func (m *Manager) saveUserToStorage(ctx context.Context) error {
	if m.current == nil {
		if err := m.store.Remove(ctx, repositories.CurrentUserKey); err != nil {
			m.logFailure("failed to clear current user", err)
			return storageErr(err)
		}
		return nil
	}

	if err := repositories.WriteJSON(ctx, m.store, repositories.CurrentUserKey, m.current); err != nil {
		m.logFailure("failed to save current user", err)
		return storageErr(err)
	}

	return m.SaveUserData(ctx)
}

// loadUserData swaps the shared collections to the active partition.
//
// Missing values load as empty sequences. Any failure empties both collections.
func (m *Manager) loadUserData(ctx context.Context) {
	if m.collections == nil {
		return
	}

	username := m.Username()

	favorites, err := repositories.ReadIDs(ctx, m.store, repositories.FavoritesKey(username))
	if err == nil {
		var history []string
		history, err = repositories.ReadIDs(ctx, m.store, repositories.HistoryKey(username))
		if err == nil {
			m.collections.SetFavorites(favorites)
			m.collections.SetHistory(history)
			return
		}
	}

	m.logFailure("failed to load user data", err, "user", username)
	m.collections.SetFavorites(nil)
	m.collections.SetHistory(nil)
}

// SaveUserData flushes the shared collections to the current user's partition.
//
// A no-op while anonymous: the anonymous partition is written by the library, not the manager.
func (m *Manager) SaveUserData(ctx context.Context) error {
	if m.current == nil || m.collections == nil {
		return nil
	}

	username := m.current.Username

	if err := repositories.WriteIDs(ctx, m.store, repositories.FavoritesKey(username), m.collections.Favorites()); err != nil {
		m.logFailure("failed to save user data", err, "user", username)
		return storageErr(err)
	}
	if err := repositories.WriteIDs(ctx, m.store, repositories.HistoryKey(username), m.collections.History()); err != nil {
		m.logFailure("failed to save user data", err, "user", username)
		return storageErr(err)
	}

	return nil
}

// createUserData writes an empty partition for a newly registered user.
func (m *Manager) createUserData(ctx context.Context, username string) error {
	for _, key := range []string{repositories.FavoritesKey(username), repositories.HistoryKey(username)} {
		if err := repositories.WriteIDs(ctx, m.store, key, nil); err != nil {
			m.logFailure("failed to create user data", err, "user", username)
			return storageErr(err)
		}
	}
	return nil
}

// ExistingUsers returns the user directory, or an empty directory if it is missing or unreadable.
func (m *Manager) ExistingUsers(ctx context.Context) []models.User {
	var users []models.User
	if _, err := repositories.ReadJSON(ctx, m.store, repositories.UsersKey, &users); err != nil {
		m.logFailure("failed to load user list", err)
		return []models.User{}
	}
	if users == nil {
		users = []models.User{}
	}
	return users
}

// saveExistingUsers persists the whole user directory.
func (m *Manager) saveExistingUsers(ctx context.Context, users []models.User) error {
	if err := repositories.WriteJSON(ctx, m.store, repositories.UsersKey, users); err != nil {
		m.logFailure("failed to save user list", err)
		return storageErr(err)
	}
	return nil
}

// logFailure logs every storage failure once: at error level until the throttle kicks in, at debug
// level after that.
func (m *Manager) logFailure(msg string, err error, kv ...any) {
	kv = append(kv, "error", storageErr(err))
	logged := false
	m.warn.Do(func() {
		logged = true
		m.logger.Error(msg, kv...)
	})
	if !logged {
		m.logger.Debug(msg, kv...)
	}
}

func storageErr(err error) error {
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
