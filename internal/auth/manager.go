package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultMinPasswordLength is the minimum password length when none is configured.
//
// Length is counted in runes, not UTF-16 code units, so a character outside the Basic
// Multilingual Plane (most emoji) counts once: three emoji are 3 characters here, while a
// JavaScript password.length check counts them as 6.
const DefaultMinPasswordLength = 6

// Collections is the favorites/history provider the manager borrows.
//
// The manager overwrites both collections wholesale when switching partitions.
type Collections interface {
	Favorites() []string
	History() []string
	SetFavorites(ids []string)
	SetHistory(ids []string)
}

// Manager owns the current session and the user directory.
//
// A Manager is not safe for concurrent use; callers serialize access.
type Manager struct {
	store       repositories.Store
	collections Collections
	logger      *log.Logger
	minPassword int
	warn        rate.Sometimes

	current   *models.Session
	listeners map[int]Listener
	nextID    int
}

// ManagerOpts contains configuration options for creating a Manager.
type ManagerOpts struct {
	Store             repositories.Store
	Collections       Collections
	Logger            *log.Logger
	MinPasswordLength int
}

// NewManager creates an anonymous [Manager]. Call [Manager.Init] to restore a persisted session.
func NewManager(opts ManagerOpts) *Manager {
	if opts.Store == nil {
		opts.Store = repositories.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = DefaultMinPasswordLength
	}

	return &Manager{
		store:       opts.Store,
		collections: opts.Collections,
		logger:      shared.WithLogger(opts.Logger, "component", "auth"),
		minPassword: opts.MinPasswordLength,
		warn:        rate.Sometimes{First: 5, Interval: 30 * time.Second},
		listeners:   make(map[int]Listener),
	}
}

// Init restores the persisted session, if any, and loads the matching partition.
func (m *Manager) Init(ctx context.Context) {
	m.loadUserFromStorage(ctx)
	m.loadUserData(ctx)

	m.logger.Debug("session restored", "state", m.State(), "user", m.Username())
}

// State reports whether a user is logged in.
func (m *Manager) State() State {
	if m.current == nil {
		return Anonymous
	}
	return Authenticated
}

// IsAuthenticated is shorthand for State() == Authenticated.
func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// CurrentUser returns a copy of the active session.
func (m *Manager) CurrentUser() (models.Session, bool) {
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Username returns the logged-in username, or "" when anonymous.
func (m *Manager) Username() string {
	if m.current == nil {
		return ""
	}
	return m.current.Username
}

// LoginUI returns the account controls for the current state.
func (m *Manager) LoginUI() LoginUI {
	return LoginUIFor(m.Username(), m.State())
}

// Subscribe registers l for login/logout refresh events and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	id := m.nextID
	m.nextID++
	m.listeners[id] = l

	return func() { delete(m.listeners, id) }
}

// Register validates and appends a new user to the directory, creating an empty partition.
//
// Checks run in order and stop at the first failure: empty username, short password, mismatched
// confirmation, taken username. Registering does not log the user in.
func (m *Manager) Register(ctx context.Context, username, password, confirmPassword string) Result {
	if strings.TrimSpace(username) == "" {
		return failure(ErrEmptyUsername)
	}
	if m.tooShort(password) {
		return m.passwordTooShort()
	}
	if password != confirmPassword {
		return failure(ErrPasswordMismatch)
	}

	users := m.ExistingUsers(ctx)
	if _, ok := findUser(users, username); ok {
		return failure(ErrUsernameTaken)
	}

	users = append(users, models.User{Username: username, Password: password})
	m.saveExistingUsers(ctx, users)
	m.createUserData(ctx, username)

	m.logger.Info("user registered", "user", username)
	return success("Registration successful, please log in")
}

// Login authenticates username and switches the shared collections to its partition.
//
// The password length is checked before the username. A user already logged in is flushed first.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	if m.tooShort(password) {
		return m.passwordTooShort()
	}
	if strings.TrimSpace(username) == "" {
		return failure(ErrEmptyUsername)
	}

	user, ok := findUser(m.ExistingUsers(ctx), username)
	if !ok {
		return failure(ErrUserNotFound)
	}
	if user.Password != password {
		return failure(ErrInvalidCredentials)
	}

	if m.current != nil {
		m.SaveUserData(ctx)
	}

	m.current = &models.Session{Username: username}
	m.loadUserData(ctx)
	m.saveUserToStorage(ctx)

	m.logger.Info("user logged in", "user", username)
	m.notify(Event{Kind: EventLogin, Username: username})

	return success("Login successful")
}

// Logout flushes the current user's data, clears the session and returns to the anonymous
// partition with favorites cleared. Safe to call while anonymous.
func (m *Manager) Logout(ctx context.Context) {
	username := m.Username()

	m.SaveUserData(ctx)
	m.current = nil
	m.saveUserToStorage(ctx)
	m.loadUserData(ctx)

	if m.collections != nil {
		m.collections.SetFavorites(nil)
	}

	if username != "" {
		m.logger.Info("user logged out", "user", username)
	}
	m.notify(Event{Kind: EventLogout, Username: username})
}

// HandleFavoritesChanged flushes the current user's partition after a favorites change.
func (m *Manager) HandleFavoritesChanged(ctx context.Context) {
	m.SaveUserData(ctx)
}

// HandlePlaybackEnded flushes the current user's partition after a song finishes.
func (m *Manager) HandlePlaybackEnded(ctx context.Context) {
	m.SaveUserData(ctx)
}

func (m *Manager) tooShort(password string) bool {
	return utf8.RuneCountInString(password) < m.minPassword
}

func (m *Manager) passwordTooShort() Result {
	return Result{
		Message: fmt.Sprintf("password must be at least %d characters", m.minPassword),
		Err:     ErrPasswordTooShort,
	}
}

func (m *Manager) notify(e Event) {
	for _, l := range m.listeners {
		l.HandleViewRefresh(e)
	}
}

func findUser(users []models.User, username string) (models.User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}
