// Package library holds the shared favorites and history collections of the player.
//
// The collections are song IDs. User-facing changes (toggling a favorite, finishing a song) notify
// registered listeners; wholesale replacement through SetFavorites/SetHistory does not, since that
// is how the account layer swaps partitions in and out.
package library

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultHistoryLimit caps history when no limit is configured.
const DefaultHistoryLimit = 50

// Library owns the favorites and history collections. Safe for concurrent use.
type Library struct {
	mu           sync.Mutex
	favorites    []string
	history      []string
	historyLimit int

	store  repositories.Store
	logger *log.Logger
	warn   rate.Sometimes

	favoritesChanged []func()
	playbackEnded    []func(songID string)
}

// Options configures a [Library].
type Options struct {
	Store        repositories.Store // Store receives the anonymous partition on SaveDefaults
	Logger       *log.Logger
	HistoryLimit int
}

// New creates an empty [Library].
func New(opts Options) *Library {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}

	return &Library{
		favorites:    []string{},
		history:      []string{},
		historyLimit: opts.HistoryLimit,
		store:        opts.Store,
		logger:       shared.WithLogger(opts.Logger, "component", "library"),
		warn:         rate.Sometimes{First: 3, Interval: 30 * time.Second},
	}
}

// Favorites returns a copy of the favorite song IDs.
func (l *Library) Favorites() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.favorites)
}

// History returns a copy of the history, most recent first.
func (l *Library) History() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.history)
}

// SetFavorites replaces the favorites without notifying listeners.
func (l *Library) SetFavorites(ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.favorites = normalize(ids)
}

// SetHistory replaces the history without notifying listeners.
func (l *Library) SetHistory(ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = normalize(ids)
}

// IsFavorite reports whether id is a favorite.
func (l *Library) IsFavorite(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.favorites, id)
}

// AddFavorite appends id to the favorites. Returns false when it was already present.
func (l *Library) AddFavorite(id string) bool {
	l.mu.Lock()
	if slices.Contains(l.favorites, id) {
		l.mu.Unlock()
		return false
	}
	l.favorites = append(l.favorites, id)
	l.mu.Unlock()

	l.emitFavoritesChanged()
	return true
}

// RemoveFavorite removes id from the favorites. Returns false when it was not present.
func (l *Library) RemoveFavorite(id string) bool {
	l.mu.Lock()
	idx := slices.Index(l.favorites, id)
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	l.favorites = slices.Delete(l.favorites, idx, idx+1)
	l.mu.Unlock()

	l.emitFavoritesChanged()
	return true
}

// ToggleFavorite flips id and reports whether it is now a favorite.
func (l *Library) ToggleFavorite(id string) bool {
	if l.RemoveFavorite(id) {
		return false
	}
	return l.AddFavorite(id)
}

// PlaybackEnded records a finished song at the front of the history, then notifies listeners.
//
// An earlier entry for the same song is moved rather than duplicated, and the history is trimmed to its limit.
func (l *Library) PlaybackEnded(id string) {
	l.mu.Lock()
	if idx := slices.Index(l.history, id); idx >= 0 {
		l.history = slices.Delete(l.history, idx, idx+1)
	}
	l.history = append([]string{id}, l.history...)
	if len(l.history) > l.historyLimit {
		l.history = l.history[:l.historyLimit]
	}
	listeners := slices.Clone(l.playbackEnded)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}

// OnFavoritesChanged registers fn to run after every favorites change.
func (l *Library) OnFavoritesChanged(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.favoritesChanged = append(l.favoritesChanged, fn)
}

// OnPlaybackEnded registers fn to run after a song finishes.
func (l *Library) OnPlaybackEnded(fn func(songID string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.playbackEnded = append(l.playbackEnded, fn)
}

// SaveDefaults writes the collections to the anonymous partition.
//
// Called by the application while nobody is logged in. Failures are logged and returned.
func (l *Library) SaveDefaults(ctx context.Context) error {
	if l.store == nil {
		return nil
	}

	favorites, history := l.Favorites(), l.History()

	if err := repositories.WriteIDs(ctx, l.store, repositories.FavoritesKey(""), favorites); err != nil {
		l.logFailure("failed to save default favorites", err)
		return err
	}
	if err := repositories.WriteIDs(ctx, l.store, repositories.HistoryKey(""), history); err != nil {
		l.logFailure("failed to save default history", err)
		return err
	}
	return nil
}

func (l *Library) emitFavoritesChanged() {
	l.mu.Lock()
	listeners := slices.Clone(l.favoritesChanged)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (l *Library) logFailure(msg string, err error) {
	logged := false
	l.warn.Do(func() {
		logged = true
		l.logger.Warn(msg, "error", err)
	})
	if !logged {
		l.logger.Debug(msg, "error", err)
	}
}

func normalize(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
