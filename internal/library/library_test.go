package library

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	tu "github.com/desertthunder/tunebox/internal/testing"
)

func newTestLibrary(t *testing.T, store repositories.Store, limit int) *Library {
	t.Helper()
	return New(Options{Store: store, Logger: shared.NewLogger(&bytes.Buffer{}), HistoryLimit: limit})
}

func TestLibrary(t *testing.T) {
	t.Run("New starts empty", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)

		if got := lib.Favorites(); got == nil || len(got) != 0 {
			t.Errorf("expected empty favorites, got %#v", got)
		}
		if got := lib.History(); got == nil || len(got) != 0 {
			t.Errorf("expected empty history, got %#v", got)
		}
		if lib.historyLimit != DefaultHistoryLimit {
			t.Errorf("expected default history limit, got %d", lib.historyLimit)
		}
	})

	t.Run("Set replaces silently", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)
		calls := 0
		lib.OnFavoritesChanged(func() { calls++ })

		lib.SetFavorites([]string{"a", "b"})
		lib.SetHistory(nil)

		if calls != 0 {
			t.Errorf("expected no notifications, got %d", calls)
		}
		if !reflect.DeepEqual(lib.Favorites(), []string{"a", "b"}) {
			t.Errorf("unexpected favorites %v", lib.Favorites())
		}
		if lib.History() == nil {
			t.Error("expected nil history to normalize to empty")
		}
	})

	t.Run("Favorites returns a copy", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)
		lib.SetFavorites([]string{"a"})

		got := lib.Favorites()
		got[0] = "mutated"

		if lib.Favorites()[0] != "a" {
			t.Error("caller mutation leaked into library")
		}
	})

	t.Run("Toggle notifies on every change", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)
		calls := 0
		lib.OnFavoritesChanged(func() { calls++ })

		if !lib.ToggleFavorite("rising-1") {
			t.Error("expected toggle to add")
		}
		if !lib.IsFavorite("rising-1") {
			t.Error("expected rising-1 to be a favorite")
		}
		if lib.ToggleFavorite("rising-1") {
			t.Error("expected toggle to remove")
		}
		if calls != 2 {
			t.Errorf("expected 2 notifications, got %d", calls)
		}
	})

	t.Run("Add and Remove are idempotent", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)
		calls := 0
		lib.OnFavoritesChanged(func() { calls++ })

		lib.AddFavorite("x")
		if lib.AddFavorite("x") {
			t.Error("second add should report no change")
		}
		lib.RemoveFavorite("x")
		if lib.RemoveFavorite("x") {
			t.Error("second remove should report no change")
		}
		if calls != 2 {
			t.Errorf("expected 2 notifications, got %d", calls)
		}
	})

	t.Run("PlaybackEnded orders, dedupes and trims", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 3)
		var ended []string
		lib.OnPlaybackEnded(func(id string) { ended = append(ended, id) })

		for _, id := range []string{"a", "b", "c", "a", "d"} {
			lib.PlaybackEnded(id)
		}

		if want := []string{"d", "a", "c"}; !reflect.DeepEqual(lib.History(), want) {
			t.Errorf("expected history %v, got %v", want, lib.History())
		}
		if len(ended) != 5 {
			t.Errorf("expected 5 ended notifications, got %d", len(ended))
		}
	})

	t.Run("Listener may read the library", func(t *testing.T) {
		lib := newTestLibrary(t, nil, 0)
		var seen []string
		lib.OnFavoritesChanged(func() { seen = lib.Favorites() })

		lib.AddFavorite("z")

		if !reflect.DeepEqual(seen, []string{"z"}) {
			t.Errorf("expected listener to observe the change, got %v", seen)
		}
	})
}

func TestSaveDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("writes anonymous partition", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		lib := newTestLibrary(t, store, 0)
		lib.SetFavorites([]string{"new-1"})
		lib.PlaybackEnded("classic-1")

		if err := lib.SaveDefaults(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := tu.MustGet(t, store, repositories.DefaultFavoritesKey); got != `["new-1"]` {
			t.Errorf("unexpected favorites %s", got)
		}
		if got := tu.MustGet(t, store, repositories.DefaultHistoryKey); got != `["classic-1"]` {
			t.Errorf("unexpected history %s", got)
		}
	})

	t.Run("without store is a no-op", func(t *testing.T) {
		if err := newTestLibrary(t, nil, 0).SaveDefaults(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := tu.NewFailingStore()
		store.FailWrites = true

		err := newTestLibrary(t, store, 0).SaveDefaults(ctx)
		if !errors.Is(err, tu.ErrStoreDown) {
			t.Errorf("expected ErrStoreDown, got %v", err)
		}
	})
}
