package repositories

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// eachStore runs fn against every [Store] implementation
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("SQLite", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()
		fn(t, NewSQLiteStore(db))
	})
	t.Run("Memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Get missing key", func(t *testing.T) {
		eachStore(t, func(t *testing.T, s Store) {
			if _, err := s.Get(ctx, "absent"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("expected ErrKeyNotFound, got %v", err)
			}
		})
	})

	t.Run("Set then Get", func(t *testing.T) {
		eachStore(t, func(t *testing.T, s Store) {
			if err := s.Set(ctx, UsersKey, `[]`); err != nil {
				t.Fatalf("failed to set: %v", err)
			}

			got, err := s.Get(ctx, UsersKey)
			if err != nil {
				t.Fatalf("failed to get: %v", err)
			}
			if got != `[]` {
				t.Errorf("expected [], got %q", got)
			}
		})
	})

	t.Run("Set overwrites", func(t *testing.T) {
		eachStore(t, func(t *testing.T, s Store) {
			_ = s.Set(ctx, "k", "one")
			_ = s.Set(ctx, "k", "two")

			got, _ := s.Get(ctx, "k")
			if got != "two" {
				t.Errorf("expected two, got %q", got)
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		eachStore(t, func(t *testing.T, s Store) {
			_ = s.Set(ctx, "k", "v")

			if err := s.Remove(ctx, "k"); err != nil {
				t.Fatalf("failed to remove: %v", err)
			}
			if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("expected key to be gone, got %v", err)
			}
			if err := s.Remove(ctx, "k"); err != nil {
				t.Errorf("removing a missing key should succeed, got %v", err)
			}
		})
	})

	t.Run("Keys sorted", func(t *testing.T) {
		eachStore(t, func(t *testing.T, s Store) {
			for _, k := range []string{"b", "c", "a"} {
				_ = s.Set(ctx, k, "x")
			}

			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("failed to list keys: %v", err)
			}
			if want := []string{"a", "b", "c"}; !reflect.DeepEqual(keys, want) {
				t.Errorf("expected %v, got %v", want, keys)
			}
		})
	})
}

func TestKeys(t *testing.T) {
	tc := []struct {
		name string
		got  string
		want string
	}{
		{name: "user favorites", got: FavoritesKey("alice"), want: "user_alice_favorites"},
		{name: "user history", got: HistoryKey("alice"), want: "user_alice_history"},
		{name: "anonymous favorites", got: FavoritesKey(""), want: "musicPlayerFavorites"},
		{name: "anonymous history", got: HistoryKey(""), want: "musicPlayerHistory"},
		{name: "username kept verbatim", got: FavoritesKey("Bob Smith"), want: "user_Bob Smith_favorites"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCodec(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadJSON absent", func(t *testing.T) {
		var users []models.User
		found, err := ReadJSON(ctx, NewMemoryStore(), UsersKey, &users)
		if err != nil || found {
			t.Errorf("expected (false, nil), got (%v, %v)", found, err)
		}
	})

	t.Run("WriteJSON then ReadJSON", func(t *testing.T) {
		s := NewMemoryStore()
		in := []models.User{{Username: "alice", Password: "secret1"}}

		if err := WriteJSON(ctx, s, UsersKey, in); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		raw, _ := s.Get(ctx, UsersKey)
		if raw != `[{"username":"alice","password":"secret1"}]` {
			t.Errorf("unexpected encoding %s", raw)
		}

		var out []models.User
		found, err := ReadJSON(ctx, s, UsersKey, &out)
		if err != nil || !found {
			t.Fatalf("expected value, got (%v, %v)", found, err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("expected %v, got %v", in, out)
		}
	})

	t.Run("ReadJSON corrupt", func(t *testing.T) {
		s := NewMemoryStore()
		_ = s.Set(ctx, UsersKey, "{not json")

		var users []models.User
		_, err := ReadJSON(ctx, s, UsersKey, &users)
		if !errors.Is(err, ErrCorruptValue) {
			t.Errorf("expected ErrCorruptValue, got %v", err)
		}
	})

	t.Run("ReadIDs defaults to empty", func(t *testing.T) {
		s := NewMemoryStore()
		_ = s.Set(ctx, "nullish", "null")

		for _, key := range []string{"absent", "nullish"} {
			ids, err := ReadIDs(ctx, s, key)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", key, err)
			}
			if ids == nil || len(ids) != 0 {
				t.Errorf("expected empty non-nil slice for %s, got %#v", key, ids)
			}
		}
	})

	t.Run("WriteIDs nil writes empty array", func(t *testing.T) {
		s := NewMemoryStore()
		if err := WriteIDs(ctx, s, "k", nil); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if raw, _ := s.Get(ctx, "k"); raw != "[]" {
			t.Errorf("expected [], got %s", raw)
		}
	})
}
