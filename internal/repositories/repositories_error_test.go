package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

func TestSQLiteStoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("ClosedDatabase", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)
		db.Close()

		if _, err := store.Get(ctx, "k"); err == nil || errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected access error, got %v", err)
		}
		if err := store.Set(ctx, "k", "v"); err == nil {
			t.Error("expected error from Set on closed database")
		}
		if err := store.Remove(ctx, "k"); err == nil {
			t.Error("expected error from Remove on closed database")
		}
		if _, err := store.Keys(ctx); err == nil {
			t.Error("expected error from Keys on closed database")
		}
	})

	t.Run("WriteJSON surfaces store failure", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)
		db.Close()

		if err := WriteJSON(ctx, store, UsersKey, []models.User{}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSongRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSongRepository(db)
			if err := repo.Create(models.NewSong(0, "  ", "nobody", "")); err == nil {
				t.Fatal("expected validation error for empty title")
			}
		})

		t.Run("DuplicateID", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSongRepository(db)
			song := models.NewSong(0, "Duplicate", "", "")
			song.SetID("rising-1")

			if err := repo.Create(song); err == nil {
				t.Fatal("expected error when reusing a seeded ID")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			_, err := NewSongRepository(db).Get("nonexistent-id")
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Fatalf("expected ErrSongNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			song := models.NewSong(0, "Ghost", "", "")
			song.SetID("nonexistent-id")

			if err := NewSongRepository(db).Update(song); !errors.Is(err, shared.ErrSongNotFound) {
				t.Fatalf("expected ErrSongNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("AlreadyDeleted", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSongRepository(db)
			if err := repo.Delete("new-1"); err != nil {
				t.Fatalf("failed to delete song: %v", err)
			}
			if err := repo.Delete("new-1"); err == nil {
				t.Fatal("expected error when deleting already deleted song")
			}
		})
	})
}
