package repositories

import (
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
)

func TestSongRepository(t *testing.T) {
	t.Run("Seeded catalog", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		songs, err := NewSongRepository(db).List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 9 {
			t.Fatalf("expected 9 seeded songs, got %d", len(songs))
		}
		if songs[0].ID() != "rising-1" || songs[8].ID() != "classic-3" {
			t.Errorf("unexpected ordering: first %s, last %s", songs[0].ID(), songs[8].ID())
		}
	})

	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepository(db)
		song := models.NewSong(0, "稻香", "周杰伦", models.ChartClassic)

		if err := repo.Create(song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if song.ID() == "" {
			t.Fatal("song ID should be set after creation")
		}
		if song.Sequence() != 10 {
			t.Errorf("expected sequence to continue after seed (10), got %d", song.Sequence())
		}

		retrieved, err := repo.Get(song.ID())
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if retrieved.Title() != "稻香" || retrieved.Artist() != "周杰伦" {
			t.Errorf("unexpected song %s", retrieved.Label())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepository(db)
		song, err := repo.Get("classic-3")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}

		song.SetArtist("Beyond (Live)")
		if err := repo.Update(song); err != nil {
			t.Fatalf("failed to update song: %v", err)
		}

		retrieved, _ := repo.Get("classic-3")
		if retrieved.Artist() != "Beyond (Live)" {
			t.Errorf("expected updated artist, got %s", retrieved.Artist())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepository(db)
		if err := repo.Delete("rising-2"); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}
		if _, err := repo.Get("rising-2"); err == nil {
			t.Error("expected error when getting deleted song")
		}
	})

	t.Run("List by chart", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		songs, err := NewSongRepository(db).List(map[string]any{"chart": models.ChartNew})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 3 {
			t.Fatalf("expected 3 new songs, got %d", len(songs))
		}
		for _, s := range songs {
			if s.Chart() != models.ChartNew {
				t.Errorf("unexpected chart %s for %s", s.Chart(), s.ID())
			}
		}
	})

	t.Run("GetMany keeps order and skips unknown", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		songs, err := NewSongRepository(db).GetMany([]string{"classic-1", "missing", "rising-1"})
		if err != nil {
			t.Fatalf("failed to resolve songs: %v", err)
		}
		if len(songs) != 2 || songs[0].ID() != "classic-1" || songs[1].ID() != "rising-1" {
			t.Errorf("unexpected result %v", songs)
		}

		none, err := NewSongRepository(db).GetMany(nil)
		if err != nil || len(none) != 0 {
			t.Errorf("expected empty result, got (%v, %v)", none, err)
		}
	})

	t.Run("NextSequence", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		first, err := NextSequence(db, "songs")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		second, _ := NextSequence(db, "songs")
		if second != first+1 {
			t.Errorf("expected consecutive sequences, got %d then %d", first, second)
		}
	})
}
