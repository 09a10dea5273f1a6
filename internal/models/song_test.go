package models

import "testing"

func TestSong(t *testing.T) {
	t.Run("NewSong trims fields", func(t *testing.T) {
		song := NewSong(1, "  后来 ", " 刘若英 ", " classic ")

		if song.Title() != "后来" || song.Artist() != "刘若英" || song.Chart() != ChartClassic {
			t.Errorf("unexpected fields: %q %q %q", song.Title(), song.Artist(), song.Chart())
		}
		if song.CreatedAt().IsZero() || !song.CreatedAt().Equal(song.UpdatedAt()) {
			t.Error("expected matching creation timestamps")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		song := NewSong(1, "朋友", "周华健", "")
		if err := song.Validate(); err == nil {
			t.Error("expected error without ID")
		}

		song.SetID("classic-2")
		if err := song.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		song.SetTitle("   ")
		if err := song.Validate(); err == nil {
			t.Error("expected error for blank title")
		}
	})

	t.Run("Label", func(t *testing.T) {
		if got := NewSong(0, "海阔天空", "Beyond", "").Label(); got != "海阔天空 - Beyond" {
			t.Errorf("unexpected label %q", got)
		}
		if got := NewSong(0, "Untitled", "", "").Label(); got != "Untitled" {
			t.Errorf("unexpected label %q", got)
		}
	})
}
