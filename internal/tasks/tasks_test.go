package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	tu "github.com/desertthunder/tunebox/internal/testing"
)

type stubResolver struct {
	songs []*models.Song
	err   error
}

func (r stubResolver) GetMany(ids []string) ([]*models.Song, error) {
	if r.err != nil {
		return nil, r.err
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var found []*models.Song
	for _, s := range r.songs {
		if want[s.ID()] {
			found = append(found, s)
		}
	}
	return found, nil
}

func catalog() []*models.Song {
	song := models.NewSong(1, "后来", "刘若英", models.ChartClassic)
	song.SetID("classic-1")
	return []*models.Song{song}
}

func seededStore(t *testing.T) *repositories.MemoryStore {
	t.Helper()
	store := repositories.NewMemoryStore()
	tu.MustSet(t, store, "user_alice_favorites", `["classic-1"]`)
	tu.MustSet(t, store, "user_alice_history", `["classic-1","ghost"]`)
	tu.MustSet(t, store, repositories.DefaultFavoritesKey, `[]`)
	return store
}

func newTestExporter(store repositories.Store, resolver SongResolver) *Exporter {
	return NewExporter(store, resolver, shared.NewLogger(&bytes.Buffer{}))
}

func TestBulkExport(t *testing.T) {
	ctx := context.Background()

	t.Run("exports every partition", func(t *testing.T) {
		dir := t.TempDir()
		exporter := newTestExporter(seededStore(t), stubResolver{songs: catalog()})
		prog := make(chan ProgressUpdate, 32)

		result, err := exporter.BulkExport(ctx, prog, []string{"bob", "alice", ""}, BulkExportOpts{
			Format:     "markdown",
			OutputDir:  dir,
			NumWorkers: 2,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.TotalPartitions != 3 || result.SuccessfulExports != 3 || result.FailedExports != 0 {
			t.Errorf("unexpected counts %+v", result)
		}
		owners := []string{}
		for _, r := range result.Results {
			owners = append(owners, r.Owner)
		}
		if strings.Join(owners, ",") != "anonymous,alice,bob" {
			t.Errorf("expected anonymous first, then sorted owners, got %v", owners)
		}
		if !result.Results[0].Anonymous || result.Results[1].Anonymous {
			t.Errorf("expected only the first result to be anonymous, got %+v", result.Results)
		}

		alice := result.Results[1]
		if alice.Favorites != 1 || alice.History != 2 || len(alice.Files) != 2 {
			t.Errorf("unexpected alice result %+v", alice)
		}
		history := tu.MustReadFile(t, filepath.Join(dir, "users", "alice", "history.md"))
		if !strings.Contains(history, "1. 刘若英 - 后来") || !strings.Contains(history, "2. ghost") {
			t.Errorf("unexpected history export:\n%s", history)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "anonymous", "favorites.md"))

		var manifest BulkExportResult
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("invalid manifest: %v", err)
		}
		if manifest.SuccessfulExports != 3 || len(manifest.Results) != 3 {
			t.Errorf("unexpected manifest %+v", manifest)
		}

		close(prog)
		var last ProgressUpdate
		count := 0
		for u := range prog {
			last = u
			count++
		}
		if count != 7 || last.Phase != WriteManifest {
			t.Errorf("expected 3 reads, 3 exports and a manifest update, got %d ending in %v", count, last.Phase)
		}
	})

	t.Run("corrupt partition is reported", func(t *testing.T) {
		store := seededStore(t)
		tu.MustSet(t, store, "user_bob_history", "{broken")
		exporter := newTestExporter(store, stubResolver{songs: catalog()})

		result, err := exporter.BulkExport(ctx, nil, []string{"alice", "bob"}, BulkExportOpts{Format: "csv", OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Fatalf("unexpected counts %+v", result)
		}
		bob := result.Results[1]
		if bob.Success || !errors.Is(bob.Error, repositories.ErrCorruptValue) || bob.ErrorMessage == "" {
			t.Errorf("expected corrupt value failure, got %+v", bob)
		}
	})

	t.Run("resolver failure is reported", func(t *testing.T) {
		exporter := newTestExporter(seededStore(t), stubResolver{err: errors.New("db gone")})

		result, err := exporter.BulkExport(ctx, nil, []string{"alice"}, BulkExportOpts{OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.FailedExports != 1 {
			t.Errorf("expected failure, got %+v", result)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		exporter := newTestExporter(seededStore(t), stubResolver{})
		dir := filepath.Join(t.TempDir(), "out")

		_, err := exporter.BulkExport(ctx, nil, []string{"alice"}, BulkExportOpts{Format: "xml", OutputDir: dir})
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("expected no output directory for an invalid format")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		exporter := newTestExporter(seededStore(t), stubResolver{songs: catalog()})

		_, err := exporter.BulkExport(cancelled, nil, []string{"alice"}, BulkExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("usernames stay inside the users directory", func(t *testing.T) {
		base := t.TempDir()
		dir := filepath.Join(base, "export")
		exporter := newTestExporter(seededStore(t), stubResolver{})

		owners := []string{"..", ".", "../evil", "a/b"}
		result, err := exporter.BulkExport(ctx, nil, owners, BulkExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.SuccessfulExports != len(owners) {
			t.Fatalf("unexpected result %+v", result)
		}

		users := filepath.Join(dir, "users") + string(filepath.Separator)
		seen := map[string]bool{}
		for _, r := range result.Results {
			for _, f := range r.Files {
				if !strings.HasPrefix(f, users) {
					t.Errorf("%q: file escaped the users directory: %s", r.Owner, f)
				}
				if seen[f] {
					t.Errorf("%q: file shared with another owner: %s", r.Owner, f)
				}
				seen[f] = true
			}
		}

		for _, name := range []string{"favorites.txt", "history.txt"} {
			if _, err := os.Stat(filepath.Join(base, name)); !os.IsNotExist(err) {
				t.Errorf("expected nothing written next to the export directory, found %s", name)
			}
		}
		tu.AssertFileExists(t, filepath.Join(dir, "users", "%2E%2E", "favorites.txt"))
		tu.AssertFileExists(t, filepath.Join(dir, "users", "%2E", "favorites.txt"))
	})

	t.Run("user named anonymous does not collide with the anonymous partition", func(t *testing.T) {
		dir := t.TempDir()
		store := repositories.NewMemoryStore()
		tu.MustSet(t, store, repositories.DefaultFavoritesKey, `["anon"]`)
		tu.MustSet(t, store, "user_anonymous_favorites", `["mine"]`)
		exporter := newTestExporter(store, stubResolver{})

		result, err := exporter.BulkExport(ctx, nil, []string{"anonymous", ""}, BulkExportOpts{OutputDir: dir})
		if err != nil || result.SuccessfulExports != 2 {
			t.Fatalf("unexpected result %+v, err %v", result, err)
		}
		if !result.Results[0].Anonymous || result.Results[1].Anonymous {
			t.Errorf("expected the anonymous partition first, got %+v", result.Results)
		}

		if content := tu.MustReadFile(t, filepath.Join(dir, "anonymous", "favorites.txt")); !strings.Contains(content, "1. anon") {
			t.Errorf("anonymous favorites were overwritten:\n%s", content)
		}
		if content := tu.MustReadFile(t, filepath.Join(dir, "users", "anonymous", "favorites.txt")); !strings.Contains(content, "1. mine") {
			t.Errorf("unexpected user favorites:\n%s", content)
		}
	})
}

func TestPartitionDir(t *testing.T) {
	for owner, want := range map[string]string{
		"":          "anonymous",
		"anonymous": filepath.Join("users", "anonymous"),
		"alice":     filepath.Join("users", "alice"),
		"..":        filepath.Join("users", "%2E%2E"),
		".":         filepath.Join("users", "%2E"),
		"...":       filepath.Join("users", "%2E%2E%2E"),
		"a.b":       filepath.Join("users", "a.b"),
		"../evil":   filepath.Join("users", "..%2Fevil"),
	} {
		got, err := partitionDir(owner)
		if err != nil {
			t.Errorf("%q: unexpected error %v", owner, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", owner, want, got)
		}
	}
}

func TestPhaseString(t *testing.T) {
	for phase, want := range map[Phase]string{
		ReadPartition:   "read_partition",
		ExportPartition: "export_partition",
		WriteManifest:   "write_manifest",
		Phase(99):       "",
	} {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d): expected %q, got %q", phase, want, got)
		}
	}
}
