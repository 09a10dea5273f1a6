package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunebox/internal/formatter"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	favoritesCollection = "favorites"
	historyCollection   = "history"
)

// song resolves the positional song argument against the catalog.
func (r *Runner) song(cmd *cli.Command) (*models.Song, error) {
	id := cmd.StringArg("song")
	if id == "" {
		return nil, fmt.Errorf("%w: song ID", shared.ErrMissingArgument)
	}

	song, err := r.songs.Get(id)
	if err != nil {
		return nil, err
	}
	return song, nil
}

// collection builds an export of the named collection for the active partition.
func (r *Runner) collection(name string) (*formatter.Export, error) {
	ids := r.lib.Favorites()
	if name == historyCollection {
		ids = r.lib.History()
	}

	songs, err := r.songs.GetMany(ids)
	if err != nil {
		return nil, err
	}
	return formatter.NewExport(name, r.manager.Username(), ids, songs), nil
}

func (r *Runner) listCollection(ctx context.Context, name string) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	export, err := r.collection(name)
	if err != nil {
		return err
	}
	data, err := formatter.ExportToText(export)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

func (r *Runner) exportCollection(ctx context.Context, cmd *cli.Command, name string) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	export, err := r.collection(name)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if cmd.String("output") == "-" {
		data, err := formatter.Render(export, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported collection", "collection", name, "format", format, "path", path)
	return r.writePlain("✓ Exported %d songs to %s\n", len(export.Entries), path)
}

// FavoritesList prints the favorites of the active partition.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	return r.listCollection(ctx, favoritesCollection)
}

// FavoritesExport writes favorites in the requested format.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	return r.exportCollection(ctx, cmd, favoritesCollection)
}

// FavoritesAdd marks a catalog song as a favorite.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	song, err := r.song(cmd)
	if err != nil {
		return err
	}

	if !r.lib.AddFavorite(song.ID()) {
		return r.writePlain("%s is already a favorite\n", song.Label())
	}
	return r.writePlain("★ Added %s\n", song.Label())
}

// FavoritesRemove unmarks a favorite. Unknown catalog IDs are accepted so stale entries can be cleaned up.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	id := cmd.StringArg("song")
	if id == "" {
		return fmt.Errorf("%w: song ID", shared.ErrMissingArgument)
	}

	if !r.lib.RemoveFavorite(id) {
		return r.writePlain("%s is not a favorite\n", id)
	}
	return r.writePlain("☆ Removed %s\n", id)
}

// FavoritesToggle flips a song's favorite status.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	song, err := r.song(cmd)
	if err != nil {
		return err
	}

	if r.lib.ToggleFavorite(song.ID()) {
		return r.writePlain("★ Added %s\n", song.Label())
	}
	return r.writePlain("☆ Removed %s\n", song.Label())
}

// HistoryList prints the listening history, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	return r.listCollection(ctx, historyCollection)
}

// HistoryExport writes the listening history in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	return r.exportCollection(ctx, cmd, historyCollection)
}

// Play records a completed playback of a catalog song.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	song, err := r.song(cmd)
	if err != nil {
		return err
	}

	r.lib.PlaybackEnded(song.ID())
	return r.writePlain("♪ Played %s\n", song.Label())
}

// CatalogList prints the catalog, optionally filtered by chart.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	chart := cmd.String("chart")
	songs, err := r.songs.List(map[string]any{"chart": chart})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(r.catalogEntries(songs), cmd.Bool("pretty"))
	}

	title := "Catalog"
	if chart != "" {
		title = fmt.Sprintf("Catalog: %s", chart)
	}
	r.writePlainHeader(fmt.Sprintf("%s (%d songs)", title, len(songs)))

	for _, s := range songs {
		marker := "☆"
		if r.lib.IsFavorite(s.ID()) {
			marker = "★"
		}
		r.writePlain("%s %-12s %s\n", marker, s.ID(), s.Label())
	}
	return nil
}

// catalogEntry is the JSON shape of a catalog song.
type catalogEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Chart    string `json:"chart,omitempty"`
	Favorite bool   `json:"favorite"`
}

func (r *Runner) catalogEntries(songs []*models.Song) []catalogEntry {
	entries := make([]catalogEntry, len(songs))
	for i, s := range songs {
		entries[i] = catalogEntry{
			ID:       s.ID(),
			Title:    s.Title(),
			Artist:   s.Artist(),
			Chart:    s.Chart(),
			Favorite: r.lib.IsFavorite(s.ID()),
		}
	}
	return entries
}

// CatalogAdd inserts a song into the catalog.
func (r *Runner) CatalogAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	chart := strings.ToLower(cmd.String("chart"))
	switch chart {
	case "", models.ChartRising, models.ChartNew, models.ChartClassic:
	default:
		return fmt.Errorf("%w: chart must be rising, new or classic", shared.ErrInvalidFlag)
	}

	title := strings.TrimSpace(cmd.String("title"))
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", shared.ErrInvalidInput)
	}

	song := models.NewSong(0, title, cmd.String("artist"), chart)
	if err := r.songs.Create(song); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	return r.writePlain("✓ Added %s (%s)\n", song.Label(), song.ID())
}
