package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunebox/internal/models"
)

var (
	_ list.Item = songItem{}
)

const (
	favoriteMarker = "★"
	plainMarker    = "☆"
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song     *models.Song
	favorite bool
	recent   int // 1-based position in history, 0 when never played
}

func (i songItem) FilterValue() string { return i.song.Title() }
func (i songItem) Title() string {
	marker := plainMarker
	if i.favorite {
		marker = favoriteMarker
	}
	return fmt.Sprintf("%s %s", marker, i.song.Title())
}
func (i songItem) Description() string {
	desc := i.song.Artist()
	if i.song.Chart() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Chart())
	}
	if i.recent > 0 {
		desc = fmt.Sprintf("%s • recent #%d", desc, i.recent)
	}
	return desc
}

// songItems builds list items, marking favorites and recent plays.
func songItems(songs []*models.Song, favorites, history []string) []list.Item {
	fav := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		fav[id] = true
	}
	recent := make(map[string]int, len(history))
	for i, id := range history {
		recent[id] = i + 1
	}

	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s, favorite: fav[s.ID()], recent: recent[s.ID()]}
	}
	return items
}
