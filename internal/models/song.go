package models

import (
	"fmt"
	"strings"
	"time"
)

// Charts the catalog is seeded with.
const (
	ChartRising  = "rising"
	ChartNew     = "new"
	ChartClassic = "classic"
)

// Song is a catalog entry. Favorites and history store its ID.
type Song struct {
	id        string
	sequence  int
	title     string
	artist    string
	chart     string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewSong creates a [Song] with creation timestamps set to now.
func NewSong(sequence int, title, artist, chart string) *Song {
	now := time.Now()
	return &Song{
		sequence:  sequence,
		title:     strings.TrimSpace(title),
		artist:    strings.TrimSpace(artist),
		chart:     strings.TrimSpace(chart),
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Song) ID() string            { return s.id }
func (s *Song) Sequence() int         { return s.sequence }
func (s *Song) Title() string         { return s.title }
func (s *Song) Artist() string        { return s.artist }
func (s *Song) Chart() string         { return s.chart }
func (s *Song) CreatedAt() time.Time  { return s.createdAt }
func (s *Song) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Song) DeletedAt() *time.Time { return s.deletedAt }

func (s *Song) SetID(id string)           { s.id = id }
func (s *Song) SetSequence(seq int)       { s.sequence = seq }
func (s *Song) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *Song) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Song) SetDeletedAt(t *time.Time) { s.deletedAt = t }
func (s *Song) SetTitle(title string)     { s.title = strings.TrimSpace(title) }
func (s *Song) SetArtist(artist string)   { s.artist = strings.TrimSpace(artist) }

// Label renders "title - artist", or just the title when the artist is unknown.
func (s *Song) Label() string {
	if s.artist == "" {
		return s.title
	}
	return fmt.Sprintf("%s - %s", s.title, s.artist)
}

// Validate checks required fields.
func (s *Song) Validate() error {
	if s.id == "" {
		return fmt.Errorf("song ID is required")
	}
	if s.title == "" {
		return fmt.Errorf("song title is required")
	}
	return nil
}
