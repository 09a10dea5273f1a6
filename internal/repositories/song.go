package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

var _ models.Repository[*models.Song] = (*SongRepository)(nil)

const songColumns = `id, sequence, title, artist, chart, created_at, updated_at, deleted_at`

// SongRepository implements [models.Repository] for the [models.Song] catalog.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a song with the next sequence number, generating an ID when none is set
func (r *SongRepository) Create(song *models.Song) error {
	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	song.SetSequence(sequence)

	if song.ID() == "" {
		song.SetID(shared.GenerateID())
	}

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO songs (id, sequence, title, artist, chart, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, song.ID(), sequence, song.Title(), song.Artist(), song.Chart(), song.CreatedAt(), song.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, err
}

// GetMany resolves IDs to songs in the given order, skipping IDs that are not in the catalog.
func (r *SongRepository) GetMany(ids []string) ([]*models.Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL AND id IN (` + placeholders + `)`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	found, err := r.query(query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Song, len(found))
	for _, song := range found {
		byID[song.ID()] = song
	}

	songs := make([]*models.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := byID[id]; ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

// Update modifies an existing song in the database
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET title = ?, artist = ?, chart = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, song.Title(), song.Artist(), song.Chart(), now, song.ID())
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return requireAffected(result, song.ID())
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	return requireAffected(result, id)
}

// List retrieves all songs matching the given criteria, excluding soft-deleted songs.
//
// Supported criteria: "chart" (string).
func (r *SongRepository) List(criteria map[string]any) ([]*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL`
	args := []any{}

	if chart, ok := criteria["chart"].(string); ok && chart != "" {
		query += " AND chart = ?"
		args = append(args, chart)
	}

	query += " ORDER BY sequence ASC"

	return r.query(query, args...)
}

func (r *SongRepository) query(query string, args ...any) ([]*models.Song, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows]
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSong scans one row selected with songColumns into a [models.Song]
func scanSong(row rowScanner) (*models.Song, error) {
	var (
		id        string
		sequence  int
		title     string
		artist    string
		chart     string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &title, &artist, &chart, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	song := models.NewSong(sequence, title, artist, chart)
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}

func requireAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s (or already deleted)", shared.ErrSongNotFound, id)
	}
	return nil
}
