package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptValue marks a stored value that could not be decoded.
var ErrCorruptValue = errors.New("corrupt stored value")

// ReadJSON decodes the value stored under key into v.
//
// Returns false with a nil error when the key is absent. Decode failures wrap [ErrCorruptValue].
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptValue, key, err)
	}

	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

// ReadIDs reads a song-ID sequence. Absent keys yield an empty, non-nil slice.
func ReadIDs(ctx context.Context, s Store, key string) ([]string, error) {
	var ids []string
	if _, err := ReadJSON(ctx, s, key, &ids); err != nil {
		return []string{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// WriteIDs stores a song-ID sequence, writing "[]" for nil.
func WriteIDs(ctx context.Context, s Store, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return WriteJSON(ctx, s, key, ids)
}
