// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/tunebox/internal/repositories"
)

// ErrStoreDown is returned by every [FailingStore] operation that is set to fail.
var ErrStoreDown = errors.New("store unavailable")

// FailingStore wraps a [repositories.MemoryStore] and fails reads and/or writes on demand.
type FailingStore struct {
	*repositories.MemoryStore
	FailReads  bool
	FailWrites bool
}

// NewFailingStore creates a [FailingStore] that fails nothing until configured.
func NewFailingStore() *FailingStore {
	return &FailingStore{MemoryStore: repositories.NewMemoryStore()}
}

func (s *FailingStore) Get(ctx context.Context, key string) (string, error) {
	if s.FailReads {
		return "", ErrStoreDown
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key, value string) error {
	if s.FailWrites {
		return ErrStoreDown
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *FailingStore) Remove(ctx context.Context, key string) error {
	if s.FailWrites {
		return ErrStoreDown
	}
	return s.MemoryStore.Remove(ctx, key)
}

// MustGet returns the raw value under key, failing the test when it is missing.
func MustGet(t *testing.T, s repositories.Store, key string) string {
	t.Helper()
	value, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("failed to read %s: %v", key, err)
	}
	return value
}

// MustSet stores a raw value, failing the test on error.
func MustSet(t *testing.T, s repositories.Store, key, value string) {
	t.Helper()
	if err := s.Set(context.Background(), key, value); err != nil {
		t.Fatalf("failed to write %s: %v", key, err)
	}
}

// AssertMissing fails the test when key holds a value.
func AssertMissing(t *testing.T, s repositories.Store, key string) {
	t.Helper()
	if _, err := s.Get(context.Background(), key); !errors.Is(err, repositories.ErrKeyNotFound) {
		t.Errorf("expected %s to be absent, got err=%v", key, err)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
