package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

var errTxClosed = errors.New("transaction closed")

// transaction stages file writes and removals and applies them on Commit.
// Each file is replaced atomically; the batch as a whole is not.
type transaction struct {
	store   *Store
	mu      sync.Mutex
	writes  map[string][]byte // relative path -> content
	removes map[string]bool
	closed  bool
}

func newTransaction(store *Store) *transaction {
	return &transaction{
		store:   store,
		writes:  make(map[string][]byte),
		removes: make(map[string]bool),
	}
}

// Put stages content for relPath.
func (t *transaction) Put(relPath string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errTxClosed
	}
	t.writes[relPath] = data
	delete(t.removes, relPath)
	return nil
}

// Remove stages the removal of relPath. Removing a missing file is not an error.
func (t *transaction) Remove(relPath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errTxClosed
	}
	t.removes[relPath] = true
	delete(t.writes, relPath)
	return nil
}

// Commit applies the staged changes in path order and invalidates the
// affected cache entries.
func (t *transaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errTxClosed
	}
	t.closed = true

	for _, rel := range slices.Sorted(maps.Keys(t.writes)) {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(t.store.Path, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("failed to create directories for %s: %w", rel, err)
		}
		if err := writeFileAtomic(full, t.writes[rel], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		t.store.invalidate(rel)
	}

	for _, rel := range slices.Sorted(maps.Keys(t.removes)) {
		full := filepath.Join(t.store.Path, filepath.FromSlash(rel))
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", rel, err)
		}
		t.store.invalidate(rel)
	}

	t.store.logger().Debug("transaction committed", "writes", len(t.writes), "removes", len(t.removes))
	return nil
}

// Rollback discards the staged changes. It is safe to call after Commit.
func (t *transaction) Rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.writes = nil
	t.removes = nil
	t.closed = true
}
