package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// collection is one directory of same-typed records, one file per record.
type collection[T any] struct {
	root  string // store root
	dir   string // slash-separated, relative to root
	ext   string
	codec codec[T]
	cache *cache[T]
}

func newCollection[T any](root, dir, ext string, c codec[T]) *collection[T] {
	return &collection[T]{
		root:  root,
		dir:   dir,
		ext:   ext,
		codec: c,
		cache: newCache[T](),
	}
}

func (c *collection[T]) relPath(id string) string {
	return path.Join(c.dir, id+c.ext)
}

func (c *collection[T]) fullPath(id string) string {
	return filepath.Join(c.root, filepath.FromSlash(c.relPath(id)))
}

func (c *collection[T]) pattern() string {
	return c.dir + "/*" + c.ext
}

// ids returns the IDs of every record on disk.
func (c *collection[T]) ids() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(c.root), c.pattern(), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.dir, err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(path.Base(m), c.ext))
	}
	return ids, nil
}

// list parses every record, serving unchanged files from the cache.
func (c *collection[T]) list() ([]T, error) {
	ids, err := c.ids()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		v, err := c.load(id)
		if errors.Is(err, fs.ErrNotExist) {
			continue // removed between glob and read
		}
		if err != nil {
			return nil, err
		}
		seen[c.relPath(id)] = true
		out = append(out, v)
	}

	c.cache.Prune(seen)
	return out, nil
}

// get returns the record with the given ID, or nil if there is no such file.
func (c *collection[T]) get(id string) (*T, error) {
	v, err := c.load(id)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *collection[T]) exists(id string) (bool, error) {
	_, err := os.Stat(c.fullPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (c *collection[T]) load(id string) (T, error) {
	var zero T
	rel := c.relPath(id)
	full := c.fullPath(id)

	info, err := os.Stat(full)
	if err != nil {
		return zero, err
	}
	if v, ok := c.cache.Get(rel, info.ModTime(), info.Size()); ok {
		return v, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return zero, err
	}
	v, err := c.codec.Parse(id, data)
	if err != nil {
		return zero, fmt.Errorf("failed to parse %s: %w", rel, err)
	}

	c.cache.Set(rel, v, info.ModTime(), info.Size())
	return v, nil
}
