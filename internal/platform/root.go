package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// StoreDir is the directory that marks a QuickNotes workspace and holds its data.
const StoreDir = ".quicknotes"

// ErrRootNotFound is returned by FindRoot when no workspace marker exists.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a directory containing StoreDir
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, StoreDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

// ResolveStorePath returns path when set. Otherwise it returns the StoreDir
// of the nearest workspace above startDir, or StoreDir inside startDir when
// there is none.
func ResolveStorePath(path, startDir string) (string, error) {
	if path != "" {
		return path, nil
	}
	root, err := FindRoot(startDir)
	if errors.Is(err, ErrRootNotFound) {
		root, err = filepath.Abs(startDir)
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(root, StoreDir), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
