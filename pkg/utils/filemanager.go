// =============================================================================
// E911 CSV Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Atomic output: data is written to a uniquely named temporary file next
//     to the destination and renamed into place only on Commit
//   - Directory management for the output location
//   - Small file helpers used by the CLI
//
// OUTPUT STRATEGY:
//   - A successful run replaces the destination file in one rename
//   - A failed run removes its temporary file; a pre-existing destination
//     file is left untouched
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/e911-csv-converter/internal/types"
	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC FILE
// =============================================================================

// AtomicFile is an output file that becomes visible at its final path only
// when Commit succeeds.
type AtomicFile struct {
	*os.File

	path    string
	tmpPath string
	done    bool
}

// CreateAtomic opens a temporary file in the destination's directory.
//
// PARAMETERS:
//   - path: The final destination path.
//
// RETURNS:
//   - An AtomicFile ready for writing.
//   - A *types.IOError if the directory or temporary file cannot be created.
//
// The temporary file is named ".<base>.<uuid>.tmp" so concurrent runs
// writing to the same directory never collide.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, &types.IOError{Op: "create", Path: tmpPath, Err: err}
	}

	return &AtomicFile{File: f, path: path, tmpPath: tmpPath}, nil
}

// Path returns the final destination path.
func (a *AtomicFile) Path() string { return a.path }

// TempPath returns the path of the temporary file.
func (a *AtomicFile) TempPath() string { return a.tmpPath }

// Commit syncs and closes the temporary file, then renames it over the
// destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return errors.New("atomic file already finished")
	}
	a.done = true

	if err := a.File.Sync(); err != nil {
		a.File.Close()
		os.Remove(a.tmpPath)
		return &types.IOError{Op: "sync", Path: a.tmpPath, Err: err}
	}
	if err := a.File.Close(); err != nil {
		os.Remove(a.tmpPath)
		return &types.IOError{Op: "close", Path: a.tmpPath, Err: err}
	}
	if err := os.Rename(a.tmpPath, a.path); err != nil {
		os.Remove(a.tmpPath)
		return &types.IOError{Op: "rename", Path: a.path, Err: err}
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit, so it can
// be deferred unconditionally.
func (a *AtomicFile) Abort() error {
	if a.done {
		return nil
	}
	a.done = true

	a.File.Close()
	if err := os.Remove(a.tmpPath); err != nil && !os.IsNotExist(err) {
		return &types.IOError{Op: "remove", Path: a.tmpPath, Err: err}
	}
	return nil
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &types.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a regular file exists at path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
