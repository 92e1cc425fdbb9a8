// Package fsutil provides file system helpers for msgmark: bounded input
// reads and atomic writes of result files.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SidecarSuffix is appended to an input path to name its result file.
const SidecarSuffix = ".entities.json"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the read limit.
	ErrTooLarge = errors.New("file too large")
)

// ReadInput reads the file at path. Files larger than maxSize bytes are
// rejected with ErrTooLarge; maxSize <= 0 disables the limit.
func ReadInput(ctx context.Context, path string, maxSize int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if maxSize > 0 && stat.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	var reader io.Reader = file
	if maxSize > 0 {
		// The file may grow between Stat and Read.
		reader = io.LimitReader(file, maxSize+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, classify(path, err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, maxSize)
	}

	return content, nil
}

// SidecarPath returns the result file path for an input path.
func SidecarPath(path string) string {
	return filepath.Clean(path) + SidecarSuffix
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
