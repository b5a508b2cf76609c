package thdat

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested path is not in the archive.
var ErrNotFound = errors.New("entry not found in archive")

// Entry describes one file stored in an archive.
type Entry struct {
	Path       string
	Size       int64
	StoredSize int64
}

// Catalog lists and extracts the entries of an archive.
type Catalog interface {
	// Entries returns the entries in archive order.
	Entries() []Entry

	// Extract writes the entry at path into destDir, keeping its base name.
	// It fails with an error matching ErrNotFound if path is not listed.
	Extract(ctx context.Context, path, destDir string) error
}
