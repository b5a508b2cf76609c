package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

var (
	reInvalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	reTrailingDots = regexp.MustCompile(`\.+$`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// CopyFile copies a file from source to destination.
//
// The destination is written through a temporary file in the same
// directory and renamed into place, so an interrupted copy never leaves a
// truncated file at dst. The copy stops early if ctx is cancelled before
// it starts.
//
// Example:
//
//	err := CopyFile(ctx, "/games/th06/readme.txt", "/music/th06/readme.txt")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	return writeAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, sourceFile)
		return err
	})
}

// MoveFile moves src to dst. A plain rename is tried first; if src and dst
// live on different file systems the file is copied and the source removed.
func MoveFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	if err := CopyFile(ctx, src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// WriteFile writes data to path with mode 0644, replacing any existing
// file atomically.
//
// Example:
//
//	err := WriteFile(ctx, "/music/th06/!tags.m3u", []byte(doc.String()))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path string, fill func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Track titles from music room comments are full-width Japanese text more
// often than not; non-ASCII characters are kept as they are.
//
// Example:
//
//	SanitizeFileName("赤より紅い夢 / Demo")  // Returns "赤より紅い夢 _ Demo"
//	SanitizeFileName("U.N. Owen was her?") // Returns "U.N. Owen was her_"
//	SanitizeFileName("Track...")           // Returns "Track"
func SanitizeFileName(name string) string {
	name = reInvalidChars.ReplaceAllString(name, "_")
	name = reTrailingDots.ReplaceAllString(name, "")
	name = reWhitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
