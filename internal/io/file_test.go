package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Bad Apple", "Bad Apple"},
		{"invalid chars", `Song: Part 1/2`, "Song_ Part 1_2"},
		{"question mark", "U.N. Owen was her?", "U.N. Owen was her_"},
		{"trailing dots", "Track...", "Track"},
		{"whitespace runs", "Name   with \t spaces ", "Name with spaces"},
		{"japanese kept", "赤より紅い夢", "赤より紅い夢"},
		{"control chars", "a\x01b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "!tags.m3u")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))

	require.NoError(t, WriteFile(context.Background(), path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.txt")
	assert.ErrorIs(t, WriteFile(ctx, path, []byte("x")), context.Canceled)
	assert.False(t, Exists(path))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "readme.txt")
	dst := filepath.Join(dir, "copy.txt")
	require.NoError(t, os.WriteFile(src, []byte("readme"), 0o644))

	require.NoError(t, CopyFile(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "readme", string(data))
	assert.True(t, Exists(src), "source is kept")
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(context.Background(), filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "th06_01.mid")
	dst := filepath.Join(dir, "set", "th06_01.mid")
	require.NoError(t, os.WriteFile(src, []byte("MThd"), 0o644))
	require.NoError(t, EnsureDir(filepath.Dir(dst)))

	require.NoError(t, MoveFile(context.Background(), src, dst))

	assert.False(t, Exists(src))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, Exists(file))
	assert.False(t, Exists(dir), "directories are not files")
	assert.False(t, Exists(filepath.Join(dir, "b")))
}
