package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/config"
	"github.com/handiism/th06rip/internal/rip"
	"github.com/handiism/th06rip/internal/thdat"
)

type memCatalog struct {
	order []string
	files map[string]string
}

func (c *memCatalog) Entries() []thdat.Entry {
	var entries []thdat.Entry
	for _, p := range c.order {
		entries = append(entries, thdat.Entry{Path: p, Size: int64(len(c.files[p])), StoredSize: 1})
	}
	return entries
}

func (c *memCatalog) Extract(_ context.Context, p, destDir string) error {
	content, ok := c.files[p]
	if !ok {
		return fmt.Errorf("%w: %s", thdat.ErrNotFound, p)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, path.Base(p)), []byte(content), 0o644)
}

func testOpener() rip.CatalogOpener {
	catalog := &memCatalog{
		order: []string{"musiccmt.txt", "th06_01.mid", "th06_02.mid"},
		files: map[string]string{
			"musiccmt.txt": "@th06_01.mid\n赤より紅い夢\n主人公のテーマ\n",
			"th06_01.mid":  "MThd",
			"th06_02.mid":  "MThd-2",
		},
	}
	return func(context.Context, string) (thdat.Catalog, error) {
		return catalog, nil
	}
}

func testFlags(t *testing.T) *Flags {
	t.Helper()
	settings := config.DefaultSettings()
	settings.CommentEncoding = "utf-8"
	return &Flags{
		LogLevel:   "info",
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Settings:   settings,
	}
}

func runApp(t *testing.T, register func(app *cli.Command) *cli.Command, args ...string) error {
	t.Helper()
	app := register(&cli.Command{Name: "th06rip"})
	return app.Run(context.Background(), append([]string{"th06rip"}, args...))
}

func TestRipCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRipCmd(testFlags(t), testOpener())
	cmd.out = &out
	dest := t.TempDir()

	require.NoError(t, runApp(t, cmd.Register, "rip", "--year", "2002", t.TempDir(), "th06md.dat", dest))

	playlist, err := os.ReadFile(filepath.Join(dest, "th06", "!tags.m3u"))
	require.NoError(t, err)
	assert.Contains(t, string(playlist), "# %TITLE         赤より紅い夢\n")
	assert.Contains(t, string(playlist), "# @DATE          2002\n")
	assert.Contains(t, out.String(), "2/2 tracks written")
	assert.Contains(t, out.String(), "! No comment for th06_02")
}

func TestRipCmd_DryRun(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRipCmd(testFlags(t), testOpener())
	cmd.out = &out
	dest := t.TempDir()

	require.NoError(t, runApp(t, cmd.Register, "rip", "--dry-run", t.TempDir(), "th06md.dat", dest))

	assert.Contains(t, out.String(), "赤より紅い夢")
	assert.Contains(t, out.String(), "th06_02.mid")
	assert.NoDirExists(t, filepath.Join(dest, "th06"))
}

func TestRipCmd_Arguments(t *testing.T) {
	cmd := NewRipCmd(testFlags(t), testOpener())
	cmd.out = &bytes.Buffer{}

	err := runApp(t, cmd.Register, "rip", "only-one-arg")
	assert.ErrorContains(t, err, "expected <game-dir> <dat> [dest]")
}

func TestListCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewListCmd(testFlags(t), testOpener())
	cmd.out = &out

	require.NoError(t, runApp(t, cmd.Register, "list", "th06md.dat"))
	assert.Contains(t, out.String(), "musiccmt.txt")
	assert.Contains(t, out.String(), "3 entries")

	out.Reset()
	require.NoError(t, runApp(t, cmd.Register, "list", "--media", "th06md.dat"))
	assert.NotContains(t, out.String(), "musiccmt.txt")
	assert.Contains(t, out.String(), "2 entries")
}

func TestCommentsCmd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "musiccmt.txt")
	require.NoError(t, os.WriteFile(file, []byte("@th06_01.mid\nA Dream More Scarlet than Red\nline one\nline two\n"), 0o644))

	var out bytes.Buffer
	cmd := NewCommentsCmd(testFlags(t))
	cmd.out = &out

	require.NoError(t, runApp(t, cmd.Register, "comments", "--encoding", "utf-8", file))
	assert.Contains(t, out.String(), "th06_01")
	assert.Contains(t, out.String(), "A Dream More Scarlet than Red")
	assert.Contains(t, out.String(), "line one line two")
}

func TestCommentsCmd_UnknownEncoding(t *testing.T) {
	cmd := NewCommentsCmd(testFlags(t))
	cmd.out = &bytes.Buffer{}

	err := runApp(t, cmd.Register, "comments", "--encoding", "klingon", "x.txt")
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	flags := testFlags(t)
	var out bytes.Buffer
	cmd := NewConfigCmd(flags)
	cmd.out = &out

	require.NoError(t, runApp(t, cmd.Register, "config", "init"))
	assert.FileExists(t, flags.ConfigPath)

	err := runApp(t, cmd.Register, "config", "init")
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, runApp(t, cmd.Register, "config", "init", "--force"))

	loaded, err := config.Load(flags.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), loaded)

	out.Reset()
	require.NoError(t, runApp(t, cmd.Register, "config", "show"))
	assert.Contains(t, out.String(), "comment_encoding: utf-8")
	assert.Contains(t, out.String(), "!tags.m3u")
}
