package thdat

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	ioutils "github.com/handiism/th06rip/internal/io"
)

const (
	// DefaultBinary is the thdat executable looked up on PATH.
	DefaultBinary = "thdat"

	// DefaultTimeout bounds each thdat invocation.
	DefaultTimeout = 5 * time.Second
)

var (
	reDetectedVersion = regexp.MustCompile(`^Detected version ([0-9]+)$`)
	reListHeader      = regexp.MustCompile(`^Name\s*Size\s*Stored$`)
	reListItem        = regexp.MustCompile(`^([A-Za-z0-9_\-./]+)\s+([0-9]+)\s+([0-9]+)$`)
)

// Option configures an Archive.
type Option func(*Archive)

// WithBinary overrides the thdat executable.
func WithBinary(binary string) Option {
	return func(a *Archive) {
		if binary = strings.TrimSpace(binary); binary != "" {
			a.binary = binary
		}
	}
}

// WithTimeout overrides the per-invocation timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Archive) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithVersion skips version detection and uses the given archive version.
func WithVersion(version int) Option {
	return func(a *Archive) {
		a.version = version
	}
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(a *Archive) {
		if exec != nil {
			a.exec = exec
		}
	}
}

// Archive is a Touhou DAT archive accessed through the thdat tool from
// Touhou Toolkit (https://github.com/thpatch/thtk).
//
// The entry list is loaded once by Open; Extract copies single entries out
// of the archive.
//
// Example:
//
//	archive, err := thdat.Open(ctx, "/games/th06/紅魔郷MD.DAT")
//	if err != nil {
//	    return err
//	}
//	for _, e := range archive.Entries() {
//	    fmt.Println(e.Path, e.Size)
//	}
//	err = archive.Extract(ctx, "musiccmt.txt", tmpDir)
type Archive struct {
	path    string
	binary  string
	timeout time.Duration
	version int
	exec    Executor

	entries []Entry
	index   map[string]int
}

var _ Catalog = (*Archive)(nil)

// Open checks that thdat is available, detects the archive version unless
// given, and loads the entry list.
func Open(ctx context.Context, archivePath string, opts ...Option) (*Archive, error) {
	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return nil, fmt.Errorf("resolve archive path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{
		path:    abs,
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.checkAvailable(ctx); err != nil {
		return nil, err
	}
	if a.version == 0 {
		if a.version, err = a.detectVersion(ctx); err != nil {
			return nil, err
		}
	}
	if err := a.loadEntries(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Path returns the absolute archive path.
func (a *Archive) Path() string {
	return a.path
}

// Version returns the archive format version passed to thdat.
func (a *Archive) Version() int {
	return a.version
}

// Entries returns the archive entries in listing order.
func (a *Archive) Entries() []Entry {
	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// Has reports whether entryPath is listed in the archive.
func (a *Archive) Has(entryPath string) bool {
	_, ok := a.index[path.Clean(entryPath)]
	return ok
}

// Extract writes the entry into destDir. thdat extracts into a private
// temporary directory first so that partial output never lands in destDir.
func (a *Archive) Extract(ctx context.Context, entryPath, destDir string) error {
	entryPath = path.Clean(entryPath)
	if !a.Has(entryPath) {
		return fmt.Errorf("%w: %s", ErrNotFound, entryPath)
	}

	tmpDir, err := os.MkdirTemp("", "th06rip-thdat-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{fmt.Sprintf("-x%d", a.version), a.path, "-C", tmpDir, entryPath}
	if _, err := a.run(ctx, args...); err != nil {
		return fmt.Errorf("extract %s: %w", entryPath, err)
	}

	if err := ioutils.EnsureDir(destDir); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	src := filepath.Join(tmpDir, filepath.FromSlash(entryPath))
	dst := filepath.Join(destDir, path.Base(entryPath))
	if err := ioutils.MoveFile(ctx, src, dst); err != nil {
		return fmt.Errorf("move %s: %w", entryPath, err)
	}
	return nil
}

func (a *Archive) checkAvailable(ctx context.Context) error {
	if _, err := a.run(ctx, "-V"); err != nil {
		return fmt.Errorf("thdat doesn't seem to be available, install Touhou Toolkit (https://github.com/thpatch/thtk) to PATH: %w", err)
	}
	return nil
}

func (a *Archive) detectVersion(ctx context.Context) (int, error) {
	out, err := a.run(ctx, "-ld", a.path)
	if err != nil {
		return 0, fmt.Errorf("detect archive version: %w", err)
	}
	version, ok := parseDetectedVersion(out)
	if !ok {
		return 0, fmt.Errorf("could not detect version of archive %s", filepath.Base(a.path))
	}
	return version, nil
}

func (a *Archive) loadEntries(ctx context.Context) error {
	out, err := a.run(ctx, fmt.Sprintf("-l%d", a.version), a.path)
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	entries, err := parseListing(out)
	if err != nil {
		return err
	}

	a.entries = entries
	a.index = make(map[string]int, len(entries))
	for i, e := range entries {
		a.index[e.Path] = i
	}
	return nil
}

func (a *Archive) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.exec.Run(ctx, a.binary, args)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("thdat timed out after %s: %w", a.timeout, err)
	}
	return out, err
}

func parseDetectedVersion(out []byte) (int, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := reDetectedVersion.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// parseListing reads the table printed by "thdat -l". Rows start after the
// "Name Size Stored" header and end at the first line that is not a row.
func parseListing(out []byte) ([]Entry, error) {
	var (
		entries     []Entry
		foundHeader bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !foundHeader {
			foundHeader = reListHeader.MatchString(line)
			continue
		}

		m := reListItem.FindStringSubmatch(line)
		if m == nil {
			break
		}
		size, _ := strconv.ParseInt(m[2], 10, 64)
		stored, _ := strconv.ParseInt(m[3], 10, 64)
		entries = append(entries, Entry{
			Path:       path.Clean(m[1]),
			Size:       size,
			StoredSize: stored,
		})
	}

	if !foundHeader {
		return nil, errors.New("thdat did not return a file list")
	}
	return entries, nil
}
