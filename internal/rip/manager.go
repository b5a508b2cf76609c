package rip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/th06rip/internal/config"
	ioutils "github.com/handiism/th06rip/internal/io"
	"github.com/handiism/th06rip/internal/model"
	"github.com/handiism/th06rip/internal/musiccmt"
	"github.com/handiism/th06rip/internal/thdat"
)

// LockFileName is created in the destination directory while a rip runs.
const LockFileName = ".th06rip.lock"

var (
	// ErrLocked is returned when another rip holds the destination lock.
	ErrLocked = errors.New("destination is in use by another rip")

	// ErrNotInitialized is returned by Run before a successful Initialize.
	ErrNotInitialized = errors.New("rip manager is not initialized")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a rip progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// CatalogOpener opens the archive a set is ripped from.
type CatalogOpener func(ctx context.Context, datPath string) (thdat.Catalog, error)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCatalogOpener replaces thdat as the archive backend.
func WithCatalogOpener(open CatalogOpener) Option {
	return func(m *Manager) {
		if open != nil {
			m.open = open
		}
	}
}

// Manager rips one game soundtrack into a playlist-tagged set.
//
// Initialize reads the archive and the music room comments and computes
// the set; Run extracts the tracks and writes the playlist:
//
//	m := rip.NewManager(settings, onProgress)
//	if err := m.Initialize(ctx, "/games/th06", "/games/th06/th06md.dat", "/music"); err != nil {
//	    return err
//	}
//	err := m.Run(ctx)
type Manager struct {
	settings     *config.Settings
	pathCfg      *model.PathConfig
	trackCfg     *model.TrackConfig
	imageService *ioutils.ImageService
	open         CatalogOpener
	logger       zerolog.Logger

	gameDir  string
	dest     string
	catalog  thdat.Catalog
	comments *musiccmt.Table
	set      *model.Set

	totalFiles     int32
	extractedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new rip Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	m := &Manager{
		settings:     settings,
		pathCfg:      settings.ToPathConfig(),
		trackCfg:     settings.ToTrackConfig(),
		imageService: ioutils.NewImageService(),
		logger:       zerolog.Nop(),
		onProgress:   onProgress,
	}
	m.open = func(ctx context.Context, datPath string) (thdat.Catalog, error) {
		return thdat.Open(ctx, datPath,
			thdat.WithBinary(settings.ThdatPath),
			thdat.WithTimeout(settings.ThdatTimeout),
			thdat.WithVersion(settings.ArchiveVersion),
		)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize opens the archive, parses its music room comments and builds
// the set that Run will write below dest.
func (m *Manager) Initialize(ctx context.Context, gameDir, datPath, dest string) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Opening archive %s", filepath.Base(datPath)), Level: LevelVerbose})

	catalog, err := m.open(ctx, datPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	entries := catalog.Entries()
	media, err := SelectMedia(entries, m.settings.MediaPatterns)
	if err != nil {
		return err
	}
	if len(media) == 0 {
		return fmt.Errorf("no media in %s matches %v", filepath.Base(datPath), m.settings.MediaPatterns)
	}

	comments, err := m.loadComments(ctx, catalog)
	if err != nil {
		return err
	}

	set := model.NewSet(GameName(m.settings.Game, gameDir, datPath), m.settings.Year, dest, m.pathCfg)
	m.addTracks(set, media, comments)

	m.gameDir = gameDir
	m.dest = dest
	m.catalog = catalog
	m.comments = comments
	m.set = set
	atomic.StoreInt32(&m.extractedFiles, 0)
	atomic.StoreInt32(&m.totalFiles, int32(len(set.Tracks)))

	m.logger.Debug().
		Str("game", set.Game).
		Int("tracks", len(set.Tracks)).
		Int("comments", comments.Len()).
		Msg("set initialized")
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %s (%d tracks, %d comments)", set.Game, len(set.Tracks), comments.Len()), Level: LevelInfo})
	return nil
}

// loadComments extracts the comment file into a temporary directory and
// parses it.
func (m *Manager) loadComments(ctx context.Context, catalog thdat.Catalog) (*musiccmt.Table, error) {
	enc, err := musiccmt.EncodingByName(m.settings.CommentEncoding)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "th06rip-comments-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := catalog.Extract(ctx, m.settings.CommentFile, tmpDir); err != nil {
		return nil, fmt.Errorf("extract comment file %s: %w", m.settings.CommentFile, err)
	}
	return musiccmt.ParseFile(filepath.Join(tmpDir, path.Base(m.settings.CommentFile)), musiccmt.WithEncoding(enc))
}

// addTracks orders the media by the comment table, then appends media the
// comments don't mention in catalog order.
func (m *Manager) addTracks(set *model.Set, media []thdat.Entry, comments *musiccmt.Table) {
	byID := make(map[string]thdat.Entry, len(media))
	var order []string
	for _, e := range media {
		id := musiccmt.TrackID(e.Path)
		if _, dup := byID[id]; dup {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s, track id %s is already used", e.Path, id), Level: LevelWarning})
			continue
		}
		byID[id] = e
		order = append(order, id)
	}

	used := make(map[string]bool, len(order))
	add := func(id string) {
		e := byID[id]
		track := model.NewTrack(set, len(set.Tracks)+1, e.Path, id, m.trackCfg)
		track.Size = e.Size
		track.InlineSuffix = m.settings.InlineSuffixes[id]
		if rec, ok := comments.Get(id); ok {
			track.SetText(rec.Title, rec.Comment, m.trackCfg)
		}
		set.AddTrack(track)
		used[id] = true
	}

	for _, id := range comments.IDs() {
		if _, ok := byID[id]; !ok {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Comment for %s has no media file", id), Level: LevelVerbose})
			continue
		}
		add(id)
	}
	for _, id := range order {
		if !used[id] {
			m.progress(ProgressEvent{Message: fmt.Sprintf("No comment for %s", id), Level: LevelWarning})
			add(id)
		}
	}
}

// Run extracts the tracks, writes the playlist and the optional extras.
// Only one Run may write below the same destination at a time.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set == nil {
		return ErrNotInitialized
	}

	if err := ioutils.EnsureDir(m.set.Path); err != nil {
		return fmt.Errorf("create set directory: %w", err)
	}

	lock := flock.New(filepath.Join(m.dest, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to release destination lock")
		}
	}()

	if err := m.extractTracks(ctx); err != nil {
		return err
	}
	if err := m.verifyTracks(); err != nil {
		return err
	}
	if err := m.writePlaylist(ctx); err != nil {
		return err
	}

	m.writeCoverArt(ctx)
	m.copyExtraFiles(ctx)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully ripped %s to %s", m.set.Game, m.set.Path), Level: LevelSuccess})
	return nil
}

func (m *Manager) extractTracks(ctx context.Context) error {
	staging, err := os.MkdirTemp(m.set.Path, ".th06rip-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.MaxConcurrent))

	for i, track := range m.set.Tracks {
		g.Go(func() error {
			dir := filepath.Join(staging, strconv.Itoa(i))
			if err := m.extractTrack(ctx, track, dir); err != nil {
				// Tracks stopped by an earlier failure are not reported again
				if ctx.Err() != nil {
					return err
				}
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error extracting %s: %v", track.ArchivePath, err), Level: LevelError})
				return fmt.Errorf("extract %s: %w", track.ArchivePath, err)
			}
			atomic.AddInt32(&m.extractedFiles, 1)
			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) extractTrack(ctx context.Context, track *model.Track, dir string) error {
	// Skip files left by an earlier rip when the size still matches
	if info, err := os.Stat(track.Path); err == nil && track.Size > 0 && info.Size() == track.Size {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", track.FileName()), Level: LevelVerbose})
		return nil
	}

	if err := m.catalog.Extract(ctx, track.ArchivePath, dir); err != nil {
		return err
	}
	src := filepath.Join(dir, path.Base(track.ArchivePath))
	if err := ioutils.MoveFile(ctx, src, track.Path); err != nil {
		return err
	}

	m.logger.Debug().Str("entry", track.ArchivePath).Str("path", track.Path).Msg("track extracted")
	m.progress(ProgressEvent{Message: fmt.Sprintf("Extracted: %s", track.FileName()), Level: LevelVerbose})
	return nil
}

// verifyTracks checks that every file the playlist references exists.
func (m *Manager) verifyTracks() error {
	var missing []string
	for _, track := range m.set.Tracks {
		if !ioutils.Exists(track.Path) {
			missing = append(missing, track.FileName())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("media files missing after extraction: %v", missing)
	}
	return nil
}

func (m *Manager) writePlaylist(ctx context.Context) error {
	doc, err := BuildPlaylist(m.set, m.settings)
	if err != nil {
		return fmt.Errorf("build playlist: %w", err)
	}
	if err := ioutils.WriteFile(ctx, m.set.PlaylistPath, []byte(doc.String())); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}

	m.logger.Debug().Str("path", m.set.PlaylistPath).Int("parts", doc.Len()).Msg("playlist written")
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(m.set.PlaylistPath)), Level: LevelSuccess})
	return nil
}

func (m *Manager) writeCoverArt(ctx context.Context) {
	if m.settings.CoverArtPath == "" || m.set.CoverArtPath == "" {
		return
	}

	cover, err := m.imageService.LoadCover(ctx, m.resolveGamePath(m.settings.CoverArtPath), m.settings.CoverArtMaxSize)
	if err == nil {
		err = ioutils.WriteFile(ctx, m.set.CoverArtPath, cover)
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover art: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved cover art %s", filepath.Base(m.set.CoverArtPath)), Level: LevelVerbose})
}

func (m *Manager) copyExtraFiles(ctx context.Context) {
	for _, name := range m.settings.ExtraFiles {
		src := m.resolveGamePath(name)
		dst := filepath.Join(m.set.Path, ioutils.SanitizeFileName(filepath.Base(name)))
		if err := ioutils.CopyFile(ctx, src, dst); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error copying %s: %v", name, err), Level: LevelWarning})
			continue
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Copied %s", filepath.Base(name)), Level: LevelVerbose})
	}
}

// resolveGamePath resolves relative paths against the game directory.
func (m *Manager) resolveGamePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.gameDir, p)
}

// GetProgress returns the number of extracted and total tracks.
func (m *Manager) GetProgress() (extracted, total int32) {
	return atomic.LoadInt32(&m.extractedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Set returns the set computed by Initialize, nil before.
func (m *Manager) Set() *model.Set {
	return m.set
}

// Comments returns the parsed music room comments, nil before Initialize.
func (m *Manager) Comments() *musiccmt.Table {
	return m.comments
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
