package model

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/th06rip/internal/io"
)

// Track is one media file of a set together with its music room text.
//
// The file path is computed when creating a track via NewTrack, using the
// set's path and the TrackConfig file name format.
//
// Example:
//
//	cfg := &TrackConfig{FileNameFormat: "{id}{ext}"}
//	track := NewTrack(set, 1, "bgm/th06_01.mid", "th06_01", cfg)
//	// track.Path = "/music/th06/th06_01.mid"
type Track struct {
	// Set is a reference to the parent set.
	Set *Set

	// Number is the track number (1-indexed).
	Number int

	// ID is the track id the music room comment file uses for this track:
	// the archive file name without its extension.
	ID string

	// ArchivePath is the entry path inside the DAT archive.
	ArchivePath string

	// Size is the uncompressed size listed by the archive, 0 if unknown.
	Size int64

	// Title is the music room title. Empty if the comment file has no
	// block for this track.
	Title string

	// Comment is the music room comment, one line per comment line.
	Comment string

	// InlineSuffix is appended to the media line of the playlist.
	InlineSuffix string

	// Path is the computed local file path the track is written to.
	Path string
}

// TrackConfig holds track path formatting settings.
//
// The FileNameFormat supports placeholders:
//   - {tracknum} - Track number (2 digits, zero-padded)
//   - {id} - Track id from the archive ("th06_01")
//   - {title} - Music room title, falls back to the id
//   - {ext} - Extension of the archive entry, including the dot
//   - {game}, {year} - Set values
type TrackConfig struct {
	// FileNameFormat is the template for track file names.
	FileNameFormat string
}

// NewTrack creates a new Track with computed path. Title and comment are
// filled in later from the comment table with SetText, which also
// recomputes the path for {title} templates.
func NewTrack(set *Set, number int, archivePath, id string, cfg *TrackConfig) *Track {
	track := &Track{
		Set:         set,
		Number:      number,
		ID:          id,
		ArchivePath: archivePath,
	}
	track.UpdatePath(cfg)
	return track
}

// SetText stores the music room title and comment and recomputes Path.
func (t *Track) SetText(title, comment string, cfg *TrackConfig) {
	t.Title = title
	t.Comment = comment
	t.UpdatePath(cfg)
}

// UpdatePath recomputes Path from cfg.
func (t *Track) UpdatePath(cfg *TrackConfig) {
	t.Path = limitFilePath(t.Set.Path, t.parseFileName(cfg))
}

// FileName returns the base name of Path, as referenced by the playlist.
func (t *Track) FileName() string {
	return filepath.Base(t.Path)
}

// DisplayTitle returns the title, or the id when the track has none.
func (t *Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}

// CommentLine returns the comment lines joined by single spaces.
func (t *Track) CommentLine() string {
	return strings.ReplaceAll(t.Comment, "\n", " ")
}

// parseFileName computes the filename from the config template.
func (t *Track) parseFileName(cfg *TrackConfig) string {
	format := cfg.FileNameFormat
	if format == "" {
		format = "{id}{ext}"
	}
	fileName := strings.ReplaceAll(format, "{game}", t.Set.Game)
	fileName = strings.ReplaceAll(fileName, "{year}", t.Set.YearString())
	fileName = strings.ReplaceAll(fileName, "{id}", t.ID)
	fileName = strings.ReplaceAll(fileName, "{title}", t.DisplayTitle())
	fileName = strings.ReplaceAll(fileName, "{tracknum}", fmt.Sprintf("%02d", t.Number))
	fileName = strings.ReplaceAll(fileName, "{ext}", path.Ext(t.ArchivePath))
	return ioutils.SanitizeFileName(fileName)
}
