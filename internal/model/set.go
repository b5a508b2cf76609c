package model

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	ioutils "github.com/handiism/th06rip/internal/io"
)

// Windows path limits the computed paths are kept under.
const (
	maxFolderPath = 248
	maxFilePath   = 260
)

// Set is one ripped game soundtrack: a folder of tracks plus the
// !tags.m3u playlist that names them.
//
// Paths are computed when the set is created via NewSet, using the
// placeholders {game} and {year}.
//
// Example:
//
//	cfg := &PathConfig{
//	    SetPathFormat:    "{year} {game}",
//	    PlaylistFileName: "!tags.m3u",
//	    CoverArtFileName: "folder.jpg",
//	}
//	set := NewSet("th06", 2002, "/music", cfg)
//	// set.Path = "/music/2002 th06"
//	// set.PlaylistPath = "/music/2002 th06/!tags.m3u"
type Set struct {
	// Game is the game name used for the folder and the album tag.
	Game string

	// Year is the release year, 0 if unknown.
	Year int

	// Tracks holds the tracks in playlist order.
	Tracks []*Track

	// Path is the computed directory the set is written to.
	Path string

	// PlaylistPath is the computed path of the playlist file.
	PlaylistPath string

	// CoverArtPath is the computed path of the cover art file.
	CoverArtPath string
}

// PathConfig holds path formatting settings for sets.
type PathConfig struct {
	// SetPathFormat is the folder name template below the destination,
	// e.g. "{game}". An empty template writes the set into the
	// destination directly.
	SetPathFormat string

	// PlaylistFileName is the playlist file name, "!tags.m3u" for vgmstream.
	PlaylistFileName string

	// CoverArtFileName is the cover art file name, e.g. "folder.jpg".
	CoverArtFileName string
}

// NewSet creates a Set rooted below dest with paths computed from cfg.
// Placeholder values are sanitized before they are substituted.
func NewSet(game string, year int, dest string, cfg *PathConfig) *Set {
	set := &Set{
		Game: game,
		Year: year,
	}

	set.Path = set.parseFolderPath(dest, cfg)
	set.PlaylistPath = limitFilePath(set.Path, ioutils.SanitizeFileName(cfg.PlaylistFileName))
	if cfg.CoverArtFileName != "" {
		set.CoverArtPath = limitFilePath(set.Path, ioutils.SanitizeFileName(cfg.CoverArtFileName))
	}

	return set
}

// AddTrack appends a track to the set.
func (s *Set) AddTrack(t *Track) {
	s.Tracks = append(s.Tracks, t)
}

// YearString returns the year as text, empty if unknown.
func (s *Set) YearString() string {
	if s.Year <= 0 {
		return ""
	}
	return strconv.Itoa(s.Year)
}

func (s *Set) replacePlaceholders(format string) string {
	format = strings.ReplaceAll(format, "{game}", ioutils.SanitizeFileName(s.Game))
	format = strings.ReplaceAll(format, "{year}", s.YearString())
	return ioutils.SanitizeFileName(format)
}

// parseFolderPath computes the set folder path from the config template.
func (s *Set) parseFolderPath(dest string, cfg *PathConfig) string {
	path := dest
	if cfg.SetPathFormat != "" {
		if name := s.replacePlaceholders(cfg.SetPathFormat); name != "" {
			path = filepath.Join(dest, name)
		}
	}

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	return truncateRunes(path, maxFolderPath-1)
}

// limitFilePath joins dir and fileName, shortening the file name stem when
// the result would exceed the Windows file path limit.
func limitFilePath(dir, fileName string) string {
	filePath := filepath.Join(dir, fileName)
	if len(filePath) < maxFilePath {
		return filePath
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	room := maxFilePath - 1 - len(dir) - 1 - len(ext)
	if room <= 0 {
		return filePath
	}
	return filepath.Join(dir, truncateRunes(stem, room)+ext)
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8
// sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
