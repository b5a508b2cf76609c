package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/th06rip/internal/model"
)

// Tag is one global playlist tag, written as "# @NAME value".
type Tag struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Settings holds all configuration options.
type Settings struct {
	// Archive settings
	ThdatPath      string        `yaml:"thdat_path"`
	ThdatTimeout   time.Duration `yaml:"thdat_timeout"`
	ArchiveVersion int           `yaml:"archive_version"` // 0 detects the version
	MediaPatterns  []string      `yaml:"media_patterns"`
	MaxConcurrent  int           `yaml:"max_concurrent_extractions"`

	// Music room comments
	CommentFile     string `yaml:"comment_file"`
	CommentEncoding string `yaml:"comment_encoding"` // shift_jis, euc-jp, utf-8

	// Set metadata and file naming
	Game             string `yaml:"game"` // empty derives the name from the DAT file
	Year             int    `yaml:"year"`
	SetPathFormat    string `yaml:"set_path_format"`
	FileNameFormat   string `yaml:"file_name_format"`
	PlaylistFileName string `yaml:"playlist_file_name"`

	// Playlist settings
	M3UExtended    bool              `yaml:"m3u_extended"`
	PlaylistHeader string            `yaml:"playlist_header"`
	GlobalTags     []Tag             `yaml:"global_tags"`
	GlobalCommands []string          `yaml:"global_commands"`
	InlineSuffixes map[string]string `yaml:"inline_suffixes"` // by track id

	// Cover art settings
	CoverArtPath     string `yaml:"cover_art_path"`
	CoverArtFileName string `yaml:"cover_art_file_name"`
	CoverArtMaxSize  int    `yaml:"cover_art_max_size"` // 0 keeps the original size

	// Files copied from the game directory into the set
	ExtraFiles []string `yaml:"extra_files"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ThdatPath:     "thdat",
		ThdatTimeout:  5 * time.Second,
		MediaPatterns: []string{"*.mid"},
		MaxConcurrent: 4,

		CommentFile:     "musiccmt.txt",
		CommentEncoding: "shift_jis",

		SetPathFormat:    "{game}",
		FileNameFormat:   "{id}{ext}",
		PlaylistFileName: "!tags.m3u",

		PlaylistHeader: "Generated by th06rip",
		GlobalTags: []Tag{
			{Name: "artist", Value: "ZUN"},
			{Name: "album artist", Value: "ZUN"},
		},
		GlobalCommands: []string{"AUTOTRACK"},
		InlineSuffixes: map[string]string{},

		CoverArtFileName: "folder.jpg",
		CoverArtMaxSize:  600,
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "th06rip", "config.yaml")
}

// Load reads settings from a YAML file. Keys missing from the file keep
// their default values; a missing file yields the defaults. The result is
// validated.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return settings, nil
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if settings.InlineSuffixes == nil {
		settings.InlineSuffixes = map[string]string{}
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

// Save writes settings to a YAML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		SetPathFormat:    s.SetPathFormat,
		PlaylistFileName: s.PlaylistFileName,
		CoverArtFileName: s.CoverArtFileName,
	}
}

// ToTrackConfig converts settings to TrackConfig.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		FileNameFormat: s.FileNameFormat,
	}
}
