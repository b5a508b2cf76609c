package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/handiism/th06rip/internal/musiccmt"
)

// Validate checks the settings and reports every invalid field at once.
func (s *Settings) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("thdat_path", s.ThdatPath, notBlank),
		criterio.Run("thdat_timeout", s.ThdatTimeout.Seconds(), positive),
		criterio.Run("archive_version", s.ArchiveVersion, nonNegative),
		criterio.Run("max_concurrent_extractions", s.MaxConcurrent, atLeastOne),
		criterio.Run("comment_file", s.CommentFile, notBlank),
		criterio.Run("comment_encoding", s.CommentEncoding, knownEncoding),
		criterio.Run("playlist_file_name", s.PlaylistFileName, notBlank),
		criterio.Run("cover_art_max_size", s.CoverArtMaxSize, nonNegative),
		s.validateMediaPatterns(),
		s.validateGlobalTags(),
		s.validateGlobalCommands(),
	)
}

func (s *Settings) validateMediaPatterns() error {
	if len(s.MediaPatterns) == 0 {
		return criterio.NewFieldErrors("media_patterns", errors.New("at least one pattern is required"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, pattern := range s.MediaPatterns {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("media_patterns[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

func (s *Settings) validateGlobalTags() error {
	var errs criterio.FieldErrorsBuilder
	for i, tag := range s.GlobalTags {
		if strings.TrimSpace(tag.Name) == "" {
			errs = errs.Append(fmt.Sprintf("global_tags[%d].name", i), errors.New("cannot be empty"))
		}
	}
	return errs.ToError()
}

func (s *Settings) validateGlobalCommands() error {
	var errs criterio.FieldErrorsBuilder
	for i, name := range s.GlobalCommands {
		field := fmt.Sprintf("global_commands[%d]", i)
		switch {
		case strings.TrimSpace(name) == "":
			errs = errs.Append(field, errors.New("cannot be empty"))
		case strings.Contains(name, " "):
			errs = errs.Append(field, fmt.Errorf("command %q should not contain spaces", name))
		}
	}
	return errs.ToError()
}

func notBlank(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(v float64) error {
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func atLeastOne(v int) error {
	if v < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func knownEncoding(name string) error {
	_, err := musiccmt.EncodingByName(name)
	return err
}
