package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		field  string
	}{
		{"empty thdat path", func(s *Settings) { s.ThdatPath = " " }, "thdat_path"},
		{"zero timeout", func(s *Settings) { s.ThdatTimeout = 0 }, "thdat_timeout"},
		{"negative version", func(s *Settings) { s.ArchiveVersion = -1 }, "archive_version"},
		{"no concurrency", func(s *Settings) { s.MaxConcurrent = 0 }, "max_concurrent_extractions"},
		{"empty comment file", func(s *Settings) { s.CommentFile = "" }, "comment_file"},
		{"unknown encoding", func(s *Settings) { s.CommentEncoding = "latin-9000" }, "comment_encoding"},
		{"empty playlist name", func(s *Settings) { s.PlaylistFileName = "" }, "playlist_file_name"},
		{"negative cover size", func(s *Settings) { s.CoverArtMaxSize = -5 }, "cover_art_max_size"},
		{"no patterns", func(s *Settings) { s.MediaPatterns = nil }, "media_patterns"},
		{"bad pattern", func(s *Settings) { s.MediaPatterns = []string{"*.mid", "[abc"} }, "media_patterns[1]"},
		{"unnamed tag", func(s *Settings) { s.GlobalTags = []Tag{{Value: "x"}} }, "global_tags[0].name"},
		{"command with space", func(s *Settings) { s.GlobalCommands = []string{"AUTO TRACK"} }, "global_commands[0]"},
		{"empty command", func(s *Settings) { s.GlobalCommands = []string{"AUTOTRACK", ""} }, "global_commands[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, settings.Validate(), &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxConcurrent = 0
	settings.CommentEncoding = "nope"
	settings.GlobalCommands = []string{"A B"}

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, settings.Validate(), &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}
