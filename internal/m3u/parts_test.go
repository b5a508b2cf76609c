package m3u

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLine(t *testing.T) {
	mustCommand := func(name string) *KeyValueComment {
		cmd, err := GlobalCommand(name)
		require.NoError(t, err)
		return cmd
	}
	mustDirective := func(name, content string) *Directive {
		d, err := NewDirective(name, content)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name  string
		part  Part
		width int
		want  string
	}{
		{"media file", NewMediaFile("th06_01.mid"), 0, "th06_01.mid"},
		{"media file with suffix", &MediaFile{Path: "bgm.wav", InlineSuffix: " #I 1.0 2.0"}, 0, "bgm.wav #I 1.0 2.0"},
		{"comment", NewComment("hello"), 0, "# hello"},
		{"blank", Blank{}, 10, ""},
		{"tag", Tag("title", "Song"), 0, "# %TITLE Song"},
		{"tag padded", Tag("title", "Song"), 10, "# %TITLE     Song"},
		{"tag with spaces", Tag("track number", "1"), 0, "# %TRACK NUMBER% 1"},
		{"tag without content", Tag("title", ""), 8, "# %TITLE  "},
		{"global tag", GlobalTag("album", "EoSD"), 0, "# @ALBUM EoSD"},
		{"global tag with spaces", GlobalTag("album artist", "ZUN"), 0, "# @ALBUM ARTIST@ ZUN"},
		{"global command", mustCommand("autotrack"), 0, "# $AUTOTRACK"},
		{"global command padded", mustCommand("autotrack"), 12, "# $AUTOTRACK  "},
		{"directive", mustDirective("EXTINF", "-1,Title"), 20, "#EXTINF:-1,Title"},
		{"directive without content", mustDirective("EXT-X-ENDLIST", ""), 0, "#EXT-X-ENDLIST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.part.RenderLine(RenderContext{TagNameWidth: tt.width})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderedName(t *testing.T) {
	tests := []struct {
		kv   *KeyValueComment
		want string
	}{
		{Tag("title", "x"), "%TITLE"},
		{Tag("Album Artist", "x"), "%ALBUM ARTIST%"},
		{GlobalTag("album artist", "x"), "@ALBUM ARTIST@"},
		{GlobalTag("date", "2002"), "@DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kv.RenderedName())
		})
	}
}

func TestGlobalCommand_RejectsSpaces(t *testing.T) {
	cmd, err := GlobalCommand("auto track")
	assert.Nil(t, cmd)

	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "auto track", nameErr.Name)
	assert.Contains(t, err.Error(), "auto track")
}

func TestNewDirective_RejectsSpaces(t *testing.T) {
	_, err := NewDirective("EXT INF", "x")

	var nameErr *InvalidNameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestKeyValueComment_Kinds(t *testing.T) {
	cmd, err := GlobalCommand("autotrack")
	require.NoError(t, err)

	assert.Equal(t, TagPrefix, Tag("a", "").Prefix())
	assert.True(t, Tag("a", "").AllowsSpaces())
	assert.Equal(t, GlobalTagPrefix, GlobalTag("a", "").Prefix())
	assert.True(t, GlobalTag("a", "").AllowsSpaces())
	assert.Equal(t, GlobalCommandPrefix, cmd.Prefix())
	assert.False(t, cmd.AllowsSpaces())
	assert.Empty(t, cmd.Content())
}

func TestPadName(t *testing.T) {
	assert.Equal(t, "ab  ", padName("ab", 4))
	assert.Equal(t, "abcd", padName("abcd", 2))
	assert.Equal(t, "曲名  ", padName("曲名", 4))
}
