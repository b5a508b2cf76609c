package m3u

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_TagNameWidth(t *testing.T) {
	doc := New(false)
	assert.Equal(t, 0, doc.TagNameWidth())

	require.NoError(t, doc.Push(NewMediaFile("a.mid"), NewComment("a very long comment line")))
	assert.Equal(t, 0, doc.TagNameWidth(), "only key-value comments count")

	require.NoError(t, doc.Push(Tag("title", "x")))
	assert.Equal(t, 6, doc.TagNameWidth())

	require.NoError(t, doc.Push(GlobalTag("album artist", "ZUN")))
	assert.Equal(t, 14, doc.TagNameWidth())
	assert.Equal(t, 14, doc.TagNameWidth(), "recomputing is idempotent")

	_, err := doc.Pop()
	require.NoError(t, err)
	assert.Equal(t, 6, doc.TagNameWidth(), "width follows the current parts")
}

func TestDocument_RenderAlignsNames(t *testing.T) {
	doc := New(false)
	require.NoError(t, doc.Push(
		GlobalTag("title", "Title"),
		GlobalTag("album artist", "ZUN"),
	))

	want := "" +
		"# @TITLE         Title\n" +
		"# @ALBUM ARTIST@ ZUN\n"
	assert.Equal(t, want, doc.String())

	for _, line := range strings.Split(strings.TrimSuffix(doc.String(), "\n"), "\n") {
		assert.Equal(t, " ", line[2+14:2+15], "name field is padded to 14 before the content: %q", line)
	}
}

func TestDocument_RenderClassic(t *testing.T) {
	cmd, err := GlobalCommand("autotrack")
	require.NoError(t, err)

	doc := New(false)
	require.NoError(t, doc.Push(
		NewComment("generated"),
		Blank{},
		GlobalTag("album", "EoSD"),
		cmd,
		Blank{},
		Tag("title", "A Soul as Red as a Ground Cherry"),
		NewMediaFile("th06_01.mid"),
	))

	want := "" +
		"# generated\n" +
		"\n" +
		"# @ALBUM     EoSD\n" +
		"# $AUTOTRACK\n" +
		"\n" +
		"# %TITLE     A Soul as Red as a Ground Cherry\n" +
		"th06_01.mid\n"
	assert.Equal(t, want, doc.String())
}

func TestDocument_RenderExtended(t *testing.T) {
	extinf, err := NewDirective("EXTINF", "-1,Title")
	require.NoError(t, err)

	doc := New(true)
	require.NoError(t, doc.Push(extinf, NewMediaFile("a.mid")))

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	assert.Equal(t, "#EXTM3U\n\n#EXTINF:-1,Title\na.mid\n", buf.String())
}

func TestDocument_RenderEmpty(t *testing.T) {
	assert.Equal(t, "", New(false).String())
	assert.Equal(t, "#EXTM3U\n\n", New(true).String())
}

func TestDocument_RenderTwiceIsIdentical(t *testing.T) {
	doc := New(true)
	extinf, err := NewDirective("EXTINF", "-1,x")
	require.NoError(t, err)
	require.NoError(t, doc.Push(GlobalTag("album", "x"), Tag("comment", "y"), extinf, NewMediaFile("x.mid"), Blank{}))

	var first, second bytes.Buffer
	require.NoError(t, doc.Render(&first))
	require.NoError(t, doc.Render(&second))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDocument_PushDirectiveIntoClassic(t *testing.T) {
	doc := New(false)
	require.NoError(t, doc.Push(NewMediaFile("a.mid")))

	extinf, err := NewDirective("EXTINF", "-1,x")
	require.NoError(t, err)

	err = doc.Push(NewMediaFile("b.mid"), extinf)
	require.ErrorIs(t, err, ErrNotExtended)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 2, cfgErr.Index)

	assert.Equal(t, 1, doc.Len(), "failed push leaves the part list unchanged")
	assert.Equal(t, []Part{NewMediaFile("a.mid")}, doc.Parts())
}

func TestDocument_PushPreservesOrder(t *testing.T) {
	doc := New(false)
	a, b, c := NewMediaFile("a"), NewMediaFile("b"), NewMediaFile("c")
	require.NoError(t, doc.Push(a, b))
	require.NoError(t, doc.Push(c))

	assert.Equal(t, "a\nb\nc\n", doc.String())
}

func TestDocument_Pop(t *testing.T) {
	doc := New(false)
	_, err := doc.Pop()
	assert.True(t, errors.Is(err, ErrEmptyDocument))

	first, second := NewComment("1"), NewComment("2")
	require.NoError(t, doc.Push(first, second))

	got, err := doc.Pop()
	require.NoError(t, err)
	assert.Same(t, second, got)

	got, err = doc.Pop()
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = doc.Pop()
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDocument_InstancesDoNotShareParts(t *testing.T) {
	a := New(false)
	b := New(false)
	require.NoError(t, a.Push(NewMediaFile("only-in-a")))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestDocument_PartsReturnsCopy(t *testing.T) {
	doc := New(false)
	require.NoError(t, doc.Push(NewMediaFile("a")))

	parts := doc.Parts()
	parts[0] = Blank{}

	assert.Equal(t, "a\n", doc.String())
}
