package m3u

import (
	"strings"
	"unicode/utf8"
)

// RenderContext carries document-wide values a part needs to render
// itself.
type RenderContext struct {
	// TagNameWidth is the column width every key-value comment pads its
	// rendered name to.
	TagNameWidth int
}

// Part is one line of a playlist document.
//
// The set of parts is closed: MediaFile, Comment, Blank, KeyValueComment
// and Directive.
type Part interface {
	// RenderLine returns the line for this part, without the trailing
	// newline.
	RenderLine(ctx RenderContext) string

	part()
}

// MediaFile references a media file. InlineSuffix, when set, is appended
// to the path without a separator (vgmstream mini-TXTP commands such as
// " #I 10.5 95.0").
type MediaFile struct {
	Path         string
	InlineSuffix string
}

// NewMediaFile creates a media reference without an inline suffix.
func NewMediaFile(path string) *MediaFile {
	return &MediaFile{Path: path}
}

func (m *MediaFile) RenderLine(RenderContext) string {
	return m.Path + m.InlineSuffix
}

func (*MediaFile) part() {}

// Comment is a free-form "# text" line.
type Comment struct {
	Text string
}

// NewComment creates a comment line.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

func (c *Comment) RenderLine(RenderContext) string {
	return "# " + c.Text
}

func (*Comment) part() {}

// Blank is an empty line.
type Blank struct{}

func (Blank) RenderLine(RenderContext) string {
	return ""
}

func (Blank) part() {}

// Key-value comment prefixes understood by vgmstream's !tags.m3u.
const (
	TagPrefix           = '%'
	GlobalTagPrefix     = '@'
	GlobalCommandPrefix = '$'
)

// KeyValueComment is a vgmstream tag line of the form
//
//	# %TITLE    value
//	# @ALBUM ARTIST@ value
//	# $AUTOTRACK
//
// Use Tag, GlobalTag or GlobalCommand to construct one.
type KeyValueComment struct {
	name        string
	content     string
	prefix      rune
	allowSpaces bool
}

// Tag creates a per-track tag ("%NAME"). The name may contain spaces.
func Tag(name, content string) *KeyValueComment {
	return &KeyValueComment{name: name, content: content, prefix: TagPrefix, allowSpaces: true}
}

// GlobalTag creates a tag that applies to every following track ("@NAME").
// The name may contain spaces.
func GlobalTag(name, content string) *KeyValueComment {
	return &KeyValueComment{name: name, content: content, prefix: GlobalTagPrefix, allowSpaces: true}
}

// GlobalCommand creates a vgmstream command ("$NAME") such as AUTOTRACK.
// Command names cannot contain spaces and carry no content.
func GlobalCommand(name string) (*KeyValueComment, error) {
	if strings.Contains(name, " ") {
		return nil, &InvalidNameError{Kind: "command", Name: name}
	}
	return &KeyValueComment{name: name, prefix: GlobalCommandPrefix}, nil
}

// Name returns the name as given at construction.
func (k *KeyValueComment) Name() string { return k.name }

// Content returns the tag value, empty for commands.
func (k *KeyValueComment) Content() string { return k.content }

// Prefix returns the prefix character ('%', '@' or '$').
func (k *KeyValueComment) Prefix() rune { return k.prefix }

// AllowsSpaces reports whether this kind of line accepts names with spaces.
func (k *KeyValueComment) AllowsSpaces() bool { return k.allowSpaces }

// RenderedName returns the uppercased name with its prefix. Names with
// spaces are closed with the prefix as well, so vgmstream can tell where
// the name ends:
//
//	Tag("title", "")              -> "%TITLE"
//	GlobalTag("album artist", "") -> "@ALBUM ARTIST@"
func (k *KeyValueComment) RenderedName() string {
	name := string(k.prefix) + strings.ToUpper(k.name)
	if strings.Contains(k.name, " ") {
		name += string(k.prefix)
	}
	return name
}

func (k *KeyValueComment) RenderLine(ctx RenderContext) string {
	line := "# " + padName(k.RenderedName(), ctx.TagNameWidth)
	if k.content != "" {
		line += " " + k.content
	}
	return line
}

func (*KeyValueComment) part() {}

// padName right-pads s with spaces to width runes.
func padName(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if width <= n {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Directive is an extended M3U directive such as "#EXTINF:-1,Title". It
// may only be added to a document created with extended mode.
type Directive struct {
	name    string
	content string
}

// NewDirective creates a directive. Directive names cannot contain spaces.
func NewDirective(name, content string) (*Directive, error) {
	if strings.Contains(name, " ") {
		return nil, &InvalidNameError{Kind: "directive", Name: name}
	}
	return &Directive{name: name, content: content}, nil
}

// Name returns the directive name.
func (d *Directive) Name() string { return d.name }

func (d *Directive) RenderLine(RenderContext) string {
	if d.content == "" {
		return "#" + d.name
	}
	return "#" + d.name + ":" + d.content
}

func (*Directive) part() {}
