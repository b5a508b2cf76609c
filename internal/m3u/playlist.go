package m3u

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// extendedHeader opens every extended playlist.
const extendedHeader = "#EXTM3U"

// Document is an ordered list of playlist parts rendered as one file.
//
// A Document is either classic or extended. Extended documents start with
// the #EXTM3U header and may hold Directive parts; classic documents reject
// directives on Push.
//
// All key-value comments of a document share one name column so their
// values line up:
//
//	doc := m3u.New(false)
//	_ = doc.Push(
//	    m3u.GlobalTag("album artist", "ZUN"),
//	    m3u.Tag("title", "Bad Apple!!"),
//	    m3u.NewMediaFile("th06_01.mid"),
//	)
//	doc.String()
//	// # @ALBUM ARTIST@ ZUN
//	// # %TITLE         Bad Apple!!
//	// th06_01.mid
//
// A Document is not safe for concurrent use.
type Document struct {
	parts    []Part
	extended bool

	tagNameWidth int
}

// New creates an empty document. Each document owns its part list.
func New(extended bool) *Document {
	return &Document{extended: extended}
}

// Extended reports whether the document renders as an extended M3U.
func (d *Document) Extended() bool {
	return d.extended
}

// Push appends parts in call order.
//
// The whole resulting part list is validated before anything is appended;
// on error the document is left unchanged. A Directive in a classic
// document yields a *ConfigurationError wrapping ErrNotExtended.
func (d *Document) Push(parts ...Part) error {
	if err := d.validate(d.parts, 0); err != nil {
		return err
	}
	if err := d.validate(parts, len(d.parts)); err != nil {
		return err
	}
	d.parts = append(d.parts, parts...)
	return nil
}

func (d *Document) validate(parts []Part, offset int) error {
	if d.extended {
		return nil
	}
	for i, p := range parts {
		if _, ok := p.(*Directive); ok {
			return &ConfigurationError{Index: offset + i, Part: p, Err: ErrNotExtended}
		}
	}
	return nil
}

// Pop removes and returns the last part.
func (d *Document) Pop() (Part, error) {
	if len(d.parts) == 0 {
		return nil, ErrEmptyDocument
	}
	last := d.parts[len(d.parts)-1]
	d.parts[len(d.parts)-1] = nil
	d.parts = d.parts[:len(d.parts)-1]
	return last, nil
}

// Len returns the number of parts.
func (d *Document) Len() int {
	return len(d.parts)
}

// Parts returns a copy of the part list.
func (d *Document) Parts() []Part {
	parts := make([]Part, len(d.parts))
	copy(parts, d.parts)
	return parts
}

// TagNameWidth computes the width of the shared name column: the longest
// rendered name among the key-value comments currently in the document, in
// runes, or 0 if there are none.
func (d *Document) TagNameWidth() int {
	width := 0
	for _, p := range d.parts {
		kv, ok := p.(*KeyValueComment)
		if !ok {
			continue
		}
		width = max(width, utf8.RuneCountInString(kv.RenderedName()))
	}
	d.tagNameWidth = width
	return width
}

// Render writes the document to w, one line per part, each terminated by
// "\n". Extended documents are preceded by "#EXTM3U" and a blank line.
func (d *Document) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if d.extended {
		bw.WriteString(extendedHeader + "\n\n")
	}

	ctx := RenderContext{TagNameWidth: d.TagNameWidth()}
	for _, p := range d.parts {
		bw.WriteString(p.RenderLine(ctx))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// String renders the document into a string.
func (d *Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}
