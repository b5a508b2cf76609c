package musiccmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
)

type parserStatus int

const (
	statusFindingBlock parserStatus = iota
	statusInTitle
	statusInBody
)

// maxLineSize bounds a single line of the comment file.
const maxLineSize = 1024 * 1024

// block is the parser state between two commits.
type block struct {
	status parserStatus
	open   bool
	id     string
	line   int
	title  string
	body   []string
}

type options struct {
	enc encoding.Encoding
}

// Option configures Parse.
type Option func(*options)

// WithEncoding decodes the input with enc before parsing. A nil encoding
// leaves the input untouched (UTF-8).
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.enc = enc
	}
}

// Parse reads a music room comment file and returns its records.
//
// The format is a sequence of blocks:
//
//	# lines starting with '#' are ignored anywhere
//	@bgm/th06_01.mid
//	Title line
//	Body line 1
//	Body line 2
//
// The track ID is the base name of the '@' reference without its
// extension ("th06_01" above). The first line after the reference is the
// title; the remaining non-empty lines up to the next '@' or the end of the
// input form the comment, trimmed and joined with "\n".
//
// A reference that is not followed by a title line fails the whole parse
// with a *MalformedBlockError. No partial table is returned on error.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.enc != nil {
		r = o.enc.NewDecoder().Reader(r)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	table := NewTable()
	var (
		cur    block
		lineNo int
		err    error
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "@"):
			if cur, err = commit(cur, table); err != nil {
				return nil, err
			}
			cur = block{
				status: statusInTitle,
				open:   true,
				id:     TrackID(line[1:]),
				line:   lineNo,
			}
			if cur.id == "" {
				return nil, &MalformedBlockError{Line: lineNo, Reason: "reference has no track id"}
			}
		case cur.status == statusInTitle:
			cur.title = line
			cur.body = nil
			cur.status = statusInBody
		case cur.status == statusInBody:
			stripped := strings.TrimSpace(line)
			if stripped == "" {
				continue
			}
			cur.body = append(cur.body, stripped)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read comment file: %w", err)
	}

	if _, err := commit(cur, table); err != nil {
		return nil, err
	}
	return table, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return table, nil
}

// commit stores the pending block into table and returns the reset state.
func commit(cur block, table *Table) (block, error) {
	if !cur.open {
		return block{}, nil
	}
	if cur.status == statusInTitle {
		return block{}, &MalformedBlockError{ID: cur.id, Line: cur.line, Reason: "missing title line"}
	}

	comment := strings.TrimRightFunc(strings.Join(cur.body, "\n"), unicode.IsSpace)
	table.Set(cur.id, Record{Title: cur.title, Comment: comment})
	return block{}, nil
}

// TrackID derives a track ID from a file reference such as
// "bgm\th06_01.mid".
func TrackID(ref string) string {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if ref == "" {
		return ""
	}
	base := path.Base(ref)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
