package rip

import (
	"strings"

	"github.com/handiism/th06rip/internal/config"
	"github.com/handiism/th06rip/internal/m3u"
	"github.com/handiism/th06rip/internal/model"
)

// BuildPlaylist lays out the !tags.m3u document for set:
//
//	# <header>
//
//	# @ALBUM   <game>
//	# $AUTOTRACK
//
//	# %TITLE   <title>
//	# %COMMENT <comment>
//	th06_01.mid
//
// Global tags come from the settings in order; album and date are filled
// from the set when not configured. Tracks without a music room record get
// no title or comment lines.
func BuildPlaylist(set *model.Set, settings *config.Settings) (*m3u.Document, error) {
	doc := m3u.New(settings.M3UExtended)

	if settings.PlaylistHeader != "" {
		if err := doc.Push(m3u.NewComment(settings.PlaylistHeader), m3u.Blank{}); err != nil {
			return nil, err
		}
	}

	head, err := globalParts(set, settings)
	if err != nil {
		return nil, err
	}
	if len(head) > 0 {
		if err := doc.Push(append(head, m3u.Blank{})...); err != nil {
			return nil, err
		}
	}

	for _, track := range set.Tracks {
		parts, err := trackParts(track, settings.M3UExtended)
		if err != nil {
			return nil, err
		}
		if err := doc.Push(parts...); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func globalParts(set *model.Set, settings *config.Settings) ([]m3u.Part, error) {
	var (
		parts []m3u.Part
		seen  = make(map[string]bool)
	)
	for _, tag := range settings.GlobalTags {
		parts = append(parts, m3u.GlobalTag(tag.Name, tag.Value))
		seen[strings.ToLower(tag.Name)] = true
	}
	if !seen["album"] && set.Game != "" {
		parts = append(parts, m3u.GlobalTag("album", set.Game))
	}
	if !seen["date"] && set.YearString() != "" {
		parts = append(parts, m3u.GlobalTag("date", set.YearString()))
	}

	for _, name := range settings.GlobalCommands {
		cmd, err := m3u.GlobalCommand(name)
		if err != nil {
			return nil, err
		}
		parts = append(parts, cmd)
	}
	return parts, nil
}

func trackParts(track *model.Track, extended bool) ([]m3u.Part, error) {
	var parts []m3u.Part
	if track.Title != "" {
		parts = append(parts, m3u.Tag("title", track.Title))
	}
	if comment := track.CommentLine(); comment != "" {
		parts = append(parts, m3u.Tag("comment", comment))
	}
	if extended {
		extinf, err := m3u.NewDirective("EXTINF", "-1,"+track.DisplayTitle())
		if err != nil {
			return nil, err
		}
		parts = append(parts, extinf)
	}
	parts = append(parts,
		&m3u.MediaFile{Path: track.FileName(), InlineSuffix: track.InlineSuffix},
		m3u.Blank{},
	)
	return parts, nil
}
