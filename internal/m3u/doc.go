// Package m3u builds vgmstream "!tags.m3u" playlists.
//
// A playlist is a Document holding Parts in order. Key-value comments
// (tags, global tags and global commands) are column-aligned across the
// whole document when it is rendered:
//
//	doc := m3u.New(false)
//	cmd, _ := m3u.GlobalCommand("autotrack")
//	_ = doc.Push(
//	    m3u.GlobalTag("album", "the Embodiment of Scarlet Devil"),
//	    cmd,
//	    m3u.Blank{},
//	    m3u.Tag("title", "A Soul as Red as a Ground Cherry"),
//	    m3u.NewMediaFile("th06_01.mid"),
//	)
//	err := doc.Render(f)
//
// Extended playlists (New(true)) additionally accept Directive parts such
// as #EXTINF and begin with the #EXTM3U header.
package m3u
