// Package rip turns the BGM archive of a Touhou game into a set of media
// files plus a vgmstream !tags.m3u playlist.
//
// The Manager drives the whole pipeline:
//
//  1. The DAT archive is listed through a thdat.Catalog and the media
//     entries are selected by pattern.
//  2. The music room comment file is extracted and parsed.
//  3. Tracks are extracted concurrently into the set directory.
//  4. The playlist is built with BuildPlaylist and written only after every
//     track is on disk.
//  5. Cover art and extra files are copied when configured.
//
// Progress is reported through ProgressEvent callbacks and the optional
// zerolog logger:
//
//	m := rip.NewManager(settings, func(e rip.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err := m.Initialize(ctx, gameDir, datPath, dest); err != nil {
//	    return err
//	}
//	return m.Run(ctx)
package rip
