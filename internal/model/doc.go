// Package model defines the value types shared by the ripping pipeline.
//
// # Set
//
// Set is one game soundtrack with computed destination paths:
//
//	set := model.NewSet("th06", 2002, "/music", pathConfig)
//	fmt.Println(set.Path)         // Where the tracks are written
//	fmt.Println(set.PlaylistPath) // Where !tags.m3u is written
//
// # Track
//
// Track is one media file of the set:
//
//	track := model.NewTrack(set, 1, "th06_01.mid", "th06_01", trackConfig)
//	track.SetText(record.Title, record.Comment, trackConfig)
//	fmt.Println(track.Path)
//
// Available placeholders: {game}, {year} for sets and additionally
// {tracknum}, {id}, {title}, {ext} for tracks.
package model
