// Package ioutils provides file system and image processing utilities for
// writing a ripped set to disk.
//
// This package contains functions for:
//   - Atomic file copying, moving and writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	// Move an extracted track into the set directory
//	err := ioutils.MoveFile(ctx, "/tmp/thdat/th06_01.mid", "/music/th06/th06_01.mid")
//
//	// Write the playlist
//	err := ioutils.WriteFile(ctx, "/music/th06/!tags.m3u", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/music/th06")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("U.N. Owen was her?") // Returns "U.N. Owen was her_"
//
// # Image Processing
//
// The ImageService turns a local scan into folder.jpg:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.LoadCover(ctx, "/scans/th06.png", 600)
package ioutils
