// Package config provides configuration management for th06rip.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Validation with per-field errors
//   - Conversion to PathConfig and TrackConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// MIDI tracks (*.mid) from the DAT, comments from musiccmt.txt (Shift-JIS)
//	// Playlist written to !tags.m3u with $AUTOTRACK
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultConfigPath())
//	// Defaults are returned if the file doesn't exist
//
// # Saving Settings
//
//	settings.M3UExtended = true
//	err := settings.Save(config.DefaultConfigPath())
package config
