package rip

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/handiism/th06rip/internal/thdat"
)

var reGameID = regexp.MustCompile(`(?i)^(th[0-9]+)`)

// SelectMedia returns the catalog entries matching any of patterns, in
// catalog order. Patterns without a slash match the base name, so "*.mid"
// also selects "bgm/th06_01.mid".
func SelectMedia(entries []thdat.Entry, patterns []string) ([]thdat.Entry, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid media pattern %q", p)
		}
	}

	var selected []thdat.Entry
	for _, e := range entries {
		for _, p := range patterns {
			name := e.Path
			if !strings.Contains(p, "/") {
				name = path.Base(e.Path)
			}
			if ok, _ := doublestar.Match(p, name); ok {
				selected = append(selected, e)
				break
			}
		}
	}
	return selected, nil
}

// GameName picks the set's game name: the configured name, else the "thNN"
// prefix of the DAT file name, else the game directory name.
func GameName(configured, gameDir, datPath string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	if m := reGameID.FindStringSubmatch(filepath.Base(datPath)); m != nil {
		return strings.ToLower(m[1])
	}
	return filepath.Base(filepath.Clean(gameDir))
}
