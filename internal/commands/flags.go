package commands

import (
	"github.com/handiism/th06rip/internal/config"
)

// Flags holds the global flags shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Settings is loaded in the Before hook and available to all commands
	Settings *config.Settings
}
