// Package commands holds the th06rip subcommands.
//
// Each command is a struct with its own flag destinations and a Register
// method that appends it to the root application:
//
//	app = commands.NewRipCmd(flags, nil).Register(app)
//	app = commands.NewListCmd(flags, nil).Register(app)
//
// Commands read the loaded settings from the shared Flags and print to
// stdout; progress and diagnostics go through zerolog.
package commands
