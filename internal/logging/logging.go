// Package logging builds the zerolog logger shared by the th06rip commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger at the given level. With a file, JSON lines are
// written to it (truncating any previous log); otherwise logs go to stderr,
// human-readable when stderr is a terminal.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
// The returned closer must be called once logging is done.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	if file == "" {
		l, err := NewWithWriter(level, os.Stderr)
		return l, closer, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}
	osFile, err := os.Create(file)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	l, err := NewWithWriter(level, osFile)
	if err != nil {
		_ = osFile.Close()
		return zerolog.Logger{}, closer, err
	}
	return l, func() { _ = osFile.Close() }, nil
}

// NewWithWriter returns a logger writing to w. Terminals get a console
// writer, everything else JSON.
func NewWithWriter(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if isTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl), nil
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
