package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/config"
	"github.com/handiism/th06rip/internal/logging"
	"github.com/handiism/th06rip/internal/tui"
)

func main() {
	var (
		logLevel   string
		logFile    string
		configPath string
	)

	app := &cli.Command{
		Name:      "th06rip-tui",
		Usage:     "Interactive th06rip",
		UsageText: "th06rip-tui [options] <game-dir> <dat>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("TH06RIP_LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (no logging without one)",
				Sources:     cli.EnvVars("TH06RIP_LOG_FILE"),
				Destination: &logFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TH06RIP_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return errors.New("expected <game-dir> <dat>")
			}

			settings, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// The alternate screen owns the terminal, so logs only go to a file
			logger := zerolog.Nop()
			if logFile != "" {
				l, closer, err := logging.New(logLevel, logFile)
				if err != nil {
					return fmt.Errorf("setup logger: %w", err)
				}
				defer closer()
				logger = logging.Component(l, "tui")
			}

			return tui.Run(tui.Options{
				GameDir:  c.Args().Get(0),
				DatPath:  c.Args().Get(1),
				Settings: settings,
				Logger:   logger,
			})
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
