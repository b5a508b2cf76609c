package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/config"
)

type ConfigCmd struct {
	flags *Flags
	out   io.Writer

	// flags
	force bool
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags, out: os.Stdout}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write the default configuration",
				UsageText: "th06rip config init [--force]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Usage:       "overwrite an existing file",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runInit,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "th06rip config show",
				Action:    cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runInit(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check config file: %w", err)
	}

	if err := config.DefaultSettings().Save(path); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	log.Debug().Str("path", path).Msg("config written")
	fmt.Fprintf(cmd.out, "Wrote %s\n", path)
	return nil
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	data, err := cmd.flags.Settings.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.out.Write(data)
	return err
}
