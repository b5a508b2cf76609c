package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/logging"
	"github.com/handiism/th06rip/internal/rip"
)

type RipCmd struct {
	flags  *Flags
	opener rip.CatalogOpener
	out    io.Writer

	// flags
	extended bool
	game     string
	year     int
	verbose  bool
	dryRun   bool
}

// NewRipCmd creates a new rip command. A nil opener uses thdat.
func NewRipCmd(flags *Flags, opener rip.CatalogOpener) *RipCmd {
	return &RipCmd{flags: flags, opener: opener, out: os.Stdout}
}

// Register adds the rip command to the application
func (cmd *RipCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rip",
		Usage:     "Rip the BGM of a game into a tagged set",
		UsageText: "th06rip rip [options] <game-dir> <dat> [dest]",
		Description: `Extracts the MIDI tracks of the DAT archive, names them after the music room
comments and writes a vgmstream !tags.m3u playlist next to them.

dest defaults to the current directory. The thdat tool from Touhou Toolkit
must be on PATH (or set thdat_path in the config file).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "extended",
				Aliases:     []string{"x"},
				Usage:       "write an extended M3U with #EXTINF lines",
				Destination: &cmd.extended,
			},
			&cli.StringFlag{
				Name:        "game",
				Usage:       "game name for the set folder and album tag",
				Destination: &cmd.game,
			},
			&cli.IntFlag{
				Name:        "year",
				Usage:       "release year for the date tag",
				Destination: &cmd.year,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "show every progress message",
				Destination: &cmd.verbose,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "list the tracks without extracting",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RipCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 || c.NArg() > 3 {
		return errors.New("expected <game-dir> <dat> [dest]")
	}
	gameDir, datPath := c.Args().Get(0), c.Args().Get(1)
	dest := c.Args().Get(2)
	if dest == "" {
		dest = "."
	}

	settings := *cmd.flags.Settings
	if c.IsSet("extended") {
		settings.M3UExtended = cmd.extended
	}
	if cmd.game != "" {
		settings.Game = cmd.game
	}
	if cmd.year > 0 {
		settings.Year = cmd.year
	}

	opts := []rip.Option{rip.WithLogger(logging.Component(log.Logger, "rip"))}
	if cmd.opener != nil {
		opts = append(opts, rip.WithCatalogOpener(cmd.opener))
	}
	manager := rip.NewManager(&settings, cmd.printEvent, opts...)

	if err := manager.Initialize(ctx, gameDir, datPath, dest); err != nil {
		return err
	}

	if cmd.dryRun {
		fmt.Fprintln(cmd.out, renderTracks(manager))
		return nil
	}

	if err := manager.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("rip cancelled: %w", ctx.Err())
		}
		return err
	}

	extracted, total := manager.GetProgress()
	fmt.Fprintf(cmd.out, "\n%d/%d tracks written to %s\n", extracted, total, manager.Set().Path)
	return nil
}

func (cmd *RipCmd) printEvent(event rip.ProgressEvent) {
	if event.Level == rip.LevelVerbose && !cmd.verbose {
		return
	}

	var prefix string
	switch event.Level {
	case rip.LevelError:
		prefix = "✗ "
	case rip.LevelWarning:
		prefix = "! "
	case rip.LevelSuccess:
		prefix = "✓ "
	case rip.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	fmt.Fprintln(cmd.out, prefix+event.Message)
}

func renderTracks(manager *rip.Manager) string {
	set := manager.Set()
	rows := make([][]string, 0, len(set.Tracks))
	for _, t := range set.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(t.Number),
			t.FileName(),
			t.DisplayTitle(),
			humanize.IBytes(uint64(t.Size)),
		})
	}
	return renderTable(
		[]string{"#", "File", "Title", "Size"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	)
}
