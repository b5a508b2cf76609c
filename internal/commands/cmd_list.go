package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/rip"
	"github.com/handiism/th06rip/internal/thdat"
)

type ListCmd struct {
	flags  *Flags
	opener rip.CatalogOpener
	out    io.Writer

	// flags
	mediaOnly bool
}

// NewListCmd creates a new list command. A nil opener uses thdat.
func NewListCmd(flags *Flags, opener rip.CatalogOpener) *ListCmd {
	return &ListCmd{flags: flags, opener: opener, out: os.Stdout}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the entries of a DAT archive",
		UsageText: "th06rip list [--media] <dat>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "media",
				Usage:       "only show entries matching the media patterns",
				Destination: &cmd.mediaOnly,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return errors.New("expected <dat>")
	}

	open := cmd.opener
	if open == nil {
		settings := cmd.flags.Settings
		open = func(ctx context.Context, datPath string) (thdat.Catalog, error) {
			return thdat.Open(ctx, datPath,
				thdat.WithBinary(settings.ThdatPath),
				thdat.WithTimeout(settings.ThdatTimeout),
				thdat.WithVersion(settings.ArchiveVersion),
			)
		}
	}

	catalog, err := open(ctx, c.Args().First())
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	entries := catalog.Entries()
	if cmd.mediaOnly {
		if entries, err = rip.SelectMedia(entries, cmd.flags.Settings.MediaPatterns); err != nil {
			return err
		}
	}

	var size, stored int64
	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		size += e.Size
		stored += e.StoredSize
		rows = append(rows, []string{e.Path, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.StoredSize))})
	}
	rows = append(rows, []string{fmt.Sprintf("%d entries", len(entries)), humanize.IBytes(uint64(size)), humanize.IBytes(uint64(stored))})

	fmt.Fprintln(cmd.out, renderTable(
		[]string{"Name", "Size", "Stored"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
	return nil
}
