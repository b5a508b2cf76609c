package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/handiism/th06rip/internal/musiccmt"
)

type CommentsCmd struct {
	flags *Flags
	out   io.Writer

	// flags
	encoding string
}

// NewCommentsCmd creates a new comments command
func NewCommentsCmd(flags *Flags) *CommentsCmd {
	return &CommentsCmd{flags: flags, out: os.Stdout}
}

// Register adds the comments command to the application
func (cmd *CommentsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "comments",
		Usage:     "Show the titles and comments of a music room comment file",
		UsageText: "th06rip comments [--encoding shift_jis] <musiccmt.txt>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "encoding",
				Usage:       "text encoding of the file (shift_jis, euc-jp, utf-8); defaults to comment_encoding",
				Destination: &cmd.encoding,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CommentsCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return errors.New("expected <comment-file>")
	}

	name := cmd.encoding
	if name == "" {
		name = cmd.flags.Settings.CommentEncoding
	}
	enc, err := musiccmt.EncodingByName(name)
	if err != nil {
		return err
	}

	table, err := musiccmt.ParseFile(c.Args().First(), musiccmt.WithEncoding(enc))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, table.Len())
	for id, rec := range table.All() {
		rows = append(rows, []string{id, rec.Title, strings.ReplaceAll(rec.Comment, "\n", " ")})
	}

	fmt.Fprintln(cmd.out, renderTable([]string{"Track", "Title", "Comment"}, rows, nil))
	return nil
}
