package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
	boardio "github.com/matzehuels/pinboard/pkg/io"
)

// importCommand creates the "import" command reading a JSON envelope into the store.
func (c *CLI) importCommand() *cobra.Command {
	var (
		name          string
		fromClipboard bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a document from JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				doc *board.Document
				err error
			)
			switch {
			case fromClipboard:
				text, rerr := clipboard.ReadAll()
				if rerr != nil {
					return rerr
				}
				doc, err = boardio.UnmarshalDocument([]byte(text))
				if err != nil {
					return err
				}
				if name == "" {
					name = c.cfg.Document
				}
			case len(args) == 1:
				doc, err = boardio.ImportJSON(args[0])
				if err != nil {
					return err
				}
				if name == "" {
					base := filepath.Base(args[0])
					name = strings.TrimSuffix(base, filepath.Ext(base))
				}
			default:
				return fmt.Errorf("need a file argument or --clipboard")
			}

			ds, err := c.newDocStore(ctx)
			if err != nil {
				return err
			}
			defer ds.Close(ctx)

			if !force {
				if _, err := ds.Load(ctx, name); err == nil {
					return fmt.Errorf("document %q already exists (use --force to overwrite)", name)
				} else if !errors.Is(err, errors.ErrCodeNotFound) {
					return err
				}
			}

			if err := ds.Save(ctx, name, doc); err != nil {
				return err
			}

			connections := 0
			for _, b := range doc.Boards {
				connections += len(b.Connections)
			}
			printSuccess("Imported document %q", name)
			printStats(len(doc.Boards), len(doc.Cards), connections)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name to store the document under (default derived from the file)")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "read the JSON from the system clipboard")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")
	return cmd
}
