package cli

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	boardio "github.com/matzehuels/pinboard/pkg/io"
)

// exportCommand creates the "export" command writing a document as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output      string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a document as JSON",
		Long:  `Export writes the document's full JSON envelope to stdout, a file, or the system clipboard. The output round-trips through "pinboard import".`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := c.documentName(args)

			ds, err := c.newDocStore(ctx)
			if err != nil {
				return err
			}
			defer ds.Close(ctx)

			doc, err := ds.Load(ctx, name)
			if err != nil {
				return err
			}

			switch {
			case toClipboard:
				data, err := boardio.MarshalDocument(doc)
				if err != nil {
					return err
				}
				if err := clipboard.WriteAll(string(data)); err != nil {
					return err
				}
				printSuccess("Copied document %q to clipboard", name)
			case output == "" || output == "-":
				return boardio.WriteJSON(doc, os.Stdout)
			default:
				if err := boardio.ExportJSON(doc, output); err != nil {
					return err
				}
				printSuccess("Exported document %q", name)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy the JSON to the system clipboard")
	return cmd
}
