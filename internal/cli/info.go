package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
)

// infoCommand creates the "info" command showing one document's statistics.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [name]",
		Short: "Show document statistics",
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

			s := board.NewStore()
			s.Replace(doc)

			connections := 0
			for _, b := range doc.Boards {
				connections += len(b.Connections)
			}

			crumbs := make([]string, 0, 4)
			for _, b := range s.PathTo(doc.CurrentBoardID) {
				crumbs = append(crumbs, b.Name)
			}

			fmt.Println(StyleTitle.Render(name))
			printKeyValue("boards", fmt.Sprintf("%d", len(doc.Boards)))
			printKeyValue("cards", fmt.Sprintf("%d", len(doc.Cards)))
			printKeyValue("connections", fmt.Sprintf("%d", connections))
			printKeyValue("current", strings.Join(crumbs, " / "))
			printKeyValue("dark mode", fmt.Sprintf("%t", doc.DarkMode))
			return nil
		},
	}
}
