package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCommand creates the "list" command showing all stored documents.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := c.newDocStore(ctx)
			if err != nil {
				return err
			}
			defer ds.Close(ctx)

			infos, err := ds.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No documents yet")
				printNextStep("Create one", "pinboard new <name>")
				return nil
			}

			for _, info := range infos {
				name := StyleHighlight.Render(info.Name)
				if info.Name == c.cfg.Document {
					name += StyleDim.Render(" (default)")
				}
				fmt.Println(name)
				printDetail("%d boards · %d cards · updated %s",
					info.Boards, info.Cards, formatRelativeTime(info.UpdatedAt))
			}
			return nil
		},
	}
}
