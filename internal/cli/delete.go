package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/cache"
)

// deleteCommand creates the "delete" command removing a stored document.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			ds, err := c.newDocStore(ctx)
			if err != nil {
				return err
			}
			defer ds.Close(ctx)

			if err := ds.Delete(ctx, name); err != nil {
				return err
			}
			dropAutosave(ctx, c, name)

			printSuccess("Deleted document %q", name)
			return nil
		},
	}
}

// dropAutosave removes any autosave entry left for the document. Autosave is
// best effort in both directions, so failures only log.
func dropAutosave(ctx context.Context, c *CLI, name string) {
	av := c.newAutosaveCache(ctx)
	defer av.Close()
	if err := cache.DropDocument(ctx, av, name); err != nil {
		c.Logger.Debug("drop autosave", "document", name, "err", err)
	}
}
