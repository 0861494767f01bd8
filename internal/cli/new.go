package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// newCommand creates the "new" command for creating documents.
func (c *CLI) newCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new empty document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := c.documentName(args)

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

			s := board.NewStore()
			if c.cfg.DarkMode {
				s.SetDarkMode(true)
			}
			if err := ds.Save(ctx, name, s.Document()); err != nil {
				return err
			}

			printSuccess("Created document %q", name)
			printNextStep("Open it", "pinboard open "+name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")
	return cmd
}
