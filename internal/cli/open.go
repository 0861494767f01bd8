package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/interact"
)

// openCommand creates the "open" command browsing a document interactively.
func (c *CLI) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open [name]",
		Short: "Browse and edit a document interactively",
		Long:  `Open starts an interactive browser over the document's board tree. Changes autosave on the configured interval and are written back to the store on exit; an unclean previous session is recovered from the autosave cache.`,
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

			av := c.newAutosaveCache(ctx)
			defer av.Close()

			if recovered, ok, err := cache.LoadDocument(ctx, av, name); err != nil {
				c.Logger.Warn("autosave recovery failed", "document", name, "err", err)
			} else if ok {
				doc = recovered
				printWarning("Recovered autosaved changes for %q", name)
			}

			s := board.NewStore()
			s.Replace(doc)
			engine := interact.New(s, interact.WithGridSnap(c.cfg.GridSnap))

			model := newBoardBrowser(engine, name, av,
				c.cfg.Autosave.Interval.Duration, c.cfg.Autosave.TTL.Duration)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return err
			}

			if err := ds.Save(ctx, name, s.Document()); err != nil {
				if errors.Is(err, errors.ErrCodeCapacity) {
					// The session is not lost: the autosave entry stays in
					// the cache and the next open recovers from it.
					printWarning("Could not write %q to the store: %v", name, err)
					printWarning("Your changes are kept in the autosave cache")
					return nil
				}
				return err
			}
			if err := cache.DropDocument(ctx, av, name); err != nil {
				c.Logger.Debug("drop autosave", "document", name, "err", err)
			}
			printSuccess("Saved document %q", name)
			return nil
		},
	}
}
