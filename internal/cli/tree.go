package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/render"
)

// treeCommand creates the "tree" command rendering the board hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		svg      bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [name]",
		Short: "Render the board hierarchy as DOT or SVG",
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

			dot := render.BoardTreeDOT(s, render.TreeOptions{Detailed: detailed})
			if !svg {
				fmt.Print(dot)
				return nil
			}

			data, err := render.RenderSVG(dot)
			if err != nil {
				return err
			}
			if output == "" {
				output = name + "-tree.svg"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered board tree for %q", name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG output file (default <name>-tree.svg)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render to SVG instead of printing DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include card and connection counts in labels")
	return cmd
}
