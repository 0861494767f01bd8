package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/render"
)

// renderCommand creates the "render" command producing a PNG snapshot of a board.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		boardID string
		output  string
		scale   float64
		padding float64
	)

	cmd := &cobra.Command{
		Use:   "render [name]",
		Short: "Render a board to a PNG image",
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

			target := boardID
			if target == "" {
				target = s.Document().CurrentBoardID
			}

			p := newProgress(c.Logger)
			data, err := render.SnapshotPNG(s, target, render.SnapshotOptions{
				Scale:   scale,
				Padding: padding,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = name + ".png"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}

			b, _ := s.Board(target)
			p.done(fmt.Sprintf("Rendered board %q", b.Name))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id to render (default the document's current board)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.png)")
	cmd.Flags().Float64Var(&scale, "scale", 2, "device pixel scale factor")
	cmd.Flags().Float64Var(&padding, "padding", 40, "padding around the content, in canvas units")
	return cmd
}
