package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/internal/server"
	"github.com/matzehuels/pinboard/pkg/board"
)

// serveCommand creates the "serve" command exposing a document over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [name]",
		Short: "Serve a document over a read-only HTTP API",
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

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			renderCache := c.newRenderCache(ctx)
			defer renderCache.Close()
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(s, c.Logger, renderCache).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			c.Logger.Info("serving document", "document", name, "addr", addr)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
