// Package cli implements the pinboard command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/buildinfo"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/config"
	"github.com/matzehuels/pinboard/pkg/docstore"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pinboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg      config.Config
	cfgPath  string
	mongoURI string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pinboard",
		Short:        "Pinboard is an infinite-canvas planning board",
		Long:         `Pinboard manages documents of nestable boards holding notes, todo lists, links, images, and columns, connected by curves. Documents live in a local store (or MongoDB) and can be exported to JSON, rendered to PNG or SVG, browsed interactively, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default is "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo-uri", "", "store documents in MongoDB at this URI instead of on disk")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.openCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factories
// =============================================================================

// newDocStore opens the document store selected by flags: MongoDB when
// --mongo-uri is set, the local file store otherwise.
func (c *CLI) newDocStore(ctx context.Context) (docstore.Store, error) {
	if c.mongoURI != "" {
		return docstore.NewMongoStore(ctx, c.mongoURI, appName)
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return docstore.NewFileStore(dir)
}

// newCacheBackend opens the cache backend from the configuration. Caching is
// never load-bearing, so resolution failures degrade to a null cache.
func (c *CLI) newCacheBackend(ctx context.Context) cache.Cache {
	switch c.cfg.Autosave.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		rc := c.cfg.Autosave.Redis
		rdb, err := cache.NewRedisCache(ctx, rc.Addr, rc.Password, rc.DB)
		if err != nil {
			c.Logger.Warn("redis cache unavailable", "addr", rc.Addr, "err", err)
			return cache.NewNullCache()
		}
		return rdb
	default:
		dir, err := c.cfg.Autosave.CacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable", "dir", dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// newAutosaveCache scopes the backend for document autosave snapshots.
func (c *CLI) newAutosaveCache(ctx context.Context) cache.Cache {
	return cache.NewScoped(c.newCacheBackend(ctx), "autosave")
}

// newRenderCache scopes the backend for serve-mode snapshot renders.
func (c *CLI) newRenderCache(ctx context.Context) cache.Cache {
	return cache.NewScoped(c.newCacheBackend(ctx), "render")
}

// documentName resolves the document a command operates on: the positional
// argument when given, the configured default otherwise.
func (c *CLI) documentName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.cfg.Document
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the document directory using XDG standard (~/.local/share/pinboard/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
