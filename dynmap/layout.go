// Package dynmap provides API for reading and writing tiles in the Dynmap
// directory layout, where every chunk is a directory "{x}_{y}" holding one
// file per tile (see package tile for the file names).
package dynmap

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-dynmap/tile"
)

var ErrInvalidRoot = errors.New("dynmap: invalid tiles root")

type config struct {
	Extension string
	Logger    *slog.Logger
}

type Option func(*config)

// WithExtension sets the tile file extension (default "png").
func WithExtension(ext string) Option {
	return func(c *config) { c.Extension = ext }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

func newConfig(opts []Option) config {
	c := config{
		Extension: tile.DefaultExtension,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Extension == "" {
		c.Extension = tile.DefaultExtension
	}
	return c
}

func tilePath(rootDir, ext string, t tile.Tile) string {
	return filepath.Join(rootDir, filepath.FromSlash(t.Path(ext)))
}

// isDir reports whether the entry is a directory, following symlinks.
func isDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
