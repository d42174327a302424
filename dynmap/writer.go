package dynmap

import (
	"os"
	"path/filepath"

	"github.com/eak1mov/go-dynmap/tile"
)

// Writer implements tile.Writer interface for a Dynmap tiles directory.
type Writer struct {
	rootDir string
	config  config
}

// NewWriter creates a new Writer for the given tiles root, creating it if needed.
func NewWriter(rootDir string, opts ...Option) (*Writer, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, err
	}
	return &Writer{rootDir: rootDir, config: newConfig(opts)}, nil
}

func (w *Writer) WriteTile(t tile.Tile, tileData []byte) error {
	filePath := tilePath(w.rootDir, w.config.Extension, t)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	w.config.Logger.Debug("dynmap: write tile", "path", filePath, "bytes", len(tileData))
	return os.WriteFile(filePath, tileData, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
