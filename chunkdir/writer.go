// Package chunkdir writes assembled chunk images into a directory as
// "{x}_{y}.{ext}" files.
package chunkdir

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/tile"
)

// Writer implements tile.ChunkWriter interface for an output directory.
type Writer struct {
	dir    string
	ext    string
	logger *slog.Logger
}

type writerConfig struct {
	Extension string
	Logger    *slog.Logger
}

type WriterOption func(*writerConfig)

// WithExtension selects the image format by file extension (default "png").
func WithExtension(ext string) WriterOption {
	return func(c *writerConfig) { c.Extension = ext }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for dir, creating the directory if it does
// not exist. An empty dir means the current working directory.
func NewWriter(dir string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Extension: tile.DefaultExtension,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	ext := strings.TrimPrefix(config.Extension, ".")
	if _, err := imaging.FormatFromExtension(ext); err != nil {
		return nil, err
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Writer{dir: dir, ext: ext, logger: config.Logger}, nil
}

// ChunkPath returns the file the image of chunk is written to.
func (w *Writer) ChunkPath(chunk tile.Chunk) string {
	return filepath.Join(w.dir, fmt.Sprintf("%d_%d.%s", chunk.Coords.X, chunk.Coords.Y, w.ext))
}

func (w *Writer) WriteChunk(chunk tile.Chunk, img image.Image) error {
	filePath := w.ChunkPath(chunk)
	w.logger.Debug("dynmap: save chunk", "path", filePath)
	return imaging.Save(img, filePath, imaging.JPEGQuality(95))
}

func (w *Writer) Finalize() error {
	return nil
}
