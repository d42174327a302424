// Package chunkdb stores assembled chunk images in a single SQLite file.
//
// The layout follows MBTiles: a "metadata" table of name/value pairs and a
// "chunks" table keyed by zoom level and chunk coordinates.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package chunkdb

import (
	"bytes"
	"database/sql"
	"errors"
	"image"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/tile"
)

// Writer implements tile.ChunkWriter interface for a chunk archive.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	format imaging.Format
	logger *slog.Logger
}

type writerConfig struct {
	Metadata  map[string]string
	Extension string
	Logger    *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithExtension selects the encoding of stored images (default "png").
func WithExtension(ext string) WriterOption {
	return func(c *writerConfig) { c.Extension = ext }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for a new archive at filePath.
// The "format" metadata entry records the image encoding.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Extension: tile.DefaultExtension,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	ext := strings.ToLower(strings.TrimPrefix(config.Extension, "."))
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE chunks (
			zoom_level INTEGER,
			chunk_x INTEGER,
			chunk_y INTEGER,
			image_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{"format": ext}
	for k, v := range config.Metadata {
		metadata[k] = v
	}
	for k, v := range metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO chunks (zoom_level, chunk_x, chunk_y, image_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db, stmt, format, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

func (w *Writer) WriteChunk(chunk tile.Chunk, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, w.format, imaging.JPEGQuality(95)); err != nil {
		return err
	}
	w.logger.Debug("dynmap: store chunk", "chunk", chunk.Coords, "zoom", chunk.Zoom, "bytes", buf.Len())

	_, err := w.stmt.Exec(chunk.Zoom, chunk.Coords.X, chunk.Coords.Y, buf.Bytes())
	return err
}

func (w *Writer) Finalize() error {
	w.logger.Debug("dynmap: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX chunk_index ON chunks (zoom_level, chunk_x, chunk_y)")
	return err
}
