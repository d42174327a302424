package chunkdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/tile"
)

// Reader reads chunk images back from an archive.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens the archive at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT image_data FROM chunks WHERE zoom_level = ? AND chunk_x = ? AND chunk_y = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadChunk returns the encoded image of chunk.
// If the chunk is not stored, it returns an empty slice with no error.
func (r *Reader) ReadChunk(chunk tile.Chunk) ([]byte, error) {
	var imageData []byte
	if err := r.stmt.QueryRow(chunk.Zoom, chunk.Coords.X, chunk.Coords.Y).Scan(&imageData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make([]byte, 0), nil
		}
		return nil, err
	}
	return imageData, nil
}

// VisitChunks calls visitor for every stored chunk in zoom, y, x order.
func (r *Reader) VisitChunks(visitor func(tile.Chunk, []byte) error) error {
	rows, err := r.db.Query("SELECT zoom_level, chunk_x, chunk_y, image_data FROM chunks ORDER BY zoom_level, chunk_y, chunk_x")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var zoom, x, y int
		var imageData []byte

		if err := rows.Scan(&zoom, &x, &y, &imageData); err != nil {
			return err
		}

		if err := visitor(tile.Chunk{Coords: coords.New(x, y), Zoom: zoom}, imageData); err != nil {
			return err
		}
	}

	return rows.Err()
}
