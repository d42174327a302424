package dynmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/tile"
)

// Reader implements tile.Reader and tile.Visitor for a Dynmap tiles directory.
type Reader struct {
	rootDir string
	config  config
}

// NewReader creates a new Reader for the given tiles root (e.g. "/srv/dynmap/tiles/world/flat").
func NewReader(rootDir string, opts ...Option) (*Reader, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, rootDir)
	}
	return &Reader{rootDir: rootDir, config: newConfig(opts)}, nil
}

func (r *Reader) Root() string      { return r.rootDir }
func (r *Reader) Extension() string { return r.config.Extension }

func (r *Reader) ReadTile(t tile.Tile) ([]byte, error) {
	tileData, err := os.ReadFile(tilePath(r.rootDir, r.config.Extension, t))
	if errors.Is(err, fs.ErrNotExist) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

// Chunks lists the chunks present under the root: the immediate
// subdirectories named "{x}_{y}". Other entries are ignored.
func (r *Reader) Chunks() ([]coords.Coords[int], error) {
	entries, err := os.ReadDir(r.rootDir)
	if err != nil {
		return nil, err
	}

	chunks := make([]coords.Coords[int], 0, len(entries))
	for _, entry := range entries {
		if !isDir(r.rootDir, entry) {
			continue
		}
		c, err := tile.ParseChunkPath(entry.Name())
		if err != nil {
			r.config.Logger.Debug("dynmap: skip directory", "name", entry.Name())
			continue
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// ChunksAt is like Chunks but keeps only the chunks holding at least one
// tile file for the given zoom level.
func (r *Reader) ChunksAt(zoom int) ([]coords.Coords[int], error) {
	if _, err := tile.NewChunk(coords.Coords[int]{}, zoom); err != nil {
		return nil, err
	}

	chunks, err := r.Chunks()
	if err != nil {
		return nil, err
	}

	result := chunks[:0]
	for _, c := range chunks {
		found := false
		err := r.visitChunk(c, func(t tile.Tile, _ string) error {
			if t.Zoom == zoom {
				found = true
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found {
			result = append(result, c)
		}
	}
	return result, nil
}

// visitChunk calls visitor for every well-formed tile file of the chunk
// with the reader's extension. visitor may return fs.SkipAll to stop early.
func (r *Reader) visitChunk(c coords.Coords[int], visitor func(tile.Tile, string) error) error {
	chunkName := tile.Chunk{Coords: c}.Path()
	chunkDir := filepath.Join(r.rootDir, chunkName)

	entries, err := os.ReadDir(chunkDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		t, ext, err := tile.ParsePath(path.Join(chunkName, entry.Name()))
		if err != nil || ext != r.config.Extension {
			continue
		}
		if err := visitor(t, filepath.Join(chunkDir, entry.Name())); err != nil {
			if err == fs.SkipAll {
				return nil
			}
			return err
		}
	}
	return nil
}

// VisitTiles visits every tile file of every chunk at every zoom level.
// Chunks and files are visited in directory name order.
func (r *Reader) VisitTiles(visitor func(tile.Tile, []byte) error) error {
	chunks, err := r.Chunks()
	if err != nil {
		return err
	}
	for _, c := range chunks {
		err := r.visitChunk(c, func(t tile.Tile, filePath string) error {
			tileData, err := os.ReadFile(filePath)
			if err != nil {
				return err
			}
			return visitor(t, tileData)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
