// Package tile implements the Dynmap tile addressing scheme and the common
// tile interfaces.
//
// A chunk is a square of TilesPerChunk x TilesPerChunk base tiles. At zoom
// level z every tile covers 2^z base tiles along each axis, so a chunk holds
// (TilesPerChunk >> z)^2 tiles. Tile files live at
//
//	{chunkX}_{chunkY}/{"z"*z}_{absX}_{absY}.{ext}
//
// where the "z" prefix and its separator are omitted at zoom 0 and
// abs = chunk*TilesPerChunk + tile*2^z.
package tile

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"strings"

	"github.com/eak1mov/go-dynmap/coords"
)

const (
	// TilesPerChunk is the number of base tiles along one axis of a chunk.
	TilesPerChunk = 32

	MinZoom = 0
	MaxZoom = 5

	DefaultExtension = "png"
)

var (
	ErrInvalidZoom = errors.New("dynmap: invalid zoom level")
	ErrInvalidTile = errors.New("dynmap: tile outside of chunk")
	ErrInvalidPath = errors.New("dynmap: invalid tile path")
)

func checkZoom(zoom int) error {
	if zoom < MinZoom || zoom > MaxZoom {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidZoom, zoom, MinZoom, MaxZoom)
	}
	return nil
}

// Chunk is a chunk of the tile grid at a given zoom level.
type Chunk struct {
	Coords coords.Coords[int]
	Zoom   int
}

// NewChunk returns the chunk at c. It fails with ErrInvalidZoom if zoom is
// outside [MinZoom, MaxZoom].
func NewChunk(c coords.Coords[int], zoom int) (Chunk, error) {
	if err := checkZoom(zoom); err != nil {
		return Chunk{}, err
	}
	return Chunk{Coords: c, Zoom: zoom}, nil
}

// MustChunk is like NewChunk but panics on an invalid zoom level.
func MustChunk(c coords.Coords[int], zoom int) Chunk {
	chunk, err := NewChunk(c, zoom)
	if err != nil {
		panic(err)
	}
	return chunk
}

// Size returns the number of tiles along one axis of the chunk.
func (c Chunk) Size() int {
	return TilesPerChunk >> c.Zoom
}

// Len returns the number of tiles in the chunk.
func (c Chunk) Len() int {
	return c.Size() * c.Size()
}

// Path returns the directory name of the chunk, e.g. "3_-2".
func (c Chunk) Path() string {
	return fmt.Sprintf("%d_%d", c.Coords.X, c.Coords.Y)
}

// Tiles returns the tiles of the chunk, row by row with y ascending.
func (c Chunk) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for tc := range coords.Grid(c.Size(), c.Size()) {
			if !yield(Tile{ChunkCoords: c.Coords, Coords: tc, Zoom: c.Zoom}) {
				return
			}
		}
	}
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %v z%d", c.Coords, c.Zoom)
}

// Tile identifies a single tile image inside a chunk.
type Tile struct {
	ChunkCoords coords.Coords[int]
	Coords      coords.Coords[int]
	Zoom        int
}

// NewTile returns the tile at tc inside the chunk at c. Tile coordinates must
// lie in [0, size) on both axes.
func NewTile(c, tc coords.Coords[int], zoom int) (Tile, error) {
	chunk, err := NewChunk(c, zoom)
	if err != nil {
		return Tile{}, err
	}
	size := chunk.Size()
	if tc.X < 0 || tc.Y < 0 || tc.X >= size || tc.Y >= size {
		return Tile{}, fmt.Errorf("%w: %v not in [0, %d)", ErrInvalidTile, tc, size)
	}
	return Tile{ChunkCoords: c, Coords: tc, Zoom: zoom}, nil
}

func (t Tile) Chunk() Chunk {
	return Chunk{Coords: t.ChunkCoords, Zoom: t.Zoom}
}

// Absolute returns the position of the tile in base tile units.
func (t Tile) Absolute() coords.Coords[int] {
	return t.ChunkCoords.Scale(TilesPerChunk).Add(t.Coords.Scale(1 << t.Zoom))
}

// Path returns the slash-separated path of the tile relative to the tiles
// root. An empty ext means DefaultExtension.
func (t Tile) Path(ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	prefix := strings.Repeat("z", t.Zoom)
	if prefix != "" {
		prefix += "_"
	}
	abs := t.Absolute()
	return fmt.Sprintf("%s/%s%d_%d.%s", t.Chunk().Path(), prefix, abs.X, abs.Y, ext)
}

func (t Tile) String() string {
	return t.Path("")
}

// Reader defines an interface for reading source tiles.
type Reader interface {
	// ReadTile reads the image data of a single tile.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(t Tile) ([]byte, error)
}

// Writer defines an interface for writing source tiles.
type Writer interface {
	WriteTile(t Tile, tileData []byte) error

	// Finalize completes the writing process.
	// It must be called before closing the Writer.
	Finalize() error
}

type Visitor interface {
	// VisitTiles visits all tiles present in the tileset, calling the visitor for each.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(Tile, []byte) error) error
}

// ChunkWriter defines an interface for persisting assembled chunk images.
type ChunkWriter interface {
	WriteChunk(chunk Chunk, img image.Image) error

	// Finalize completes the writing process.
	// It must be called before closing the ChunkWriter.
	Finalize() error
}
