// Package internal holds helpers shared by the package tests.
package internal

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/tile"
)

// TileColor returns an opaque color unique to the tile coordinates within a chunk.
func TileColor(t tile.Tile) color.NRGBA {
	return color.NRGBA{
		R: uint8(1 + t.Coords.X*7),
		G: uint8(1 + t.Coords.Y*7),
		B: uint8(0x80 + t.Zoom),
		A: 0xff,
	}
}

// SolidImage returns a size x size image filled with c.
func SolidImage(size int, c color.Color) *image.NRGBA {
	return imaging.New(size, size, c)
}

// EncodeTile returns a PNG encoded size x size tile filled with c.
func EncodeTile(t testing.TB, size int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, SolidImage(size, c), imaging.PNG); err != nil {
		t.Fatalf("imaging.Encode failed: %v", err)
	}
	return buf.Bytes()
}

// WriteChunk writes a solid TileColor tile for every tile of the chunk
// accepted by keep (all tiles when keep is nil).
func WriteChunk(t testing.TB, w tile.Writer, chunk tile.Chunk, size int, keep func(tile.Tile) bool) {
	t.Helper()
	for tl := range chunk.Tiles() {
		if keep != nil && !keep(tl) {
			continue
		}
		if err := w.WriteTile(tl, EncodeTile(t, size, TileColor(tl))); err != nil {
			t.Fatalf("WriteTile(%v) failed: %v", tl, err)
		}
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
}
