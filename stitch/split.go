package stitch

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/tile"
)

// Split cuts img, an assembled image of chunk, back into tiles of tileSize
// pixels and writes them to w encoded in format. Cells that are entirely
// black are skipped, so that Split followed by Assemble reproduces img.
// The image must be chunk.Size()*tileSize pixels square.
func Split(ctx context.Context, img image.Image, chunk tile.Chunk, tileSize int, w tile.Writer, format imaging.Format) error {
	if tileSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTileSize, tileSize)
	}
	want := chunk.Size() * tileSize
	if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
		return fmt.Errorf("%w: image is %dx%d, want %dx%d", ErrInvalidTileSize, b.Dx(), b.Dy(), want, want)
	}

	origin := img.Bounds().Min
	for t := range chunk.Tiles() {
		if err := ctx.Err(); err != nil {
			return err
		}

		r := image.Rectangle{Min: origin.Add(Offset(t, tileSize))}
		r.Max = r.Min.Add(image.Pt(tileSize, tileSize))
		cell := imaging.Crop(img, r)
		if isBlack(cell) {
			continue
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, cell, format); err != nil {
			return err
		}
		if err := w.WriteTile(t, buf.Bytes()); err != nil {
			return err
		}
	}
	return w.Finalize()
}

func isBlack(img *image.NRGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}
