// Package stitch assembles chunk images out of Dynmap tiles.
//
// Every tile of a chunk is loaded through a tile.Reader and pasted into a
// square canvas of chunk.Size()*tileSize pixels. Tile rows are flipped: the
// tile with y = 0 lands in the bottom row of the canvas. Absent or
// undecodable tiles leave their cell black.
package stitch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/dynmap"
	"github.com/eak1mov/go-dynmap/tile"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const DefaultTileSize = 128

var ErrInvalidTileSize = errors.New("dynmap: invalid tile size")

// ProgressFunc is called once per processed tile with the number of tiles
// done so far and the number of tiles in the chunk. Calls are serialized.
type ProgressFunc func(done, total int)

type config struct {
	TileSize int
	Workers  int
	Logger   *slog.Logger
	Progress ProgressFunc
	Scaler   xdraw.Scaler
}

type Option func(*config)

// WithTileSize sets the edge length in pixels of one tile cell (default 128).
func WithTileSize(size int) Option {
	return func(c *config) { c.TileSize = size }
}

// WithWorkers sets how many tiles are loaded and decoded concurrently
// (default 1).
func WithWorkers(n int) Option {
	return func(c *config) { c.Workers = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

func WithProgress(fn ProgressFunc) Option {
	return func(c *config) { c.Progress = fn }
}

// WithScaler resamples tiles whose size differs from the tile size. Without
// a scaler such tiles are pasted as-is and clipped to their cell.
func WithScaler(s xdraw.Scaler) Option {
	return func(c *config) { c.Scaler = s }
}

// Imager assembles chunk images at a fixed zoom level.
type Imager struct {
	reader tile.Reader
	zoom   int
	config config
}

// New creates an Imager reading tiles from reader. It fails with
// tile.ErrInvalidZoom if zoom is outside [tile.MinZoom, tile.MaxZoom].
func New(reader tile.Reader, zoom int, opts ...Option) (*Imager, error) {
	if _, err := tile.NewChunk(coords.Coords[int]{}, zoom); err != nil {
		return nil, err
	}

	c := config{
		TileSize: DefaultTileSize,
		Workers:  1,
		Logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.TileSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, c.TileSize)
	}
	c.Workers = max(c.Workers, 1)

	return &Imager{reader: reader, zoom: zoom, config: c}, nil
}

func (im *Imager) Zoom() int     { return im.zoom }
func (im *Imager) TileSize() int { return im.config.TileSize }

// Offset returns the top-left pixel of the cell of tile t inside the canvas
// of its chunk.
func Offset(t tile.Tile, tileSize int) image.Point {
	size := t.Chunk().Size()
	offset := coords.New(t.Coords.X, size-t.Coords.Y-1).Scale(tileSize)
	return image.Pt(offset.X, offset.Y)
}

// Assemble builds the image of the chunk at c. The returned canvas belongs
// to the caller. Missing tiles are not an error; only a cancelled ctx is.
func (im *Imager) Assemble(ctx context.Context, c coords.Coords[int]) (*image.RGBA, error) {
	chunk, err := tile.NewChunk(c, im.zoom)
	if err != nil {
		return nil, err
	}

	canvasSize := chunk.Size() * im.config.TileSize
	canvas := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	var mu sync.Mutex
	done, total := 0, chunk.Len()
	step := func() {
		if im.config.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		im.config.Progress(done, total)
	}

	im.config.Logger.Debug("dynmap: assemble", "chunk", chunk.Coords, "zoom", chunk.Zoom, "tiles", total)

	if im.config.Workers == 1 {
		for t := range chunk.Tiles() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			im.place(canvas, t)
			step()
		}
		return canvas, nil
	}

	// Cells are disjoint, so workers paste without locking the canvas.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.config.Workers)
	for t := range chunk.Tiles() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			im.place(canvas, t)
			step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return canvas, nil
}

// Save assembles the chunk at c and hands the image to w.
func (im *Imager) Save(ctx context.Context, c coords.Coords[int], w tile.ChunkWriter) error {
	canvas, err := im.Assemble(ctx, c)
	if err != nil {
		return err
	}
	return w.WriteChunk(tile.Chunk{Coords: c, Zoom: im.zoom}, canvas)
}

// loadTile returns the decoded tile image, or false if the tile is absent.
func (im *Imager) loadTile(t tile.Tile) (image.Image, bool) {
	tileData, err := im.reader.ReadTile(t)
	if err != nil {
		im.config.Logger.Warn("dynmap: read failed", "tile", t, "err", err)
		return nil, false
	}
	if len(tileData) == 0 {
		im.config.Logger.Debug("dynmap: missing tile", "tile", t)
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(tileData))
	if err != nil {
		im.config.Logger.Debug("dynmap: decode failed", "tile", t, "err", err)
		return nil, false
	}
	return img, true
}

func (im *Imager) place(canvas *image.RGBA, t tile.Tile) {
	img, ok := im.loadTile(t)
	if !ok {
		return
	}
	size := im.config.TileSize
	r := image.Rectangle{Min: Offset(t, size)}
	r.Max = r.Min.Add(image.Pt(size, size))
	paste(canvas, r, img, im.config.Scaler)
}

// paste overwrites the cell r of dst with the straight RGB values of src
// and makes the pasted pixels opaque. Source alpha is dropped, not blended.
func paste(dst *image.RGBA, r image.Rectangle, src image.Image, scaler xdraw.Scaler) {
	var cell *image.NRGBA
	if sb := src.Bounds(); scaler != nil && sb.Size() != r.Size() {
		cell = image.NewNRGBA(image.Rectangle{Max: r.Size()})
		scaler.Scale(cell, cell.Rect, src, sb, xdraw.Src, nil)
	} else {
		cell = imaging.Clone(src)
	}

	area := cell.Rect.Add(r.Min).Intersect(r).Intersect(dst.Rect)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := dst.PixOffset(area.Min.X, y)
		j := cell.PixOffset(area.Min.X-r.Min.X, y-r.Min.Y)
		for x := area.Min.X; x < area.Max.X; x++ {
			copy(dst.Pix[i:i+3], cell.Pix[j:j+3])
			dst.Pix[i+3] = 0xff
			i += 4
			j += 4
		}
	}
}

// Assemble builds the image of the chunk at c from the Dynmap tiles under
// sourceRoot.
func Assemble(ctx context.Context, sourceRoot string, c coords.Coords[int], zoom, tileSize int) (*image.RGBA, error) {
	reader, err := dynmap.NewReader(sourceRoot)
	if err != nil {
		return nil, err
	}
	im, err := New(reader, zoom, WithTileSize(tileSize))
	if err != nil {
		return nil, err
	}
	return im.Assemble(ctx, c)
}
