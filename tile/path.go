package tile

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/eak1mov/go-dynmap/coords"
)

var (
	chunkRegexp = regexp.MustCompile(`^(-?\d+)_(-?\d+)$`)
	tileRegexp  = regexp.MustCompile(`^(?:(z+)_)?(-?\d+)_(-?\d+)\.([[:alnum:]]+)$`)
)

func parsePair(x, y string) (coords.Coords[int], error) {
	cx, err := strconv.Atoi(x)
	if err != nil {
		return coords.Coords[int]{}, err
	}
	cy, err := strconv.Atoi(y)
	if err != nil {
		return coords.Coords[int]{}, err
	}
	return coords.New(cx, cy), nil
}

// ParseChunkPath parses a chunk directory name such as "3_-2".
func ParseChunkPath(name string) (coords.Coords[int], error) {
	matches := chunkRegexp.FindStringSubmatch(name)
	if matches == nil {
		return coords.Coords[int]{}, fmt.Errorf("%w: %q is not a chunk name", ErrInvalidPath, name)
	}
	c, err := parsePair(matches[1], matches[2])
	if err != nil {
		return coords.Coords[int]{}, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return c, nil
}

// ParsePath is the inverse of Tile.Path. It takes a slash-separated path of
// the form "{chunk}/{file}" and returns the tile and the file extension.
func ParsePath(p string) (Tile, string, error) {
	dir, file := path.Split(p)
	c, err := ParseChunkPath(strings.TrimSuffix(dir, "/"))
	if err != nil {
		return Tile{}, "", err
	}

	matches := tileRegexp.FindStringSubmatch(file)
	if matches == nil {
		return Tile{}, "", fmt.Errorf("%w: %q is not a tile name", ErrInvalidPath, file)
	}
	zoom := len(matches[1])
	if err := checkZoom(zoom); err != nil {
		return Tile{}, "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	abs, err := parsePair(matches[2], matches[3])
	if err != nil {
		return Tile{}, "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	offset := abs.Sub(c.Scale(TilesPerChunk))
	step := 1 << zoom
	if offset.X%step != 0 || offset.Y%step != 0 {
		return Tile{}, "", fmt.Errorf("%w: %q is not aligned to zoom %d", ErrInvalidPath, file, zoom)
	}

	t, err := NewTile(c, offset.DivScalar(step), zoom)
	if err != nil {
		return Tile{}, "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return t, matches[4], nil
}
