package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/tile"
)

// deduceFormat picks the chunk sink: "chunkdb" for archive files, "chunkdir" otherwise.
func deduceFormat(format, outputPath string) string {
	if format != "" {
		return format
	}
	for _, suffix := range []string{".db", ".sqlite", ".chunkdb"} {
		if strings.HasSuffix(outputPath, suffix) {
			return "chunkdb"
		}
	}
	return "chunkdir"
}

func imageExtension(ext string) string {
	return cmp.Or(strings.TrimPrefix(ext, "."), tile.DefaultExtension)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// chunkList is a repeatable "x,y" flag.
type chunkList []coords.Coords[int]

func (l *chunkList) String() string {
	parts := make([]string, len(*l))
	for i, c := range *l {
		parts[i] = fmt.Sprintf("%d,%d", c.X, c.Y)
	}
	return strings.Join(parts, " ")
}

func (l *chunkList) Set(value string) error {
	c, err := parseChunk(value)
	if err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

func parseChunk(value string) (coords.Coords[int], error) {
	xs, ys, found := strings.Cut(value, ",")
	if !found {
		return coords.Coords[int]{}, fmt.Errorf("invalid chunk %q, want \"x,y\"", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return coords.Coords[int]{}, fmt.Errorf("invalid chunk %q: %w", value, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return coords.Coords[int]{}, fmt.Errorf("invalid chunk %q: %w", value, err)
	}
	return coords.New(x, y), nil
}
