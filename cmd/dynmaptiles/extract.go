package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eak1mov/go-dynmap/chunkdb"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type extractCmd struct {
	inputPath  string
	outputPath string
	zoom       int
}

func (c *extractCmd) Name() string     { return "extract" }
func (c *extractCmd) Synopsis() string { return "extract chunk images from a chunk archive" }
func (c *extractCmd) Usage() string {
	return "dynmaptiles extract -i <path> -o <dir> [-z <zoom>]\n"
}
func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input archive path")
	f.StringVar(&c.outputPath, "o", ".", "Output directory")
	f.IntVar(&c.zoom, "z", -1, "Only extract this zoom level (default all)")
}

// extractChunks writes every chunk to dir/{zoom}/{x}_{y}.{ext} and returns
// the number of files written.
func extractChunks(reader *chunkdb.Reader, dir string, zoom int, onChunk func()) (int, error) {
	metadata, err := reader.ReadMetadata()
	if err != nil {
		return 0, err
	}
	ext := imageExtension(metadata["format"])

	count := 0
	err = reader.VisitChunks(func(chunk tile.Chunk, data []byte) error {
		if zoom >= 0 && chunk.Zoom != zoom {
			return nil
		}
		zoomDir := filepath.Join(dir, strconv.Itoa(chunk.Zoom))
		if err := os.MkdirAll(zoomDir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(zoomDir, chunk.Path()+"."+ext), data, 0644); err != nil {
			return err
		}
		count++
		onChunk()
		return nil
	})
	return count, err
}

func (c *extractCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := chunkdb.NewReader(c.inputPath)
	if err != nil {
		slog.Error("failed to open archive", "err", err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	_, err = extractChunks(reader, c.outputPath, c.zoom, func() { bar.Add(1) })
	bar.Finish()
	fmt.Println()

	if err != nil {
		slog.Error("failed to extract chunks", "err", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
