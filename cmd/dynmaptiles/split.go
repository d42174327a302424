package main

import (
	"cmp"
	"context"
	"flag"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/dynmap"
	"github.com/eak1mov/go-dynmap/internal/config"
	"github.com/eak1mov/go-dynmap/stitch"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/subcommands"
)

type splitCmd struct {
	configFile string
	chunk      string
}

func (c *splitCmd) Name() string     { return "split" }
func (c *splitCmd) Synopsis() string { return "cut a chunk image back into dynmap tiles" }
func (c *splitCmd) Usage() string {
	return "dynmaptiles split -i <image> -c <x,y> -o <dir> [-z <zoom> -s <size> -ext <ext>]\n"
}
func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Config file path")
	f.String("i", "", "Chunk image path")
	f.StringVar(&c.chunk, "c", "", "Chunk \"x,y\" of the image")
	f.Int("z", 0, "Zoom level (0-5)")
	f.Int("s", config.DefaultTileSize, "Tile size in pixels")
	f.String("ext", tile.DefaultExtension, "Tile file extension")
	f.String("o", "", "Tiles root directory (default current directory)")
	f.Bool("v", false, "Verbose logging")
}

func (c *splitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(c.configFile, f)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		return subcommands.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		return subcommands.ExitUsageError
	}
	logger := newLogger(cfg.Verbose)

	cc, err := parseChunk(c.chunk)
	if err != nil {
		logger.Error("invalid chunk", "err", err)
		return subcommands.ExitUsageError
	}
	chunk := tile.MustChunk(cc, cfg.Zoom)

	ext := imageExtension(cfg.Extension)
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		logger.Error("invalid tile extension", "ext", ext, "err", err)
		return subcommands.ExitUsageError
	}

	img, err := imaging.Open(cfg.Source)
	if err != nil {
		logger.Error("failed to open image", "err", err)
		return subcommands.ExitFailure
	}

	writer, err := dynmap.NewWriter(cmp.Or(cfg.Output, "."), dynmap.WithExtension(ext), dynmap.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create output", "err", err)
		return subcommands.ExitFailure
	}

	if err := stitch.Split(ctx, img, chunk, cfg.TileSize, writer, format); err != nil {
		logger.Error("failed to split image", "err", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
