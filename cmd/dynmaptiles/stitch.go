package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/eak1mov/go-dynmap/chunkdb"
	"github.com/eak1mov/go-dynmap/chunkdir"
	"github.com/eak1mov/go-dynmap/dynmap"
	"github.com/eak1mov/go-dynmap/internal/config"
	"github.com/eak1mov/go-dynmap/stitch"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	xdraw "golang.org/x/image/draw"
)

type stitchCmd struct {
	configFile string
	sink       string
	resample   bool
	chunks     chunkList
}

func (c *stitchCmd) Name() string     { return "stitch" }
func (c *stitchCmd) Synopsis() string { return "assemble chunk images from dynmap tiles" }
func (c *stitchCmd) Usage() string {
	return "dynmaptiles stitch -i <dir> [-z <zoom> -s <size> -o <path> -c <x,y>...]\n"
}
func (c *stitchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Config file path")
	f.String("i", "", "Tiles root directory")
	f.Int("z", 0, "Zoom level (0-5)")
	f.Int("s", config.DefaultTileSize, "Tile size in pixels")
	f.String("ext", tile.DefaultExtension, "Tile file extension")
	f.String("o", "", "Output directory or archive path (default current directory)")
	f.String("of", "", "Output image format (png, jpg)")
	f.StringVar(&c.sink, "ot", "", "Output type (chunkdir, chunkdb)")
	f.Int("j", 1, "Number of tiles decoded concurrently")
	f.Bool("v", false, "Verbose logging")
	f.BoolVar(&c.resample, "resample", false, "Resample tiles that do not match the tile size")
	f.Var(&c.chunks, "c", "Chunk \"x,y\" to assemble, repeatable (default all chunks with tiles at the zoom level)")
}

func newChunkWriter(cfg config.Config, sink string, logger *slog.Logger) (tile.ChunkWriter, error) {
	ext := imageExtension(cfg.OutputFormat)
	switch deduceFormat(sink, cfg.Output) {
	case "chunkdb":
		writer, err := chunkdb.NewWriter(cfg.Output,
			chunkdb.WithExtension(ext),
			chunkdb.WithMetadata(map[string]string{"source": cfg.Source}),
			chunkdb.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		return writer, nil
	case "chunkdir":
		writer, err := chunkdir.NewWriter(cfg.Output, chunkdir.WithExtension(ext), chunkdir.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return writer, nil
	default:
		return nil, fmt.Errorf("invalid output type: %q", sink)
	}
}

func (c *stitchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	reader, err := dynmap.NewReader(cfg.Source, dynmap.WithExtension(cfg.Extension), dynmap.WithLogger(logger))
	if err != nil {
		logger.Error("failed to open tiles", "err", err)
		return subcommands.ExitFailure
	}

	var chunks []tile.Chunk
	if len(c.chunks) == 0 {
		found, err := reader.ChunksAt(cfg.Zoom)
		if err != nil {
			logger.Error("failed to list chunks", "err", err)
			return subcommands.ExitFailure
		}
		for _, cc := range found {
			chunks = append(chunks, tile.MustChunk(cc, cfg.Zoom))
		}
	} else {
		for _, cc := range c.chunks {
			chunks = append(chunks, tile.MustChunk(cc, cfg.Zoom))
		}
	}
	logger.Info("stitching chunks", "count", len(chunks), "zoom", cfg.Zoom)

	writer, err := newChunkWriter(cfg, c.sink, logger)
	if err != nil {
		logger.Error("failed to create output", "err", err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	var bar *progressbar.ProgressBar
	opts := []stitch.Option{
		stitch.WithTileSize(cfg.TileSize),
		stitch.WithWorkers(cfg.Workers),
		stitch.WithLogger(logger),
		stitch.WithProgress(func(done, _ int) { bar.Set(done) }),
	}
	if c.resample {
		opts = append(opts, stitch.WithScaler(xdraw.ApproxBiLinear))
	}
	imager, err := stitch.New(reader, cfg.Zoom, opts...)
	if err != nil {
		logger.Error("invalid options", "err", err)
		return subcommands.ExitUsageError
	}

	for _, chunk := range chunks {
		bar = progressbar.NewOptions(chunk.Len(),
			progressbar.OptionSetDescription(chunk.Path()),
			progressbar.OptionShowCount(),
		)
		err := imager.Save(ctx, chunk.Coords, writer)
		bar.Finish()
		fmt.Println()
		if err != nil {
			logger.Error("failed to save chunk", "chunk", chunk.Path(), "err", err)
			return subcommands.ExitFailure
		}
	}

	if err := writer.Finalize(); err != nil {
		logger.Error("failed to finalize output", "err", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
