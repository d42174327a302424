package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/dynmap"
	"github.com/eak1mov/go-dynmap/internal/config"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/subcommands"
)

type listCmd struct {
	configFile string
	count      bool
}

func (c *listCmd) Name() string     { return "list" }
func (c *listCmd) Synopsis() string { return "list chunks of a dynmap tiles directory" }
func (c *listCmd) Usage() string {
	return "dynmaptiles list -i <dir> [-z <zoom> -n]\n"
}
func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Config file path")
	f.String("i", "", "Tiles root directory")
	f.Int("z", 0, "Only chunks with tiles at this zoom level (default all chunks)")
	f.String("ext", tile.DefaultExtension, "Tile file extension")
	f.Bool("v", false, "Verbose logging")
	f.BoolVar(&c.count, "n", false, "Print the number of chunks only")
}

func isFlagSet(f *flag.FlagSet, name string) bool {
	found := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(c.configFile, f)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		return subcommands.ExitFailure
	}
	if cfg.Source == "" {
		slog.Error("invalid config", "err", config.ErrNoSource)
		return subcommands.ExitUsageError
	}
	logger := newLogger(cfg.Verbose)

	reader, err := dynmap.NewReader(cfg.Source, dynmap.WithExtension(cfg.Extension), dynmap.WithLogger(logger))
	if err != nil {
		logger.Error("failed to open tiles", "err", err)
		return subcommands.ExitFailure
	}

	var chunks []coords.Coords[int]
	if isFlagSet(f, "z") {
		chunks, err = reader.ChunksAt(cfg.Zoom)
	} else {
		chunks, err = reader.Chunks()
	}
	if err != nil {
		logger.Error("failed to list chunks", "err", err)
		return subcommands.ExitFailure
	}

	if c.count {
		fmt.Println(len(chunks))
		return subcommands.ExitSuccess
	}
	for _, cc := range chunks {
		fmt.Println(tile.Chunk{Coords: cc}.Path())
	}
	return subcommands.ExitSuccess
}
