// Package config loads the command-line tool settings.
//
// Values are layered with spf13/viper: built-in defaults, then an optional
// config file (any format viper understands, chosen by extension), then
// DYNMAP_* environment variables, then flags explicitly set on the command line.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/eak1mov/go-dynmap/tile"
	"github.com/spf13/viper"
)

const (
	DefaultTileSize = 128
	EnvPrefix       = "DYNMAP"
)

var (
	ErrNoSource        = errors.New("dynmap: source directory is not set")
	ErrInvalidTileSize = errors.New("dynmap: invalid tile size")
	ErrInvalidWorkers  = errors.New("dynmap: invalid number of workers")
)

type Config struct {
	Source       string `mapstructure:"source"`
	Zoom         int    `mapstructure:"zoom"`
	TileSize     int    `mapstructure:"tile_size"`
	Extension    string `mapstructure:"extension"`
	Output       string `mapstructure:"output"`
	OutputFormat string `mapstructure:"output_format"`
	Workers      int    `mapstructure:"workers"`
	Verbose      bool   `mapstructure:"verbose"`
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"i":   "source",
	"z":   "zoom",
	"s":   "tile_size",
	"ext": "extension",
	"o":   "output",
	"of":  "output_format",
	"j":   "workers",
	"v":   "verbose",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("source", "")
	v.SetDefault("zoom", 0)
	v.SetDefault("tile_size", DefaultTileSize)
	v.SetDefault("extension", tile.DefaultExtension)
	v.SetDefault("output", "")
	v.SetDefault("output_format", "")
	v.SetDefault("workers", 1)
	v.SetDefault("verbose", false)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads configFile (skipped when empty), the environment and the flags
// of fs that were set explicitly. Flags not listed in FlagKeys are ignored.
// fs may be nil.
func Load(configFile string, fs *flag.FlagSet) (Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", configFile, err)
		}
	}

	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if key, ok := FlagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings needed to assemble chunks.
func (c Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	if c.Zoom < tile.MinZoom || c.Zoom > tile.MaxZoom {
		return fmt.Errorf("%w: %d not in [%d, %d]", tile.ErrInvalidZoom, c.Zoom, tile.MinZoom, tile.MaxZoom)
	}
	if c.TileSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}
