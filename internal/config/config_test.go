package config_test

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-dynmap/internal/config"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/go-cmp/cmp"
)

func newFlagSet(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("i", "", "")
	fs.Int("z", 0, "")
	fs.Int("s", config.DefaultTileSize, "")
	fs.String("o", "", "")
	fs.Int("j", 1, "")
	fs.Bool("v", false, "")
	fs.String("c", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	got, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := config.Config{
		TileSize:  config.DefaultTileSize,
		Extension: tile.DefaultExtension,
		Workers:   1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "dynmap.yaml")
	content := "source: /from/file\nzoom: 1\ntile_size: 64\noutput: /out/file\nworkers: 2\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv("DYNMAP_ZOOM", "2")
	t.Setenv("DYNMAP_OUTPUT", "/out/env")
	t.Setenv("DYNMAP_WORKERS", "3")

	// Unset flags keep lower layers, even with non-default values in the FlagSet.
	fs := newFlagSet(t, "-z", "4", "-v", "-c", "1,2")

	got, err := config.Load(configFile, fs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := config.Config{
		Source:    "/from/file",
		Zoom:      4,
		TileSize:  64,
		Extension: tile.DefaultExtension,
		Output:    "/out/env",
		Workers:   3,
		Verbose:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Errorf("Load succeeded for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := config.Config{Source: "/src", Zoom: 3, TileSize: 128, Workers: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate(%+v) = %v", valid, err)
	}

	for _, tc := range []struct {
		name   string
		modify func(*config.Config)
		want   error
	}{
		{"no source", func(c *config.Config) { c.Source = "" }, config.ErrNoSource},
		{"zoom too high", func(c *config.Config) { c.Zoom = 6 }, tile.ErrInvalidZoom},
		{"zoom negative", func(c *config.Config) { c.Zoom = -1 }, tile.ErrInvalidZoom},
		{"tile size", func(c *config.Config) { c.TileSize = 0 }, config.ErrInvalidTileSize},
		{"workers", func(c *config.Config) { c.Workers = 0 }, config.ErrInvalidWorkers},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.modify(&c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
