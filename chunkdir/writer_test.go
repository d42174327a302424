package chunkdir_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-dynmap/chunkdir"
	"github.com/eak1mov/go-dynmap/coords"
	"github.com/eak1mov/go-dynmap/internal"
	"github.com/eak1mov/go-dynmap/tile"
	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	writer, err := chunkdir.NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	chunk := tile.MustChunk(coords.New(3, -2), 4)
	img := internal.SolidImage(16, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	if err := writer.WriteChunk(chunk, img); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	filePath := filepath.Join(dir, "3_-2.png")
	if got := writer.ChunkPath(chunk); got != filePath {
		t.Errorf("ChunkPath = %q, want = %q", got, filePath)
	}

	saved, err := imaging.Open(filePath)
	if err != nil {
		t.Fatalf("imaging.Open failed: %v", err)
	}
	if got, want := saved.Bounds(), image.Rect(0, 0, 16, 16); got != want {
		t.Errorf("Bounds() = %v, want = %v", got, want)
	}
	if !cmp.Equal(imaging.Clone(saved).Pix, img.Pix) {
		t.Errorf("saved image differs from written image")
	}
}

func TestWriterJPEG(t *testing.T) {
	dir := t.TempDir()
	writer, err := chunkdir.NewWriter(dir, chunkdir.WithExtension(".jpg"))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	chunk := tile.MustChunk(coords.New(0, 1), 0)
	if err := writer.WriteChunk(chunk, internal.SolidImage(8, color.White)); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "0_1.jpg")); err != nil {
		t.Errorf("chunk file not found: %v", err)
	}
}

func TestWriterErrors(t *testing.T) {
	if _, err := chunkdir.NewWriter(t.TempDir(), chunkdir.WithExtension("xyz")); err == nil {
		t.Errorf("NewWriter(ext=xyz) succeeded")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := chunkdir.NewWriter(filepath.Join(file, "out")); err == nil {
		t.Errorf("NewWriter under a regular file succeeded")
	}
}

func TestWriterDefaultDir(t *testing.T) {
	t.Chdir(t.TempDir())

	writer, err := chunkdir.NewWriter("")
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.WriteChunk(tile.MustChunk(coords.New(-1, -1), 5), internal.SolidImage(4, color.Black)); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}
	if _, err := os.Stat("-1_-1.png"); err != nil {
		t.Errorf("chunk file not found in working directory: %v", err)
	}
}
