package ingest_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"img2base/internal/ingest"
	"img2base/internal/services"
)

func writeImage(t *testing.T, name string, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	img.Set(2, 2, color.NRGBA{G: 200, A: 255})
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadRasterDecodesKnownFormats(t *testing.T) {
	paths := map[string]string{
		"png": writeImage(t, "a.png", func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) }),
		"bmp": writeImage(t, "a.bmp", func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) }),
	}
	for format, path := range paths {
		raster, err := ingest.LoadRaster(path)
		if err != nil {
			t.Fatalf("%s: LoadRaster returned error: %v", format, err)
		}
		if raster.Image.Bounds().Dx() != 6 || raster.Image.Bounds().Dy() != 4 {
			t.Fatalf("%s: unexpected bounds %v", format, raster.Image.Bounds())
		}
		if raster.Origin != path {
			t.Fatalf("%s: expected origin %q, got %q", format, path, raster.Origin)
		}
	}
}

func TestLoadRasterErrors(t *testing.T) {
	if _, err := ingest.LoadRaster(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ingest.LoadRaster(garbage); !errors.Is(err, services.ErrCodec) {
		t.Fatalf("expected ErrCodec, got %v", err)
	}
}

func TestDecodeRasterNamesFormatWhenOriginUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	raster, err := ingest.DecodeRaster(&buf, "")
	if err != nil {
		t.Fatalf("DecodeRaster returned error: %v", err)
	}
	if raster.Origin != "png image" {
		t.Fatalf("unexpected origin %q", raster.Origin)
	}
}
