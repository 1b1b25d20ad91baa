package payload_test

import (
	"errors"
	"image"
	"testing"

	"img2base/internal/payload"
	"img2base/internal/services"
)

func TestFromTransferUsesFirstFile(t *testing.T) {
	p, err := payload.FromTransfer(payload.Files("/a.png", "/b.png", "/c.png"))
	if err != nil {
		t.Fatalf("FromTransfer returned error: %v", err)
	}
	file, ok := p.(payload.FilePath)
	if !ok {
		t.Fatalf("expected FilePath, got %T", p)
	}
	if file.Path != "/a.png" {
		t.Fatalf("expected first file, got %q", file.Path)
	}
	if p.Kind() != payload.KindFile {
		t.Fatalf("unexpected kind %q", p.Kind())
	}
}

func TestFromTransferEmptyFileList(t *testing.T) {
	_, err := payload.FromTransfer(payload.Files())
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFromTransferImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	p, err := payload.FromTransfer(payload.Image(img, ""))
	if err != nil {
		t.Fatalf("FromTransfer returned error: %v", err)
	}
	raster, ok := p.(payload.RasterImage)
	if !ok {
		t.Fatalf("expected RasterImage, got %T", p)
	}
	if raster.Image != img {
		t.Fatal("expected the dropped image to be carried through")
	}
	if got := p.Describe(); got != "image 3x2" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestFromTransferPrefersFileList(t *testing.T) {
	transfer := payload.Transfer{
		Flavors: []payload.Flavor{payload.FlavorImage, payload.FlavorFileList},
		Files:   []string{"/x.gif"},
		Image:   image.NewGray(image.Rect(0, 0, 1, 1)),
	}
	p, err := payload.FromTransfer(transfer)
	if err != nil {
		t.Fatalf("FromTransfer returned error: %v", err)
	}
	if p.Kind() != payload.KindFile {
		t.Fatalf("expected file payload, got %q", p.Kind())
	}
}

func TestFromTransferUnsupported(t *testing.T) {
	tests := []payload.Transfer{
		{},
		{Flavors: []payload.Flavor{payload.FlavorText}},
		{Flavors: []payload.Flavor{payload.FlavorImage}},
	}
	for _, transfer := range tests {
		if _, err := payload.FromTransfer(transfer); !errors.Is(err, services.ErrUnsupportedFlavor) {
			t.Fatalf("FromTransfer(%+v) error = %v, want ErrUnsupportedFlavor", transfer, err)
		}
	}
}

func TestCanImport(t *testing.T) {
	if !payload.CanImport(payload.FlavorText, payload.FlavorFileList) {
		t.Fatal("expected file lists to be importable")
	}
	if !payload.CanImport(payload.FlavorImage) {
		t.Fatal("expected images to be importable")
	}
	if payload.CanImport(payload.FlavorText) || payload.CanImport() {
		t.Fatal("expected text-only transfers to be rejected")
	}
}
