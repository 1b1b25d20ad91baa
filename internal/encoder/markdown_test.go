package encoder_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"

	"img2base/internal/encoder"
)

func TestMarkdownJPEGHeaderFragment(t *testing.T) {
	got := encoder.Markdown([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	want := "![](data:image/png;base64,/9j/4A==)"
	if got != want {
		t.Fatalf("Markdown() = %q, want %q", got, want)
	}
}

func TestMarkdownIsPrefixEncodingSuffix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for size := 1; size < 300; size += 17 {
		data := make([]byte, size)
		rng.Read(data)
		want := "![](data:image/png;base64," + base64.StdEncoding.EncodeToString(data) + ")"
		if got := encoder.Markdown(data); got != want {
			t.Fatalf("size %d: unexpected embed", size)
		}
	}
}

func TestMarkdownDoesNotWrapLines(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 4096)
	if bytes.ContainsAny([]byte(encoder.Markdown(data)), "\r\n") {
		t.Fatal("expected a single line embed")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for size := 1; size < 200; size += 13 {
		data := make([]byte, size)
		rng.Read(data)
		embed := encoder.Markdown(data)
		decoded, err := encoder.Decode(embed)
		if err != nil {
			t.Fatalf("size %d: Decode returned error: %v", size, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
		if encoder.Markdown(decoded) != embed {
			t.Fatalf("size %d: re-encoding changed the embed", size)
		}
	}
}

func TestDecodeRejectsForeignInput(t *testing.T) {
	for _, input := range []string{"", "hello", "![](data:image/jpeg;base64,AA==)", "![](data:image/png;base64,AA=="} {
		if _, err := encoder.Decode(input); !errors.Is(err, encoder.ErrNotEmbed) {
			t.Fatalf("Decode(%q) error = %v, want ErrNotEmbed", input, err)
		}
	}
	if _, err := encoder.Decode("![](data:image/png;base64,***)"); err == nil {
		t.Fatal("expected base64 error")
	}
}
