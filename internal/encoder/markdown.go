package encoder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// Prefix opens every embed. The MIME label stays image/png whatever the
	// bytes actually are; see DESIGN.md before changing it.
	Prefix = "![](data:image/png;base64,"
	// Suffix closes every embed.
	Suffix = ")"
)

// ErrNotEmbed is returned by Decode when the input is not an embed produced by Markdown.
var ErrNotEmbed = errors.New("not a markdown data embed")

// Markdown renders data as a Markdown image tag with a base64 data URI.
func Markdown(data []byte) string {
	var b strings.Builder
	b.Grow(len(Prefix) + base64.StdEncoding.EncodedLen(len(data)) + len(Suffix))
	b.WriteString(Prefix)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	b.WriteString(Suffix)
	return b.String()
}

// Decode recovers the bytes embedded by Markdown.
func Decode(embed string) ([]byte, error) {
	embed = strings.TrimSpace(embed)
	if !strings.HasPrefix(embed, Prefix) || !strings.HasSuffix(embed, Suffix) {
		return nil, ErrNotEmbed
	}
	payload := embed[len(Prefix) : len(embed)-len(Suffix)]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return data, nil
}
