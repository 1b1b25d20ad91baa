package payload

import (
	"fmt"
	"image"
	"strings"

	"img2base/internal/services"
)

// Kind labels the payload variant for logs and tables.
type Kind string

const (
	KindFile  Kind = "file"
	KindImage Kind = "image"
)

// Payload is a dropped item: either a FilePath or a RasterImage. The set of
// variants is closed; callers switch on the concrete type.
type Payload interface {
	Kind() Kind
	Describe() string
	payload()
}

// FilePath is a filesystem path whose raw bytes are embedded unchanged.
type FilePath struct {
	Path string
}

func (FilePath) Kind() Kind { return KindFile }

func (f FilePath) Describe() string { return f.Path }

func (FilePath) payload() {}

// RasterImage is an in-memory image that is re-encoded before embedding.
type RasterImage struct {
	Image image.Image
	// Origin names where the image came from, if known.
	Origin string
}

func (RasterImage) Kind() Kind { return KindImage }

func (r RasterImage) Describe() string {
	if origin := strings.TrimSpace(r.Origin); origin != "" {
		return origin
	}
	if r.Image == nil {
		return "image"
	}
	b := r.Image.Bounds()
	return fmt.Sprintf("image %dx%d", b.Dx(), b.Dy())
}

func (RasterImage) payload() {}

// Flavor is the data format a transfer advertises.
type Flavor string

const (
	FlavorFileList Flavor = "file-list"
	FlavorImage    Flavor = "image"
	FlavorText     Flavor = "text"
)

// Transfer is a drag-and-drop transfer as handed over by the front end.
type Transfer struct {
	Flavors []Flavor
	Files   []string
	Image   image.Image
	Origin  string
}

// Files builds a file-list transfer.
func Files(paths ...string) Transfer {
	return Transfer{Flavors: []Flavor{FlavorFileList}, Files: paths}
}

// Image builds an image transfer.
func Image(img image.Image, origin string) Transfer {
	return Transfer{Flavors: []Flavor{FlavorImage}, Image: img, Origin: origin}
}

// Has reports whether the transfer advertises flavor.
func (t Transfer) Has(flavor Flavor) bool {
	for _, f := range t.Flavors {
		if f == flavor {
			return true
		}
	}
	return false
}

// CanImport reports whether a transfer with the given flavors would be accepted.
func CanImport(flavors ...Flavor) bool {
	for _, f := range flavors {
		if f == FlavorFileList || f == FlavorImage {
			return true
		}
	}
	return false
}

// FromTransfer selects the payload carried by t. A file list wins over an image
// when both are offered; only the first file of a list is used.
func FromTransfer(t Transfer) (Payload, error) {
	switch {
	case t.Has(FlavorFileList):
		if len(t.Files) == 0 {
			return nil, services.ErrEmptyInput
		}
		return FilePath{Path: t.Files[0]}, nil
	case t.Has(FlavorImage):
		if t.Image == nil {
			return nil, services.Wrap(services.ErrUnsupportedFlavor, "payload", "classify", "image flavor without image data", nil)
		}
		return RasterImage{Image: t.Image, Origin: t.Origin}, nil
	default:
		return nil, services.Wrap(services.ErrUnsupportedFlavor, "payload", "classify", describeFlavors(t.Flavors), nil)
	}
}

func describeFlavors(flavors []Flavor) string {
	if len(flavors) == 0 {
		return "no flavors offered"
	}
	names := make([]string, 0, len(flavors))
	for _, f := range flavors {
		names = append(names, string(f))
	}
	return "offered " + strings.Join(names, ", ")
}
