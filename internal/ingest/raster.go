package ingest

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"img2base/internal/payload"
	"img2base/internal/services"
)

// LoadRaster decodes the image stored at path into a raster payload, the same
// thing a desktop image drop would deliver.
func LoadRaster(path string) (payload.RasterImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return payload.RasterImage{}, services.Wrap(services.ErrIO, stageName, "open image", path, err)
	}
	defer file.Close()
	return DecodeRaster(file, path)
}

// DecodeRaster decodes an image from r. Supported formats are PNG, JPEG, GIF,
// BMP, TIFF and WebP.
func DecodeRaster(r io.Reader, origin string) (payload.RasterImage, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return payload.RasterImage{}, services.Wrap(services.ErrCodec, stageName, "decode image", origin, err)
	}
	if origin == "" {
		origin = fmt.Sprintf("%s image", format)
	}
	return payload.RasterImage{Image: img, Origin: origin}, nil
}
