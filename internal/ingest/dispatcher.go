package ingest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"os"

	"img2base/internal/logging"
	"img2base/internal/payload"
	"img2base/internal/services"
)

// DefaultJPEGQuality matches the quality the desktop codec applied when no
// explicit compression setting was given.
const DefaultJPEGQuality = 75

const stageName = "ingest"

// Options configures a Dispatcher.
type Options struct {
	JPEGQuality int
	Logger      *slog.Logger
}

// Dispatcher turns a payload into the byte stream handed to the encoder.
type Dispatcher struct {
	quality int
	logger  *slog.Logger
}

// NewDispatcher constructs a dispatcher. Out of range qualities fall back to DefaultJPEGQuality.
func NewDispatcher(opts Options) *Dispatcher {
	quality := opts.JPEGQuality
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Dispatcher{
		quality: quality,
		logger:  logging.NewComponentLogger(opts.Logger, "ingest"),
	}
}

// Quality returns the JPEG quality used for raster payloads.
func (d *Dispatcher) Quality() int {
	return d.quality
}

// Ingest reads a file payload verbatim or re-encodes a raster payload as JPEG.
func (d *Dispatcher) Ingest(ctx context.Context, p payload.Payload) ([]byte, error) {
	logger := logging.WithContext(ctx, d.logger)
	switch v := p.(type) {
	case payload.FilePath:
		data, err := os.ReadFile(v.Path)
		if err != nil {
			return nil, services.Wrap(services.ErrIO, stageName, "read file", v.Path, err)
		}
		logger.Debug("file read",
			logging.String("path", v.Path),
			logging.Int("bytes", len(data)),
		)
		return data, nil
	case payload.RasterImage:
		data, err := d.encodeRaster(v.Image)
		if err != nil {
			return nil, err
		}
		logger.Debug("image re-encoded",
			logging.String("source", v.Describe()),
			logging.Int("quality", d.quality),
			logging.Int("bytes", len(data)),
		)
		return data, nil
	default:
		return nil, services.Wrap(services.ErrUnsupportedFlavor, stageName, "dispatch", fmt.Sprintf("payload type %T", p), nil)
	}
}

func (d *Dispatcher) encodeRaster(img image.Image) (data []byte, err error) {
	if img == nil {
		return nil, services.Wrap(services.ErrCodec, stageName, "encode jpeg", "image is nil", nil)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, services.Wrap(services.ErrCodec, stageName, "encode jpeg",
			fmt.Sprintf("image has zero dimension %dx%d", bounds.Dx(), bounds.Dy()), nil)
	}

	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = services.Wrap(services.ErrCodec, stageName, "encode jpeg", fmt.Sprint(r), nil)
		}
	}()

	var buf bytes.Buffer
	if encErr := jpeg.Encode(&buf, Normalize(img), &jpeg.Options{Quality: d.quality}); encErr != nil {
		return nil, services.Wrap(services.ErrCodec, stageName, "encode jpeg", "", encErr)
	}
	if buf.Len() == 0 {
		return nil, services.Wrap(services.ErrCodec, stageName, "encode jpeg", "codec produced no data", nil)
	}
	return buf.Bytes(), nil
}

// Normalize returns img unchanged when it is already a concrete pixel buffer the
// JPEG codec handles directly; any other image is drawn into a fresh 32-bit
// NRGBA buffer of the same size.
func Normalize(img image.Image) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.YCbCr, *image.Gray, *image.CMYK:
		return img
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
