// Package ingest implements the ingestion dispatcher.
//
// A FilePath payload is read verbatim; a RasterImage payload is normalized to a
// concrete pixel buffer and re-encoded with the JPEG codec whatever its original
// format was. Failures are tagged with services.ErrIO or services.ErrCodec so the
// session can report them. The package never writes to the filesystem.
//
// LoadRaster and DecodeRaster let terminal front ends turn an image file or a
// stream into the in-memory image a desktop drop would have produced.
package ingest
