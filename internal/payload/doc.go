// Package payload models what a user dropped: a file list or an in-memory image.
//
// FromTransfer performs the synchronous part of a drop. It picks the flavor to
// honour, rejects empty file lists and unsupported flavors before any background
// work is queued, and returns a Payload whose concrete type (FilePath or
// RasterImage) drives ingestion.
package payload
