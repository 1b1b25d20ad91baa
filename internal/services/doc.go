// Package services defines shared utilities consumed by the ingestion, encoding,
// and session layers.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, stage names, and payload kinds for
//     logging.
//   - Structured error markers plus the Wrap helper so every failure carries
//     the stage that raised it and a classification the session can report.
//
// Use these helpers when wiring new stages so error reporting stays uniform.
package services
