// Package logging assembles structured slog loggers used across img2base.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so the worker and ingestion code tag log
// lines with job IDs, stages, and payload kinds. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
