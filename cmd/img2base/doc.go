// Package main hosts the img2base CLI entrypoint and command graph.
//
// The Cobra-based command tree offers a one-shot encode command, an interactive
// shell that acts as a drop target (terminals paste a dragged file's path), and
// configuration scaffolding. Configuration, logging, and worker wiring are
// resolved here once so subcommands only describe user experience; the
// ingestion, encoding, and session logic lives under internal/.
package main
