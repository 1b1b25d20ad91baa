// Package status formats the one-line status messages shown beneath the embed.
package status

import (
	"time"
)

// Phrases reported by the session.
const (
	Ready             = "Drop a picture or file to convert it, copy to put the result on the clipboard"
	EncodingSucceeded = "Encoding succeeded"
	FileListEmpty     = "File list is empty"
	CopiedToClipboard = "Copy to clipboard"
	ClearedText       = "Clear text"
)

const timeLayout = "15:04:05"

// Line prefixes phrase with the wall-clock time, e.g. "14:03:59: Encoding succeeded".
func Line(now time.Time, phrase string) string {
	return now.Format(timeLayout) + ": " + phrase
}

// ErrorLine renders a failure. Error lines carry no timestamp.
func ErrorLine(err error) string {
	if err == nil {
		return "Error: unknown error"
	}
	return "Error: " + err.Error()
}
