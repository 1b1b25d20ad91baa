// Package session is the foreground event loop of img2base.
//
// A Session plays the part of the drop window: it validates drops and submits
// them to the worker queue, applies finished jobs to its display buffer and
// status line, and handles the copy and clear actions. Every mutation of the
// view happens on the goroutine running Run, so the package needs no locks.
// Errors are reported through a Notifier and never stop the loop.
package session
