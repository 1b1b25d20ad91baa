// Package worker owns the single background goroutine that turns dropped
// payloads into Markdown embeds.
//
// A Queue is an explicitly constructed, process-lifetime object. Submit runs the
// synchronous validation step on the caller's goroutine, so empty file lists and
// unsupported flavors are rejected without ever reaching the worker. Accepted
// jobs run strictly one at a time in FIFO order; their outcomes are delivered on
// Results in the same order, which is how the foreground loop learns about them.
// There is no cancellation and no retry: a started job runs to completion or
// failure.
package worker
