package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// reportedError wraps a failure the command already showed on its status line.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	var reported reportedError
	if errors.Is(err, context.Canceled) || errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, err)
}
