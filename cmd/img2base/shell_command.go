package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"img2base/internal/ingest"
	"img2base/internal/payload"
	"img2base/internal/session"
)

const shellHelp = `Drop a file onto this terminal (or type its path) and press enter.
Commands:
  file <path>...   encode the first file byte for byte
  image <path>     decode a picture and re-encode it as JPEG
  copy             copy the embed to the clipboard
  clear            clear the display
  show             print the current embed and status
  help             show this help
  quit             leave the shell`

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive drop target: each line is a dropped file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if err := cfg.EnsureLockDir(); err != nil {
				return err
			}
			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another img2base shell is already running (lock %s)", cfg.LockPath())
			}
			defer lock.Unlock() //nolint:errcheck

			queue, logger, err := ctx.newQueue()
			if err != nil {
				return err
			}

			runCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if err := queue.Start(runCtx); err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			colorize := ctx.colorize(errOut)
			printer := &viewPrinter{out: out, status: errOut, colorize: colorize}
			sess := session.New(queue, session.Options{
				Notifier: &terminalNotifier{out: errOut, colorize: colorize},
				Render:   printer.Render,
				AutoCopy: cfg.Output.CopyToClipboard,
				Logger:   logger,
			})

			fmt.Fprintln(errOut, shellHelp)
			printer.Show(sess.View())

			events := make(chan session.Event)
			reader := &shellReader{
				in:    cmd.InOrStdin(),
				out:   errOut,
				show:  printer.Show,
				done:  cancel,
				queue: events,
			}
			go reader.run(runCtx)

			err = sess.Run(runCtx, events)
			if errors.Is(err, context.Canceled) && cmd.Context().Err() == nil {
				return nil
			}
			return err
		},
	}
}

// shellReader turns input lines into session events.
type shellReader struct {
	in    io.Reader
	out   io.Writer
	show  func(session.View)
	done  context.CancelFunc
	queue chan<- session.Event
}

func (r *shellReader) run(ctx context.Context) {
	defer close(r.queue)
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		ev, quit := r.parse(scanner.Text())
		if quit {
			r.done()
			return
		}
		if ev == nil {
			continue
		}
		select {
		case r.queue <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// parse maps one input line onto an event. A nil event with quit=false means
// the line was handled locally (or was blank). Lines that cannot be turned into
// a payload become DropFailed so the session reports them like any other drop.
func (r *shellReader) parse(line string) (session.Event, bool) {
	fields, err := splitDropLine(line)
	if err != nil {
		return session.DropFailed{Err: err}, false
	}
	if len(fields) == 0 {
		return nil, false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return nil, true
	case "help", "?":
		fmt.Fprintln(r.out, shellHelp)
		return nil, false
	case "show":
		return session.Inspect{Fn: r.show}, false
	case "copy":
		return session.Copy{}, false
	case "clear":
		return session.Clear{}, false
	case "file", "drop":
		return session.Drop{Transfer: payload.Files(dropPaths(fields[1:])...)}, false
	case "image":
		if len(fields) < 2 {
			return session.Drop{Transfer: payload.Files()}, false
		}
		raster, err := ingest.LoadRaster(dropPath(fields[1]))
		if err != nil {
			return session.DropFailed{Err: err}, false
		}
		return session.Drop{Transfer: payload.Image(raster.Image, raster.Origin)}, false
	default:
		return session.Drop{Transfer: payload.Files(dropPaths(fields)...)}, false
	}
}

func dropPaths(values []string) []string {
	paths := make([]string, 0, len(values))
	for _, v := range values {
		paths = append(paths, dropPath(v))
	}
	return paths
}
