package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"img2base/internal/ingest"
	"img2base/internal/payload"
	"img2base/internal/session"
	"img2base/internal/worker"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var asImage bool
	var copyFlag bool
	var stats bool

	cmd := &cobra.Command{
		Use:   "encode [path...]",
		Short: "Encode a file (or an image with --image) as a Markdown data embed",
		Long: `Encode the first given path as ![](data:image/png;base64,...).

Files are embedded byte for byte. With --image the path is decoded as a picture
and re-encoded as JPEG first, the way a pasted screenshot is handled; "-" reads
the picture from stdin. Additional paths are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			queue, logger, err := ctx.newQueue()
			if err != nil {
				return err
			}
			if len(args) > 1 {
				logger.Debug("ignoring extra paths", "ignored", args[1:])
			}

			errOut := cmd.ErrOrStderr()
			colorize := ctx.colorize(errOut)
			// The status line reports failures; main stays quiet for reportedError.
			notifier := &terminalNotifier{out: io.Discard}
			printer := &viewPrinter{out: cmd.OutOrStdout(), status: errOut, colorize: colorize}

			if err := queue.Start(cmd.Context()); err != nil {
				return err
			}
			sess := session.New(queue, session.Options{
				Notifier: notifier,
				Render:   printer.Render,
				AutoCopy: copyFlag || cfg.Output.CopyToClipboard,
				Logger:   logger,
			})

			if transfer, err := encodeTransfer(cmd, args, asImage); err != nil {
				sess.Handle(session.DropFailed{Err: err})
			} else {
				sess.Handle(session.Drop{Transfer: transfer})
			}
			queue.Close()
			var results []worker.Result
			for res := range queue.Results() {
				sess.Deliver(res)
				results = append(results, res)
			}

			if stats && len(results) > 0 {
				fmt.Fprintln(errOut, renderStatsTable(results))
			}
			if err := notifier.Err(); err != nil {
				return reportedError{err: err}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asImage, "image", false, "Treat the input as a picture and re-encode it as JPEG")
	cmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the embed to the system clipboard")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print a summary table of the job")
	return cmd
}

func encodeTransfer(cmd *cobra.Command, args []string, asImage bool) (payload.Transfer, error) {
	if !asImage || len(args) == 0 {
		return payload.Files(args...), nil
	}
	var raster payload.RasterImage
	var err error
	if args[0] == "-" {
		raster, err = ingest.DecodeRaster(cmd.InOrStdin(), "")
	} else {
		raster, err = ingest.LoadRaster(args[0])
	}
	if err != nil {
		return payload.Transfer{}, err
	}
	return payload.Image(raster.Image, raster.Origin), nil
}
