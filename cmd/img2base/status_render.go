package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"img2base/internal/services"
	"img2base/internal/session"
	"img2base/internal/status"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

func renderStatusLine(line string, kind statusKind, colorize bool) string {
	if !colorize {
		return line
	}
	if color := statusKindColor(kind); color != "" {
		return color + line + ansiReset
	}
	return line
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func classifyStatus(line string) statusKind {
	switch {
	case strings.HasPrefix(line, "Error: "):
		return statusError
	case hasPhrase(line, status.FileListEmpty):
		return statusError
	case hasPhrase(line, status.EncodingSucceeded), hasPhrase(line, status.CopiedToClipboard):
		return statusOK
	default:
		return statusInfo
	}
}

func hasPhrase(line, phrase string) bool {
	return strings.HasSuffix(line, ": "+phrase)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// terminalNotifier prints the error box a desktop build would show as a dialog
// and remembers the first error so one-shot commands can exit non-zero.
type terminalNotifier struct {
	out      io.Writer
	colorize bool
	first    error
}

func (n *terminalNotifier) Notify(err error) {
	if err == nil {
		return
	}
	if n.first == nil {
		n.first = err
	}
	label := "[ERROR]"
	if kind := services.Kind(err); kind != "" && kind != "unknown" {
		label = fmt.Sprintf("[ERROR %s]", kind)
	}
	fmt.Fprintln(n.out, renderStatusLine(label+" "+err.Error(), statusError, n.colorize))
}

func (n *terminalNotifier) Err() error {
	return n.first
}

// viewPrinter renders session views: the embed to out, the status line to status.
// The embed is printed for every delivery and whenever the text changes, so a
// copy does not repeat it but dropping the same file twice does.
type viewPrinter struct {
	out      io.Writer
	status   io.Writer
	colorize bool
	lastText string
}

func (p *viewPrinter) Render(v session.View) {
	if v.Text != "" && (v.Text != p.lastText || hasPhrase(v.Status, status.EncodingSucceeded)) {
		fmt.Fprintln(p.out, v.Text)
	}
	p.lastText = v.Text
	if v.Status != "" {
		fmt.Fprintln(p.status, renderStatusLine(v.Status, classifyStatus(v.Status), p.colorize))
	}
}

// Show prints the current view unconditionally.
func (p *viewPrinter) Show(v session.View) {
	if v.Text == "" {
		fmt.Fprintln(p.out, "(display is empty)")
	} else {
		fmt.Fprintln(p.out, v.Text)
	}
	if v.Status != "" {
		fmt.Fprintln(p.status, renderStatusLine(v.Status, classifyStatus(v.Status), p.colorize))
	}
}
