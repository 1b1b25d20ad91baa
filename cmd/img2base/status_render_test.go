package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"img2base/internal/payload"
	"img2base/internal/services"
	"img2base/internal/session"
	"img2base/internal/status"
	"img2base/internal/worker"
)

func TestRenderStatusLine(t *testing.T) {
	if got := renderStatusLine("12:00:00: Clear text", statusInfo, false); got != "12:00:00: Clear text" {
		t.Fatalf("unexpected plain line %q", got)
	}
	got := renderStatusLine("12:00:00: Encoding succeeded", statusOK, true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := map[string]statusKind{
		"Error: io error":              statusError,
		"10:00:00: File list is empty": statusError,
		"10:00:00: Encoding succeeded": statusOK,
		"10:00:00: Copy to clipboard":  statusOK,
		"10:00:00: Clear text":         statusInfo,
	}
	for line, want := range tests {
		if got := classifyStatus(line); got != want {
			t.Fatalf("classifyStatus(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestTerminalNotifierRemembersFirstError(t *testing.T) {
	var buf bytes.Buffer
	n := &terminalNotifier{out: &buf}
	n.Notify(nil)
	n.Notify(services.Wrap(services.ErrCodec, "ingest", "encode jpeg", "zero", nil))
	n.Notify(errors.New("second"))
	if !errors.Is(n.Err(), services.ErrCodec) {
		t.Fatalf("expected first error to be kept, got %v", n.Err())
	}
	requireContains(t, buf.String(), "[ERROR codec]")
	requireContains(t, buf.String(), "[ERROR] second")
}

func TestViewPrinterSkipsUnchangedText(t *testing.T) {
	var out, status bytes.Buffer
	p := &viewPrinter{out: &out, status: &status}
	p.Render(session.View{Text: "![](x)", Status: "a"})
	p.Render(session.View{Text: "![](x)", Status: "b"})
	if strings.Count(out.String(), "![](x)") != 1 {
		t.Fatalf("expected embed once, got %q", out.String())
	}
	if status.String() != "a\nb\n" {
		t.Fatalf("unexpected status output %q", status.String())
	}

	out.Reset()
	p.Show(session.View{})
	requireContains(t, out.String(), "(display is empty)")
}

func TestRenderStatsTable(t *testing.T) {
	table := renderStatsTable([]worker.Result{
		{
			Job:      worker.Job{ID: "0123456789abcdef", Kind: payload.KindFile, Source: "/tmp/big.bin"},
			Markdown: strings.Repeat("x", 1400),
			Bytes:    1024,
			Elapsed:  1500 * time.Microsecond,
		},
		{
			Job: worker.Job{ID: "short", Kind: payload.KindImage, Source: "image 0x0"},
			Err: errors.New("codec error"),
		},
	})
	for _, fragment := range []string{"01234567", "1,024", "1,400", "1.5ms", "failed", "short"} {
		requireContains(t, table, fragment)
	}
	if strings.Contains(table, "0123456789abcdef") {
		t.Fatal("expected job id to be shortened")
	}
}

func TestViewPrinterRepeatsEmbedForEachDelivery(t *testing.T) {
	var out bytes.Buffer
	p := &viewPrinter{out: &out, status: io.Discard}
	delivered := session.View{Text: "![](x)", Status: "09:30:15: " + status.EncodingSucceeded}

	p.Render(delivered)
	p.Render(session.View{Text: "![](x)", Status: "09:30:16: " + status.CopiedToClipboard})
	p.Render(delivered)

	if n := strings.Count(out.String(), "![](x)"); n != 2 {
		t.Fatalf("expected embed for both deliveries only, got %d in %q", n, out.String())
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, reportedError{err: services.ErrIO})
	reportError(&buf, context.Canceled)
	if buf.Len() != 0 {
		t.Fatalf("expected reported and cancelled errors to be silent, got %q", buf.String())
	}
	reportError(&buf, errors.New("load config: boom"))
	if buf.String() != "load config: boom\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
