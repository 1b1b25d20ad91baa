package status_test

import (
	"errors"
	"testing"
	"time"

	"img2base/internal/status"
)

func TestLine(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 3, 999, time.UTC)
	if got := status.Line(now, status.EncodingSucceeded); got != "07:05:03: Encoding succeeded" {
		t.Fatalf("unexpected line %q", got)
	}
	afternoon := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	if got := status.Line(afternoon, status.ClearedText); got != "23:59:00: Clear text" {
		t.Fatalf("expected 24 hour clock, got %q", got)
	}
}

func TestErrorLine(t *testing.T) {
	if got := status.ErrorLine(errors.New("codec error: boom")); got != "Error: codec error: boom" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := status.ErrorLine(nil); got != "Error: unknown error" {
		t.Fatalf("unexpected nil line %q", got)
	}
}
