package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput marks a drop whose file list carried no entries.
	ErrEmptyInput = errors.New("file list is empty")
	// ErrIO marks a file that could not be opened or read.
	ErrIO = errors.New("io error")
	// ErrCodec marks an image that could not be decoded or re-encoded.
	ErrCodec = errors.New("codec error")
	// ErrUnsupportedFlavor marks a drop that is neither a file list nor an image.
	ErrUnsupportedFlavor = errors.New("unsupported flavor")
	// ErrConfiguration marks invalid runtime settings.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short classification label for err, suitable for log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrUnsupportedFlavor):
		return "unsupported_flavor"
	case errors.Is(err, ErrCodec):
		return "codec"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "unknown"
	}
}

// Synchronous reports whether err is raised while validating a drop, before any
// background job exists.
func Synchronous(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrUnsupportedFlavor)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
