package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"img2base/internal/config"
)

// LogFileName is the file created inside paths.log_dir.
const LogFileName = "img2base.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives every record. Defaults to stderr.
	Writer io.Writer
	// Files are opened for append in addition to Writer.
	Files []string
}

// New constructs a slog logger using the provided options. Debug level adds
// the caller to each record.
func New(opts Options) (*slog.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	out, err := openSinks(opts.Writer, opts.Files)
	if err != nil {
		return nil, err
	}

	level := ParseLevel(opts.Level)
	withSource := level <= slog.LevelDebug
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       level,
			AddSource:   withSource,
			ReplaceAttr: replaceJSONAttr,
		})), nil
	}
	return slog.New(newConsoleHandler(out, level, withSource)), nil
}

// NewFromConfig logs to stderr and, when paths.log_dir is set, to LogFileName
// inside it. levelOverride replaces the configured level when non-empty.
func NewFromConfig(cfg *config.Config, levelOverride string) (*slog.Logger, error) {
	opts := Options{Level: strings.TrimSpace(levelOverride), Format: "console"}
	if cfg != nil {
		if opts.Level == "" {
			opts.Level = cfg.Logging.Level
		}
		opts.Format = cfg.Logging.Format
		if cfg.Paths.LogDir != "" {
			opts.Files = []string{filepath.Join(cfg.Paths.LogDir, LogFileName)}
		}
	}
	return New(opts)
}

// ParseLevel maps a level name onto a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openSinks(primary io.Writer, files []string) (io.Writer, error) {
	if primary == nil {
		primary = os.Stderr
	}
	sinks := []io.Writer{primary}
	for _, path := range files {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		sinks = append(sinks, file)
	}
	if len(sinks) == 1 {
		return primary, nil
	}
	return io.MultiWriter(sinks...), nil
}

func replaceJSONAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}
