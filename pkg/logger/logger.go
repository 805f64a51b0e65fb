package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	base    *slog.Logger
	logFile *os.File
)

// InitLogger writes logs to stderr and, when filename is not empty, to that file as well.
func InitLogger(filename string, level slog.Level, format string) error {
	var out io.Writer = os.Stderr

	var f *os.File
	if filename != "" {
		var err error
		f, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("failed to open log file '%s': %w", filename, err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	h, err := newHandler(out, level, format)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	base = slog.New(h)
	return nil
}

// SetOutput replaces the logger with one writing to w. Mostly useful in tests.
func SetOutput(w io.Writer, level slog.Level, format string) error {
	h, err := newHandler(w, level, format)
	if err != nil {
		return err
	}
	mu.Lock()
	base = slog.New(h)
	mu.Unlock()
	return nil
}

func newHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", format, FormatText, FormatJSON)
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// L returns the current logger, creating the default stderr text logger on first use.
func L() *slog.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return base
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

