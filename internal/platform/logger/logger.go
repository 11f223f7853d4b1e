package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// SlogLogger adapta *slog.Logger a la interfaz Logger (campos como map).
type SlogLogger struct {
	sl *slog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto os.Stdout.
	Output io.Writer
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var h slog.Handler
	switch opts.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: opts.Level.slog()})
	default:
		// texto con colores para dev
		h = tint.NewHandler(out, &tint.Options{
			Level:      opts.Level.slog(),
			TimeFormat: time.Kitchen,
			NoColor:    out != os.Stdout,
		})
	}

	sl := slog.New(h)
	if app := strings.TrimSpace(opts.App); app != "" {
		sl = sl.With(slog.String("app", app))
	}
	return &SlogLogger{sl: sl}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=ngo-animal-rescue (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return &SlogLogger{sl: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Slog expone el *slog.Logger subyacente (middleware de requests).
func (l *SlogLogger) Slog() *slog.Logger { return l.sl }

func (l *SlogLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &SlogLogger{sl: l.sl.With(argsOf(fields)...)}
}

func (l *SlogLogger) Debug(msg string, fields map[string]any) { l.log(slog.LevelDebug, msg, fields) }
func (l *SlogLogger) Info(msg string, fields map[string]any)  { l.log(slog.LevelInfo, msg, fields) }
func (l *SlogLogger) Warn(msg string, fields map[string]any)  { l.log(slog.LevelWarn, msg, fields) }
func (l *SlogLogger) Error(msg string, fields map[string]any) { l.log(slog.LevelError, msg, fields) }

func (l *SlogLogger) log(lvl slog.Level, msg string, fields map[string]any) {
	l.sl.LogAttrs(context.Background(), lvl, msg, attrsOf(fields)...)
}

func argsOf(fields map[string]any) []any {
	attrs := attrsOf(fields)
	out := make([]any, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	return out
}

// Keys ordenadas para salida estable (útil en tests/logs).
func attrsOf(fields map[string]any) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			attrs = append(attrs, slog.String(k, err.Error()))
			continue
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
