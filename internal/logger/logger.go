package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

var sentryEnabled bool

// Init installs the process logger on stdout.
// Development: Text format with Debug level
// Production: JSON format with Info level
// Errors also go to Sentry when sentryDSN is set.
func Init(isDev bool, sentryDSN string) {
	InitWriter(os.Stdout, isDev, sentryDSN)
}

// InitWriter is Init with a custom destination; goalctl logs to stderr.
func InitWriter(w io.Writer, isDev bool, sentryDSN string) {
	handlers := []slog.Handler{consoleHandler(w, isDev)}

	if h := sentryHandler(sentryDSN); h != nil {
		handlers = append(handlers, h)
	}

	handler := handlers[0]
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func consoleHandler(w io.Writer, isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func sentryHandler(dsn string) slog.Handler {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		slog.Warn("sentry disabled", "error", err)
		return nil
	}

	sentryEnabled = true
	return slogsentry.Option{Level: slog.LevelError}.NewSentryHandler()
}

// Flush waits up to timeout for buffered Sentry events to be sent.
func Flush(timeout time.Duration) {
	if sentryEnabled {
		sentry.Flush(timeout)
	}
}
