// Package cli implements the framescope command-line interface.
//
// The CLI loads layout passes from frames files, HTTP requests or a Redis
// channel and shows the inspector overlay for them. It is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - inspect: Interactive terminal inspector (mouse taps, keyboard)
//   - spacing: Print the spacings for a selection as a table
//   - render: Write the overlay or hierarchy as SVG, DOT or terminal text
//   - serve: HTTP debug server, optionally fed from Redis
//   - publish: Send a frames file to a Redis channel
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. At debug level the recorder and inspector
// observability hooks log every pass and selection change.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered hierarchy (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks writes recorder and inspector events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnPassCommitted(_ context.Context, pass uint64, source string, nodeCount int) {
	h.logger.Debug("pass committed", "pass", pass, "source", source, "nodes", nodeCount)
}

func (h *logHooks) OnSpacingsComputed(_ context.Context, selected string, count int, d time.Duration) {
	h.logger.Debug("spacings computed", "selected", selected, "count", count, "duration", d)
}

func (h *logHooks) OnSelectionChanged(_ context.Context, from, to string) {
	h.logger.Debug("selection changed", "from", from, "to", to)
}
