// Package cli implements the boxlayout command-line interface.
//
// The commands read layout documents (TOML, YAML or JSON), run them through
// the cached pipeline and write results or drawings:
//   - layout: compute a layout and write it as JSON
//   - render: draw a document or a saved layout as SVG, PNG, DOT or a tree
//   - watch: re-layout a document whenever it changes on disk
//   - inspect: browse a layout interactively in the terminal
//   - serve: run the HTTP API
//   - cache: manage the local layout cache
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is carried on the command context so long-running loops can reach it.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: timestamps as "15:04:05.00", filtered
// at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pass of a long-running command, such as a watch
// reload, and logs its outcome with the elapsed time attached.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs a finished pass at info level. keyvals are extra fields.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed())...)
}

// failed logs a rejected pass at warn level.
func (p *progress) failed(msg string, err error, keyvals ...any) {
	p.logger.Warn(msg, append(keyvals, "error", err, "elapsed", p.elapsed())...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx so commands and their loops share one logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
