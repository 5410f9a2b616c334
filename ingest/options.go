package ingest

import (
	"log/slog"
)

type Option func(r *Runner)

// WithLogger specifies the logger for the runner
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithSkipFailures specifies whether failed days are recorded and skipped.
// Defaults to false, where the first failed day aborts the run
func WithSkipFailures(skip bool) Option {
	return func(r *Runner) {
		r.skipFailures = skip
	}
}
