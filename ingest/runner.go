package ingest

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sig-0/mxnrates/series"
)

var errInvalidProvider = errors.New("invalid provider")

// Runner runs a provider over a range of days, one day at a time
type Runner struct {
	provider Provider
	logger   *slog.Logger

	skipFailures bool
}

// New creates a new Runner instance
func New(provider Provider, opts ...Option) (*Runner, error) {
	if provider == nil || provider.Name() == "" {
		return nil, errInvalidProvider
	}

	r := &Runner{
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Apply the options
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run ingests every given day in order [BLOCKING].
// Unless failures are skipped, the first failed day stops the run
// and is returned as a *DayError, alongside the report so far
func (r *Runner) Run(ctx context.Context, days iter.Seq[time.Time]) (*Report, error) {
	report := &Report{
		RunID:   xid.New(),
		Started: time.Now().UTC(),
	}

	logger := r.logger.With(
		"run_id", report.RunID.String(),
		"provider", r.provider.Name(),
	)

	defer func() {
		report.Finished = time.Now().UTC()
	}()

	for day := range days {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.ingestDay(ctx, day)
		report.Results = append(report.Results, result)

		if result.Failed() {
			logger.Error(
				"unable to ingest day",
				"date", day.Format(time.DateOnly),
				"url", result.URL,
				"err", result.Err,
			)

			if !r.skipFailures {
				return report, &DayError{Date: day, Err: result.Err}
			}

			continue
		}

		if duplicates := series.Duplicates(result.Records); len(duplicates) > 0 {
			logger.Warn(
				"duplicate banks on page, keeping last occurrence",
				"date", day.Format(time.DateOnly),
				"banks", duplicates,
			)
		}

		logger.Debug(
			"ingested day",
			"date", day.Format(time.DateOnly),
			"records", len(result.Records),
		)
	}

	logger.Info(
		"backfill complete",
		"days", len(report.Results),
		"failed", len(report.Failed()),
	)

	return report, nil
}

// ingestDay fetches and splits a single day
func (r *Runner) ingestDay(ctx context.Context, day time.Time) *DayResult {
	result := &DayResult{
		Date: day,
		URL:  r.provider.URL(day),
	}

	records, err := r.provider.FetchDay(ctx, day)
	if err != nil {
		result.Err = err

		return result
	}

	result.Records = records
	result.Split = series.Split(records)

	return result
}
