package backfill

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sig-0/mxnrates/config"
	"github.com/sig-0/mxnrates/ingest"
	"github.com/sig-0/mxnrates/provider/eldolar"
	"github.com/sig-0/mxnrates/series"
)

// Build runs the backfill over the configured range and assembles
// the category tables from the successful days
func Build(
	ctx context.Context,
	cfg *config.Backfill,
	logger *slog.Logger,
) (*series.Set, *ingest.Report, error) {
	start, end, err := cfg.Range(ingest.Today())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date range, %w", err)
	}

	provider := eldolar.NewProvider(cfg.BaseURL, cfg.TimeoutDuration())

	runner, err := ingest.New(
		provider,
		ingest.WithLogger(logger),
		ingest.WithSkipFailures(cfg.SkipFailures),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create runner, %w", err)
	}

	logger.Info(
		"starting backfill",
		"provider", provider.Name(),
		"from", start.Format(time.DateOnly),
		"to", end.Format(time.DateOnly),
		"skip_failures", cfg.SkipFailures,
	)

	report, err := runner.Run(ctx, ingest.Days(start, end))
	if err != nil {
		return nil, report, fmt.Errorf("backfill aborted, %w", err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		logger.Warn(
			"assembling tables without failed days",
			"run_id", report.RunID.String(),
			"failed", len(failed),
			"first_failed", failed[0].Date.Format(time.DateOnly),
		)
	}

	tables, err := series.Assemble(report.Splits())
	if err != nil {
		return nil, report, fmt.Errorf("unable to assemble tables, %w", err)
	}

	return tables, report, nil
}

// WriteTables writes every category table to <dir>/<category>.csv
func WriteTables(tables *series.Set, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	paths := make([]string, 0, 3)

	for _, table := range []*series.Table{tables.Compra, tables.Venta, tables.Otro} {
		path := filepath.Join(dir, table.Category().String()+".csv")

		if err := writeTable(table, path); err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func writeTable(table *series.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}

	if err = table.WriteCSV(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("unable to write %s: %w", path, err)
	}

	return f.Close()
}
