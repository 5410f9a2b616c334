package backfill

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sig-0/mxnrates/config"
)

// Flags wraps the configuration shared by the pipeline commands
type Flags struct {
	Config *config.Config

	ConfigPath string
	LogLevel   string
}

// NewFlags creates the shared flags, over the default configuration
func NewFlags() *Flags {
	return &Flags{
		Config: config.DefaultConfig(),
	}
}

// RegisterFlags registers the backfill flags with the given flag set
func (f *Flags) RegisterFlags(fs *flag.FlagSet) {
	b := &f.Config.Backfill

	fs.StringVar(
		&f.ConfigPath,
		"config",
		"",
		"the path to the TOML configuration, if any (replaces the flag values)",
	)

	fs.StringVar(
		&f.LogLevel,
		"log-level",
		"info",
		"the log level (debug, info, warn, error)",
	)

	fs.StringVar(
		&b.BaseURL,
		"base-url",
		b.BaseURL,
		"the day page base URL, completed by a YYYYMMDD date",
	)

	fs.StringVar(
		&b.StartDate,
		"start",
		b.StartDate,
		"the first day to fetch (YYYY-MM-DD)",
	)

	fs.StringVar(
		&b.EndDate,
		"end",
		b.EndDate,
		"the last day to fetch (YYYY-MM-DD), defaults to today in Mexico City",
	)

	fs.StringVar(
		&b.Timeout,
		"timeout",
		b.Timeout,
		"the per-page HTTP timeout",
	)

	fs.BoolVar(
		&b.SkipFailures,
		"skip-failures",
		b.SkipFailures,
		"record and skip failed days instead of aborting the run",
	)
}

// Load reads the configuration file, if any, and validates the result
func (f *Flags) Load() error {
	if f.ConfigPath != "" {
		cfg, err := config.Read(f.ConfigPath)
		if err != nil {
			return fmt.Errorf("unable to read config, %w", err)
		}

		f.Config = cfg
	}

	if err := config.ValidateConfig(f.Config); err != nil {
		return fmt.Errorf("invalid configuration, %w", err)
	}

	return nil
}

// Logger creates the command logger, at the configured level
func (f *Flags) Logger() (*slog.Logger, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", f.LogLevel, err)
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})), nil
}
