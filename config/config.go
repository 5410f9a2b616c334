package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/sig-0/mxnrates/provider/eldolar"
)

const (
	DefaultListenAddress = "0.0.0.0:8545"
	DefaultStartDate     = "2014-04-01" // first day published by the source
	DefaultTimeout       = "30s"
	DefaultOutputDir     = "."
)

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrInvalidBaseURL       = errors.New("invalid base URL")
	ErrInvalidDate          = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidDateRange     = errors.New("end date is before start date")
	ErrInvalidTimeout       = errors.New("invalid timeout")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level configuration
type Config struct {
	Backfill Backfill `toml:"backfill"`
	Server   Server   `toml:"server"`
}

// Backfill defines the backfill run configuration
type Backfill struct {
	// The day page base URL, completed by a YYYYMMDD date
	BaseURL string `toml:"base_url"`

	// The first day to fetch, YYYY-MM-DD
	StartDate string `toml:"start_date"`

	// The last day to fetch, YYYY-MM-DD. Empty means today
	EndDate string `toml:"end_date"`

	// The per-page HTTP timeout, as a Go duration (e.g. 30s)
	Timeout string `toml:"timeout"`

	// The directory the CSV tables are written to
	OutputDir string `toml:"output_dir"`

	// Whether failed days are skipped instead of aborting the run
	SkipFailures bool `toml:"skip_failures"`
}

// Server defines the HTTP server configuration
type Server struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backfill: Backfill{
			BaseURL:   eldolar.DefaultBaseURL,
			StartDate: DefaultStartDate,
			Timeout:   DefaultTimeout,
			OutputDir: DefaultOutputDir,
		},
		Server: Server{
			ListenAddress: DefaultListenAddress,
			CORSConfig:    DefaultCORSConfig(),
		},
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if err := ValidateServer(&config.Server); err != nil {
		return err
	}

	return ValidateBackfill(&config.Backfill)
}

// ValidateServer validates the server configuration
func ValidateServer(s *Server) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(s.ListenAddress) {
		return ErrInvalidListenAddress
	}

	return nil
}

// ValidateBackfill validates the backfill configuration
func ValidateBackfill(b *Backfill) error {
	// Validate the base URL
	u, err := url.Parse(b.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	// Validate the timeout
	if timeout, err := time.ParseDuration(b.Timeout); err != nil || timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Validate the date range
	start, err := parseDate(b.StartDate)
	if err != nil {
		return err
	}

	if b.EndDate == "" {
		return nil
	}

	end, err := parseDate(b.EndDate)
	if err != nil {
		return err
	}

	if end.Before(start) {
		return ErrInvalidDateRange
	}

	return nil
}

// Range returns the configured date range, where an empty
// end date resolves to the given today
func (b *Backfill) Range(today time.Time) (time.Time, time.Time, error) {
	start, err := parseDate(b.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end := today

	if b.EndDate != "" {
		if end, err = parseDate(b.EndDate); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}

	return start, end, nil
}

// TimeoutDuration returns the parsed per-page timeout
func (b *Backfill) TimeoutDuration() time.Duration {
	timeout, err := time.ParseDuration(b.Timeout)
	if err != nil {
		return 0
	}

	return timeout
}

// Read reads the configuration from the given path.
// Values missing from the file are set to their defaults
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets every unset value to its default
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Backfill.BaseURL == "" {
		c.Backfill.BaseURL = defaults.Backfill.BaseURL
	}

	if c.Backfill.StartDate == "" {
		c.Backfill.StartDate = defaults.Backfill.StartDate
	}

	if c.Backfill.Timeout == "" {
		c.Backfill.Timeout = defaults.Backfill.Timeout
	}

	if c.Backfill.OutputDir == "" {
		c.Backfill.OutputDir = defaults.Backfill.OutputDir
	}

	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = defaults.Server.ListenAddress
	}

	if c.Server.CORSConfig == nil {
		c.Server.CORSConfig = defaults.Server.CORSConfig
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}

	return t, nil
}
