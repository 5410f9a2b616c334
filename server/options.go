package server

import (
	"log/slog"

	"github.com/sig-0/mxnrates/config"
	"github.com/sig-0/mxnrates/ingest"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Server) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithReport specifies the backfill report the tables were built from
func WithReport(r *ingest.Report) Option {
	return func(s *Server) {
		s.report = r
	}
}
