package ingest

import (
	"context"
	"time"

	"github.com/sig-0/mxnrates/types"
)

// Provider is a single daily bank quotes provider
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// URL returns the page location for the given date
	URL(time.Time) string

	// FetchDay fetches the bank quotes published for the given date
	FetchDay(context.Context, time.Time) ([]*types.BankRecord, error)
}
