package eldolar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sig-0/mxnrates/types"
)

const (
	// DefaultBaseURL is the day page base path, completed by a YYYYMMDD date
	DefaultBaseURL = "https://www.eldolar.info/es-MX/mexico/dia/"

	// dateLayout is the URL date format
	dateLayout = "20060102"
)

// Provider is the eldolar.info daily bank quotes scraping provider
type Provider struct {
	client  *http.Client
	baseURL string
}

// NewProvider creates a new instance of the eldolar.info provider
func NewProvider(baseURL string, timeout time.Duration) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

func (p *Provider) Name() string {
	return "eldolar.info"
}

// URL returns the page URL for the given date
func (p *Provider) URL(date time.Time) string {
	return p.baseURL + date.Format(dateLayout)
}

// FetchDay fetches and extracts the bank quotes published for the given date
func (p *Provider) FetchDay(ctx context.Context, date time.Time) ([]*types.BankRecord, error) {
	url := p.URL(date)

	// Prepare the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	// Execute the request
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return Extract(resp.Body, date)
}
