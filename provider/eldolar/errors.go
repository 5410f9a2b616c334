package eldolar

import (
	"fmt"
	"time"
)

// FetchError is returned when a day page could not be retrieved
type FetchError struct {
	Err        error  // transport error, if any
	URL        string // the requested URL
	StatusCode int    // the received status code, 0 if no response
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to fetch page %s: %s", e.URL, e.Err)
	}

	return fmt.Sprintf("unable to fetch page %s: invalid status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MissingTableError is returned when a fetched page has no table body
type MissingTableError struct {
	Date time.Time
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("no table body found on page for %s", e.Date.Format(time.DateOnly))
}

// MalformedRowError is returned when a table row cannot be decoded
type MalformedRowError struct {
	Date   time.Time
	Reason string
	Row    int // zero-based row index within the table body
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf(
		"malformed row %d on page for %s: %s",
		e.Row,
		e.Date.Format(time.DateOnly),
		e.Reason,
	)
}
