package ingest

import (
	"context"
	"time"

	"github.com/sig-0/mxnrates/types"
)

type (
	nameDelegate     func() string
	urlDelegate      func(time.Time) string
	fetchDayDelegate func(context.Context, time.Time) ([]*types.BankRecord, error)
)

type mockProvider struct {
	nameFn     nameDelegate
	urlFn      urlDelegate
	fetchDayFn fetchDayDelegate
}

func (m *mockProvider) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockProvider) URL(date time.Time) string {
	if m.urlFn != nil {
		return m.urlFn(date)
	}

	return ""
}

func (m *mockProvider) FetchDay(ctx context.Context, date time.Time) ([]*types.BankRecord, error) {
	if m.fetchDayFn != nil {
		return m.fetchDayFn(ctx, date)
	}

	return nil, nil
}
