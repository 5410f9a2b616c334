package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/mxnrates/config"
	"github.com/sig-0/mxnrates/ingest"
	"github.com/sig-0/mxnrates/provider/currencies"
	"github.com/sig-0/mxnrates/series"
	"github.com/sig-0/mxnrates/types"
)

var (
	day1 = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
)

// testTables assembles a two-day set of tables
func testTables(t *testing.T) *series.Set {
	t.Helper()

	set, err := series.Assemble([]series.DailySplit{
		series.Split([]*types.BankRecord{
			{Bank: "BBVA", Date: day1, Values: types.BuySell{Compra: "19.05", Venta: "19.65"}},
			{Bank: "Afirme", Date: day1, Values: types.Single{Otro: "—"}},
		}),
		series.Split([]*types.BankRecord{
			{Bank: "BBVA", Date: day2, Values: types.BuySell{Compra: "19.10", Venta: "19.70"}},
			{Bank: "Banorte", Date: day2, Values: types.BuySell{Compra: "19.00", Venta: "19.75"}},
		}),
	})
	require.NoError(t, err)

	return set
}

// newTestServer creates a server over the test tables
func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()

	s, err := New(testTables(t), opts...)
	require.NoError(t, err)

	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))

	return w
}

func TestServer_New(t *testing.T) {
	t.Parallel()

	t.Run("missing tables", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)

		assert.ErrorIs(t, err, errMissingTables)
	})

	t.Run("invalid listen address", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig().Server
		cfg.ListenAddress = "nowhere"

		_, err := New(testTables(t), WithConfig(&cfg))

		assert.ErrorIs(t, err, config.ErrInvalidListenAddress)
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("openapi", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/openapi.yaml")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/v1/series/{category}")
	})
}

func TestHandlers_Series(t *testing.T) {
	t.Parallel()

	w := get(t, newTestServer(t), "/v1/series")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SeriesResponse

	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, currencies.USD, resp.Base)
	assert.Equal(t, currencies.MXN, resp.Target)
	require.Len(t, resp.Results, 3)

	compra := resp.Results[0]
	assert.Equal(t, types.CategoryCompra, compra.Category)
	assert.Equal(t, 2, compra.Rows)
	assert.Equal(t, []string{"BBVA", "Banorte"}, compra.Banks)
	require.NotNil(t, compra.From)
	assert.True(t, day1.Equal(*compra.From))
	assert.True(t, day2.Equal(*compra.To))

	otro := resp.Results[2]
	assert.Equal(t, 1, otro.Rows)
}

func TestHandlers_Table(t *testing.T) {
	t.Parallel()

	t.Run("invalid category", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/medio")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), errInvalidCategory.Error())
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/compra?format=xlsx")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid numeric flag", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/compra?numeric=maybe")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("json rows", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/venta")
		require.Equal(t, http.StatusOK, w.Code)

		var resp TableResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Equal(t, types.CategoryVenta, resp.Category)
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, map[string]string{"BBVA": "19.65"}, resp.Rows[0].Values)
		assert.Equal(t, map[string]string{"BBVA": "19.70", "Banorte": "19.75"}, resp.Rows[1].Values)
	})

	t.Run("csv", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/COMPRA?format=csv")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(
			t,
			"date,BBVA,Banorte\n2024-03-04,19.05,\n2024-03-05,19.10,19.00\n",
			w.Body.String(),
		)
	})

	t.Run("numeric values", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/series/otro?numeric=true")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Rows []struct {
				Values map[string]*string `json:"values"`
			} `json:"rows"`
		}

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		// The placeholder is reported, but not a number
		require.Len(t, resp.Rows, 1)
		require.Contains(t, resp.Rows[0].Values, "Afirme")
		assert.Nil(t, resp.Rows[0].Values["Afirme"])
	})
}

func TestHandlers_Report(t *testing.T) {
	t.Parallel()

	t.Run("no report", func(t *testing.T) {
		t.Parallel()

		w := get(t, newTestServer(t), "/v1/report")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("failed days", func(t *testing.T) {
		t.Parallel()

		report := &ingest.Report{
			RunID:    xid.New(),
			Started:  day2,
			Finished: day2.Add(time.Minute),
			Results: []*ingest.DayResult{
				{Date: day1, URL: "https://example.com/20240304"},
				{Date: day2, URL: "https://example.com/20240305", Err: errors.New("boom")},
			},
		}

		w := get(t, newTestServer(t, WithReport(report)), "/v1/report")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ReportResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Equal(t, report.RunID.String(), resp.RunID)
		assert.Equal(t, 2, resp.Days)
		require.Len(t, resp.Failed, 1)
		assert.Equal(t, "https://example.com/20240305", resp.Failed[0].URL)
		assert.Equal(t, "boom", resp.Failed[0].Error)
	})
}
