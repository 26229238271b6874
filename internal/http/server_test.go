package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/dashboard"
	"fintrack/internal/events"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/store/fixture"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st := fixture.New()
	bus := events.NewMemoryBus()
	ledgerSvc := ledger.NewService(st, bus)
	dashboardSvc := dashboard.NewService(st, bus, dashboard.Options{
		Now: func() time.Time { return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC) },
	})
	logger := log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})

	srv := NewServer("0", ledgerSvc, dashboardSvc, logger)
	t.Cleanup(func() {
		srv.limiter.stop()
		dashboardSvc.Close()
		ledgerSvc.Close()
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRecordCRUD(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/records", map[string]any{
		"kind":     "expense",
		"title":    "Groceries",
		"amount":   "156.80",
		"category": "Food",
		"method":   "cash",
		"date":     "2026-08-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]string](t, rec)["id"]
	require.NotEmpty(t, id)

	rec = doJSON(t, srv, http.MethodGet, "/api/records/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[recordPayload](t, rec)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "expense", got.Kind)
	assert.Equal(t, "156.8", got.Amount.String())

	rec = doJSON(t, srv, http.MethodPut, "/api/records/"+id, map[string]any{
		"kind":     "expense",
		"title":    "Weekly groceries",
		"amount":   "160.00",
		"category": "Food",
		"method":   "cash",
		"date":     "2026-08-05",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/records?month=2026-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]recordPayload](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Weekly groceries", list[0].Title)

	rec = doJSON(t, srv, http.MethodDelete, "/api/records/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/records/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecordValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "unknown kind",
			body: map[string]any{"kind": "transfer", "title": "x", "amount": "1", "date": "2026-08-05"},
		},
		{
			name: "missing title",
			body: map[string]any{"kind": "expense", "title": " ", "amount": "1", "method": "cash", "date": "2026-08-05"},
		},
		{
			name: "negative amount",
			body: map[string]any{"kind": "income", "title": "x", "amount": "-5", "date": "2026-08-05"},
		},
		{
			name: "method on income",
			body: map[string]any{"kind": "income", "title": "x", "amount": "5", "method": "cash", "date": "2026-08-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/records", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateRecordKindChangeConflicts(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/records", map[string]any{
		"kind": "expense", "title": "Dinner", "amount": "40", "method": "cash", "date": "2026-08-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]string](t, rec)["id"]

	rec = doJSON(t, srv, http.MethodPut, "/api/records/"+id, map[string]any{
		"kind": "income", "title": "Dinner", "amount": "40", "date": "2026-08-10",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEMIRecordWithDetail(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/records", map[string]any{
		"kind":     "emi",
		"title":    "Personal Loan EMI",
		"amount":   "500",
		"category": "Loan",
		"date":     "2026-08-05",
		"detail": map[string]any{
			"lenderName":   "HDFC",
			"loanAmount":   "6000",
			"interestRate": "0",
			"tenureMonths": 12,
			"startDate":    "2026-07-01",
			"dueDay":       5,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]string](t, rec)["id"]

	rec = doJSON(t, srv, http.MethodGet, "/api/records/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[recordPayload](t, rec)
	require.NotEmpty(t, got.Detail)

	var detail map[string]any
	require.NoError(t, json.Unmarshal(got.Detail, &detail))
	assert.Equal(t, "HDFC", detail["lenderName"])

	// The projection shows up on the dashboard for the same month.
	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?month=2026-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[dashboard.Snapshot](t, rec)
	require.Len(t, snap.EMIs, 1)
	assert.Equal(t, "HDFC", snap.EMIs[0].Name)
	assert.Equal(t, 12, snap.EMIs[0].TotalMonths)
}

func TestMalformedDetailRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/records", map[string]any{
		"kind":   "emi",
		"title":  "Loan",
		"amount": "500",
		"date":   "2026-08-05",
		"detail": map[string]any{"lenderName": "", "loanAmount": "0", "tenureMonths": 0},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]any{
		{"kind": "income", "title": "Salary", "amount": "4200", "date": "2026-08-01"},
		{"kind": "expense", "title": "Groceries", "amount": "150", "category": "Food", "method": "cash", "date": "2026-08-05"},
	} {
		rec := doJSON(t, srv, http.MethodPost, "/api/records", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard?month=2026-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[dashboard.Snapshot](t, rec)

	assert.Equal(t, "2026-08", snap.Month)
	assert.Equal(t, "4200", snap.Totals.Income.String())
	assert.Equal(t, "4050", snap.Totals.Balance.String())
	assert.Len(t, snap.YearSeries, 12)

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?month=august", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/profile", map[string]any{
		"displayName": "John Doe",
		"currency":    "INR",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[profilePayload](t, rec)
	assert.Equal(t, "John Doe", got.DisplayName)
	assert.Equal(t, "INR", got.Currency)

	rec = doJSON(t, srv, http.MethodPut, "/api/profile", map[string]any{
		"displayName": "John Doe",
		"currency":    "EUR",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
