package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/app"
	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/infrastructure/metrics"
	"tutorcenter/internal/infrastructure/storage/postgres"
	"tutorcenter/pkg/logger"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }
func (f fakeDB) Pool() *pgxpool.Pool        { return nil }

// newTestRouter wires the real container over a nil pool. Only routes that
// fail before touching the database are exercised.
func newTestRouter(t *testing.T, db fakeDB) http.Handler {
	t.Helper()
	c, err := app.NewContainer(app.Options{
		TxManager: postgres.NewTxManagerFromRawPool(nil),
		Clock:     domain.NewClock(time.UTC),
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	return NewRouter(RouterConfig{
		Container: c,
		Database:  db,
		Logger:    logger.NewNop(),
		Metrics:   metrics.NewWithRegistry(reg, reg),
	})
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, fakeDB{})

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/health/ready", "").Code)

	rec := send(r, http.MethodGet, "/health/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tutorcenter")
}

func TestRouter_ReadyFailsWithoutDatabase(t *testing.T) {
	r := newTestRouter(t, fakeDB{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusServiceUnavailable, send(r, http.MethodGet, "/health/ready", "").Code)
}

func TestRouter_MetricsExposed(t *testing.T) {
	r := newTestRouter(t, fakeDB{})
	send(r, http.MethodGet, "/health/live", "")

	rec := send(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_RejectsBadInput(t *testing.T) {
	r := newTestRouter(t, fakeDB{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad student id", http.MethodGet, "/api/v1/students/x", "", http.StatusBadRequest, apperror.CodeValidation},
		{"bad enrollment id", http.MethodPost, "/api/v1/enrollments/x/close", `{"reason":"renew"}`, http.StatusBadRequest, apperror.CodeValidation},
		{"submit without class", http.MethodPost, "/api/v1/attendance/submit", `{"items":[]}`, http.StatusBadRequest, apperror.CodeValidation},
		{"dashboard bad date", http.MethodGet, "/api/v1/reports/dashboard?date=June", "", http.StatusBadRequest, apperror.CodeValidation},
		{"sheet updates bad date", http.MethodGet, "/api/v1/sheet-updates?date=1/2/2025", "", http.StatusBadRequest, apperror.CodeValidation},
		{"inventory bad sheet", http.MethodPost, "/api/v1/inventory/x/actions", `{"action":"inc"}`, http.StatusBadRequest, apperror.CodeValidation},
		{"portal empty login", http.MethodPost, "/api/v1/portal/login", `{"code":"","phone":""}`, http.StatusUnauthorized, apperror.CodeInvalidCredentials},
		{"audit bad id", http.MethodGet, "/api/v1/audit/enrollment/x", "", http.StatusBadRequest, apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter(t, fakeDB{})
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/nope", "").Code)
}
