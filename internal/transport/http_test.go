package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/tasty-ordering/internal/transport"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(router chi.Router) {
	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func newTestRouter(logs *bytes.Buffer, db transport.Pinger, origins ...string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return transport.NewRouter(transport.RouterConfig{
		Logger:         zerolog.New(logs),
		AllowedOrigins: origins,
		DB:             db,
	}, pingRoutes{})
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name     string
		db       transport.Pinger
		wantCode int
		wantBody string
	}{
		{name: "no_database", db: nil, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "database_up", db: fakePinger{}, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "database_down", db: fakePinger{err: errors.New("refused")}, wantCode: http.StatusServiceUnavailable, wantBody: "database unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			router := newTestRouter(&logs, tt.db)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestRouter_MountsHandlersUnderAPI(t *testing.T) {
	var logs bytes.Buffer
	router := newTestRouter(&logs, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_RequestID(t *testing.T) {
	var logs bytes.Buffer
	router := newTestRouter(&logs, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	generated := rr.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36, "a UUID should be generated when the caller sends none")

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestRouter_AccessLog(t *testing.T) {
	var logs bytes.Buffer
	router := newTestRouter(&logs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry), "access log should be one JSON line")
	assert.Equal(t, "http_request", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/ping", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	var logs bytes.Buffer
	router := newTestRouter(&logs, nil)

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRouter_CORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{name: "wildcard_echoes_origin", origins: []string{"*"}, origin: "http://localhost:5173", wantOrigin: "http://localhost:5173"},
		{name: "listed_origin", origins: []string{"https://shop.example.com"}, origin: "https://shop.example.com", wantOrigin: "https://shop.example.com"},
		{name: "unlisted_origin", origins: []string{"https://shop.example.com"}, origin: "https://evil.example.com", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			router := newTestRouter(&logs, nil, tt.origins...)

			req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}
