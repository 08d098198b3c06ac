package httputil

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Profile not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	require.JSONEq(t, `{"error":"Profile not found"}`, rec.Body.String())
}

func TestValidationError_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, "Invalid contact data", []FieldError{{Field: "name", Rule: "required"}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid contact data","details":[{"field":"name","rule":"required"}]}`, rec.Body.String())
}

func TestMiddlewareRequestID(t *testing.T) {
	var seen string
	h := MiddlewareRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "abc", seen)
}

func TestMiddlewareLogging_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Config{Backend: logger.BackendStd, Level: slog.LevelDebug, Output: &buf})

	h := MiddlewareRequestID(MiddlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, logger.FromContext(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x?y=1", nil))

	out := buf.String()
	require.Contains(t, out, "http_request")
	require.Contains(t, out, "level="+slog.LevelWarn.String())
	require.Contains(t, out, "status=418")
}
