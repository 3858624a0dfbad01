package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/concept-clarity/internal/config"
)

func TestChain_Order(t *testing.T) {
	var order []string

	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	Chain(tag("outer"), tag("inner"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer-before", "inner-before", "handler", "inner-after", "outer-after"}, order)
}

func TestChain_Empty(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	Chain()(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
}

// ---------------------------------------------------------------------------
// Stack
// ---------------------------------------------------------------------------

type logLine struct {
	Msg       string `json:"msg"`
	Level     string `json:"level"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id"`
}

func parseLog(t *testing.T, buf *bytes.Buffer) []logLine {
	t.Helper()
	var lines []logLine
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var l logLine
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		lines = append(lines, l)
	}
	return lines
}

func stackConfig(limiter *RateLimiter) StackConfig {
	return StackConfig{
		CORS: config.CORSConfig{
			AllowedOrigins: "https://app.example.com",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         60,
		},
		Limiter:           limiter,
		RequestsPerMinute: 1,
		Burst:             1,
		MaxBodyBytes:      8,
	}
}

func TestStack_PanicIsLoggedWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Stack(logger, stackConfig(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	lines := parseLog(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, logLine{Msg: "panic recovered", Level: "ERROR", RequestID: "req-42"}, lines[0])
	assert.Equal(t, logLine{Msg: "http.request", Level: "ERROR", Status: 500, RequestID: "req-42"}, lines[1])
}

func TestStack_PreflightDoesNotSpendRateLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	h := Stack(slog.New(slog.NewJSONHandler(io.Discard, nil)), stackConfig(rl))(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code, "preflight %d", i)
	}

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:1000").Code)
}

func TestStack_RateLimitedResponseCarriesCORSAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	h := Stack(slog.New(slog.NewJSONHandler(&buf, nil)), stackConfig(rl))(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/predict", nil)
		req.RemoteAddr = "10.0.0.2:1000"
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send().Code)
	rec := send()

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	lines := parseLog(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, 429, lines[1].Status)
	assert.Equal(t, "WARN", lines[1].Level)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), lines[1].RequestID)
}

func TestStack_BodyLimitIsInnermost(t *testing.T) {
	var readErr error
	h := Stack(slog.New(slog.NewJSONHandler(io.Discard, nil)), stackConfig(nil))(readAllHandler(&readErr))

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"text":"far too long"}`))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.True(t, errors.As(readErr, &maxErr), "expected MaxBytesError, got %v", readErr)
}

func TestStack_NoLimiterMeansNoLimit(t *testing.T) {
	h := Stack(slog.New(slog.NewJSONHandler(io.Discard, nil)), stackConfig(nil))(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.3:1").Code)
	}
}
