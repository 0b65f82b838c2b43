package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/corebank/internal/infrastructure/logger"
)

func TestRequestContextAndLogging(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	var ctxUser, ctxRequest string
	handler := chimiddleware.RequestID(
		RequestContext(base)(
			NewLoggingMiddleware(base).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxUser = logger.UserIDFromContext(r.Context())
				ctxRequest = logger.RequestIDFromContext(r.Context())
				zerolog.Ctx(r.Context()).Info().Msg("inside handler")
				w.WriteHeader(http.StatusAccepted)
			})),
		),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/eod/run", nil)
	req.Header.Set(UserIDHeader, "ADMIN")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxUser != "ADMIN" {
		t.Fatalf("expected user on context, got %q", ctxUser)
	}
	if ctxRequest == "" || rr.Header().Get(chimiddleware.RequestIDHeader) != ctxRequest {
		t.Fatalf("expected request id %q echoed in header, got %q", ctxRequest, rr.Header().Get(chimiddleware.RequestIDHeader))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["user_id"] != "ADMIN" || entry["request_id"] != ctxRequest {
			t.Fatalf("expected user and request ids on every line, got %v", entry)
		}
	}

	var completed map[string]any
	_ = json.Unmarshal([]byte(lines[1]), &completed)
	if completed["message"] != "request completed" || completed["status"] != float64(http.StatusAccepted) {
		t.Fatalf("unexpected completion entry: %v", completed)
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic to be logged, got %s", buf.String())
	}
}
