package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/logger"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"wrapped GL not found", fmt.Errorf("%w: 999999999", domain.ErrGLNotFound), http.StatusNotFound},
		{"no EOD run", domain.ErrEODRunNotFound, http.StatusNotFound},
		{"sequence exhausted", domain.ErrSequenceExhausted, http.StatusConflict},
		{"batch in progress", domain.ErrBatchInProgress, http.StatusConflict},
		{"rate exists", domain.ErrExchangeRateExists, http.StatusConflict},
		{"unbalanced", domain.ErrUnbalancedTransaction, http.StatusUnprocessableEntity},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"value date out of range", domain.ErrValueDateOutOfRange, http.StatusUnprocessableEntity},
		{"invalid GL setup", domain.ErrInvalidGLSetup, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"unauthorized operator", domain.ErrUnauthorizedOperator, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteDomainError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, "failed to get account", fmt.Errorf("%w: 123", domain.ErrAccountNotFound))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "failed to get account" || resp.Message != "account not found: 123" {
		t.Fatalf("unexpected error response: %+v", resp)
	}
}

func TestActingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if got := actingUser(req); got != "" {
		t.Fatalf("expected no user, got %q", got)
	}

	req = req.WithContext(logger.WithUserID(context.Background(), "CTX"))
	if got := actingUser(req); got != "CTX" {
		t.Fatalf("expected user from context, got %q", got)
	}

	req.Header.Set(UserIDHeader, " ADMIN ")
	if got := actingUser(req); got != "ADMIN" {
		t.Fatalf("expected header to win, got %q", got)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name     string
		postgres Pinger
		redis    Pinger
		expected int
	}{
		{"all healthy", ok, ok, http.StatusOK},
		{"postgres down", down, ok, http.StatusServiceUnavailable},
		{"redis down", ok, down, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewHealthHandler(tt.postgres, tt.redis).Readiness(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}
