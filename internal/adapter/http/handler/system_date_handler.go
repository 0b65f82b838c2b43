package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
)

// SystemDateReader returns the business date.
type SystemDateReader interface {
	SystemDate(ctx context.Context) (time.Time, error)
}

// SystemDateService reads and moves the business date.
type SystemDateService interface {
	SystemDateReader
	SetSystemDate(ctx context.Context, date time.Time, userID string) error
}

// SystemDateHandler exposes the business date.
type SystemDateHandler struct {
	clock SystemDateService
}

// NewSystemDateHandler creates a new SystemDateHandler.
func NewSystemDateHandler(clock SystemDateService) *SystemDateHandler {
	return &SystemDateHandler{clock: clock}
}

// Get returns the current system date.
func (h *SystemDateHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := h.clock.SystemDate(r.Context())
	if err != nil {
		writeDomainError(w, "failed to read system date", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewSystemDateResponse(date))
}

// Set moves the system date.
func (h *SystemDateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetSystemDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	date, err := domain.ParseDate(req.SystemDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid system_date", err.Error())
		return
	}
	userID := actingUser(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing "+UserIDHeader+" header", "")
		return
	}

	if err := h.clock.SetSystemDate(r.Context(), date, userID); err != nil {
		writeDomainError(w, "failed to set system date", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewSystemDateResponse(date))
}
