package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
)

// EODService runs and reports the end-of-day batch.
type EODService interface {
	Run(ctx context.Context, userID string) (*domain.EODSummary, error)
	Summary(ctx context.Context, date time.Time) (*domain.EODSummary, error)
}

// BODService promotes due future-dated transactions.
type BODService interface {
	Run(ctx context.Context, userID string) (*domain.BatchResult[*domain.Transaction], error)
}

// MovementPosterService posts verified legs to GL movements.
type MovementPosterService interface {
	Post(ctx context.Context, systemDate time.Time) (*domain.BatchResult[*domain.Transaction], error)
}

// AccrualPosterService posts pending interest accruals.
type AccrualPosterService interface {
	Post(ctx context.Context, systemDate time.Time) (*domain.BatchResult[*domain.InterestAccrual], error)
}

// BatchHandler handles EOD, BOD and the standalone posting batches.
type BatchHandler struct {
	eod       EODService
	bod       BODService
	movements MovementPosterService
	accruals  AccrualPosterService
	clock     SystemDateReader
}

// BatchServices groups the services behind BatchHandler.
type BatchServices struct {
	EOD       EODService
	BOD       BODService
	Movements MovementPosterService
	Accruals  AccrualPosterService
	Clock     SystemDateReader
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(s BatchServices) *BatchHandler {
	return &BatchHandler{
		eod:       s.EOD,
		bod:       s.BOD,
		movements: s.Movements,
		accruals:  s.Accruals,
		clock:     s.Clock,
	}
}

// RunEOD runs the end-of-day batch as the user in X-User-ID. A FAILED run
// answers 422 with its summary.
func (h *BatchHandler) RunEOD(w http.ResponseWriter, r *http.Request) {
	userID := actingUser(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing "+UserIDHeader+" header", "")
		return
	}

	summary, err := h.eod.Run(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "EOD run failed", err)
		return
	}

	status := http.StatusOK
	if summary.Status != domain.EODSuccess {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, dto.EODSummaryFromDomain(summary))
}

// EODSummary returns the summary of the latest EOD run for {date}.
func (h *BatchHandler) EODSummary(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	summary, err := h.eod.Summary(r.Context(), date)
	if err != nil {
		writeDomainError(w, "failed to get EOD summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EODSummaryFromDomain(summary))
}

// RunBOD promotes future-dated transactions that have become due.
func (h *BatchHandler) RunBOD(w http.ResponseWriter, r *http.Request) {
	result, err := h.bod.Run(r.Context(), actingUser(r))
	if err != nil {
		writeDomainError(w, "BOD run failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchFromDomain(result, dto.TransactionID))
}

// PostMovements runs the movement poster for the system date.
func (h *BatchHandler) PostMovements(w http.ResponseWriter, r *http.Request) {
	date, ok := h.systemDate(w, r)
	if !ok {
		return
	}

	result, err := h.movements.Post(r.Context(), date)
	if err != nil {
		writeDomainError(w, "movement posting failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchFromDomain(result, dto.TransactionID))
}

// PostAccruals runs the accrual poster for the system date.
func (h *BatchHandler) PostAccruals(w http.ResponseWriter, r *http.Request) {
	date, ok := h.systemDate(w, r)
	if !ok {
		return
	}

	result, err := h.accruals.Post(r.Context(), date)
	if err != nil {
		writeDomainError(w, "accrual posting failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchFromDomain(result, dto.AccrualID))
}

func (h *BatchHandler) systemDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := h.clock.SystemDate(r.Context())
	if err != nil {
		writeDomainError(w, "failed to read system date", err)
		return time.Time{}, false
	}
	return date, true
}
