package handler

import (
	"context"
	"net/http"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// SettlementService checks realised gains and losses against thresholds.
type SettlementService interface {
	CheckBatch(ctx context.Context, inputs []usecase.SettlementInput) []*domain.SettlementAlert
}

// SettlementHandler handles settlement alert checks.
type SettlementHandler struct {
	alerts SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(alerts SettlementService) *SettlementHandler {
	return &SettlementHandler{alerts: alerts}
}

// Check returns the alerts raised for the posted settlements.
func (h *SettlementHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req dto.SettlementCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	inputs, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	alerts := h.alerts.CheckBatch(r.Context(), inputs)
	writeJSON(w, http.StatusOK, dto.SettlementAlertsFromDomain(alerts))
}
