package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Create(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error)
	Get(ctx context.Context, tranID string) ([]*domain.Transaction, error)
	Verify(ctx context.Context, tranID, verifier string) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction entry and verification.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create enters a new transaction with status Entry.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(actingUser(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	legs, err := h.transactionUC.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(legs))
}

// Get returns all legs of a transaction.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	legs, err := h.transactionUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(legs))
}

// Verify verifies a transaction on behalf of the acting user.
func (h *TransactionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}
	verifier := actingUser(r)
	if verifier == "" {
		writeError(w, http.StatusBadRequest, "missing "+UserIDHeader+" header", "")
		return
	}

	legs, err := h.transactionUC.Verify(r.Context(), id, verifier)
	if err != nil {
		writeDomainError(w, "failed to verify transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(legs))
}
