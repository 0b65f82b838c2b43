package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// AccountService defines the account opening behavior needed by AccountHandler.
type AccountService interface {
	OpenCustomerAccount(ctx context.Context, input usecase.OpenCustomerAccountInput) (*domain.CustomerAccount, error)
	OpenOfficeAccount(ctx context.Context, input usecase.OpenOfficeAccountInput) (*domain.OfficeAccount, error)
	AllocateCustomerID(ctx context.Context, input usecase.AllocateCustomerIDInput) (int64, error)
	AllocateGenericAccountNo(ctx context.Context, input usecase.AllocateGenericAccountNoInput) (string, error)
}

// AccountInfoService resolves either account kind to its normalized view.
type AccountInfoService interface {
	Info(ctx context.Context, accountNo string) (*domain.AccountInfo, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	resolver  AccountInfoService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, resolver AccountInfoService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, resolver: resolver}
}

// OpenCustomer allocates a customer account number and opens the account.
func (h *AccountHandler) OpenCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenCustomerAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenCustomerAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to open customer account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerAccountFromDomain(account))
}

// OpenOffice allocates an office account number and opens the account.
func (h *AccountHandler) OpenOffice(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenOfficeAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenOfficeAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to open office account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OfficeAccountFromDomain(account))
}

// AllocateCustomerID reserves the next customer id for a customer type.
func (h *AccountHandler) AllocateCustomerID(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateCustomerIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id, err := h.accountUC.AllocateCustomerID(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to allocate customer id", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerIDResponse{CustomerID: id})
}

// AllocateGenericAccountNo reserves the next account number under a GL.
func (h *AccountHandler) AllocateGenericAccountNo(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateGenericAccountNoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	accountNo, err := h.accountUC.AllocateGenericAccountNo(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to allocate account number", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GenericAccountNoResponse{AccountNo: accountNo})
}

// Get returns the normalized view of an account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountNo := chi.URLParam(r, "accountNo")
	if accountNo == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	info, err := h.resolver.Info(r.Context(), accountNo)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountInfoFromDomain(info))
}
