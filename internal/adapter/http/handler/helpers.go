package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/logger"
)

// UserIDHeader names the acting user of a request.
const UserIDHeader = "X-User-ID"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrGLNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrExchangeRateNotFound),
		errors.Is(err, domain.ErrEODRunNotFound),
		errors.Is(err, domain.ErrParameterNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSubProductNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrSequenceExhausted),
		errors.Is(err, domain.ErrBatchInProgress),
		errors.Is(err, domain.ErrGLAlreadyExists),
		errors.Is(err, domain.ErrSubProductExists),
		errors.Is(err, domain.ErrExchangeRateExists),
		errors.Is(err, domain.ErrInvalidTransactionState),
		errors.Is(err, domain.ErrSystemDateNotConfigured):
		return http.StatusConflict

	case errors.Is(err, domain.ErrUnbalancedTransaction),
		errors.Is(err, domain.ErrTooFewLegs),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrValueDateOutOfRange),
		errors.Is(err, domain.ErrCurrencyNotAllowed),
		errors.Is(err, domain.ErrInvalidCurrencyCombination),
		errors.Is(err, domain.ErrGLMappingMissing),
		errors.Is(err, domain.ErrUnknownProductType):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidGLSetup),
		errors.Is(err, domain.ErrInvalidGLPrefix),
		errors.Is(err, domain.ErrInvalidExchangeRate),
		errors.Is(err, domain.ErrInvalidCustomerType),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidNarration),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountTooSmall):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUnauthorizedOperator):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// actingUser returns the user named by the X-User-ID header, falling back
// to the one the request-context middleware stored.
func actingUser(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(UserIDHeader)); id != "" {
		return id
	}
	return logger.UserIDFromContext(r.Context())
}

// parseDateParam parses a YYYY-MM-DD URL parameter.
func parseDateParam(r *http.Request, key string) (time.Time, error) {
	return domain.ParseDate(chi.URLParam(r, key))
}
