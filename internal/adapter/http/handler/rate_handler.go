package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// RateService defines the exchange rate behavior needed by RateHandler.
type RateService interface {
	CreateRate(ctx context.Context, input usecase.RateInput) (*domain.ExchangeRate, error)
	UpdateRate(ctx context.Context, input usecase.RateInput) (*domain.ExchangeRate, error)
	ConvertToLCY(ctx context.Context, amount decimal.Decimal, ccy string, date time.Time) (decimal.Decimal, decimal.Decimal, error)
	LocalCurrency() string
}

// RateHandler handles exchange rate maintenance and conversion.
type RateHandler struct {
	rates RateService
	clock SystemDateReader
}

// NewRateHandler creates a new RateHandler. Conversions without a date use
// the system date from clock.
func NewRateHandler(rates RateService, clock SystemDateReader) *RateHandler {
	return &RateHandler{rates: rates, clock: clock}
}

// Create stores a new rate.
func (h *RateHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, http.StatusCreated, "failed to create rate", h.rates.CreateRate)
}

// Update replaces an existing rate.
func (h *RateHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, http.StatusOK, "failed to update rate", h.rates.UpdateRate)
}

func (h *RateHandler) save(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	fn func(context.Context, usecase.RateInput) (*domain.ExchangeRate, error),
) {
	var req dto.RateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	input, err := req.ToUseCaseInput(actingUser(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rate, err := fn(r.Context(), input)
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	writeJSON(w, status, dto.RateFromDomain(rate))
}

// Convert converts ?amount= in ?currency= to local currency at the mid rate
// of ?date=, defaulting to the system date.
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}
	ccy := strings.ToUpper(strings.TrimSpace(q.Get("currency")))
	if ccy == "" {
		writeError(w, http.StatusBadRequest, "missing currency", "")
		return
	}

	var date time.Time
	if raw := q.Get("date"); raw != "" {
		if date, err = domain.ParseDate(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
	} else if date, err = h.clock.SystemDate(r.Context()); err != nil {
		writeDomainError(w, "failed to read system date", err)
		return
	}

	lcy, rate, err := h.rates.ConvertToLCY(r.Context(), amount, ccy, date)
	if err != nil {
		writeDomainError(w, "failed to convert amount", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConvertResponse{
		Currency:      ccy,
		Amount:        amount.StringFixed(2),
		Date:          date.Format(domain.DateLayout),
		Rate:          rate.String(),
		LocalCurrency: h.rates.LocalCurrency(),
		LocalAmount:   lcy.StringFixed(2),
	})
}
