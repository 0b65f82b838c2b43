package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidNarration   = errors.New("invalid narration")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall     = errors.New("amount below minimum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxNarrationLength   = 500
	MaxPostingAmount     = "1000000000000" // 1 trillion
	MinPostingAmount     = "0.01"
	MaxAmountScale       = 2
)

// ValidateAccountName validates an account title.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	dangerous := []string{"--", "/*", "*/", ";"}
	for _, pattern := range dangerous {
		if strings.Contains(name, pattern) {
			return fmt.Errorf("%w: contains forbidden characters", ErrInvalidAccountName)
		}
	}

	return nil
}

// ValidateNarration bounds free-text narration.
func ValidateNarration(narration string) error {
	if len(narration) > MaxNarrationLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidNarration, MaxNarrationLength)
	}
	return nil
}

// ValidateCurrency checks code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	if len(code) != 3 || money.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, code)
	}

	return nil
}

// ValidateAmount validates a posting amount: positive, at most two decimal
// places and within the configured bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, MaxAmountScale)
	}

	minAmount, _ := decimal.NewFromString(MinPostingAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinPostingAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxPostingAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPostingAmount)
	}

	return nil
}
