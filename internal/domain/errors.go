package domain

import "errors"

var (
	// GL errors
	ErrGLNotFound          = errors.New("GL not found")
	ErrGLAlreadyExists     = errors.New("GL already exists")
	ErrInvalidGLSetup      = errors.New("invalid GL setup")
	ErrGLHierarchyInvalid  = errors.New("GL hierarchy is invalid")
	ErrInvalidGLPrefix     = errors.New("GL number does not start with a liability or asset prefix")
	ErrGLMappingMissing    = errors.New("sub-product GL mapping is empty")
	ErrUnknownProductType  = errors.New("unknown product type for GL")
	ErrSubProductNotFound  = errors.New("sub-product not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrSubProductExists    = errors.New("sub-product code already exists")
	ErrInvalidCustomerType = errors.New("invalid customer type")

	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Sequence errors
	ErrSequenceExhausted = errors.New("sequence exhausted")

	// Currency errors
	ErrCurrencyNotAllowed         = errors.New("currency not allowed")
	ErrInvalidCurrencyCombination = errors.New("invalid currency combination")
	ErrExchangeRateNotFound       = errors.New("exchange rate not found")
	ErrInvalidExchangeRate        = errors.New("invalid exchange rate")
	ErrExchangeRateExists         = errors.New("exchange rate already exists for pair and date")

	// Transaction errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidTransaction      = errors.New("invalid transaction input")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrUnbalancedTransaction   = errors.New("debit and credit totals do not match")
	ErrTooFewLegs              = errors.New("transaction needs at least one debit and one credit leg")
	ErrInvalidTransactionState = errors.New("transaction is not in the expected status")
	ErrValueDateOutOfRange     = errors.New("value date out of allowed range")

	// Batch / system errors
	ErrSystemDateNotConfigured = errors.New("system date is not configured")
	ErrBatchInProgress         = errors.New("batch already in progress")
	ErrEODRunNotFound          = errors.New("no EOD run recorded for date")
	ErrParameterNotFound       = errors.New("parameter not found")
	ErrUnauthorizedOperator    = errors.New("user is not authorized to run EOD")
)
