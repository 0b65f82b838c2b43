package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DrCr is the debit/credit flag of a posting leg.
type DrCr string

const (
	Debit  DrCr = "D"
	Credit DrCr = "C"
)

// Opposite returns the reverse flag.
func (f DrCr) Opposite() DrCr {
	if f == Debit {
		return Credit
	}
	return Debit
}

// Valid reports whether f is D or C.
func (f DrCr) Valid() bool {
	return f == Debit || f == Credit
}

// TranStatus is the lifecycle status of a transaction leg.
type TranStatus string

const (
	TranStatusEntry    TranStatus = "Entry"
	TranStatusVerified TranStatus = "Verified"
	TranStatusPosted   TranStatus = "Posted"
	TranStatusFuture   TranStatus = "Future"
)

// Transaction is one leg of a double-entry posting.
type Transaction struct {
	TranID       string
	AccountNo    string
	DrCr         DrCr
	TranDate     time.Time
	ValueDate    time.Time
	TranCcy      string
	FcyAmt       decimal.Decimal
	ExchangeRate decimal.Decimal
	LcyAmt       decimal.Decimal
	Narration    string
	Status       TranStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LineID builds the id of the n-th leg of a transaction.
func LineID(baseID string, line int) string {
	return fmt.Sprintf("%s-%d", baseID, line)
}

// BaseTranID strips the line suffix from a leg id.
func BaseTranID(lineID string) string {
	if i := strings.LastIndexByte(lineID, '-'); i > 0 {
		return lineID[:i]
	}
	return lineID
}

// AccountAmount is the amount in the account's own currency: FCY for
// foreign-currency accounts, LCY otherwise.
func (t *Transaction) AccountAmount(accountCcy, localCcy string) decimal.Decimal {
	if accountCcy != localCcy && t.TranCcy == accountCcy {
		return t.FcyAmt
	}
	return t.LcyAmt
}

// Totals sums LCY amounts by flag.
func Totals(legs []*Transaction) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range legs {
		if l.DrCr == Debit {
			debits = debits.Add(l.LcyAmt)
		} else {
			credits = credits.Add(l.LcyAmt)
		}
	}
	return debits, credits
}

// ValidateLegs checks a set of legs forms a balanced posting.
func ValidateLegs(legs []*Transaction) error {
	var hasDebit, hasCredit bool
	for _, l := range legs {
		if !l.DrCr.Valid() {
			return fmt.Errorf("%w: leg %s has flag %q", ErrInvalidTransactionState, l.TranID, l.DrCr)
		}
		if !l.LcyAmt.IsPositive() {
			return fmt.Errorf("%w: leg %s", ErrInvalidAmount, l.TranID)
		}
		hasDebit = hasDebit || l.DrCr == Debit
		hasCredit = hasCredit || l.DrCr == Credit
	}
	if !hasDebit || !hasCredit {
		return ErrTooFewLegs
	}

	debits, credits := Totals(legs)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debit %s, credit %s", ErrUnbalancedTransaction, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}
