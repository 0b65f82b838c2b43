package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValueDateClass places a value date relative to the system date.
type ValueDateClass string

const (
	ValueDatePast    ValueDateClass = "PAST"
	ValueDateCurrent ValueDateClass = "CURRENT"
	ValueDateFuture  ValueDateClass = "FUTURE"
)

// DefaultInterestDivisor is days-in-year times 100 (rates are percentages).
var DefaultInterestDivisor = decimal.NewFromInt(36500)

// ClassifyValueDate compares a value date with the system date.
func ClassifyValueDate(valueDate, systemDate time.Time) ValueDateClass {
	v, s := DateOf(valueDate), DateOf(systemDate)
	switch {
	case v.Before(s):
		return ValueDatePast
	case v.After(s):
		return ValueDateFuture
	default:
		return ValueDateCurrent
	}
}

// DaysDifference is systemDate - valueDate: positive for past-dated
// transactions, negative for future-dated ones.
func DaysDifference(valueDate, systemDate time.Time) int {
	return DaysBetween(valueDate, systemDate)
}

// DeltaInterest is the interest on |amount| at ratePct percent for days,
// rounded half-up to four places. The divisor is in percent-days
// (36500 = 365 x 100), so the fractional rate is scaled back by 100.
func DeltaInterest(amount, ratePct decimal.Decimal, days int, divisor decimal.Decimal) decimal.Decimal {
	if days <= 0 || ratePct.IsZero() {
		return decimal.Zero
	}
	if !divisor.IsPositive() {
		divisor = DefaultInterestDivisor
	}
	rate := ratePct.Div(decimal.NewFromInt(100)).Round(6)
	return amount.Abs().
		Mul(rate).
		Mul(decimal.NewFromInt(int64(days))).
		Mul(decimal.NewFromInt(100)).
		Div(divisor).
		Round(4)
}

// ValueDateLog audits a value-dated transaction leg.
type ValueDateLog struct {
	TranID           string
	ValueDate        time.Time
	DaysDifference   int
	DeltaInterestAmt decimal.Decimal
	AdjustmentPosted bool
	CreatedAt        time.Time
}

// Flag renders AdjustmentPosted as Y/N.
func (l *ValueDateLog) Flag() string {
	if l.AdjustmentPosted {
		return "Y"
	}
	return "N"
}

// AdjustmentLegs picks the debit and credit GLs for a delta-interest
// adjustment from the account GL class and the direction of the leg.
func AdjustmentLegs(accountGL string, flag DrCr, receivableExpenditureGL, incomePayableGL string) (debitGL, creditGL string, err error) {
	switch AccountClassOf(accountGL) {
	case AccountGLLiability:
		if flag == Credit {
			return receivableExpenditureGL, incomePayableGL, nil
		}
		return incomePayableGL, receivableExpenditureGL, nil
	case AccountGLAsset:
		if flag == Debit {
			return receivableExpenditureGL, incomePayableGL, nil
		}
		return incomePayableGL, receivableExpenditureGL, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrInvalidGLPrefix, accountGL)
	}
}
