package domain

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyMix classifies the currencies of one transaction.
type CurrencyMix string

const (
	CurrencySingleLocal   CurrencyMix = "SINGLE_LOCAL"
	CurrencySingleForeign CurrencyMix = "SINGLE_FOREIGN"
	CurrencyMixed         CurrencyMix = "MIXED"
	CurrencyInvalid       CurrencyMix = "INVALID"
)

// ClassifyCurrencies classifies a bundle's currency set against an
// allow-list and the local currency.
func ClassifyCurrencies(ccys []string, local string, allowed map[string]bool) CurrencyMix {
	distinct := make(map[string]struct{}, 2)
	for _, c := range ccys {
		if !allowed[c] {
			return CurrencyInvalid
		}
		distinct[c] = struct{}{}
	}

	switch len(distinct) {
	case 0:
		return CurrencyInvalid
	case 1:
		if _, ok := distinct[local]; ok {
			return CurrencySingleLocal
		}
		return CurrencySingleForeign
	case 2:
		if _, ok := distinct[local]; ok {
			return CurrencyMixed
		}
		return CurrencyInvalid
	default:
		return CurrencyInvalid
	}
}

// DistinctCurrencies returns the sorted distinct currencies of legs.
func DistinctCurrencies(legs []*Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 2)
	for _, l := range legs {
		if _, ok := seen[l.TranCcy]; ok {
			continue
		}
		seen[l.TranCcy] = struct{}{}
		out = append(out, l.TranCcy)
	}
	sort.Strings(out)
	return out
}

var ccyPairPattern = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)

// CurrencyPair renders the pair key used for rate lookups.
func CurrencyPair(foreign, local string) string {
	return foreign + "/" + local
}

// ExchangeRate is a dated rate for a currency pair.
type ExchangeRate struct {
	CcyPair     string
	RateDate    time.Time
	MidRate     decimal.Decimal
	BuyingRate  decimal.Decimal
	SellingRate decimal.Decimal
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the pair format and buying <= mid <= selling.
func (r *ExchangeRate) Validate() error {
	if !ccyPairPattern.MatchString(r.CcyPair) {
		return fmt.Errorf("%w: pair %q must look like USD/BDT", ErrInvalidExchangeRate, r.CcyPair)
	}
	if !r.MidRate.IsPositive() || !r.BuyingRate.IsPositive() || !r.SellingRate.IsPositive() {
		return fmt.Errorf("%w: rates must be positive", ErrInvalidExchangeRate)
	}
	if r.BuyingRate.GreaterThan(r.MidRate) {
		return fmt.Errorf("%w: buying rate %s above mid rate %s", ErrInvalidExchangeRate, r.BuyingRate, r.MidRate)
	}
	if r.MidRate.GreaterThan(r.SellingRate) {
		return fmt.Errorf("%w: mid rate %s above selling rate %s", ErrInvalidExchangeRate, r.MidRate, r.SellingRate)
	}
	return nil
}

// ConvertAmount converts at a mid rate, rounding half-up to two places.
func ConvertAmount(amount, midRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(midRate).Round(2)
}
