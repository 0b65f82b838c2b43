package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// CurrencyConfig is the currency allow-list and the local currency.
type CurrencyConfig struct {
	Local   string
	Allowed []string
}

// CurrencyUseCase classifies transaction currencies and converts amounts.
type CurrencyUseCase struct {
	rateRepo ExchangeRateRepository
	cache    Cache
	audit    auditor
	metrics  *metrics.Metrics
	local    string
	allowed  map[string]bool
}

// NewCurrencyUseCase creates a new CurrencyUseCase. The local currency is
// always allowed.
func NewCurrencyUseCase(
	rateRepo ExchangeRateRepository,
	cache Cache,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	cfg CurrencyConfig,
) *CurrencyUseCase {
	allowed := make(map[string]bool, len(cfg.Allowed)+1)
	for _, c := range cfg.Allowed {
		allowed[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	allowed[cfg.Local] = true

	return &CurrencyUseCase{
		rateRepo: rateRepo,
		cache:    cache,
		audit:    auditor{repo: auditRepo, idGen: idGen},
		metrics:  m,
		local:    cfg.Local,
		allowed:  allowed,
	}
}

// LocalCurrency returns the configured local currency.
func (uc *CurrencyUseCase) LocalCurrency() string { return uc.local }

// IsLocal reports whether ccy is the local currency.
func (uc *CurrencyUseCase) IsLocal(ccy string) bool { return ccy == uc.local }

// Classify classifies a set of currency codes.
func (uc *CurrencyUseCase) Classify(ccys []string) domain.CurrencyMix {
	return domain.ClassifyCurrencies(ccys, uc.local, uc.allowed)
}

// ValidateLegs rejects legs whose currencies are not allowed or not a
// supported combination.
func (uc *CurrencyUseCase) ValidateLegs(legs []*domain.Transaction) error {
	ccys := domain.DistinctCurrencies(legs)
	for _, c := range ccys {
		if !uc.allowed[c] {
			return fmt.Errorf("%w: %s", domain.ErrCurrencyNotAllowed, c)
		}
	}
	if uc.Classify(ccys) == domain.CurrencyInvalid {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCurrencyCombination, strings.Join(ccys, ","))
	}
	return nil
}

func rateCacheKey(pair string, date time.Time) string {
	return fmt.Sprintf("cache:rate:%s:%s", pair, domain.DateOf(date).Format(domain.DateLayout))
}

// MidRate returns the mid rate of ccy against the local currency effective
// on date. The local currency's rate is 1.
func (uc *CurrencyUseCase) MidRate(ctx context.Context, ccy string, date time.Time) (decimal.Decimal, error) {
	if ccy == uc.local {
		return decimal.NewFromInt(1), nil
	}
	if !uc.allowed[ccy] {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrCurrencyNotAllowed, ccy)
	}

	pair := domain.CurrencyPair(ccy, uc.local)
	key := rateCacheKey(pair, date)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			if mid, perr := decimal.NewFromString(cached); perr == nil {
				uc.cacheLookup("hit")
				return mid, nil
			}
		}
		uc.cacheLookup("miss")
	}

	rate, err := uc.rateRepo.LatestOnOrBefore(ctx, pair, domain.DateOf(date))
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRateNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s on or before %s", domain.ErrExchangeRateNotFound, pair, date.Format(domain.DateLayout))
		}
		return decimal.Zero, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, rate.MidRate.String(), RateCacheTTL)
	}
	return rate.MidRate, nil
}

// ConvertToLCY converts amount in ccy to the local currency at the mid rate.
func (uc *CurrencyUseCase) ConvertToLCY(ctx context.Context, amount decimal.Decimal, ccy string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	mid, err := uc.MidRate(ctx, ccy, date)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return domain.ConvertAmount(amount, mid), mid, nil
}

// RateInput represents input for creating or updating an exchange rate.
type RateInput struct {
	CcyPair     string    `validate:"required,len=7"`
	RateDate    time.Time `validate:"required"`
	MidRate     decimal.Decimal
	BuyingRate  decimal.Decimal
	SellingRate decimal.Decimal
	Source      string `validate:"max=50"`
	UpdatedBy   string
}

func (in RateInput) toDomain(now time.Time) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		CcyPair:     strings.ToUpper(in.CcyPair),
		RateDate:    domain.DateOf(in.RateDate),
		MidRate:     in.MidRate,
		BuyingRate:  in.BuyingRate,
		SellingRate: in.SellingRate,
		Source:      in.Source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateRate stores a new rate for a (pair, date) that has none.
func (uc *CurrencyUseCase) CreateRate(ctx context.Context, input RateInput) (*domain.ExchangeRate, error) {
	if err := validateInput(input, domain.ErrInvalidExchangeRate); err != nil {
		return nil, err
	}

	rate := input.toDomain(time.Now().UTC())
	err := uc.createRate(ctx, rate)
	uc.audit.record(ctx, input.UpdatedBy, domain.AuditActionRateCreate, "exchange_rate", rateCacheKey(rate.CcyPair, rate.RateDate), rate, err)
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (uc *CurrencyUseCase) createRate(ctx context.Context, rate *domain.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}

	if _, err := uc.rateRepo.Get(ctx, rate.CcyPair, rate.RateDate); err == nil {
		return fmt.Errorf("%w: %s %s", domain.ErrExchangeRateExists, rate.CcyPair, rate.RateDate.Format(domain.DateLayout))
	} else if !errors.Is(err, domain.ErrExchangeRateNotFound) {
		return err
	}

	if err := uc.rateRepo.Create(ctx, rate); err != nil {
		return err
	}
	uc.invalidate(ctx, rate)
	return nil
}

// UpdateRate replaces the rates of an existing (pair, date).
func (uc *CurrencyUseCase) UpdateRate(ctx context.Context, input RateInput) (*domain.ExchangeRate, error) {
	if err := validateInput(input, domain.ErrInvalidExchangeRate); err != nil {
		return nil, err
	}

	rate := input.toDomain(time.Now().UTC())
	err := uc.updateRate(ctx, rate)
	uc.audit.record(ctx, input.UpdatedBy, domain.AuditActionRateUpdate, "exchange_rate", rateCacheKey(rate.CcyPair, rate.RateDate), rate, err)
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (uc *CurrencyUseCase) updateRate(ctx context.Context, rate *domain.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}

	existing, err := uc.rateRepo.Get(ctx, rate.CcyPair, rate.RateDate)
	if err != nil {
		return err
	}
	rate.CreatedAt = existing.CreatedAt

	if err := uc.rateRepo.Update(ctx, rate); err != nil {
		return err
	}
	uc.invalidate(ctx, rate)
	return nil
}

func (uc *CurrencyUseCase) invalidate(ctx context.Context, rate *domain.ExchangeRate) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, rateCacheKey(rate.CcyPair, rate.RateDate))
}

func (uc *CurrencyUseCase) cacheLookup(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheLookups.WithLabelValues("rate", result).Inc()
	}
}
