package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
)

// ExchangeRateRepository implements usecase.ExchangeRateRepository.
type ExchangeRateRepository struct {
	queries *generated.Queries
}

// NewExchangeRateRepository creates a new ExchangeRateRepository.
func NewExchangeRateRepository(pool *pgxpool.Pool) *ExchangeRateRepository {
	return newExchangeRateRepository(pool)
}

func newExchangeRateRepository(db generated.DBTX) *ExchangeRateRepository {
	return &ExchangeRateRepository{queries: generated.New(db)}
}

// LatestOnOrBefore returns the newest rate for the pair dated on or before date.
func (r *ExchangeRateRepository) LatestOnOrBefore(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error) {
	row, err := r.queries.GetLatestExchangeRate(ctx, generated.GetLatestExchangeRateParams{
		CcyPair:  ccyPair,
		RateDate: dateToPg(date),
	})

	return toRate(row, err, ccyPair, date)
}

// Get returns the rate for the pair on exactly date.
func (r *ExchangeRateRepository) Get(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error) {
	row, err := r.queries.GetExchangeRate(ctx, generated.GetExchangeRateParams{
		CcyPair:  ccyPair,
		RateDate: dateToPg(date),
	})

	return toRate(row, err, ccyPair, date)
}

func (r *ExchangeRateRepository) Create(ctx context.Context, rate *domain.ExchangeRate) error {
	err := r.queries.CreateExchangeRate(ctx, generated.CreateExchangeRateParams{
		CcyPair:     rate.CcyPair,
		RateDate:    dateToPg(rate.RateDate),
		MidRate:     decimalToNumeric(rate.MidRate),
		BuyingRate:  decimalToNumeric(rate.BuyingRate),
		SellingRate: decimalToNumeric(rate.SellingRate),
		Source:      rate.Source,
		CreatedAt:   timeToPgTimestamptz(rate.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(rate.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %s", domain.ErrExchangeRateExists, rate.CcyPair, rate.RateDate.Format(domain.DateLayout))
		}
		return err
	}

	return nil
}

func (r *ExchangeRateRepository) Update(ctx context.Context, rate *domain.ExchangeRate) error {
	n, err := r.queries.UpdateExchangeRate(ctx, generated.UpdateExchangeRateParams{
		CcyPair:     rate.CcyPair,
		RateDate:    dateToPg(rate.RateDate),
		MidRate:     decimalToNumeric(rate.MidRate),
		BuyingRate:  decimalToNumeric(rate.BuyingRate),
		SellingRate: decimalToNumeric(rate.SellingRate),
		Source:      rate.Source,
		UpdatedAt:   timeToPgTimestamptz(rate.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrExchangeRateNotFound, rate.CcyPair, rate.RateDate.Format(domain.DateLayout))
	}

	return nil
}

func toRate(row generated.ExchangeRate, err error, ccyPair string, date time.Time) (*domain.ExchangeRate, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrExchangeRateNotFound, ccyPair, date.Format(domain.DateLayout))
		}
		return nil, err
	}

	return &domain.ExchangeRate{
		CcyPair:     row.CcyPair,
		RateDate:    pgToDate(row.RateDate),
		MidRate:     numericToDecimal(row.MidRate),
		BuyingRate:  numericToDecimal(row.BuyingRate),
		SellingRate: numericToDecimal(row.SellingRate),
		Source:      row.Source,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}, nil
}
