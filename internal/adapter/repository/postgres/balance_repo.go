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
	"github.com/iho/corebank/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository over the daily
// account and GL balance tables.
type BalanceRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return newBalanceRepository(pool)
}

func newBalanceRepository(db generated.DBTX) *BalanceRepository {
	return &BalanceRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// LatestAccountBalanceBefore returns the newest row strictly before date, or nil.
func (r *BalanceRepository) LatestAccountBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error) {
	row, err := r.queries.GetLatestAccountBalanceBefore(ctx, generated.GetLatestAccountBalanceBeforeParams{
		AccountNo: accountNo,
		TranDate:  dateToPg(date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToAccountBalance(row), nil
}

// LatestAccountBalance returns the newest row on or before date, or nil.
func (r *BalanceRepository) LatestAccountBalance(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error) {
	row, err := r.queries.GetLatestAccountBalance(ctx, generated.GetLatestAccountBalanceParams{
		AccountNo: accountNo,
		TranDate:  dateToPg(date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToAccountBalance(row), nil
}

// LockAccountBalance seeds the day's row from the previous closing when it
// is missing and locks it.
func (r *BalanceRepository) LockAccountBalance(ctx context.Context, tx usecase.Transaction, accountNo, currency string, date time.Time) (*domain.AccountBalance, error) {
	queries := queriesFor(tx, r.db)

	err := queries.SeedAccountBalance(ctx, generated.SeedAccountBalanceParams{
		AccountNo:   accountNo,
		TranDate:    dateToPg(date),
		Currency:    currency,
		LastUpdated: timeToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return nil, fmt.Errorf("seed balance %s: %w", accountNo, err)
	}

	row, err := queries.GetAccountBalanceForUpdate(ctx, generated.GetAccountBalanceForUpdateParams{
		AccountNo: accountNo,
		TranDate:  dateToPg(date),
	})
	if err != nil {
		return nil, fmt.Errorf("lock balance %s: %w", accountNo, err)
	}

	return rowToAccountBalance(row), nil
}

// UpsertAccountBalance writes the account's row for balance.TranDate.
func (r *BalanceRepository) UpsertAccountBalance(ctx context.Context, tx usecase.Transaction, b *domain.AccountBalance) error {
	return queriesFor(tx, r.db).UpsertAccountBalance(ctx, generated.UpsertAccountBalanceParams{
		AccountNo:        b.AccountNo,
		TranDate:         dateToPg(b.TranDate),
		Currency:         b.Currency,
		OpeningBal:       decimalToNumeric(b.OpeningBal),
		DrSummation:      decimalToNumeric(b.DrSummation),
		CrSummation:      decimalToNumeric(b.CrSummation),
		CurrentBalance:   decimalToNumeric(b.CurrentBalance),
		AvailableBalance: decimalToNumeric(b.AvailableBalance),
		LastUpdated:      timeToPgTimestamptz(b.LastUpdated),
	})
}

// LatestGLBalanceBefore returns the newest GL row strictly before date, or nil.
func (r *BalanceRepository) LatestGLBalanceBefore(ctx context.Context, glNum string, date time.Time) (*domain.GLBalance, error) {
	row, err := r.queries.GetLatestGLBalanceBefore(ctx, generated.GetLatestGLBalanceBeforeParams{
		GlNum:    glNum,
		TranDate: dateToPg(date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToGLBalance(row), nil
}

// LockGLBalance seeds and locks the GL's row for date.
func (r *BalanceRepository) LockGLBalance(ctx context.Context, tx usecase.Transaction, glNum string, date time.Time) (*domain.GLBalance, error) {
	queries := queriesFor(tx, r.db)

	err := queries.SeedGLBalance(ctx, generated.SeedGLBalanceParams{
		GlNum:       glNum,
		TranDate:    dateToPg(date),
		LastUpdated: timeToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return nil, fmt.Errorf("seed GL balance %s: %w", glNum, err)
	}

	row, err := queries.GetGLBalanceForUpdate(ctx, generated.GetGLBalanceForUpdateParams{
		GlNum:    glNum,
		TranDate: dateToPg(date),
	})
	if err != nil {
		return nil, fmt.Errorf("lock GL balance %s: %w", glNum, err)
	}

	return rowToGLBalance(row), nil
}

// UpsertGLBalance writes the GL's row for balance.TranDate.
func (r *BalanceRepository) UpsertGLBalance(ctx context.Context, tx usecase.Transaction, b *domain.GLBalance) error {
	return queriesFor(tx, r.db).UpsertGLBalance(ctx, generated.UpsertGLBalanceParams{
		GlNum:          b.GLNum,
		TranDate:       dateToPg(b.TranDate),
		OpeningBal:     decimalToNumeric(b.OpeningBal),
		DrSummation:    decimalToNumeric(b.DrSummation),
		CrSummation:    decimalToNumeric(b.CrSummation),
		CurrentBalance: decimalToNumeric(b.CurrentBalance),
		LastUpdated:    timeToPgTimestamptz(b.LastUpdated),
	})
}

// ListGLNums returns every GL that has ever carried a balance row.
func (r *BalanceRepository) ListGLNums(ctx context.Context) ([]string, error) {
	return r.queries.ListBalanceGLNums(ctx)
}

func rowToAccountBalance(row generated.AccountBalance) *domain.AccountBalance {
	return &domain.AccountBalance{
		AccountNo:        row.AccountNo,
		TranDate:         pgToDate(row.TranDate),
		Currency:         row.Currency,
		OpeningBal:       numericToDecimal(row.OpeningBal),
		DrSummation:      numericToDecimal(row.DrSummation),
		CrSummation:      numericToDecimal(row.CrSummation),
		CurrentBalance:   numericToDecimal(row.CurrentBalance),
		AvailableBalance: numericToDecimal(row.AvailableBalance),
		LastUpdated:      row.LastUpdated.Time,
	}
}

func rowToGLBalance(row generated.GlBalance) *domain.GLBalance {
	return &domain.GLBalance{
		GLNum:          row.GlNum,
		TranDate:       pgToDate(row.TranDate),
		OpeningBal:     numericToDecimal(row.OpeningBal),
		DrSummation:    numericToDecimal(row.DrSummation),
		CrSummation:    numericToDecimal(row.CrSummation),
		CurrentBalance: numericToDecimal(row.CurrentBalance),
		LastUpdated:    row.LastUpdated.Time,
	}
}
