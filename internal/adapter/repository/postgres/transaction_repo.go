package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// CreateTx inserts every leg of one transaction.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, legs []*domain.Transaction) error {
	queries := queriesFor(tx, r.db)

	for _, leg := range legs {
		err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
			TranID:       leg.TranID,
			BaseTranID:   domain.BaseTranID(leg.TranID),
			AccountNo:    leg.AccountNo,
			DrCr:         string(leg.DrCr),
			TranDate:     dateToPg(leg.TranDate),
			ValueDate:    dateToPg(leg.ValueDate),
			TranCcy:      leg.TranCcy,
			FcyAmt:       decimalToNumeric(leg.FcyAmt),
			ExchangeRate: decimalToNumeric(leg.ExchangeRate),
			LcyAmt:       decimalToNumeric(leg.LcyAmt),
			Narration:    leg.Narration,
			Status:       string(leg.Status),
			CreatedAt:    timeToPgTimestamptz(leg.CreatedAt),
			UpdatedAt:    timeToPgTimestamptz(leg.UpdatedAt),
		})
		if err != nil {
			return fmt.Errorf("insert leg %s: %w", leg.TranID, err)
		}
	}

	return nil
}

// GetByBaseID returns all legs of a transaction.
func (r *TransactionRepository) GetByBaseID(ctx context.Context, baseID string) ([]*domain.Transaction, error) {
	rows, err := r.queries.GetTransactionsByBaseID(ctx, baseID)
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// GetByBaseIDForUpdate returns all legs of a transaction with FOR UPDATE locks.
func (r *TransactionRepository) GetByBaseIDForUpdate(ctx context.Context, tx usecase.Transaction, baseID string) ([]*domain.Transaction, error) {
	rows, err := queriesFor(tx, r.db).GetTransactionsByBaseIDForUpdate(ctx, baseID)
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// GetLegForUpdate locks a single leg.
func (r *TransactionRepository) GetLegForUpdate(ctx context.Context, tx usecase.Transaction, tranID string) (*domain.Transaction, error) {
	row, err := queriesFor(tx, r.db).GetTransactionForUpdate(ctx, tranID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// ListByStatusAndDate returns the legs in status booked on tranDate.
func (r *TransactionRepository) ListByStatusAndDate(ctx context.Context, status domain.TranStatus, tranDate time.Time) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByStatusAndDate(ctx, generated.ListTransactionsByStatusAndDateParams{
		Status:   string(status),
		TranDate: dateToPg(tranDate),
	})
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// ListFutureDue returns future-dated legs whose value date has arrived.
func (r *TransactionRepository) ListFutureDue(ctx context.Context, systemDate time.Time) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListFutureDueTransactions(ctx, dateToPg(systemDate))
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// UpdateStatus moves a leg to status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tranID string, status domain.TranStatus, updatedAt time.Time) error {
	n, err := queriesFor(tx, r.db).UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		TranID:    tranID,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
	}

	return nil
}

// Promote posts a future-dated leg on tranDate.
func (r *TransactionRepository) Promote(ctx context.Context, tx usecase.Transaction, tranID string, tranDate, updatedAt time.Time) error {
	n, err := queriesFor(tx, r.db).PromoteTransaction(ctx, generated.PromoteTransactionParams{
		TranID:    tranID,
		TranDate:  dateToPg(tranDate),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
	}

	return nil
}

// SumByFlag totals LCY debits and credits booked on tranDate in statuses.
func (r *TransactionRepository) SumByFlag(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) (decimal.Decimal, decimal.Decimal, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	row, err := r.queries.SumTransactionsByFlag(ctx, generated.SumTransactionsByFlagParams{
		TranDate: dateToPg(tranDate),
		Statuses: names,
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

// SumForAccount totals the verified and posted legs of one account on tranDate.
func (r *TransactionRepository) SumForAccount(ctx context.Context, accountNo string, tranDate time.Time, useFcy bool) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumAccountTransactions(ctx, generated.SumAccountTransactionsParams{
		AccountNo: accountNo,
		TranDate:  dateToPg(tranDate),
		UseFcy:    useFcy,
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

func rowsToTransactions(rows []generated.Transaction) []*domain.Transaction {
	legs := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		legs = append(legs, rowToTransaction(row))
	}
	return legs
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		TranID:       row.TranID,
		AccountNo:    row.AccountNo,
		DrCr:         domain.DrCr(row.DrCr),
		TranDate:     pgToDate(row.TranDate),
		ValueDate:    pgToDate(row.ValueDate),
		TranCcy:      row.TranCcy,
		FcyAmt:       numericToDecimal(row.FcyAmt),
		ExchangeRate: numericToDecimal(row.ExchangeRate),
		LcyAmt:       numericToDecimal(row.LcyAmt),
		Narration:    row.Narration,
		Status:       domain.TranStatus(row.Status),
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
