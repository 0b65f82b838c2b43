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

// AccrualRepository implements usecase.AccrualRepository.
type AccrualRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewAccrualRepository creates a new AccrualRepository.
func NewAccrualRepository(pool *pgxpool.Pool) *AccrualRepository {
	return newAccrualRepository(pool)
}

func newAccrualRepository(db generated.DBTX) *AccrualRepository {
	return &AccrualRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// ListPending returns the pending accruals for accrualDate.
func (r *AccrualRepository) ListPending(ctx context.Context, accrualDate time.Time) ([]*domain.InterestAccrual, error) {
	rows, err := r.queries.ListPendingAccruals(ctx, dateToPg(accrualDate))
	if err != nil {
		return nil, err
	}

	accruals := make([]*domain.InterestAccrual, 0, len(rows))
	for _, row := range rows {
		accruals = append(accruals, &domain.InterestAccrual{
			AccrTranID:   row.AccrTranID,
			AccountNo:    row.AccountNo,
			AccrualDate:  pgToDate(row.AccrualDate),
			TranDate:     pgToDate(row.TranDate),
			ValueDate:    pgToDate(row.ValueDate),
			DrCr:         domain.DrCr(row.DrCr),
			GLAccountNo:  row.GlAccountNo,
			InterestRate: numericToDecimal(row.InterestRate),
			Amount:       numericToDecimal(row.Amount),
			TranCcy:      row.TranCcy,
			FcyAmt:       numericToDecimal(row.FcyAmt),
			ExchangeRate: numericToDecimal(row.ExchangeRate),
			LcyAmt:       numericToDecimal(row.LcyAmt),
			Narration:    row.Narration,
			Status:       domain.AccrualStatus(row.Status),
		})
	}

	return accruals, nil
}

// UpdateStatus moves an accrual to status.
func (r *AccrualRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, accrTranID string, status domain.AccrualStatus) error {
	n, err := queriesFor(tx, r.db).UpdateAccrualStatus(ctx, generated.UpdateAccrualStatusParams{
		AccrTranID: accrTranID,
		Status:     string(status),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("accrual %s not found", accrTranID)
	}

	return nil
}

// MovementExists reports whether the accrual already has its GL movement.
func (r *AccrualRepository) MovementExists(ctx context.Context, accrTranID string) (bool, error) {
	return r.queries.ExistsAccrualMovement(ctx, accrTranID)
}

// CreateMovement inserts an accrual GL movement within a transaction.
func (r *AccrualRepository) CreateMovement(ctx context.Context, tx usecase.Transaction, m *domain.GLMovementAccrual) error {
	return queriesFor(tx, r.db).CreateGLMovementAccrual(ctx, generated.CreateGLMovementAccrualParams{
		ID:           m.ID,
		AccrTranID:   m.AccrTranID,
		GlNum:        m.GLNum,
		DrCr:         string(m.DrCr),
		AccrualDate:  dateToPg(m.AccrualDate),
		TranDate:     dateToPg(m.TranDate),
		Amount:       decimalToNumeric(m.Amount),
		TranCcy:      m.TranCcy,
		FcyAmt:       decimalToNumeric(m.FcyAmt),
		ExchangeRate: decimalToNumeric(m.ExchangeRate),
		LcyAmt:       decimalToNumeric(m.LcyAmt),
		Narration:    m.Narration,
		Status:       string(m.Status),
		CreatedAt:    timeToPgTimestamptz(m.CreatedAt),
	})
}

// SumMovementsByGL totals the accrual debits and credits on a GL for the day.
func (r *AccrualRepository) SumMovementsByGL(ctx context.Context, glNum string, accrualDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumAccrualMovements(ctx, generated.SumAccrualMovementsParams{
		GlNum:       glNum,
		AccrualDate: dateToPg(accrualDate),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

// ListMovementGLNums returns the GLs that received accrual movements on accrualDate.
func (r *AccrualRepository) ListMovementGLNums(ctx context.Context, accrualDate time.Time) ([]string, error) {
	return r.queries.ListAccrualMovementGLNums(ctx, dateToPg(accrualDate))
}

// CreateAccruals inserts a batch of pending accruals within a transaction.
func (r *AccrualRepository) CreateAccruals(ctx context.Context, tx usecase.Transaction, accruals []*domain.InterestAccrual) error {
	q := queriesFor(tx, r.db)

	for _, a := range accruals {
		err := q.CreateInterestAccrual(ctx, generated.CreateInterestAccrualParams{
			AccrTranID:   a.AccrTranID,
			AccountNo:    a.AccountNo,
			AccrualDate:  dateToPg(a.AccrualDate),
			TranDate:     dateToPg(a.TranDate),
			ValueDate:    dateToPg(a.ValueDate),
			DrCr:         string(a.DrCr),
			GlAccountNo:  a.GLAccountNo,
			InterestRate: decimalToNumeric(a.InterestRate),
			Amount:       decimalToNumeric(a.Amount),
			TranCcy:      a.TranCcy,
			FcyAmt:       decimalToNumeric(a.FcyAmt),
			ExchangeRate: decimalToNumeric(a.ExchangeRate),
			LcyAmt:       decimalToNumeric(a.LcyAmt),
			Narration:    a.Narration,
			Status:       string(a.Status),
		})
		if err != nil {
			return fmt.Errorf("insert accrual %s: %w", a.AccrTranID, err)
		}
	}

	return nil
}

// MaxSequence returns the highest accrual sequence used on accrualDate, or 0.
func (r *AccrualRepository) MaxSequence(ctx context.Context, accrualDate time.Time) (int, error) {
	seq, err := r.queries.MaxAccrualSequence(ctx, dateToPg(accrualDate))
	return int(seq), err
}

// ListAccountNos returns the accounts that accrued interest on accrualDate.
func (r *AccrualRepository) ListAccountNos(ctx context.Context, accrualDate time.Time) ([]string, error) {
	return r.queries.ListAccruedAccountNos(ctx, dateToPg(accrualDate))
}

// SumForAccount totals an account's accrual debits and credits for the day,
// in account currency.
func (r *AccrualRepository) SumForAccount(ctx context.Context, accountNo string, accrualDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumAccountAccruals(ctx, generated.SumAccountAccrualsParams{
		AccountNo:   accountNo,
		AccrualDate: dateToPg(accrualDate),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

// LatestBalanceBefore returns the newest accrual balance strictly before date, or nil.
func (r *AccrualRepository) LatestBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalanceAccrual, error) {
	row, err := r.queries.GetLatestAccrualBalanceBefore(ctx, generated.GetLatestAccrualBalanceBeforeParams{
		AccountNo: accountNo,
		TranDate:  dateToPg(date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.AccountBalanceAccrual{
		AccountNo:      row.AccountNo,
		GLNum:          row.GlNum,
		TranDate:       pgToDate(row.TranDate),
		Currency:       row.Currency,
		OpeningBal:     numericToDecimal(row.OpeningBal),
		DrSummation:    numericToDecimal(row.DrSummation),
		CrSummation:    numericToDecimal(row.CrSummation),
		ClosingBal:     numericToDecimal(row.ClosingBal),
		InterestAmount: numericToDecimal(row.InterestAmount),
		LastUpdated:    row.LastUpdated.Time,
	}, nil
}

// UpsertBalance writes the account's accrual balance for the day.
func (r *AccrualRepository) UpsertBalance(ctx context.Context, tx usecase.Transaction, b *domain.AccountBalanceAccrual) error {
	return queriesFor(tx, r.db).UpsertAccrualBalance(ctx, generated.UpsertAccrualBalanceParams{
		AccountNo:      b.AccountNo,
		TranDate:       dateToPg(b.TranDate),
		GlNum:          b.GLNum,
		Currency:       b.Currency,
		OpeningBal:     decimalToNumeric(b.OpeningBal),
		DrSummation:    decimalToNumeric(b.DrSummation),
		CrSummation:    decimalToNumeric(b.CrSummation),
		ClosingBal:     decimalToNumeric(b.ClosingBal),
		InterestAmount: decimalToNumeric(b.InterestAmount),
		LastUpdated:    timeToPgTimestamptz(b.LastUpdated),
	})
}
