package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

// GLMovementRepository implements usecase.GLMovementRepository.
type GLMovementRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewGLMovementRepository creates a new GLMovementRepository.
func NewGLMovementRepository(pool *pgxpool.Pool) *GLMovementRepository {
	return newGLMovementRepository(pool)
}

func newGLMovementRepository(db generated.DBTX) *GLMovementRepository {
	return &GLMovementRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// CreateTx inserts a GL movement within a transaction.
func (r *GLMovementRepository) CreateTx(ctx context.Context, tx usecase.Transaction, m *domain.GLMovement) error {
	return queriesFor(tx, r.db).CreateGLMovement(ctx, generated.CreateGLMovementParams{
		ID:           m.ID,
		TranID:       m.TranID,
		GlNum:        m.GLNum,
		DrCr:         string(m.DrCr),
		TranDate:     dateToPg(m.TranDate),
		ValueDate:    dateToPg(m.ValueDate),
		Amount:       decimalToNumeric(m.Amount),
		TranCcy:      m.TranCcy,
		FcyAmt:       decimalToNumeric(m.FcyAmt),
		LcyAmt:       decimalToNumeric(m.LcyAmt),
		BalanceAfter: decimalToNumeric(m.BalanceAfter),
		Narration:    m.Narration,
		Source:       string(m.Source),
		CreatedAt:    timeToPgTimestamptz(m.CreatedAt),
	})
}

// ExistsForTransaction reports whether a leg already has its transaction movement.
func (r *GLMovementRepository) ExistsForTransaction(ctx context.Context, tranID string) (bool, error) {
	return r.queries.ExistsTransactionMovement(ctx, tranID)
}

// ListByTranID returns the movements carrying tranID.
func (r *GLMovementRepository) ListByTranID(ctx context.Context, tranID string) ([]*domain.GLMovement, error) {
	rows, err := r.queries.ListGLMovementsByTranID(ctx, tranID)
	if err != nil {
		return nil, err
	}

	movements := make([]*domain.GLMovement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, &domain.GLMovement{
			ID:           row.ID,
			TranID:       row.TranID,
			GLNum:        row.GlNum,
			DrCr:         domain.DrCr(row.DrCr),
			TranDate:     pgToDate(row.TranDate),
			ValueDate:    pgToDate(row.ValueDate),
			Amount:       numericToDecimal(row.Amount),
			TranCcy:      row.TranCcy,
			FcyAmt:       numericToDecimal(row.FcyAmt),
			LcyAmt:       numericToDecimal(row.LcyAmt),
			BalanceAfter: numericToDecimal(row.BalanceAfter),
			Narration:    row.Narration,
			Source:       domain.MovementSource(row.Source),
			CreatedAt:    row.CreatedAt.Time,
		})
	}

	return movements, nil
}

// SumByGL totals the LCY debits and credits moved on a GL for the day.
func (r *GLMovementRepository) SumByGL(ctx context.Context, glNum string, tranDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumGLMovements(ctx, generated.SumGLMovementsParams{
		GlNum:    glNum,
		TranDate: dateToPg(tranDate),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

// ListGLNums returns the GLs that moved on tranDate.
func (r *GLMovementRepository) ListGLNums(ctx context.Context, tranDate time.Time) ([]string, error) {
	return r.queries.ListGLMovementGLNums(ctx, dateToPg(tranDate))
}
