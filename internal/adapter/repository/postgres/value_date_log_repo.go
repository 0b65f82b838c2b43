package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

const (
	flagYes = "Y"
	flagNo  = "N"
)

// ValueDateLogRepository implements usecase.ValueDateLogRepository.
type ValueDateLogRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewValueDateLogRepository creates a new ValueDateLogRepository.
func NewValueDateLogRepository(pool *pgxpool.Pool) *ValueDateLogRepository {
	return newValueDateLogRepository(pool)
}

func newValueDateLogRepository(db generated.DBTX) *ValueDateLogRepository {
	return &ValueDateLogRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// CreateTx records a back- or forward-dated leg.
func (r *ValueDateLogRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.ValueDateLog) error {
	return queriesFor(tx, r.db).CreateValueDateLog(ctx, generated.CreateValueDateLogParams{
		TranID:           log.TranID,
		ValueDate:        dateToPg(log.ValueDate),
		DaysDifference:   int32(log.DaysDifference),
		DeltaInterestAmt: decimalToNumeric(log.DeltaInterestAmt),
		AdjustmentPosted: boolFlag(log.AdjustmentPosted),
		CreatedAt:        timeToPgTimestamptz(log.CreatedAt),
	})
}

// MarkPosted flags the leg's interest adjustment as posted.
func (r *ValueDateLogRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, tranID string) error {
	n, err := queriesFor(tx, r.db).MarkValueDateAdjustmentPosted(ctx, tranID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
	}

	return nil
}

// GetByTranID returns the log row for a leg.
func (r *ValueDateLogRepository) GetByTranID(ctx context.Context, tranID string) (*domain.ValueDateLog, error) {
	row, err := r.queries.GetValueDateLog(ctx, tranID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
		}
		return nil, err
	}

	return &domain.ValueDateLog{
		TranID:           row.TranID,
		ValueDate:        pgToDate(row.ValueDate),
		DaysDifference:   int(row.DaysDifference),
		DeltaInterestAmt: numericToDecimal(row.DeltaInterestAmt),
		AdjustmentPosted: row.AdjustmentPosted == flagYes,
		CreatedAt:        row.CreatedAt.Time,
	}, nil
}

func boolFlag(b bool) string {
	if b {
		return flagYes
	}
	return flagNo
}
