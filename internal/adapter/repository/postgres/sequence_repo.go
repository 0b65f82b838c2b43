package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

// SequenceRepository implements usecase.SequenceRepository. Account counters
// live in account_sequences; customer ids are derived from the customers table
// under an advisory lock.
type SequenceRepository struct {
	db generated.DBTX
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return newSequenceRepository(pool)
}

func newSequenceRepository(db generated.DBTX) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// LockAccountSeq creates the GL's counter row at zero when missing, then
// locks it FOR UPDATE and returns the last number handed out.
func (r *SequenceRepository) LockAccountSeq(ctx context.Context, tx usecase.Transaction, glNum string) (int, error) {
	q := queriesFor(tx, r.db)

	if err := q.EnsureAccountSequence(ctx, glNum); err != nil {
		return 0, err
	}

	seq, err := q.LockAccountSequence(ctx, glNum)
	return int(seq), err
}

// SetAccountSeq stores the GL's counter. Call it in the tx that locked the row.
func (r *SequenceRepository) SetAccountSeq(ctx context.Context, tx usecase.Transaction, glNum string, seq int, updatedAt time.Time) error {
	return queriesFor(tx, r.db).UpdateAccountSequence(ctx, generated.UpdateAccountSequenceParams{
		GlNum:       glNum,
		SeqNumber:   int32(seq),
		LastUpdated: timeToPgTimestamptz(updatedAt),
	})
}

// LockKey takes a pg_advisory_xact_lock on (namespace, key), released when
// tx ends.
func (r *SequenceRepository) LockKey(ctx context.Context, tx usecase.Transaction, namespace int32, key int32) error {
	return queriesFor(tx, r.db).AdvisoryXactLock(ctx, generated.AdvisoryXactLockParams{
		Namespace: namespace,
		Key:       key,
	})
}

// MaxCustomerAccountSeq returns the highest 3-digit suffix used under prefix, or 0.
func (r *SequenceRepository) MaxCustomerAccountSeq(ctx context.Context, tx usecase.Transaction, prefix string) (int, error) {
	seq, err := queriesFor(tx, r.db).MaxCustomerAccountSeq(ctx, generated.MaxCustomerAccountSeqParams{
		Prefix:    prefix,
		PrefixLen: int32(len(prefix)),
	})
	return int(seq), err
}

// MaxCustomerID returns the highest id in [lo, hi]; ok is false when the range is empty.
func (r *SequenceRepository) MaxCustomerID(ctx context.Context, tx usecase.Transaction, lo, hi int64) (int64, bool, error) {
	id, err := queriesFor(tx, r.db).MaxCustomerID(ctx, generated.MaxCustomerIDParams{Lo: lo, Hi: hi})
	if err != nil || !id.Valid {
		return 0, false, err
	}

	return id.Int64, true, nil
}

// FirstFreeCustomerID returns the lowest unused id in [lo, hi].
func (r *SequenceRepository) FirstFreeCustomerID(ctx context.Context, tx usecase.Transaction, lo, hi int64) (int64, bool, error) {
	id, err := queriesFor(tx, r.db).FirstFreeCustomerID(ctx, generated.FirstFreeCustomerIDParams{Lo: lo, Hi: hi})
	if err != nil || !id.Valid {
		return 0, false, err
	}

	return id.Int64, true, nil
}

// ReserveCustomerID inserts the customers row that claims id.
func (r *SequenceRepository) ReserveCustomerID(ctx context.Context, tx usecase.Transaction, id int64, customerType domain.CustomerType, name string, createdAt time.Time) error {
	return queriesFor(tx, r.db).CreateCustomer(ctx, generated.CreateCustomerParams{
		CustomerID:   id,
		CustomerType: int16(customerType),
		Name:         name,
		CreatedAt:    timeToPgTimestamptz(createdAt),
	})
}
