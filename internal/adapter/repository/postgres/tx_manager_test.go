package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func TestTxManagerBeginError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("begin failed")
	mockPool.ExpectBegin().WillReturnError(mockErr)

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if !errors.Is(err, mockErr) {
		t.Fatalf("expected begin error, got err=%v tx=%v", err, tx)
	}
}

// Allocating an account number locks the GL counter and stores the next
// value in one transaction; a failed write rolls the lock back.
func TestTxManagerAccountSequenceAllocation(t *testing.T) {
	const glNum = "110101001"
	writeErr := errors.New("connection reset")

	tests := []struct {
		name   string
		setErr error
	}{
		{name: "commit"},
		{name: "rollback on failed write", setErr: writeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool := newMockPool(t)
			mockPool.ExpectBegin()
			mockPool.ExpectExec("INSERT INTO account_sequences").
				WithArgs(glNum).
				WillReturnResult(pgxmock.NewResult("INSERT", 0))
			mockPool.ExpectQuery("FOR UPDATE").
				WithArgs(glNum).
				WillReturnRows(pgxmock.NewRows([]string{"seq_number"}).AddRow(int32(7)))
			update := mockPool.ExpectExec("UPDATE account_sequences").
				WithArgs(glNum, int32(8), pgxmock.AnyArg())
			if tt.setErr != nil {
				update.WillReturnError(tt.setErr)
				mockPool.ExpectRollback()
			} else {
				update.WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mockPool.ExpectCommit()
			}

			ctx := context.Background()
			tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
			if err != nil {
				t.Fatalf("begin: %v", err)
			}

			repo := newSequenceRepository(mockPool)
			seq, err := repo.LockAccountSeq(ctx, tx, glNum)
			if err != nil {
				t.Fatalf("LockAccountSeq: %v", err)
			}

			err = repo.SetAccountSeq(ctx, tx, glNum, seq+1, time.Now())
			if !errors.Is(err, tt.setErr) {
				t.Fatalf("expected %v, got %v", tt.setErr, err)
			}
			if err != nil {
				if err := tx.Rollback(ctx); err != nil {
					t.Fatalf("rollback: %v", err)
				}
			} else if err := tx.Commit(ctx); err != nil {
				t.Fatalf("commit: %v", err)
			}

			assertExpectations(t, mockPool)
		})
	}
}

func TestTxPgxTxRoutesRepositoryCalls(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("pg_advisory_xact_lock").
		WithArgs(int32(1), int32(12345678)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mockPool.ExpectRollback()

	ctx := context.Background()
	tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if tx.(*Tx).PgxTx() == nil {
		t.Fatalf("expected underlying pgx transaction")
	}

	if err := newSequenceRepository(mockPool).LockKey(ctx, tx, 1, 12345678); err != nil {
		t.Fatalf("LockKey: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	assertExpectations(t, mockPool)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
