package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

func TestMovementPoster_PostsVerifiedLegs(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	id := b.verified(t, "500.00", today)

	result, err := b.movement.Post(b.ctx, today)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if result.Processed() != 2 || result.Errored() != 0 || len(result.Skipped) != 0 {
		t.Fatalf("expected 2 posted, got posted=%d skipped=%d failed=%d", result.Processed(), len(result.Skipped), result.Errored())
	}

	for line, gl := range map[int]string{1: officeCashGL, 2: savingsGL} {
		tranID := domain.LineID(id, line)
		if leg := b.trans.Leg(tranID); leg.Status != domain.TranStatusPosted {
			t.Errorf("leg %s: expected Posted, got %s", tranID, leg.Status)
		}
		movements, _ := b.movements.ListByTranID(b.ctx, tranID)
		if len(movements) != 1 {
			t.Fatalf("leg %s: expected 1 movement, got %d", tranID, len(movements))
		}
		m := movements[0]
		if m.GLNum != gl {
			t.Errorf("leg %s: expected GL %s, got %s", tranID, gl, m.GLNum)
		}
		if m.Source != domain.MovementFromTransaction {
			t.Errorf("leg %s: expected source TRAN, got %s", tranID, m.Source)
		}
		if !m.LcyAmt.Equal(dec("500")) {
			t.Errorf("leg %s: expected amount 500, got %s", tranID, m.LcyAmt)
		}
	}
}

func TestMovementPoster_SecondRunPostsNothing(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	b.verified(t, "500.00", today)

	if _, err := b.movement.Post(b.ctx, today); err != nil {
		t.Fatalf("first Post failed: %v", err)
	}
	result, err := b.movement.Post(b.ctx, today)
	if err != nil {
		t.Fatalf("second Post failed: %v", err)
	}
	if result.Processed() != 0 {
		t.Errorf("expected nothing posted on rerun, got %d", result.Processed())
	}
	if got := len(b.movements.All()); got != 2 {
		t.Errorf("expected 2 movements in total, got %d", got)
	}
}

func TestMovementPoster_SkipsLegWithExistingMovement(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	id := b.verified(t, "500.00", today)

	first := b.trans.Leg(domain.LineID(id, 1))
	existing := domain.NewMovementFromLeg("existing", first, officeCashGL, time.Now())
	if err := b.movements.CreateTx(b.ctx, nil, existing); err != nil {
		t.Fatalf("seed movement: %v", err)
	}

	result, err := b.movement.Post(b.ctx, today)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if len(result.Skipped) != 1 || result.Processed() != 1 {
		t.Fatalf("expected 1 skipped and 1 posted, got skipped=%d posted=%d", len(result.Skipped), result.Processed())
	}
	if result.Skipped[0].TranID != first.TranID {
		t.Errorf("expected %s skipped, got %s", first.TranID, result.Skipped[0].TranID)
	}
}

func TestMovementPoster_FailedLegDoesNotStopBatch(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	id := b.verified(t, "500.00", today)

	failing := domain.LineID(id, 1)
	b.trans.UpdateStatusFunc = func(ctx context.Context, tx usecase.Transaction, tranID string, status domain.TranStatus, updatedAt time.Time) error {
		if tranID == failing {
			return errors.New("connection reset")
		}
		return nil
	}

	result, err := b.movement.Post(b.ctx, today)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if result.Errored() != 1 || result.Processed() != 1 {
		t.Fatalf("expected 1 failed and 1 posted, got failed=%d posted=%d", result.Errored(), result.Processed())
	}
	if result.Failed[0].Item.TranID != failing {
		t.Errorf("expected %s to fail, got %s", failing, result.Failed[0].Item.TranID)
	}
}

func TestMovementPoster_RecordsBatchMetrics(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	b.verified(t, "500.00", today)

	m := metrics.New(prometheus.NewRegistry())
	poster := usecase.NewMovementPoster(b.txManager, nil, b.trans, b.movements, b.gls, b.resolver, b.idGen, zerolog.Nop(), m)
	if _, err := poster.Post(b.ctx, today); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if got := testutil.ToFloat64(m.BatchItems.WithLabelValues(domain.JobMovementPosting, metrics.OutcomeSucceeded)); got != 2 {
		t.Errorf("expected 2 succeeded items, got %v", got)
	}
}

func pendingAccrual(id, glAccount string, flag domain.DrCr, amount string, date time.Time) *domain.InterestAccrual {
	return &domain.InterestAccrual{
		AccrTranID:   id,
		AccountNo:    savingsAccountNo,
		AccrualDate:  date,
		TranDate:     date,
		ValueDate:    date,
		DrCr:         flag,
		GLAccountNo:  glAccount,
		InterestRate: dec("10"),
		Amount:       dec(amount),
		TranCcy:      "BDT",
		FcyAmt:       dec(amount),
		ExchangeRate: dec("1"),
		LcyAmt:       dec(amount),
		Narration:    "daily interest",
		Status:       domain.AccrualPending,
	}
}

func TestAccrualPoster_Post(t *testing.T) {
	today := mustDate(t, "2025-01-15")

	tests := []struct {
		name       string
		accruals   []*domain.InterestAccrual
		wantPosted int
		wantFailed int
		wantGLs    []string
		wantErrIs  error
	}{
		{
			name: "posts both sides",
			accruals: []*domain.InterestAccrual{
				pendingAccrual("S20250115001", interestExpGL, domain.Debit, "27.40", today),
				pendingAccrual("S20250115002", interestPayGL+"  ", domain.Credit, "27.40", today),
			},
			wantPosted: 2,
			wantGLs:    []string{interestExpGL, interestPayGL},
		},
		{
			name: "GL account number longer than a GL",
			accruals: []*domain.InterestAccrual{
				pendingAccrual("S20250115003", interestExpGL+"0001", domain.Debit, "1.00", today),
			},
			wantPosted: 1,
			wantGLs:    []string{interestExpGL},
		},
		{
			name: "blank GL fails",
			accruals: []*domain.InterestAccrual{
				pendingAccrual("S20250115004", "   ", domain.Debit, "1.00", today),
			},
			wantFailed: 1,
			wantErrIs:  domain.ErrGLNotFound,
		},
		{
			name: "unknown GL fails",
			accruals: []*domain.InterestAccrual{
				pendingAccrual("S20250115005", "999999999", domain.Debit, "1.00", today),
			},
			wantFailed: 1,
			wantErrIs:  domain.ErrGLNotFound,
		},
		{
			name: "other dates ignored",
			accruals: []*domain.InterestAccrual{
				pendingAccrual("S20250114001", interestExpGL, domain.Debit, "1.00", today.AddDate(0, 0, -1)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBank(t)
			repo := mocks.NewMockAccrualRepository(tt.accruals...)
			poster := usecase.NewAccrualPoster(b.txManager, nil, repo, b.gls, b.idGen, zerolog.Nop(), nil)

			result, err := poster.Post(b.ctx, today)
			if err != nil {
				t.Fatalf("Post failed: %v", err)
			}
			if result.Processed() != tt.wantPosted || result.Errored() != tt.wantFailed {
				t.Fatalf("expected posted=%d failed=%d, got posted=%d failed=%d",
					tt.wantPosted, tt.wantFailed, result.Processed(), result.Errored())
			}
			if tt.wantErrIs != nil && !errors.Is(result.Failed[0].Err, tt.wantErrIs) {
				t.Errorf("expected error %v, got %v", tt.wantErrIs, result.Failed[0].Err)
			}

			movements := repo.Movements()
			if len(movements) != len(tt.wantGLs) {
				t.Fatalf("expected %d movements, got %d", len(tt.wantGLs), len(movements))
			}
			for i, gl := range tt.wantGLs {
				if movements[i].GLNum != gl {
					t.Errorf("movement %d: expected GL %s, got %s", i, gl, movements[i].GLNum)
				}
				if !movements[i].AccrualDate.Equal(today) {
					t.Errorf("movement %d: expected accrual date %s, got %s", i, today, movements[i].AccrualDate)
				}
			}
			for _, a := range result.Succeeded {
				if a.Status != domain.AccrualPosted {
					t.Errorf("accrual %s: expected Posted, got %s", a.AccrTranID, a.Status)
				}
			}
		})
	}
}

func TestAccrualPoster_RerunPostsNothing(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	repo := mocks.NewMockAccrualRepository(pendingAccrual("S20250115001", interestExpGL, domain.Debit, "27.40", today))
	poster := usecase.NewAccrualPoster(b.txManager, nil, repo, b.gls, b.idGen, zerolog.Nop(), nil)

	if _, err := poster.Post(b.ctx, today); err != nil {
		t.Fatalf("first Post failed: %v", err)
	}
	result, err := poster.Post(b.ctx, today)
	if err != nil {
		t.Fatalf("second Post failed: %v", err)
	}
	if result.Processed() != 0 || len(result.Skipped) != 0 {
		t.Errorf("expected an empty rerun, got posted=%d skipped=%d", result.Processed(), len(result.Skipped))
	}
	if got := len(repo.Movements()); got != 1 {
		t.Errorf("expected 1 movement, got %d", got)
	}
}
