package usecase_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

func TestBODUseCase_PromotesDueFutureLegs(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	valueDate := today.AddDate(0, 0, 2)

	id := b.verified(t, "1000", valueDate)
	for line := 1; line <= 2; line++ {
		leg := b.trans.Leg(domain.LineID(id, line))
		if leg.Status != domain.TranStatusFuture {
			t.Fatalf("leg %s: expected Future after verify, got %s", leg.TranID, leg.Status)
		}
	}

	if err := b.clock.SetSystemDate(b.ctx, valueDate, "ADMIN"); err != nil {
		t.Fatalf("SetSystemDate failed: %v", err)
	}

	result, err := b.bod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Processed() != 2 || result.Errored() != 0 {
		t.Fatalf("expected 2 promoted, got promoted=%d failed=%d", result.Processed(), result.Errored())
	}

	tests := []struct {
		line         int
		glNum        string
		balanceAfter string
	}{
		{line: 1, glNum: officeCashGL, balanceAfter: "-1000"},
		{line: 2, glNum: savingsGL, balanceAfter: "-1000"},
	}
	for _, tt := range tests {
		tranID := domain.LineID(id, tt.line)
		leg := b.trans.Leg(tranID)
		if leg.Status != domain.TranStatusPosted {
			t.Errorf("leg %s: expected Posted, got %s", tranID, leg.Status)
		}
		if !leg.TranDate.Equal(valueDate) {
			t.Errorf("leg %s: expected tran date %s, got %s", tranID, valueDate, leg.TranDate)
		}

		movements, _ := b.movements.ListByTranID(b.ctx, tranID)
		if len(movements) != 1 {
			t.Fatalf("leg %s: expected 1 movement, got %d", tranID, len(movements))
		}
		if movements[0].GLNum != tt.glNum {
			t.Errorf("leg %s: expected GL %s, got %s", tranID, tt.glNum, movements[0].GLNum)
		}
		if !movements[0].BalanceAfter.Equal(dec(tt.balanceAfter)) {
			t.Errorf("leg %s: expected balance after %s, got %s", tranID, tt.balanceAfter, movements[0].BalanceAfter)
		}

		log, err := b.vdLogs.GetByTranID(b.ctx, tranID)
		if err != nil {
			t.Fatalf("value date log for %s: %v", tranID, err)
		}
		if log.Flag() != "Y" {
			t.Errorf("leg %s: expected adjustment flag Y, got %s", tranID, log.Flag())
		}
	}

	savings, ok := b.balances.AccountBalance(savingsAccountNo, valueDate)
	if !ok || !savings.CurrentBalance.Equal(dec("1000")) {
		t.Errorf("expected savings balance 1000 on %s, got %v (found=%v)", valueDate.Format(domain.DateLayout), savings.CurrentBalance, ok)
	}

	rerun, err := b.bod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if rerun.Processed() != 0 {
		t.Errorf("expected nothing to promote on rerun, got %d", rerun.Processed())
	}

	found := false
	for _, typ := range b.outbox.types() {
		if typ == domain.EventTypeBODCompleted {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s event", domain.EventTypeBODCompleted)
	}
}

func TestBODUseCase_NotYetDue(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	id := b.verified(t, "1000", today.AddDate(0, 0, 3))

	result, err := b.bod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Processed() != 0 {
		t.Fatalf("expected nothing promoted, got %d", result.Processed())
	}
	if leg := b.trans.Leg(domain.LineID(id, 1)); leg.Status != domain.TranStatusFuture {
		t.Errorf("expected leg to stay Future, got %s", leg.Status)
	}
}

// A future-dated transaction is counted once across verify, the EOD runs
// before its value date, BOD on the value date and the EOD that follows.
func TestFutureDatedLifecycle(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	valueDate := today.AddDate(0, 0, 2)
	b.verified(t, "1000", valueDate)

	for day := 0; day < 2; day++ {
		if _, err := b.bod.Run(b.ctx, "ADMIN"); err != nil {
			t.Fatalf("BOD day %d failed: %v", day, err)
		}
		summary, err := b.eod.Run(b.ctx, "ADMIN")
		if err != nil {
			t.Fatalf("EOD day %d failed: %v", day, err)
		}
		if summary.Status != domain.EODSuccess {
			t.Fatalf("EOD day %d: expected SUCCESS, got %s: %s", day, summary.Status, summary.ErrorMessage)
		}
		if summary.MovementsPosted != 0 {
			t.Errorf("EOD day %d: expected no movements before the value date, got %d", day, summary.MovementsPosted)
		}
	}

	date, err := b.clock.SystemDate(b.ctx)
	if err != nil {
		t.Fatalf("SystemDate failed: %v", err)
	}
	if !date.Equal(valueDate) {
		t.Fatalf("expected system date %s, got %s", valueDate, date)
	}

	result, err := b.bod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("BOD on value date failed: %v", err)
	}
	if result.Processed() != 2 {
		t.Fatalf("expected 2 legs promoted, got %d", result.Processed())
	}

	summary, err := b.eod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("EOD on value date failed: %v", err)
	}
	if summary.Status != domain.EODSuccess {
		t.Fatalf("expected SUCCESS, got %s: %s", summary.Status, summary.ErrorMessage)
	}
	if !summary.Balanced || !summary.TotalDebits.Equal(dec("1000")) {
		t.Errorf("expected balanced day with 1000 debits, got balanced=%v debits=%s", summary.Balanced, summary.TotalDebits)
	}

	savings, _ := b.balances.AccountBalance(savingsAccountNo, valueDate)
	if !savings.CurrentBalance.Equal(dec("1000")) {
		t.Errorf("expected savings balance 1000, got %s", savings.CurrentBalance)
	}
	gl, _ := b.balances.GLBalance(savingsGL, valueDate)
	if !gl.CurrentBalance.Equal(dec("-1000")) {
		t.Errorf("expected savings GL balance -1000, got %s", gl.CurrentBalance)
	}
	if n := len(b.movements.All()); n != 2 {
		t.Errorf("expected 2 movements in total, got %d", n)
	}
}

func TestBODUseCase_InsufficientBalanceKeepsLegFuture(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)

	legs := []*domain.Transaction{
		{TranID: "FUT-1", AccountNo: savingsAccountNo, DrCr: domain.Debit},
		{TranID: "FUT-2", AccountNo: officeAccountNo, DrCr: domain.Credit},
	}
	for _, l := range legs {
		l.TranDate = today.AddDate(0, 0, -1)
		l.ValueDate = today
		l.TranCcy = "BDT"
		l.FcyAmt = dec("500")
		l.LcyAmt = dec("500")
		l.ExchangeRate = dec("1")
		l.Status = domain.TranStatusFuture
	}
	if err := b.trans.CreateTx(b.ctx, nil, legs); err != nil {
		t.Fatalf("seed legs: %v", err)
	}

	result, err := b.bod.Run(b.ctx, "ADMIN")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Errored() != 1 || result.Processed() != 1 {
		t.Fatalf("expected 1 failed and 1 promoted, got failed=%d promoted=%d", result.Errored(), result.Processed())
	}
	failure := result.Failed[0]
	if failure.Item.TranID != "FUT-1" {
		t.Errorf("expected FUT-1 to fail, got %s", failure.Item.TranID)
	}
	if !errors.Is(failure.Err, domain.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", failure.Err)
	}
	if leg := b.trans.Leg("FUT-1"); leg.Status != domain.TranStatusFuture {
		t.Errorf("expected FUT-1 to stay Future, got %s", leg.Status)
	}

	logs, _ := b.jobLogs.ListByDate(b.ctx, today)
	if len(logs) != 1 || logs[0].Status != domain.JobFailed {
		t.Fatalf("expected one failed BOD job log, got %+v", logs)
	}
}

func TestBODUseCase_LockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newBank(t)

	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().TryLock(gomock.Any(), usecase.LockKeyBOD, usecase.BatchLockTTL).Return("", false, nil)

	deps := b.bodDeps
	deps.Locker = locker
	if _, err := usecase.NewBODUseCase(deps).Run(b.ctx, "ADMIN"); !errors.Is(err, domain.ErrBatchInProgress) {
		t.Fatalf("expected ErrBatchInProgress, got %v", err)
	}
}
