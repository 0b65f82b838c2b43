package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

// balanceBook applies intraday postings to the day's balance snapshots.
// Rows are locked for the rest of the caller's transaction.
type balanceBook struct {
	repo BalanceRepository
}

func (b balanceBook) applyAccount(ctx context.Context, tx Transaction, accountNo, currency string, flag domain.DrCr, amount decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	bal, err := b.repo.LockAccountBalance(ctx, tx, accountNo, currency, date)
	if err != nil {
		return decimal.Zero, err
	}

	if flag == domain.Debit {
		bal.DrSummation = bal.DrSummation.Add(amount)
	} else {
		bal.CrSummation = bal.CrSummation.Add(amount)
	}
	bal.CurrentBalance = domain.ApplyAccountLeg(bal.CurrentBalance, flag, amount)
	bal.AvailableBalance = bal.CurrentBalance
	bal.LastUpdated = time.Now().UTC()

	if err := b.repo.UpsertAccountBalance(ctx, tx, bal); err != nil {
		return decimal.Zero, err
	}
	return bal.CurrentBalance, nil
}

func (b balanceBook) applyGL(ctx context.Context, tx Transaction, glNum string, flag domain.DrCr, amount decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	bal, err := b.repo.LockGLBalance(ctx, tx, glNum, date)
	if err != nil {
		return decimal.Zero, err
	}

	if flag == domain.Debit {
		bal.DrSummation = bal.DrSummation.Add(amount)
	} else {
		bal.CrSummation = bal.CrSummation.Add(amount)
	}
	bal.CurrentBalance = domain.ApplyGLLeg(glNum, bal.CurrentBalance, flag, amount)
	bal.LastUpdated = time.Now().UTC()

	if err := b.repo.UpsertGLBalance(ctx, tx, bal); err != nil {
		return decimal.Zero, err
	}
	return bal.CurrentBalance, nil
}
