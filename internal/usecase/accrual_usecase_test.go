package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/corebank/internal/domain"
)

const (
	loanGL        = "210201001"
	loanAccountNo = "123456786001"
)

// withAccrualBook adds a loan account, a dormant account and a JPY account
// to the bank and seeds yesterday's closing balances.
func withAccrualBook(t *testing.T, b *bank) {
	t.Helper()
	yesterday := mustDate(t, testSystemDate).AddDate(0, 0, -1)

	b.products.AddSubProduct(&domain.SubProduct{
		ID: 30, ProductID: 1, Code: "ODBDT", Name: "Overdraft BDT", CumGLNum: loanGL,
		EffectiveInterestRate:           dec("12"),
		InterestReceivableExpenditureGL: interestExpGL,
		InterestIncomePayableGL:         interestPayGL,
	})
	for _, a := range []*domain.CustomerAccount{
		{No: "123456781003", CustomerID: 12345678, SubProductRf: 10, GL: savingsGL, Ccy: "BDT", State: domain.AccountStatusDormant},
		{No: "123456781004", CustomerID: 12345678, SubProductRf: 10, GL: savingsGL, Ccy: "JPY", State: domain.AccountStatusActive},
		{No: loanAccountNo, CustomerID: 12345678, SubProductRf: 30, GL: loanGL, Ccy: "BDT", State: domain.AccountStatusActive},
	} {
		require.NoError(t, b.accounts.CreateCustomerAccount(b.ctx, nil, a))
	}

	b.seedBalance(t, savingsAccountNo, "BDT", "5000", yesterday)
	b.seedBalance(t, usdAccountNo, "USD", "100", yesterday)
	b.seedBalance(t, "123456781003", "BDT", "5000", yesterday)
	b.seedBalance(t, "123456781004", "JPY", "100", yesterday)
	b.seedBalance(t, loanAccountNo, "BDT", "-2500", yesterday)
}

func TestAccrualGenerator_Generate(t *testing.T) {
	b := newBank(t)
	withAccrualBook(t, b)
	today := mustDate(t, testSystemDate)

	result, err := b.accrGen.Generate(b.ctx, today)
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 3)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "123456781004", result.Failed[0].Item.No)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrCurrencyNotAllowed)

	tests := []struct {
		id        string
		accountNo string
		drCr      domain.DrCr
		glNum     string
		amount    string
		lcy       string
		narration string
	}{
		{"S20250115000000001-1", savingsAccountNo, domain.Debit, interestExpGL, "1.37", "1.37", "Interest Expenditure Accrual - " + savingsAccountNo},
		{"S20250115000000001-2", savingsAccountNo, domain.Credit, interestPayGL, "1.37", "1.37", "Interest Payable Accrual - " + savingsAccountNo},
		{"S20250115000000002-1", usdAccountNo, domain.Debit, interestExpGL, "0.03", "3.31", "Interest Expenditure Accrual - " + usdAccountNo},
		{"S20250115000000002-2", usdAccountNo, domain.Credit, interestPayGL, "0.03", "3.31", "Interest Payable Accrual - " + usdAccountNo},
		{"S20250115000000003-1", loanAccountNo, domain.Debit, interestExpGL, "0.82", "0.82", "Interest Receivable Accrual - " + loanAccountNo},
		{"S20250115000000003-2", loanAccountNo, domain.Credit, interestPayGL, "0.82", "0.82", "Interest Income Accrual - " + loanAccountNo},
	}

	accruals := b.accruals.Accruals()
	require.Len(t, accruals, len(tests))
	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a := accruals[i]
			assert.Equal(t, tt.id, a.AccrTranID)
			assert.Equal(t, tt.accountNo, a.AccountNo)
			assert.Equal(t, tt.drCr, a.DrCr)
			assert.Equal(t, tt.glNum, a.GLNum())
			assert.True(t, a.Amount.Equal(dec(tt.amount)), "amount %s", a.Amount)
			assert.True(t, a.LcyAmt.Equal(dec(tt.lcy)), "lcy %s", a.LcyAmt)
			assert.Equal(t, tt.narration, a.Narration)
			assert.Equal(t, domain.AccrualPending, a.Status)
			assert.True(t, a.AccrualDate.Equal(today))
		})
	}
}

func TestAccrualGenerator_RerunSkipsAccruedAccounts(t *testing.T) {
	b := newBank(t)
	withAccrualBook(t, b)
	today := mustDate(t, testSystemDate)

	_, err := b.accrGen.Generate(b.ctx, today)
	require.NoError(t, err)

	result, err := b.accrGen.Generate(b.ctx, today)
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.Len(t, result.Skipped, 3)
	assert.Len(t, b.accruals.Accruals(), 6)
}

func TestAccrualGenerator_NothingDueOnZeroBalances(t *testing.T) {
	b := newBank(t)

	result, err := b.accrGen.Generate(b.ctx, mustDate(t, testSystemDate))
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Empty(t, b.accruals.Accruals())
}

func TestAccrualGenerator_IncludesSameDayLegs(t *testing.T) {
	b := newBank(t)
	today := mustDate(t, testSystemDate)
	b.verified(t, "73000", today)

	_, err := b.accrGen.Generate(b.ctx, today)
	require.NoError(t, err)

	accruals := b.accruals.Accruals()
	require.Len(t, accruals, 2)
	assert.True(t, accruals[0].Amount.Equal(dec("20")), "amount %s", accruals[0].Amount)
}

func TestEODAggregator_UpdateAccrualBalances(t *testing.T) {
	b := newBank(t)
	withAccrualBook(t, b)
	today := mustDate(t, testSystemDate)

	require.NoError(t, b.accruals.UpsertBalance(b.ctx, nil, &domain.AccountBalanceAccrual{
		AccountNo:  savingsAccountNo,
		GLNum:      savingsGL,
		TranDate:   today.AddDate(0, 0, -1),
		Currency:   "BDT",
		ClosingBal: dec("5"),
	}))

	_, err := b.accrGen.Generate(b.ctx, today)
	require.NoError(t, err)

	n, err := b.agg.UpdateAccrualBalances(b.ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tests := []struct {
		accountNo    string
		opening      string
		debits       string
		credits      string
		closing      string
		interest     string
		wantCurrency string
	}{
		{savingsAccountNo, "5", "0", "1.37", "6.37", "1.37", "BDT"},
		{usdAccountNo, "0", "0", "0.03", "0.03", "0.03", "USD"},
		{loanAccountNo, "0", "0.82", "0", "-0.82", "-0.82", "BDT"},
	}

	for _, tt := range tests {
		t.Run(tt.accountNo, func(t *testing.T) {
			got, ok := b.accruals.Balance(tt.accountNo, today)
			require.True(t, ok)
			assert.True(t, got.OpeningBal.Equal(dec(tt.opening)), "opening %s", got.OpeningBal)
			assert.True(t, got.DrSummation.Equal(dec(tt.debits)), "debits %s", got.DrSummation)
			assert.True(t, got.CrSummation.Equal(dec(tt.credits)), "credits %s", got.CrSummation)
			assert.True(t, got.ClosingBal.Equal(dec(tt.closing)), "closing %s", got.ClosingBal)
			assert.True(t, got.InterestAmount.Equal(dec(tt.interest)), "interest %s", got.InterestAmount)
			assert.Equal(t, tt.wantCurrency, got.Currency)
		})
	}
}
