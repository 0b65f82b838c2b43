package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDailyAccrual(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		divisor decimal.Decimal
		want    string
	}{
		{"deposit", "5000", "10", DefaultInterestDivisor, "1.37"},
		{"loan balance uses magnitude", "-2500", "12", DefaultInterestDivisor, "0.82"},
		{"half rounds up", "36.5", "5", DefaultInterestDivisor, "0.01"},
		{"zero divisor falls back", "100000", "5", decimal.Zero, "13.7"},
		{"zero rate", "100000", "0", DefaultInterestDivisor, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyAccrual(decimal.RequireFromString(tt.balance), decimal.RequireFromString(tt.rate), tt.divisor)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccrualTranID(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	if got := AccrualTranID(date, 12, 2); got != "S20250115000000012-2" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestAccrualGLs(t *testing.T) {
	tests := []struct {
		name       string
		sub        SubProduct
		wantDebit  string
		wantCredit string
		wantOK     bool
	}{
		{"both set", SubProduct{InterestReceivableExpenditureGL: "510101001", InterestIncomePayableGL: "410101001"}, "510101001", "410101001", true},
		{"only payable", SubProduct{InterestIncomePayableGL: "410101001"}, "410101001", "410101001", true},
		{"only expenditure", SubProduct{InterestReceivableExpenditureGL: "510101001"}, "510101001", "510101001", true},
		{"neither", SubProduct{}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit, ok := AccrualGLs(&tt.sub)
			if debit != tt.wantDebit || credit != tt.wantCredit || ok != tt.wantOK {
				t.Fatalf("expected (%s, %s, %t), got (%s, %s, %t)", tt.wantDebit, tt.wantCredit, tt.wantOK, debit, credit, ok)
			}
		})
	}
}

func TestNewAccountBalanceAccrual(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	opening := decimal.NewFromInt(10)
	debits := decimal.NewFromFloat(1.37)
	credits := decimal.NewFromFloat(1.37)

	tests := []struct {
		name         string
		glNum        string
		wantClosing  string
		wantInterest string
	}{
		{"deposit keeps credits", "110101001", "11.37", "1.37"},
		{"loan keeps debits", "210201001", "8.63", "-1.37"},
		{"other keeps both", "510101001", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewAccountBalanceAccrual("100000001001", tt.glNum, "BDT", date, opening, debits, credits, date)
			if !b.ClosingBal.Equal(decimal.RequireFromString(tt.wantClosing)) {
				t.Fatalf("expected closing %s, got %s", tt.wantClosing, b.ClosingBal)
			}
			if !b.InterestAmount.Equal(decimal.RequireFromString(tt.wantInterest)) {
				t.Fatalf("expected interest %s, got %s", tt.wantInterest, b.InterestAmount)
			}
		})
	}
}

func TestAccrualNarrations(t *testing.T) {
	debit, credit := AccrualNarrations(AccountGLAsset, "200000006001")
	if debit != "Interest Receivable Accrual - 200000006001" || credit != "Interest Income Accrual - 200000006001" {
		t.Fatalf("unexpected asset narrations %q %q", debit, credit)
	}

	debit, credit = AccrualNarrations(AccountGLLiability, "100000001001")
	if debit != "Interest Expenditure Accrual - 100000001001" || credit != "Interest Payable Accrual - 100000001001" {
		t.Fatalf("unexpected liability narrations %q %q", debit, credit)
	}
}
