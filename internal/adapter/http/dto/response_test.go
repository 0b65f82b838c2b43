package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

func TestTransactionFromDomain(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	legs := []*domain.Transaction{
		{TranID: "T01-1", AccountNo: "A", DrCr: domain.Debit, TranDate: date, ValueDate: date, TranCcy: "USD",
			FcyAmt: decimal.NewFromInt(100), ExchangeRate: decimal.RequireFromString("110.25"), LcyAmt: decimal.RequireFromString("11025"), Status: domain.TranStatusEntry},
		{TranID: "T01-2", AccountNo: "B", DrCr: domain.Credit, TranDate: date, ValueDate: date, TranCcy: "USD",
			FcyAmt: decimal.NewFromInt(100), ExchangeRate: decimal.RequireFromString("110.25"), LcyAmt: decimal.RequireFromString("11025"), Status: domain.TranStatusEntry},
	}

	resp := TransactionFromDomain(legs)
	if resp.TranID != "T01" || resp.Status != "Entry" {
		t.Fatalf("unexpected header: %+v", resp)
	}
	if len(resp.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(resp.Legs))
	}
	leg := resp.Legs[0]
	if leg.LcyAmt != "11025.00" || leg.ExchangeRate != "110.25" || leg.ValueDate != "2025-01-15" || leg.DrCr != "D" {
		t.Fatalf("unexpected leg: %+v", leg)
	}

	if empty := TransactionFromDomain(nil); empty.TranID != "" || len(empty.Legs) != 0 {
		t.Fatalf("expected empty response, got %+v", empty)
	}
}

func TestAccountFromDomain(t *testing.T) {
	opened := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	customer := CustomerAccountFromDomain(&domain.CustomerAccount{
		No: "123456783001", CustomerID: 12345678, SubProductRf: 7, GL: "110101001", Ccy: "BDT",
		AcctName: "Savings", State: domain.AccountStatusActive, LoanLimit: decimal.Zero, OpenedOn: opened,
	})
	if customer.Kind != "customer" || customer.CustomerID != 12345678 || customer.LoanLimit != "" || customer.OpenedOn != "2025-01-15" {
		t.Fatalf("unexpected customer response: %+v", customer)
	}

	office := OfficeAccountFromDomain(&domain.OfficeAccount{
		No: "911020300001", SubProductRf: 9, GL: "911020300", Ccy: "BDT", AcctName: "Cash", State: domain.AccountStatusActive,
	})
	if office.Kind != "office" || office.CustomerID != 0 || office.AccountNo != "911020300001" {
		t.Fatalf("unexpected office response: %+v", office)
	}
}

func TestEODSummaryFromDomain(t *testing.T) {
	next := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)
	resp := EODSummaryFromDomain(&domain.EODSummary{
		RunID:          "RUN",
		EODDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalDebits:    decimal.NewFromInt(500),
		TotalCredits:   decimal.NewFromInt(500),
		Balanced:       true,
		Status:         domain.EODSuccess,
		NextSystemDate: &next,
	})

	if resp.TotalDebits != "500.00" || resp.NextSystemDate != "2025-01-16" || resp.Status != "SUCCESS" {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if resp.StartTime != "" {
		t.Fatalf("expected zero start time to be omitted, got %q", resp.StartTime)
	}
}

func TestBatchFromDomain(t *testing.T) {
	result := &domain.BatchResult[*domain.Transaction]{}
	result.Succeed(&domain.Transaction{TranID: "T1-1"})
	result.Skip(&domain.Transaction{TranID: "T1-2"})
	result.Fail(&domain.Transaction{TranID: "T2-1"}, errors.New("GL not found"))

	resp := BatchFromDomain(result, TransactionID)
	if len(resp.Succeeded) != 1 || resp.Succeeded[0] != "T1-1" {
		t.Fatalf("unexpected succeeded: %v", resp.Succeeded)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0] != "T1-2" {
		t.Fatalf("unexpected skipped: %v", resp.Skipped)
	}
	if len(resp.Failed) != 1 || resp.Failed[0].ID != "T2-1" || resp.Failed[0].Error != "GL not found" {
		t.Fatalf("unexpected failed: %+v", resp.Failed)
	}
}
