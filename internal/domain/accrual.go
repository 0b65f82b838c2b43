package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccrualStatus is the posting status of an accrual record.
type AccrualStatus string

const (
	AccrualPending AccrualStatus = "Pending"
	AccrualPosted  AccrualStatus = "Posted"
)

// InterestAccrual is a daily interest accrual awaiting GL posting.
type InterestAccrual struct {
	AccrTranID   string
	AccountNo    string
	AccrualDate  time.Time
	TranDate     time.Time
	ValueDate    time.Time
	DrCr         DrCr
	GLAccountNo  string
	InterestRate decimal.Decimal
	Amount       decimal.Decimal
	TranCcy      string
	FcyAmt       decimal.Decimal
	ExchangeRate decimal.Decimal
	LcyAmt       decimal.Decimal
	Narration    string
	Status       AccrualStatus
}

// GLNum derives the GL number from the stored GL account number: the first
// nine characters, or the whole trimmed value when shorter.
func (a *InterestAccrual) GLNum() string {
	v := strings.TrimSpace(a.GLAccountNo)
	if len(v) > GLNumLength {
		return v[:GLNumLength]
	}
	return v
}

// GLMovementAccrual is the GL-side record of an accrual.
type GLMovementAccrual struct {
	ID           string
	AccrTranID   string
	GLNum        string
	DrCr         DrCr
	AccrualDate  time.Time
	TranDate     time.Time
	Amount       decimal.Decimal
	TranCcy      string
	FcyAmt       decimal.Decimal
	ExchangeRate decimal.Decimal
	LcyAmt       decimal.Decimal
	Narration    string
	Status       AccrualStatus
	CreatedAt    time.Time
}

// NewMovementFromAccrual builds a pending accrual movement.
func NewMovementFromAccrual(id string, a *InterestAccrual, glNum string, systemDate, now time.Time) *GLMovementAccrual {
	return &GLMovementAccrual{
		ID:           id,
		AccrTranID:   a.AccrTranID,
		GLNum:        glNum,
		DrCr:         a.DrCr,
		AccrualDate:  systemDate,
		TranDate:     a.TranDate,
		Amount:       a.Amount,
		TranCcy:      a.TranCcy,
		FcyAmt:       a.FcyAmt,
		ExchangeRate: a.ExchangeRate,
		LcyAmt:       a.LcyAmt,
		Narration:    a.Narration,
		Status:       AccrualPending,
		CreatedAt:    now,
	}
}

// DailyAccrual returns one day of interest on |balance| at ratePct percent,
// rounded half-up to two places.
func DailyAccrual(balance, ratePct, divisor decimal.Decimal) decimal.Decimal {
	if !divisor.IsPositive() {
		divisor = DefaultInterestDivisor
	}
	return balance.Abs().Mul(ratePct).Div(divisor).Round(2)
}

// AccrualTranID formats an accrual id: "S", the accrual date, a nine-digit
// per-day sequence and the row number.
func AccrualTranID(date time.Time, seq, row int) string {
	return fmt.Sprintf("S%s%09d-%d", date.Format("20060102"), seq, row)
}

// AccrualGLs picks the debit and credit GLs for a sub-product's accrual
// pair. Each side falls back to the other when unset; ok is false when the
// sub-product has neither.
func AccrualGLs(sub *SubProduct) (debitGL, creditGL string, ok bool) {
	debitGL = sub.InterestReceivableExpenditureGL
	creditGL = sub.InterestIncomePayableGL
	if debitGL == "" {
		debitGL = creditGL
	}
	if creditGL == "" {
		creditGL = debitGL
	}
	return debitGL, creditGL, debitGL != ""
}

// AccrualNarrations returns the debit and credit narrations for an accrual
// pair on a deposit (liability) or loan (asset) account.
func AccrualNarrations(class AccountGLClass, accountNo string) (debit, credit string) {
	if class == AccountGLAsset {
		return "Interest Receivable Accrual - " + accountNo, "Interest Income Accrual - " + accountNo
	}
	return "Interest Expenditure Accrual - " + accountNo, "Interest Payable Accrual - " + accountNo
}

// AccountBalanceAccrual is an account's accrued-interest position for one
// date.
type AccountBalanceAccrual struct {
	AccountNo      string
	GLNum          string
	TranDate       time.Time
	Currency       string
	OpeningBal     decimal.Decimal
	DrSummation    decimal.Decimal
	CrSummation    decimal.Decimal
	ClosingBal     decimal.Decimal
	InterestAmount decimal.Decimal
	LastUpdated    time.Time
}

// NewAccountBalanceAccrual rolls opening forward by the day's accruals.
// Deposit accounts accumulate the credit side only and loan accounts the
// debit side only.
func NewAccountBalanceAccrual(accountNo, glNum, currency string, date time.Time, opening, debits, credits decimal.Decimal, now time.Time) *AccountBalanceAccrual {
	switch AccountClassOf(glNum) {
	case AccountGLLiability:
		debits = decimal.Zero
	case AccountGLAsset:
		credits = decimal.Zero
	}

	return &AccountBalanceAccrual{
		AccountNo:      accountNo,
		GLNum:          glNum,
		TranDate:       date,
		Currency:       currency,
		OpeningBal:     opening,
		DrSummation:    debits,
		CrSummation:    credits,
		ClosingBal:     opening.Add(credits).Sub(debits),
		InterestAmount: credits.Sub(debits),
		LastUpdated:    now,
	}
}
