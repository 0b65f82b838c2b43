package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is an account's balance snapshot for one date.
type AccountBalance struct {
	AccountNo        string
	TranDate         time.Time
	Currency         string
	OpeningBal       decimal.Decimal
	DrSummation      decimal.Decimal
	CrSummation      decimal.Decimal
	CurrentBalance   decimal.Decimal
	AvailableBalance decimal.Decimal
	LastUpdated      time.Time
}

// GLBalance is a GL's balance snapshot for one date.
type GLBalance struct {
	GLNum          string
	TranDate       time.Time
	OpeningBal     decimal.Decimal
	DrSummation    decimal.Decimal
	CrSummation    decimal.Decimal
	CurrentBalance decimal.Decimal
	LastUpdated    time.Time
}

// CloseAccount computes an account closing balance: opening + credits - debits.
func CloseAccount(opening, debits, credits decimal.Decimal) decimal.Decimal {
	return opening.Add(credits).Sub(debits)
}

// CloseGL computes a GL closing balance in the direction of its nature.
func CloseGL(glNum string, opening, debits, credits decimal.Decimal) decimal.Decimal {
	if NatureOf(glNum).IsDebitNatured() {
		return opening.Add(debits).Sub(credits)
	}
	return opening.Add(credits).Sub(debits)
}

// ApplyAccountLeg returns the account balance after one leg.
func ApplyAccountLeg(balance decimal.Decimal, flag DrCr, amount decimal.Decimal) decimal.Decimal {
	if flag == Debit {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// ApplyGLLeg returns the GL balance after one leg.
func ApplyGLLeg(glNum string, balance decimal.Decimal, flag DrCr, amount decimal.Decimal) decimal.Decimal {
	if flag == Debit {
		return CloseGL(glNum, balance, amount, decimal.Zero)
	}
	return CloseGL(glNum, balance, decimal.Zero, amount)
}
