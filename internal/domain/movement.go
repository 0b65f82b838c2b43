package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementSource tells what produced a GL movement.
type MovementSource string

const (
	MovementFromTransaction MovementSource = "TRAN"
	MovementFromValueDate   MovementSource = "VDADJ"
)

// GLMovement is the GL-side record of one posting leg.
type GLMovement struct {
	ID           string
	TranID       string
	GLNum        string
	DrCr         DrCr
	TranDate     time.Time
	ValueDate    time.Time
	Amount       decimal.Decimal
	TranCcy      string
	FcyAmt       decimal.Decimal
	LcyAmt       decimal.Decimal
	BalanceAfter decimal.Decimal
	Narration    string
	Source       MovementSource
	CreatedAt    time.Time
}

// NewMovementFromLeg builds the movement for a verified leg. BalanceAfter
// stays zero; EOD computes the running balance.
func NewMovementFromLeg(id string, leg *Transaction, glNum string, now time.Time) *GLMovement {
	return &GLMovement{
		ID:           id,
		TranID:       leg.TranID,
		GLNum:        glNum,
		DrCr:         leg.DrCr,
		TranDate:     leg.TranDate,
		ValueDate:    leg.ValueDate,
		Amount:       leg.LcyAmt,
		TranCcy:      leg.TranCcy,
		FcyAmt:       leg.FcyAmt,
		LcyAmt:       leg.LcyAmt,
		BalanceAfter: decimal.Zero,
		Narration:    leg.Narration,
		Source:       MovementFromTransaction,
		CreatedAt:    now,
	}
}
