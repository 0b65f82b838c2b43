package domain

import "github.com/shopspring/decimal"

// AlertSeverity grades a settlement gain or loss against its threshold.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// SettlementKind is gain or loss.
type SettlementKind string

const (
	SettlementGain SettlementKind = "GAIN"
	SettlementLoss SettlementKind = "LOSS"
)

// SettlementAlert is the payload handed to notification delivery.
type SettlementAlert struct {
	Kind           SettlementKind
	Reference      string
	Currency       string
	Amount         decimal.Decimal
	Threshold      decimal.Decimal
	Severity       AlertSeverity
	ActionRequired bool
}

var (
	criticalMultiple = decimal.NewFromInt(5)
	highMultiple     = decimal.NewFromInt(3)
	mediumMultiple   = decimal.NewFromInt(2)
)

// SeverityFor grades amount against threshold (5x critical, 3x high, 2x medium).
func SeverityFor(amount, threshold decimal.Decimal) AlertSeverity {
	a := amount.Abs()
	switch {
	case a.GreaterThanOrEqual(threshold.Mul(criticalMultiple)):
		return SeverityCritical
	case a.GreaterThanOrEqual(threshold.Mul(highMultiple)):
		return SeverityHigh
	case a.GreaterThanOrEqual(threshold.Mul(mediumMultiple)):
		return SeverityMedium
	default:
		return SeverityLow
	}
}
