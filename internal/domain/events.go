package domain

import "time"

// Event types
const (
	EventTypeEODCompleted          = "eod.completed"
	EventTypeEODFailed             = "eod.failed"
	EventTypeBODCompleted          = "bod.completed"
	EventTypeTransactionVerified   = "transaction.verified"
	EventTypeSettlementAlertRaised = "settlement.alert_raised"
)

// Aggregate types
const (
	AggregateTypeEOD         = "eod"
	AggregateTypeBOD         = "bod"
	AggregateTypeTransaction = "transaction"
	AggregateTypeSettlement  = "settlement"
)

// OutboxEvent is an event waiting to be published.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EODCompletedEvent payload
type EODCompletedEvent struct {
	RunID          string `json:"run_id"`
	EODDate        string `json:"eod_date"`
	Status         string `json:"status"`
	TotalDebits    string `json:"total_debits"`
	TotalCredits   string `json:"total_credits"`
	NextSystemDate string `json:"next_system_date,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// SettlementAlertEvent payload
type SettlementAlertEvent struct {
	Kind           string `json:"kind"`
	Reference      string `json:"reference"`
	Currency       string `json:"currency"`
	Amount         string `json:"amount"`
	Threshold      string `json:"threshold"`
	Severity       string `json:"severity"`
	ActionRequired bool   `json:"action_required"`
}

// Map returns the payload as outbox fields.
func (e EODCompletedEvent) Map() map[string]any {
	m := map[string]any{
		"run_id":        e.RunID,
		"eod_date":      e.EODDate,
		"status":        e.Status,
		"total_debits":  e.TotalDebits,
		"total_credits": e.TotalCredits,
	}
	if e.NextSystemDate != "" {
		m["next_system_date"] = e.NextSystemDate
	}
	if e.ErrorMessage != "" {
		m["error_message"] = e.ErrorMessage
	}
	return m
}

// Map returns the payload as outbox fields.
func (e SettlementAlertEvent) Map() map[string]any {
	return map[string]any{
		"kind":            e.Kind,
		"reference":       e.Reference,
		"currency":        e.Currency,
		"amount":          e.Amount,
		"threshold":       e.Threshold,
		"severity":        e.Severity,
		"action_required": e.ActionRequired,
	}
}
