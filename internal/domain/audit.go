package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records an operator action against the engine.
type AuditLog struct {
	ID           string
	UserID       string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       AuditStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a free-form state snapshot.
type JSON map[string]any

// AuditAction names an auditable operator action.
type AuditAction string

const (
	AuditActionSystemDateSet     AuditAction = "system_date.set"
	AuditActionEODRun            AuditAction = "eod.run"
	AuditActionBODRun            AuditAction = "bod.run"
	AuditActionGLCreate          AuditAction = "gl.create"
	AuditActionSubProductCreate  AuditAction = "sub_product.create"
	AuditActionRateCreate        AuditAction = "exchange_rate.create"
	AuditActionRateUpdate        AuditAction = "exchange_rate.update"
	AuditActionTransactionVerify AuditAction = "transaction.verify"
)

// AuditStatus is the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a value to a JSON map for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
