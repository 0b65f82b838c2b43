package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/logger"
)

// auditor writes operator audit rows. A nil repository disables it.
type auditor struct {
	repo  AuditRepository
	idGen IDGenerator
}

func (a auditor) record(ctx context.Context, userID string, action domain.AuditAction, resourceType, resourceID string, after any, opErr error) {
	if a.repo == nil {
		return
	}
	if userID == "" {
		userID = "system"
	}

	entry := &domain.AuditLog{
		ID:           a.idGen.Generate(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		RequestID:    logger.RequestIDFromContext(ctx),
		AfterState:   domain.MarshalState(after),
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    time.Now().UTC(),
	}
	if opErr != nil {
		entry.Status = domain.AuditStatusFailure
		entry.ErrorMessage = opErr.Error()
	}

	if err := a.repo.Create(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("action", string(action)).
			Str("resource_id", resourceID).
			Msg("failed to write audit log")
	}
}
