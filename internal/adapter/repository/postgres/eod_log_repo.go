package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
)

// EODLogRepository implements usecase.EODLogRepository.
type EODLogRepository struct {
	queries *generated.Queries
}

// NewEODLogRepository creates a new EODLogRepository.
func NewEODLogRepository(pool *pgxpool.Pool) *EODLogRepository {
	return newEODLogRepository(pool)
}

func newEODLogRepository(db generated.DBTX) *EODLogRepository {
	return &EODLogRepository{queries: generated.New(db)}
}

// Create records a job as started.
func (r *EODLogRepository) Create(ctx context.Context, log *domain.EODJobLog) error {
	return r.queries.CreateEODJobLog(ctx, generated.CreateEODJobLogParams{
		ID:               log.ID,
		RunID:            log.RunID,
		EodDate:          dateToPg(log.EODDate),
		JobName:          log.JobName,
		SystemDate:       dateToPg(log.SystemDate),
		UserID:           log.UserID,
		RecordsProcessed: int32(log.RecordsProcessed),
		Status:           string(log.Status),
		ErrorMessage:     log.ErrorMessage,
		FailedAtStep:     log.FailedAtStep,
		StartedAt:        timeToPgTimestamptz(log.StartedAt),
		EndedAt:          endedAt(log.EndedAt),
	})
}

// Finish stores the job's outcome.
func (r *EODLogRepository) Finish(ctx context.Context, log *domain.EODJobLog) error {
	return r.queries.FinishEODJobLog(ctx, generated.FinishEODJobLogParams{
		ID:               log.ID,
		RecordsProcessed: int32(log.RecordsProcessed),
		Status:           string(log.Status),
		ErrorMessage:     log.ErrorMessage,
		FailedAtStep:     log.FailedAtStep,
		EndedAt:          endedAt(log.EndedAt),
	})
}

// ListByDate returns the day's job logs in start order.
func (r *EODLogRepository) ListByDate(ctx context.Context, eodDate time.Time) ([]*domain.EODJobLog, error) {
	rows, err := r.queries.ListEODJobLogsByDate(ctx, dateToPg(eodDate))
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.EODJobLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToEODJobLog(row))
	}
	return logs, nil
}

func rowToEODJobLog(row generated.EodJobLog) *domain.EODJobLog {
	log := &domain.EODJobLog{
		ID:               row.ID,
		RunID:            row.RunID,
		EODDate:          pgToDate(row.EodDate),
		JobName:          row.JobName,
		SystemDate:       pgToDate(row.SystemDate),
		UserID:           row.UserID,
		RecordsProcessed: int(row.RecordsProcessed),
		Status:           domain.JobStatus(row.Status),
		ErrorMessage:     row.ErrorMessage,
		FailedAtStep:     row.FailedAtStep,
		StartedAt:        row.StartedAt.Time,
	}
	if row.EndedAt.Valid {
		t := row.EndedAt.Time
		log.EndedAt = &t
	}
	return log
}

func endedAt(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return timeToPgTimestamptz(*t)
}
