package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// BODUseCase promotes future-dated legs whose value date has arrived.
type BODUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	locker       Locker
	lockTTL      time.Duration
	tranRepo     TransactionRepository
	movementRepo GLMovementRepository
	glRepo       GLRepository
	logRepo      ValueDateLogRepository
	jobLogRepo   EODLogRepository
	outboxRepo   OutboxRepository
	balances     balanceBook
	resolver     *AccountResolver
	currency     *CurrencyUseCase
	clock        *SystemDateUseCase
	idGen        IDGenerator
	audit        auditor
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// BODDeps groups the dependencies of BODUseCase.
type BODDeps struct {
	TxManager    TransactionManager
	Retrier      Retrier
	Locker       Locker
	LockTTL      time.Duration
	TranRepo     TransactionRepository
	MovementRepo GLMovementRepository
	GLRepo       GLRepository
	LogRepo      ValueDateLogRepository
	JobLogRepo   EODLogRepository
	OutboxRepo   OutboxRepository
	BalanceRepo  BalanceRepository
	AuditRepo    AuditRepository
	Resolver     *AccountResolver
	Currency     *CurrencyUseCase
	Clock        *SystemDateUseCase
	IDGen        IDGenerator
	Logger       zerolog.Logger
	Metrics      *metrics.Metrics
}

// NewBODUseCase creates a new BODUseCase.
func NewBODUseCase(d BODDeps) *BODUseCase {
	return &BODUseCase{
		txManager:    d.TxManager,
		retrier:      d.Retrier,
		locker:       d.Locker,
		lockTTL:      lockTTL(d.LockTTL),
		tranRepo:     d.TranRepo,
		movementRepo: d.MovementRepo,
		glRepo:       d.GLRepo,
		logRepo:      d.LogRepo,
		jobLogRepo:   d.JobLogRepo,
		outboxRepo:   d.OutboxRepo,
		balances:     balanceBook{repo: d.BalanceRepo},
		resolver:     d.Resolver,
		currency:     d.Currency,
		clock:        d.Clock,
		idGen:        d.IDGen,
		audit:        auditor{repo: d.AuditRepo, idGen: d.IDGen},
		logger:       d.Logger.With().Str("job", domain.JobBOD).Logger(),
		metrics:      d.Metrics,
	}
}

// Run promotes every Future leg with value date on or before the system
// date: it updates the account and GL snapshots, writes the GL movement and
// moves the leg to Posted. A leg that fails stays Future for the next run.
func (uc *BODUseCase) Run(ctx context.Context, userID string) (*domain.BatchResult[*domain.Transaction], error) {
	if uc.locker != nil {
		token, ok, err := uc.locker.TryLock(ctx, LockKeyBOD, uc.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire BOD lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrBatchInProgress
		}
		defer func() {
			if err := uc.locker.Unlock(context.WithoutCancel(ctx), LockKeyBOD, token); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to release BOD lock")
			}
		}()
	}

	systemDate, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	jobLog := &domain.EODJobLog{
		ID:         uc.idGen.Generate(),
		RunID:      uc.idGen.Generate(),
		EODDate:    systemDate,
		JobName:    domain.JobBOD,
		SystemDate: systemDate,
		UserID:     userID,
		Status:     domain.JobRunning,
		StartedAt:  start.UTC(),
	}
	uc.createJobLog(ctx, jobLog)

	result, err := uc.promoteDue(ctx, systemDate)

	ended := time.Now().UTC()
	jobLog.EndedAt = &ended
	jobLog.Status = domain.JobSuccess
	switch {
	case err != nil:
		jobLog.Status = domain.JobFailed
		jobLog.ErrorMessage = err.Error()
		jobLog.FailedAtStep = domain.JobBOD
	case result.Errored() > 0:
		jobLog.Status = domain.JobFailed
		jobLog.ErrorMessage = fmt.Sprintf("%d of %d legs failed", result.Errored(), result.Errored()+result.Processed()+len(result.Skipped))
		jobLog.FailedAtStep = domain.JobBOD
	}
	if result != nil {
		jobLog.RecordsProcessed = result.Processed()
	}
	uc.finishJobLog(ctx, jobLog)

	uc.audit.record(ctx, userID, domain.AuditActionBODRun, "bod", jobLog.RunID,
		map[string]any{"system_date": systemDate.Format(domain.DateLayout), "promoted": jobLog.RecordsProcessed}, err)
	if err != nil {
		return result, err
	}

	uc.metrics.ObserveBatch(domain.JobBOD, result.Processed(), len(result.Skipped), result.Errored(), time.Since(start).Seconds())
	uc.publishCompleted(ctx, jobLog, result)

	uc.logger.Info().
		Str("system_date", systemDate.Format(domain.DateLayout)).
		Int("promoted", result.Processed()).
		Int("skipped", len(result.Skipped)).
		Int("failed", result.Errored()).
		Msg("BOD finished")

	return result, nil
}

func (uc *BODUseCase) promoteDue(ctx context.Context, systemDate time.Time) (*domain.BatchResult[*domain.Transaction], error) {
	legs, err := uc.tranRepo.ListFutureDue(ctx, systemDate)
	if err != nil {
		return nil, fmt.Errorf("list due future legs: %w", err)
	}

	result := &domain.BatchResult[*domain.Transaction]{}
	for _, leg := range legs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := retry(ctx, uc.retrier, func() error { return uc.promote(ctx, leg, systemDate) })
		switch {
		case errors.Is(err, errAlreadyProcessed):
			result.Skip(leg)
		case err != nil:
			uc.logger.Error().Err(err).Str("tran_id", leg.TranID).Msg("failed to promote future leg")
			result.Fail(leg, err)
		default:
			result.Succeed(leg)
		}
	}
	return result, nil
}

func (uc *BODUseCase) promote(ctx context.Context, leg *domain.Transaction, systemDate time.Time) error {
	account, err := uc.resolver.Resolve(ctx, leg.AccountNo)
	if err != nil {
		return err
	}
	glNum, err := uc.resolver.PostingGL(ctx, account)
	if err != nil {
		return err
	}
	if _, err := uc.glRepo.GetByNum(ctx, glNum); err != nil {
		return fmt.Errorf("posting GL %s: %w", glNum, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	locked, err := uc.tranRepo.GetLegForUpdate(txCtx, tx, leg.TranID)
	if err != nil {
		return err
	}
	if locked.Status != domain.TranStatusFuture {
		return errAlreadyProcessed
	}

	amount := locked.AccountAmount(account.Currency(), uc.currency.LocalCurrency())
	if locked.DrCr == domain.Debit {
		if err := uc.resolver.ValidateDebit(txCtx, account, amount, systemDate); err != nil {
			return err
		}
	}

	if _, err := uc.balances.applyAccount(txCtx, tx, account.AccountNo(), account.Currency(), locked.DrCr, amount, systemDate); err != nil {
		return err
	}
	glBalance, err := uc.balances.applyGL(txCtx, tx, glNum, locked.DrCr, locked.LcyAmt, systemDate)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	locked.TranDate = domain.DateOf(systemDate)
	movement := domain.NewMovementFromLeg(uc.idGen.Generate(), locked, glNum, now)
	movement.BalanceAfter = glBalance
	if err := uc.movementRepo.CreateTx(txCtx, tx, movement); err != nil {
		return err
	}

	if err := uc.tranRepo.Promote(txCtx, tx, locked.TranID, locked.TranDate, now); err != nil {
		return err
	}
	if err := uc.logRepo.MarkPosted(txCtx, tx, locked.TranID); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}
	leg.Status = domain.TranStatusPosted
	leg.TranDate = locked.TranDate
	leg.UpdatedAt = now
	return nil
}

func (uc *BODUseCase) publishCompleted(ctx context.Context, jobLog *domain.EODJobLog, result *domain.BatchResult[*domain.Transaction]) {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   jobLog.RunID,
		AggregateType: domain.AggregateTypeBOD,
		EventType:     domain.EventTypeBODCompleted,
		Payload: map[string]any{
			"run_id":      jobLog.RunID,
			"system_date": jobLog.SystemDate.Format(domain.DateLayout),
			"promoted":    result.Processed(),
			"skipped":     len(result.Skipped),
			"failed":      result.Errored(),
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := writeEvent(ctx, uc.txManager, uc.outboxRepo, event); err != nil {
		uc.logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to write outbox event")
	}
}

func (uc *BODUseCase) createJobLog(ctx context.Context, jobLog *domain.EODJobLog) {
	if uc.jobLogRepo == nil {
		return
	}
	if err := uc.jobLogRepo.Create(ctx, jobLog); err != nil {
		uc.logger.Warn().Err(err).Str("job_name", jobLog.JobName).Msg("failed to write job log")
	}
}

func (uc *BODUseCase) finishJobLog(ctx context.Context, jobLog *domain.EODJobLog) {
	if uc.jobLogRepo == nil {
		return
	}
	if err := uc.jobLogRepo.Finish(ctx, jobLog); err != nil {
		uc.logger.Warn().Err(err).Str("job_name", jobLog.JobName).Msg("failed to finish job log")
	}
}

// writeEvent stores event in its own transaction.
func writeEvent(ctx context.Context, txManager TransactionManager, outboxRepo OutboxRepository, event *domain.OutboxEvent) error {
	if outboxRepo == nil {
		return nil
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}
