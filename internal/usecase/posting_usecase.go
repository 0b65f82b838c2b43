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

// errAlreadyProcessed marks a batch item another run has already handled.
var errAlreadyProcessed = errors.New("already processed")

// MovementPoster turns the day's verified legs into GL movements.
type MovementPoster struct {
	txManager    TransactionManager
	retrier      Retrier
	tranRepo     TransactionRepository
	movementRepo GLMovementRepository
	glRepo       GLRepository
	resolver     *AccountResolver
	idGen        IDGenerator
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewMovementPoster creates a new MovementPoster.
func NewMovementPoster(
	txManager TransactionManager,
	retrier Retrier,
	tranRepo TransactionRepository,
	movementRepo GLMovementRepository,
	glRepo GLRepository,
	resolver *AccountResolver,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *MovementPoster {
	return &MovementPoster{
		txManager:    txManager,
		retrier:      retrier,
		tranRepo:     tranRepo,
		movementRepo: movementRepo,
		glRepo:       glRepo,
		resolver:     resolver,
		idGen:        idGen,
		logger:       logger.With().Str("job", domain.JobMovementPosting).Logger(),
		metrics:      m,
	}
}

// Post creates one TRAN movement per verified leg dated systemDate and
// marks the leg Posted. Each leg commits on its own; a failed leg does not
// stop the batch.
func (p *MovementPoster) Post(ctx context.Context, systemDate time.Time) (*domain.BatchResult[*domain.Transaction], error) {
	start := time.Now()
	systemDate = domain.DateOf(systemDate)

	legs, err := p.tranRepo.ListByStatusAndDate(ctx, domain.TranStatusVerified, systemDate)
	if err != nil {
		return nil, fmt.Errorf("list verified legs: %w", err)
	}

	result := &domain.BatchResult[*domain.Transaction]{}
	for _, leg := range legs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := retry(ctx, p.retrier, func() error { return p.postLeg(ctx, leg) })
		switch {
		case errors.Is(err, errAlreadyProcessed):
			result.Skip(leg)
		case err != nil:
			p.logger.Error().Err(err).Str("tran_id", leg.TranID).Msg("failed to post GL movement")
			result.Fail(leg, err)
		default:
			result.Succeed(leg)
		}
	}

	p.metrics.ObserveBatch(domain.JobMovementPosting, result.Processed(), len(result.Skipped), result.Errored(), time.Since(start).Seconds())
	p.logger.Info().
		Str("date", systemDate.Format(domain.DateLayout)).
		Int("posted", result.Processed()).
		Int("skipped", len(result.Skipped)).
		Int("failed", result.Errored()).
		Msg("GL movement posting finished")

	return result, nil
}

func (p *MovementPoster) postLeg(ctx context.Context, leg *domain.Transaction) error {
	exists, err := p.movementRepo.ExistsForTransaction(ctx, leg.TranID)
	if err != nil {
		return err
	}
	if exists {
		return errAlreadyProcessed
	}

	account, err := p.resolver.Resolve(ctx, leg.AccountNo)
	if err != nil {
		return err
	}
	glNum, err := p.resolver.PostingGL(ctx, account)
	if err != nil {
		return err
	}
	if _, err := p.glRepo.GetByNum(ctx, glNum); err != nil {
		return fmt.Errorf("posting GL %s: %w", glNum, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := p.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	locked, err := p.tranRepo.GetLegForUpdate(txCtx, tx, leg.TranID)
	if err != nil {
		return err
	}
	if locked.Status != domain.TranStatusVerified {
		return errAlreadyProcessed
	}

	now := time.Now().UTC()
	movement := domain.NewMovementFromLeg(p.idGen.Generate(), locked, glNum, now)
	if err := p.movementRepo.CreateTx(txCtx, tx, movement); err != nil {
		return err
	}
	if err := p.tranRepo.UpdateStatus(txCtx, tx, leg.TranID, domain.TranStatusPosted, now); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}
	leg.Status = domain.TranStatusPosted
	leg.UpdatedAt = now
	return nil
}

// AccrualPoster posts pending interest accruals to the GL.
type AccrualPoster struct {
	txManager   TransactionManager
	retrier     Retrier
	accrualRepo AccrualRepository
	glRepo      GLRepository
	idGen       IDGenerator
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewAccrualPoster creates a new AccrualPoster.
func NewAccrualPoster(
	txManager TransactionManager,
	retrier Retrier,
	accrualRepo AccrualRepository,
	glRepo GLRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *AccrualPoster {
	return &AccrualPoster{
		txManager:   txManager,
		retrier:     retrier,
		accrualRepo: accrualRepo,
		glRepo:      glRepo,
		idGen:       idGen,
		logger:      logger.With().Str("job", domain.JobAccrualPosting).Logger(),
		metrics:     m,
	}
}

// Post creates an accrual movement for every pending accrual dated
// systemDate. Accruals that already have a movement are skipped.
func (p *AccrualPoster) Post(ctx context.Context, systemDate time.Time) (*domain.BatchResult[*domain.InterestAccrual], error) {
	start := time.Now()
	systemDate = domain.DateOf(systemDate)

	accruals, err := p.accrualRepo.ListPending(ctx, systemDate)
	if err != nil {
		return nil, fmt.Errorf("list pending accruals: %w", err)
	}

	result := &domain.BatchResult[*domain.InterestAccrual]{}
	for _, a := range accruals {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := retry(ctx, p.retrier, func() error { return p.postAccrual(ctx, a, systemDate) })
		switch {
		case errors.Is(err, errAlreadyProcessed):
			result.Skip(a)
		case err != nil:
			p.logger.Error().Err(err).Str("accr_tran_id", a.AccrTranID).Msg("failed to post accrual movement")
			result.Fail(a, err)
		default:
			result.Succeed(a)
		}
	}

	p.metrics.ObserveBatch(domain.JobAccrualPosting, result.Processed(), len(result.Skipped), result.Errored(), time.Since(start).Seconds())
	p.logger.Info().
		Str("date", systemDate.Format(domain.DateLayout)).
		Int("posted", result.Processed()).
		Int("skipped", len(result.Skipped)).
		Int("failed", result.Errored()).
		Msg("accrual posting finished")

	return result, nil
}

func (p *AccrualPoster) postAccrual(ctx context.Context, a *domain.InterestAccrual, systemDate time.Time) error {
	exists, err := p.accrualRepo.MovementExists(ctx, a.AccrTranID)
	if err != nil {
		return err
	}
	if exists {
		return errAlreadyProcessed
	}

	glNum := a.GLNum()
	if glNum == "" {
		return fmt.Errorf("%w: accrual %s has no GL account", domain.ErrGLNotFound, a.AccrTranID)
	}
	if _, err := p.glRepo.GetByNum(ctx, glNum); err != nil {
		return fmt.Errorf("accrual GL %s: %w", glNum, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := p.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	movement := domain.NewMovementFromAccrual(p.idGen.Generate(), a, glNum, systemDate, now)
	if err := p.accrualRepo.CreateMovement(txCtx, tx, movement); err != nil {
		return err
	}
	if err := p.accrualRepo.UpdateStatus(txCtx, tx, a.AccrTranID, domain.AccrualPosted); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}
	a.Status = domain.AccrualPosted
	return nil
}
