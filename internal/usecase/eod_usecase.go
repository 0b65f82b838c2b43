package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// DefaultEODAdminUser is the operator allowed to run EOD when neither the
// parameter store nor the configuration names one.
const DefaultEODAdminUser = "ADMIN"

// EODAggregator recomputes the day's balance snapshots from the ledger.
type EODAggregator struct {
	txManager    TransactionManager
	retrier      Retrier
	accountRepo  AccountRepository
	tranRepo     TransactionRepository
	movementRepo GLMovementRepository
	accrualRepo  AccrualRepository
	balanceRepo  BalanceRepository
	currency     *CurrencyUseCase
	logger       zerolog.Logger
}

// NewEODAggregator creates a new EODAggregator.
func NewEODAggregator(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	tranRepo TransactionRepository,
	movementRepo GLMovementRepository,
	accrualRepo AccrualRepository,
	balanceRepo BalanceRepository,
	currency *CurrencyUseCase,
	logger zerolog.Logger,
) *EODAggregator {
	return &EODAggregator{
		txManager:    txManager,
		retrier:      retrier,
		accountRepo:  accountRepo,
		tranRepo:     tranRepo,
		movementRepo: movementRepo,
		accrualRepo:  accrualRepo,
		balanceRepo:  balanceRepo,
		currency:     currency,
		logger:       logger,
	}
}

// postedStatuses are the leg statuses that count towards balances.
var postedStatuses = []domain.TranStatus{domain.TranStatusVerified, domain.TranStatusPosted}

// UpdateAccountBalances writes the closing snapshot of every account for
// date. Opening is the latest earlier closing balance. Foreign-currency
// accounts are summed in their own currency.
func (a *EODAggregator) UpdateAccountBalances(ctx context.Context, date time.Time) (int, error) {
	date = domain.DateOf(date)

	accounts, err := a.accountRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list accounts: %w", err)
	}

	var (
		processed int
		errs      []error
	)
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := retry(ctx, a.retrier, func() error { return a.closeAccount(ctx, account, date) }); err != nil {
			a.logger.Error().Err(err).Str("account_no", account.AccountNo()).Msg("failed to update account balance")
			errs = append(errs, fmt.Errorf("account %s: %w", account.AccountNo(), err))
			continue
		}
		processed++
	}
	return processed, errors.Join(errs...)
}

func (a *EODAggregator) closeAccount(ctx context.Context, account domain.Account, date time.Time) error {
	opening := decimal.Zero
	prev, err := a.balanceRepo.LatestAccountBalanceBefore(ctx, account.AccountNo(), date)
	if err != nil {
		return err
	}
	if prev != nil {
		opening = prev.CurrentBalance
	}

	useFcy := !a.currency.IsLocal(account.Currency())
	debits, credits, err := a.tranRepo.SumForAccount(ctx, account.AccountNo(), date, useFcy)
	if err != nil {
		return err
	}

	closing := domain.CloseAccount(opening, debits, credits)
	balance := &domain.AccountBalance{
		AccountNo:        account.AccountNo(),
		TranDate:         date,
		Currency:         account.Currency(),
		OpeningBal:       opening,
		DrSummation:      debits,
		CrSummation:      credits,
		CurrentBalance:   closing,
		AvailableBalance: closing,
		LastUpdated:      time.Now().UTC(),
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := a.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := a.balanceRepo.UpsertAccountBalance(txCtx, tx, balance); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

// UpdateAccrualBalances rolls the accrued-interest balance of every account
// that accrued on date.
func (a *EODAggregator) UpdateAccrualBalances(ctx context.Context, date time.Time) (int, error) {
	date = domain.DateOf(date)

	accountNos, err := a.accrualRepo.ListAccountNos(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list accrued accounts: %w", err)
	}

	var (
		processed int
		errs      []error
	)
	for _, accountNo := range accountNos {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := retry(ctx, a.retrier, func() error { return a.closeAccrual(ctx, accountNo, date) }); err != nil {
			a.logger.Error().Err(err).Str("account_no", accountNo).Msg("failed to update accrual balance")
			errs = append(errs, fmt.Errorf("account %s: %w", accountNo, err))
			continue
		}
		processed++
	}
	return processed, errors.Join(errs...)
}

func (a *EODAggregator) closeAccrual(ctx context.Context, accountNo string, date time.Time) error {
	account, err := a.accountRepo.GetCustomerAccount(ctx, accountNo)
	if err != nil {
		return err
	}

	opening := decimal.Zero
	prev, err := a.accrualRepo.LatestBalanceBefore(ctx, accountNo, date)
	if err != nil {
		return err
	}
	if prev != nil {
		opening = prev.ClosingBal
	}

	debits, credits, err := a.accrualRepo.SumForAccount(ctx, accountNo, date)
	if err != nil {
		return err
	}
	balance := domain.NewAccountBalanceAccrual(accountNo, account.GLNum(), account.Currency(), date, opening, debits, credits, time.Now().UTC())

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := a.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := a.accrualRepo.UpsertBalance(txCtx, tx, balance); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

// UpdateGLBalances writes the closing snapshot for date of every GL that
// has a prior balance or any movement on date.
func (a *EODAggregator) UpdateGLBalances(ctx context.Context, date time.Time) (int, error) {
	date = domain.DateOf(date)

	glNums, err := a.activeGLs(ctx, date)
	if err != nil {
		return 0, err
	}

	var (
		processed int
		errs      []error
	)
	for _, glNum := range glNums {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := retry(ctx, a.retrier, func() error { return a.closeGL(ctx, glNum, date) }); err != nil {
			a.logger.Error().Err(err).Str("gl_num", glNum).Msg("failed to update GL balance")
			errs = append(errs, fmt.Errorf("GL %s: %w", glNum, err))
			continue
		}
		processed++
	}
	return processed, errors.Join(errs...)
}

func (a *EODAggregator) activeGLs(ctx context.Context, date time.Time) ([]string, error) {
	known, err := a.balanceRepo.ListGLNums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list GL balances: %w", err)
	}
	moved, err := a.movementRepo.ListGLNums(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list GL movements: %w", err)
	}
	accrued, err := a.accrualRepo.ListMovementGLNums(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list accrual movements: %w", err)
	}

	all := slices.Concat(known, moved, accrued)
	slices.Sort(all)
	return slices.Compact(all), nil
}

func (a *EODAggregator) closeGL(ctx context.Context, glNum string, date time.Time) error {
	opening := decimal.Zero
	prev, err := a.balanceRepo.LatestGLBalanceBefore(ctx, glNum, date)
	if err != nil {
		return err
	}
	if prev != nil {
		opening = prev.CurrentBalance
	}

	movDr, movCr, err := a.movementRepo.SumByGL(ctx, glNum, date)
	if err != nil {
		return err
	}
	accDr, accCr, err := a.accrualRepo.SumMovementsByGL(ctx, glNum, date)
	if err != nil {
		return err
	}

	debits, credits := movDr.Add(accDr), movCr.Add(accCr)
	balance := &domain.GLBalance{
		GLNum:          glNum,
		TranDate:       date,
		OpeningBal:     opening,
		DrSummation:    debits,
		CrSummation:    credits,
		CurrentBalance: domain.CloseGL(glNum, opening, debits, credits),
		LastUpdated:    time.Now().UTC(),
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := a.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := a.balanceRepo.UpsertGLBalance(txCtx, tx, balance); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

// ValidateDoubleEntry compares the LCY debit and credit totals of the
// day's verified and posted legs.
func (a *EODAggregator) ValidateDoubleEntry(ctx context.Context, date time.Time) (*domain.DoubleEntryResult, error) {
	date = domain.DateOf(date)
	debits, credits, err := a.tranRepo.SumByFlag(ctx, date, postedStatuses)
	if err != nil {
		return nil, fmt.Errorf("sum legs: %w", err)
	}
	return &domain.DoubleEntryResult{
		Date:         date,
		TotalDebits:  debits,
		TotalCredits: credits,
		Balanced:     debits.Equal(credits),
	}, nil
}

// PreEODValidator is the gate that must pass before EOD runs.
type PreEODValidator struct {
	tranRepo      TransactionRepository
	params        *ParameterUseCase
	adminFallback string
}

// NewPreEODValidator creates a new PreEODValidator. adminFallback names the
// EOD operator when the parameter store has none.
func NewPreEODValidator(tranRepo TransactionRepository, params *ParameterUseCase, adminFallback string) *PreEODValidator {
	if adminFallback == "" {
		adminFallback = DefaultEODAdminUser
	}
	return &PreEODValidator{tranRepo: tranRepo, params: params, adminFallback: adminFallback}
}

// Validate checks that userID may run EOD, that no leg dated date is left
// in Entry, and that the day's verified legs balance.
func (v *PreEODValidator) Validate(ctx context.Context, userID string, date time.Time) (*domain.ValidationResult, error) {
	date = domain.DateOf(date)

	admin := v.params.String(ctx, domain.ParamEODAdminUser, v.adminFallback)
	if userID != admin {
		return &domain.ValidationResult{
			Message: fmt.Sprintf("%s: %q", domain.ErrUnauthorizedOperator, userID),
		}, nil
	}

	pending, err := v.tranRepo.ListByStatusAndDate(ctx, domain.TranStatusEntry, date)
	if err != nil {
		return nil, fmt.Errorf("list unverified legs: %w", err)
	}
	if len(pending) > 0 {
		ids := make([]string, 0, len(pending))
		for _, leg := range pending {
			ids = append(ids, leg.TranID)
		}
		return &domain.ValidationResult{
			Message: fmt.Sprintf("%d transactions are still in Entry status: %s", len(pending), strings.Join(ids, ", ")),
		}, nil
	}

	debits, credits, err := v.tranRepo.SumByFlag(ctx, date, []domain.TranStatus{domain.TranStatusVerified})
	if err != nil {
		return nil, fmt.Errorf("sum verified legs: %w", err)
	}
	if !debits.Equal(credits) {
		return &domain.ValidationResult{
			Message: fmt.Sprintf("verified transactions are unbalanced: debits %s, credits %s, difference %s",
				debits.StringFixed(2), credits.StringFixed(2), debits.Sub(credits).StringFixed(2)),
		}, nil
	}

	return &domain.ValidationResult{Valid: true, Message: "Pre-EOD validation passed"}, nil
}

// EODUseCase runs the end-of-day batch.
type EODUseCase struct {
	txManager      TransactionManager
	locker         Locker
	lockTTL        time.Duration
	clock          *SystemDateUseCase
	validator      *PreEODValidator
	movementPoster *MovementPoster
	accrualGen     *AccrualGenerator
	accrualPoster  *AccrualPoster
	aggregator     *EODAggregator
	jobLogRepo     EODLogRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	audit          auditor
	logger         zerolog.Logger
	metrics        *metrics.Metrics
}

// EODDeps groups the dependencies of EODUseCase.
type EODDeps struct {
	TxManager      TransactionManager
	Locker         Locker
	LockTTL        time.Duration
	Clock          *SystemDateUseCase
	Validator      *PreEODValidator
	MovementPoster *MovementPoster
	AccrualGen     *AccrualGenerator
	AccrualPoster  *AccrualPoster
	Aggregator     *EODAggregator
	JobLogRepo     EODLogRepository
	OutboxRepo     OutboxRepository
	AuditRepo      AuditRepository
	IDGen          IDGenerator
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
}

// NewEODUseCase creates a new EODUseCase.
func NewEODUseCase(d EODDeps) *EODUseCase {
	return &EODUseCase{
		txManager:      d.TxManager,
		locker:         d.Locker,
		lockTTL:        lockTTL(d.LockTTL),
		clock:          d.Clock,
		validator:      d.Validator,
		movementPoster: d.MovementPoster,
		accrualGen:     d.AccrualGen,
		accrualPoster:  d.AccrualPoster,
		aggregator:     d.Aggregator,
		jobLogRepo:     d.JobLogRepo,
		outboxRepo:     d.OutboxRepo,
		idGen:          d.IDGen,
		audit:          auditor{repo: d.AuditRepo, idGen: d.IDGen},
		logger:         d.Logger.With().Str("component", "eod").Logger(),
		metrics:        d.Metrics,
	}
}

// eodRun carries the state of one run across its jobs.
type eodRun struct {
	summary *domain.EODSummary
	userID  string
}

// Run executes the EOD jobs for the current system date in order. Every
// job runs even when an earlier one failed; the system date advances only
// when all of them succeed and the day balances. A failed gate stops the
// run before anything is posted.
func (uc *EODUseCase) Run(ctx context.Context, userID string) (*domain.EODSummary, error) {
	if uc.locker != nil {
		token, ok, err := uc.locker.TryLock(ctx, LockKeyEOD, uc.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire EOD lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrBatchInProgress
		}
		defer func() {
			if err := uc.locker.Unlock(context.WithoutCancel(ctx), LockKeyEOD, token); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to release EOD lock")
			}
		}()
	}

	date, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	run := &eodRun{
		userID: userID,
		summary: &domain.EODSummary{
			RunID:        uc.idGen.Generate(),
			EODDate:      date,
			StartTime:    time.Now().UTC(),
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
			Status:       domain.EODSuccess,
		},
	}
	log := uc.logger.With().Str("run_id", run.summary.RunID).Str("eod_date", date.Format(domain.DateLayout)).Logger()
	log.Info().Str("user_id", userID).Msg("EOD started")

	if !uc.gate(ctx, run) {
		uc.finish(ctx, run)
		log.Warn().Str("reason", run.summary.ErrorMessage).Msg("EOD rejected by pre-EOD validation")
		return run.summary, nil
	}

	uc.runJob(ctx, run, domain.JobMovementPosting, func(ctx context.Context) (int, error) {
		result, err := uc.movementPoster.Post(ctx, date)
		if err != nil {
			return 0, err
		}
		run.summary.MovementsPosted = result.Processed()
		return result.Processed(), batchError(result.Errored(), "legs")
	})

	uc.runJob(ctx, run, domain.JobAccrualGeneration, func(ctx context.Context) (int, error) {
		result, err := uc.accrualGen.Generate(ctx, date)
		if err != nil {
			return 0, err
		}
		run.summary.AccrualsGenerated = len(result.Succeeded)
		return len(result.Succeeded), batchError(len(result.Failed), "accounts")
	})

	uc.runJob(ctx, run, domain.JobAccrualPosting, func(ctx context.Context) (int, error) {
		result, err := uc.accrualPoster.Post(ctx, date)
		if err != nil {
			return 0, err
		}
		run.summary.AccrualsPosted = result.Processed()
		return result.Processed(), batchError(result.Errored(), "accruals")
	})

	uc.runJob(ctx, run, domain.JobAccountBalance, func(ctx context.Context) (int, error) {
		n, err := uc.aggregator.UpdateAccountBalances(ctx, date)
		run.summary.AccountsProcessed = n
		return n, err
	})

	uc.runJob(ctx, run, domain.JobAccrualBalance, func(ctx context.Context) (int, error) {
		n, err := uc.aggregator.UpdateAccrualBalances(ctx, date)
		run.summary.AccrualAccounts = n
		return n, err
	})

	uc.runJob(ctx, run, domain.JobGLBalance, func(ctx context.Context) (int, error) {
		n, err := uc.aggregator.UpdateGLBalances(ctx, date)
		run.summary.GLsProcessed = n
		return n, err
	})

	uc.runJob(ctx, run, domain.JobDoubleEntry, func(ctx context.Context) (int, error) {
		res, err := uc.aggregator.ValidateDoubleEntry(ctx, date)
		if err != nil {
			return 0, err
		}
		run.summary.TotalDebits = res.TotalDebits
		run.summary.TotalCredits = res.TotalCredits
		run.summary.Balanced = res.Balanced
		if uc.metrics != nil {
			uc.metrics.EODImbalance.Set(res.Difference().InexactFloat64())
		}
		if !res.Balanced {
			return 1, fmt.Errorf("debits %s do not equal credits %s, difference %s",
				res.TotalDebits.StringFixed(2), res.TotalCredits.StringFixed(2), res.Difference().StringFixed(2))
		}
		return 1, nil
	})

	if run.summary.Status == domain.EODSuccess {
		uc.runJob(ctx, run, domain.JobSystemDateIncrement, func(ctx context.Context) (int, error) {
			next, err := uc.clock.Advance(ctx, userID)
			if err != nil {
				return 0, err
			}
			run.summary.NextSystemDate = &next
			return 1, nil
		})
	}

	uc.finish(ctx, run)

	ev := log.Info()
	if run.summary.Status != domain.EODSuccess {
		ev = log.Error().Str("error", run.summary.ErrorMessage)
	}
	ev.Str("status", string(run.summary.Status)).
		Int("movements_posted", run.summary.MovementsPosted).
		Int("accruals_generated", run.summary.AccrualsGenerated).
		Int("accruals_posted", run.summary.AccrualsPosted).
		Int("accounts_processed", run.summary.AccountsProcessed).
		Int("accrual_accounts", run.summary.AccrualAccounts).
		Int("gls_processed", run.summary.GLsProcessed).
		Msg("EOD finished")

	return run.summary, nil
}

func (uc *EODUseCase) gate(ctx context.Context, run *eodRun) bool {
	var result *domain.ValidationResult
	uc.runJob(ctx, run, domain.JobPreEODValidation, func(ctx context.Context) (int, error) {
		res, err := uc.validator.Validate(ctx, run.userID, run.summary.EODDate)
		if err != nil {
			return 0, err
		}
		result = res
		if !res.Valid {
			return 0, errors.New(res.Message)
		}
		return 1, nil
	})
	return result != nil && result.Valid
}

// runJob runs one job and records it in the job log. A failed job marks the
// run failed.
func (uc *EODUseCase) runJob(ctx context.Context, run *eodRun, name string, fn func(context.Context) (int, error)) {
	start := time.Now()
	jobLog := &domain.EODJobLog{
		ID:         uc.idGen.Generate(),
		RunID:      run.summary.RunID,
		EODDate:    run.summary.EODDate,
		JobName:    name,
		SystemDate: run.summary.EODDate,
		UserID:     run.userID,
		Status:     domain.JobRunning,
		StartedAt:  start.UTC(),
	}
	if uc.jobLogRepo != nil {
		if err := uc.jobLogRepo.Create(ctx, jobLog); err != nil {
			uc.logger.Warn().Err(err).Str("job_name", name).Msg("failed to write job log")
		}
	}

	n, err := fn(ctx)

	ended := time.Now().UTC()
	jobLog.EndedAt = &ended
	jobLog.RecordsProcessed = n
	jobLog.Status = domain.JobSuccess
	if err != nil {
		jobLog.Status = domain.JobFailed
		jobLog.ErrorMessage = err.Error()
		jobLog.FailedAtStep = name
		run.summary.Fail(fmt.Sprintf("%s: %s", name, err))
		uc.logger.Error().Err(err).Str("job_name", name).Str("run_id", run.summary.RunID).Msg("EOD job failed")
	}

	if uc.jobLogRepo != nil {
		if err := uc.jobLogRepo.Finish(ctx, jobLog); err != nil {
			uc.logger.Warn().Err(err).Str("job_name", name).Msg("failed to finish job log")
		}
	}
	if uc.metrics != nil {
		uc.metrics.BatchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

func (uc *EODUseCase) finish(ctx context.Context, run *eodRun) {
	s := run.summary
	s.EndTime = time.Now().UTC()

	if uc.metrics != nil {
		uc.metrics.EODRuns.WithLabelValues(string(s.Status)).Inc()
	}

	eventType := domain.EventTypeEODCompleted
	var opErr error
	if s.Status != domain.EODSuccess {
		eventType = domain.EventTypeEODFailed
		opErr = errors.New(s.ErrorMessage)
	}

	payload := domain.EODCompletedEvent{
		RunID:        s.RunID,
		EODDate:      s.EODDate.Format(domain.DateLayout),
		Status:       string(s.Status),
		TotalDebits:  s.TotalDebits.StringFixed(2),
		TotalCredits: s.TotalCredits.StringFixed(2),
		ErrorMessage: s.ErrorMessage,
	}
	if s.NextSystemDate != nil {
		payload.NextSystemDate = s.NextSystemDate.Format(domain.DateLayout)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   s.RunID,
		AggregateType: domain.AggregateTypeEOD,
		EventType:     eventType,
		Payload:       payload.Map(),
		CreatedAt:     s.EndTime,
	}
	if err := writeEvent(ctx, uc.txManager, uc.outboxRepo, event); err != nil {
		uc.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to write outbox event")
	}

	uc.audit.record(ctx, run.userID, domain.AuditActionEODRun, "eod", s.RunID, payload, opErr)
}

// Summary rebuilds the summary of the latest EOD run for date from its job
// logs. BOD runs share the job log table and are ignored.
func (uc *EODUseCase) Summary(ctx context.Context, date time.Time) (*domain.EODSummary, error) {
	date = domain.DateOf(date)
	logs, err := uc.jobLogRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return SummarizeJobLogs(date, logs)
}

// SummarizeJobLogs folds the EOD job logs of the most recently started run
// into a summary. Totals are not stored in job logs and stay zero.
func SummarizeJobLogs(date time.Time, logs []*domain.EODJobLog) (*domain.EODSummary, error) {
	var latest *domain.EODJobLog
	for _, l := range logs {
		if !domain.IsEODJob(l.JobName) {
			continue
		}
		if latest == nil || l.StartedAt.After(latest.StartedAt) {
			latest = l
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEODRunNotFound, date.Format(domain.DateLayout))
	}

	s := &domain.EODSummary{
		RunID:        latest.RunID,
		EODDate:      date,
		StartTime:    latest.StartedAt,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Status:       domain.EODSuccess,
	}

	for _, l := range logs {
		if l.RunID != s.RunID || !domain.IsEODJob(l.JobName) {
			continue
		}
		if l.StartedAt.Before(s.StartTime) {
			s.StartTime = l.StartedAt
		}
		if l.EndedAt != nil && l.EndedAt.After(s.EndTime) {
			s.EndTime = *l.EndedAt
		}

		switch l.Status {
		case domain.JobFailed:
			s.Fail(fmt.Sprintf("%s: %s", l.JobName, l.ErrorMessage))
		case domain.JobRunning:
			s.Fail(l.JobName + ": did not finish")
		}

		switch l.JobName {
		case domain.JobMovementPosting:
			s.MovementsPosted = l.RecordsProcessed
		case domain.JobAccrualGeneration:
			s.AccrualsGenerated = l.RecordsProcessed
		case domain.JobAccrualPosting:
			s.AccrualsPosted = l.RecordsProcessed
		case domain.JobAccountBalance:
			s.AccountsProcessed = l.RecordsProcessed
		case domain.JobAccrualBalance:
			s.AccrualAccounts = l.RecordsProcessed
		case domain.JobGLBalance:
			s.GLsProcessed = l.RecordsProcessed
		case domain.JobDoubleEntry:
			s.Balanced = l.Status == domain.JobSuccess
		case domain.JobSystemDateIncrement:
			if l.Status == domain.JobSuccess {
				next := date.AddDate(0, 0, 1)
				s.NextSystemDate = &next
			}
		}
	}
	return s, nil
}

func batchError(failed int, what string) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d %s failed", failed, what)
}
