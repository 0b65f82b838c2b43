package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// TransactionUseCase enters and verifies multi-leg transactions.
type TransactionUseCase struct {
	txManager  TransactionManager
	retrier    Retrier
	tranRepo   TransactionRepository
	outboxRepo OutboxRepository
	resolver   *AccountResolver
	currency   *CurrencyUseCase
	valueDate  *ValueDateUseCase
	clock      *SystemDateUseCase
	idGen      IDGenerator
	audit      auditor
	metrics    *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	retrier Retrier,
	tranRepo TransactionRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	resolver *AccountResolver,
	currency *CurrencyUseCase,
	valueDate *ValueDateUseCase,
	clock *SystemDateUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:  txManager,
		retrier:    retrier,
		tranRepo:   tranRepo,
		outboxRepo: outboxRepo,
		resolver:   resolver,
		currency:   currency,
		valueDate:  valueDate,
		clock:      clock,
		idGen:      idGen,
		audit:      auditor{repo: auditRepo, idGen: idGen},
		metrics:    m,
	}
}

// TransactionLegInput represents one leg of a new transaction. LcyAmt is
// derived from FcyAmt when zero.
type TransactionLegInput struct {
	AccountNo string `validate:"required,max=20"`
	DrCr      string `validate:"required,oneof=D C"`
	TranCcy   string `validate:"required,len=3"`
	FcyAmt    decimal.Decimal
	LcyAmt    decimal.Decimal
	Narration string `validate:"max=500"`
}

// CreateTransactionInput represents input for entering a transaction. A
// zero ValueDate means the system date.
type CreateTransactionInput struct {
	ValueDate time.Time
	Narration string                `validate:"max=500"`
	Legs      []TransactionLegInput `validate:"required,min=2,dive"`
	CreatedBy string
}

// Create validates and stores a transaction with status Entry.
func (uc *TransactionUseCase) Create(ctx context.Context, input CreateTransactionInput) ([]*domain.Transaction, error) {
	if len(input.Legs) < 2 {
		return nil, domain.ErrTooFewLegs
	}
	if err := validateInput(input, domain.ErrInvalidTransaction); err != nil {
		return nil, err
	}
	if err := domain.ValidateNarration(input.Narration); err != nil {
		return nil, err
	}

	systemDate, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	valueDate := systemDate
	if !input.ValueDate.IsZero() {
		valueDate = domain.DateOf(input.ValueDate)
	}
	if err := uc.valueDate.ValidateValueDate(ctx, valueDate, systemDate); err != nil {
		return nil, err
	}

	baseID := uc.idGen.Generate()
	now := time.Now().UTC()

	legs := make([]*domain.Transaction, 0, len(input.Legs))
	for i, in := range input.Legs {
		leg, err := uc.buildLeg(ctx, domain.LineID(baseID, i+1), in, input.Narration, systemDate, valueDate, now)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	if err := uc.currency.ValidateLegs(legs); err != nil {
		return nil, err
	}
	if err := domain.ValidateLegs(legs); err != nil {
		return nil, err
	}

	err = retry(ctx, uc.retrier, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := uc.tranRepo.CreateTx(txCtx, tx, legs); err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
	}
	return legs, nil
}

func (uc *TransactionUseCase) buildLeg(
	ctx context.Context,
	lineID string,
	in TransactionLegInput,
	narration string,
	systemDate, valueDate, now time.Time,
) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(in.FcyAmt); err != nil {
		return nil, fmt.Errorf("leg %s: %w", lineID, err)
	}
	if err := domain.ValidateNarration(in.Narration); err != nil {
		return nil, err
	}
	if _, err := uc.resolver.Resolve(ctx, in.AccountNo); err != nil {
		return nil, err
	}

	rate := decimal.NewFromInt(1)
	lcy := in.LcyAmt
	if !uc.currency.IsLocal(in.TranCcy) {
		converted, mid, err := uc.currency.ConvertToLCY(ctx, in.FcyAmt, in.TranCcy, valueDate)
		if err != nil {
			return nil, err
		}
		rate = mid
		if lcy.IsZero() {
			lcy = converted
		}
	} else if lcy.IsZero() {
		lcy = in.FcyAmt
	}

	if in.Narration != "" {
		narration = in.Narration
	}

	return &domain.Transaction{
		TranID:       lineID,
		AccountNo:    in.AccountNo,
		DrCr:         domain.DrCr(in.DrCr),
		TranDate:     systemDate,
		ValueDate:    valueDate,
		TranCcy:      in.TranCcy,
		FcyAmt:       in.FcyAmt,
		ExchangeRate: rate,
		LcyAmt:       lcy,
		Narration:    narration,
		Status:       domain.TranStatusEntry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Get returns all legs of a transaction. Either the base id or a line id
// may be given.
func (uc *TransactionUseCase) Get(ctx context.Context, tranID string) ([]*domain.Transaction, error) {
	legs, err := uc.tranRepo.GetByBaseID(ctx, domain.BaseTranID(tranID))
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, tranID)
	}
	return legs, nil
}

// Verify moves a transaction from Entry to Verified, or to Future when
// its value date is ahead of the system date. Debit legs are checked for
// sufficient balance and past-dated legs get their interest delta posted.
func (uc *TransactionUseCase) Verify(ctx context.Context, tranID, verifier string) ([]*domain.Transaction, error) {
	systemDate, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	baseID := domain.BaseTranID(tranID)
	var legs []*domain.Transaction

	err = retry(ctx, uc.retrier, func() error {
		var verr error
		legs, verr = uc.verify(ctx, baseID, systemDate)
		return verr
	})
	uc.audit.record(ctx, verifier, domain.AuditActionTransactionVerify, "transaction", baseID, legs, err)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsVerified.Inc()
	}
	return legs, nil
}

func (uc *TransactionUseCase) verify(ctx context.Context, baseID string, systemDate time.Time) ([]*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	legs, err := uc.tranRepo.GetByBaseIDForUpdate(txCtx, tx, baseID)
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, baseID)
	}

	for _, leg := range legs {
		if leg.Status != domain.TranStatusEntry {
			return nil, fmt.Errorf("%w: leg %s is %s", domain.ErrInvalidTransactionState, leg.TranID, leg.Status)
		}
	}

	for _, leg := range legs {
		if leg.DrCr != domain.Debit {
			continue
		}
		account, err := uc.resolver.Resolve(txCtx, leg.AccountNo)
		if err != nil {
			return nil, err
		}
		amount := leg.AccountAmount(account.Currency(), uc.currency.LocalCurrency())
		if err := uc.resolver.ValidateDebit(txCtx, account, amount, systemDate); err != nil {
			return nil, err
		}
	}

	class, err := uc.valueDate.ApplyOnVerify(txCtx, tx, legs, systemDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if class != domain.ValueDateFuture {
		for _, leg := range legs {
			if err := uc.tranRepo.UpdateStatus(txCtx, tx, leg.TranID, domain.TranStatusVerified, now); err != nil {
				return nil, err
			}
			leg.Status = domain.TranStatusVerified
			leg.UpdatedAt = now
		}
	}

	debits, _ := domain.Totals(legs)
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   baseID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionVerified,
		Payload: map[string]any{
			"tran_id":          baseID,
			"value_date_class": string(class),
			"status":           string(legs[0].Status),
			"amount":           debits.StringFixed(2),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}
	return legs, nil
}
