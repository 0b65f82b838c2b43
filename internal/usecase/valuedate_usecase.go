package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// ValueDateUseCase handles transactions whose value date differs from the
// system date.
type ValueDateUseCase struct {
	tranRepo     TransactionRepository
	glRepo       GLRepository
	movementRepo GLMovementRepository
	logRepo      ValueDateLogRepository
	balances     balanceBook
	resolver     *AccountResolver
	params       *ParameterUseCase
	currency     *CurrencyUseCase
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewValueDateUseCase creates a new ValueDateUseCase.
func NewValueDateUseCase(
	tranRepo TransactionRepository,
	glRepo GLRepository,
	movementRepo GLMovementRepository,
	logRepo ValueDateLogRepository,
	balanceRepo BalanceRepository,
	resolver *AccountResolver,
	params *ParameterUseCase,
	currency *CurrencyUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ValueDateUseCase {
	return &ValueDateUseCase{
		tranRepo:     tranRepo,
		glRepo:       glRepo,
		movementRepo: movementRepo,
		logRepo:      logRepo,
		balances:     balanceBook{repo: balanceRepo},
		resolver:     resolver,
		params:       params,
		currency:     currency,
		idGen:        idGen,
		metrics:      m,
	}
}

// Classify places valueDate relative to systemDate.
func (uc *ValueDateUseCase) Classify(valueDate, systemDate time.Time) domain.ValueDateClass {
	return domain.ClassifyValueDate(valueDate, systemDate)
}

// DeltaInterest computes the interest delta with the configured divisor.
func (uc *ValueDateUseCase) DeltaInterest(ctx context.Context, amount, ratePct decimal.Decimal, days int) decimal.Decimal {
	divisor := uc.params.Decimal(ctx, domain.ParamInterestDivisor, domain.DefaultInterestDivisor)
	return domain.DeltaInterest(amount, ratePct, days, divisor)
}

// ValidateValueDate checks valueDate lies inside the configured window
// around systemDate and not before the last month-end.
func (uc *ValueDateUseCase) ValidateValueDate(ctx context.Context, valueDate, systemDate time.Time) error {
	valueDate, systemDate = domain.DateOf(valueDate), domain.DateOf(systemDate)

	pastLimit := uc.params.Int(ctx, domain.ParamPastValueDateLimitDays, DefaultPastValueDateLimitDays)
	futureLimit := uc.params.Int(ctx, domain.ParamFutureValueDateLimitDays, DefaultFutureValueDateLimitDays)

	earliest := systemDate.AddDate(0, 0, -pastLimit)
	if valueDate.Before(earliest) {
		return fmt.Errorf("%w: %s is more than %d days before %s", domain.ErrValueDateOutOfRange,
			valueDate.Format(domain.DateLayout), pastLimit, systemDate.Format(domain.DateLayout))
	}

	latest := systemDate.AddDate(0, 0, futureLimit)
	if valueDate.After(latest) {
		return fmt.Errorf("%w: %s is more than %d days after %s", domain.ErrValueDateOutOfRange,
			valueDate.Format(domain.DateLayout), futureLimit, systemDate.Format(domain.DateLayout))
	}

	if eom, err := uc.params.Date(ctx, domain.ParamLastEOMDate); err == nil && valueDate.Before(eom) {
		return fmt.Errorf("%w: %s is before the last month-end %s", domain.ErrValueDateOutOfRange,
			valueDate.Format(domain.DateLayout), eom.Format(domain.DateLayout))
	}

	return nil
}

// ApplyOnVerify runs value-date handling for a transaction being verified
// and returns its class. Past-dated legs get their interest delta posted;
// future-dated legs are parked with status Future.
func (uc *ValueDateUseCase) ApplyOnVerify(ctx context.Context, tx Transaction, legs []*domain.Transaction, systemDate time.Time) (domain.ValueDateClass, error) {
	if len(legs) == 0 {
		return domain.ValueDateCurrent, nil
	}

	class := uc.Classify(legs[0].ValueDate, systemDate)
	now := time.Now().UTC()

	switch class {
	case domain.ValueDatePast:
		for _, leg := range legs {
			if err := uc.applyPast(ctx, tx, leg, systemDate, now); err != nil {
				return class, err
			}
		}
	case domain.ValueDateFuture:
		for _, leg := range legs {
			if err := uc.parkFuture(ctx, tx, leg, systemDate, now); err != nil {
				return class, err
			}
		}
	}

	if uc.metrics != nil {
		uc.metrics.ValueDateClassified.WithLabelValues(string(class)).Inc()
	}
	return class, nil
}

func (uc *ValueDateUseCase) applyPast(ctx context.Context, tx Transaction, leg *domain.Transaction, systemDate, now time.Time) error {
	account, err := uc.resolver.Resolve(ctx, leg.AccountNo)
	if err != nil {
		return err
	}
	sub, err := uc.resolver.SubProduct(ctx, account)
	if err != nil {
		return err
	}

	days := domain.DaysDifference(leg.ValueDate, systemDate)
	delta := uc.DeltaInterest(ctx, leg.LcyAmt, sub.EffectiveInterestRate, days)

	if err := uc.PostAdjustment(ctx, tx, leg, account, sub, delta, systemDate); err != nil {
		return err
	}

	return uc.logRepo.CreateTx(ctx, tx, &domain.ValueDateLog{
		TranID:           leg.TranID,
		ValueDate:        leg.ValueDate,
		DaysDifference:   days,
		DeltaInterestAmt: delta,
		AdjustmentPosted: true,
		CreatedAt:        now,
	})
}

func (uc *ValueDateUseCase) parkFuture(ctx context.Context, tx Transaction, leg *domain.Transaction, systemDate, now time.Time) error {
	if err := uc.tranRepo.UpdateStatus(ctx, tx, leg.TranID, domain.TranStatusFuture, now); err != nil {
		return err
	}
	leg.Status = domain.TranStatusFuture

	return uc.logRepo.CreateTx(ctx, tx, &domain.ValueDateLog{
		TranID:           leg.TranID,
		ValueDate:        leg.ValueDate,
		DaysDifference:   domain.DaysDifference(leg.ValueDate, systemDate),
		DeltaInterestAmt: decimal.Zero,
		AdjustmentPosted: false,
		CreatedAt:        now,
	})
}

// PostAdjustment books delta as a debit/credit pair between the
// sub-product's interest GLs. A zero delta posts nothing.
func (uc *ValueDateUseCase) PostAdjustment(
	ctx context.Context,
	tx Transaction,
	leg *domain.Transaction,
	account domain.Account,
	sub *domain.SubProduct,
	delta decimal.Decimal,
	systemDate time.Time,
) error {
	if !delta.IsPositive() {
		return nil
	}

	debitGL, creditGL, err := domain.AdjustmentLegs(account.GLNum(), leg.DrCr, sub.InterestReceivableExpenditureGL, sub.InterestIncomePayableGL)
	if err != nil {
		return err
	}
	if debitGL == "" || creditGL == "" {
		return fmt.Errorf("%w: interest GLs of sub-product %d", domain.ErrGLMappingMissing, sub.ID)
	}

	now := time.Now().UTC()
	for _, side := range []struct {
		glNum string
		flag  domain.DrCr
	}{{debitGL, domain.Debit}, {creditGL, domain.Credit}} {
		if _, err := uc.glRepo.GetByNum(ctx, side.glNum); err != nil {
			if errors.Is(err, domain.ErrGLNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrGLNotFound, side.glNum)
			}
			return err
		}

		balance, err := uc.balances.applyGL(ctx, tx, side.glNum, side.flag, delta, systemDate)
		if err != nil {
			return err
		}

		movement := &domain.GLMovement{
			ID:           uc.idGen.Generate(),
			TranID:       leg.TranID + "-VDA",
			GLNum:        side.glNum,
			DrCr:         side.flag,
			TranDate:     domain.DateOf(systemDate),
			ValueDate:    leg.ValueDate,
			Amount:       delta,
			TranCcy:      uc.currency.LocalCurrency(),
			FcyAmt:       delta,
			LcyAmt:       delta,
			BalanceAfter: balance,
			Narration:    "Value date interest adjustment for " + leg.TranID,
			Source:       domain.MovementFromValueDate,
			CreatedAt:    now,
		}
		if err := uc.movementRepo.CreateTx(ctx, tx, movement); err != nil {
			return err
		}
	}

	if uc.metrics != nil {
		uc.metrics.DeltaInterestPosted.Add(delta.InexactFloat64())
	}
	return nil
}
