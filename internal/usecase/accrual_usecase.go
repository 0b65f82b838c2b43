package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// AccrualGenerator writes the day's interest accruals: a debit and a credit
// record per interest-bearing customer account, left Pending for the
// accrual poster.
type AccrualGenerator struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	accrualRepo AccrualRepository
	resolver    *AccountResolver
	currency    *CurrencyUseCase
	params      *ParameterUseCase
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewAccrualGenerator creates a new AccrualGenerator.
func NewAccrualGenerator(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	accrualRepo AccrualRepository,
	resolver *AccountResolver,
	currency *CurrencyUseCase,
	params *ParameterUseCase,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *AccrualGenerator {
	return &AccrualGenerator{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		accrualRepo: accrualRepo,
		resolver:    resolver,
		currency:    currency,
		params:      params,
		logger:      logger.With().Str("job", domain.JobAccrualGeneration).Logger(),
		metrics:     m,
	}
}

// Generate accrues one day of interest for every active customer account
// with a non-zero rate and balance. Accounts that already accrued on date
// are skipped, so a rerun after a failed EOD adds nothing twice.
func (g *AccrualGenerator) Generate(ctx context.Context, date time.Time) (*domain.BatchResult[*domain.CustomerAccount], error) {
	start := time.Now()
	date = domain.DateOf(date)

	accounts, err := g.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accrued, err := g.accrualRepo.ListAccountNos(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list accrued accounts: %w", err)
	}
	done := make(map[string]bool, len(accrued))
	for _, no := range accrued {
		done[no] = true
	}

	seq, err := g.accrualRepo.MaxSequence(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("accrual sequence: %w", err)
	}

	divisor := g.params.Decimal(ctx, domain.ParamInterestDivisor, domain.DefaultInterestDivisor)
	result := &domain.BatchResult[*domain.CustomerAccount]{}
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		c, ok := account.(*domain.CustomerAccount)
		if !ok || c.State != domain.AccountStatusActive {
			continue
		}
		if done[c.No] {
			result.Skip(c)
			continue
		}

		pair, err := g.build(ctx, c, date, seq+1, divisor)
		if err != nil {
			g.logger.Error().Err(err).Str("account_no", c.No).Msg("failed to compute accrual")
			result.Fail(c, err)
			continue
		}
		if pair == nil {
			continue
		}

		if err := retry(ctx, g.retrier, func() error { return g.store(ctx, pair) }); err != nil {
			g.logger.Error().Err(err).Str("account_no", c.No).Msg("failed to write accrual")
			result.Fail(c, err)
			continue
		}
		seq++
		result.Succeed(c)
	}

	g.metrics.ObserveBatch(domain.JobAccrualGeneration, len(result.Succeeded), len(result.Skipped), len(result.Failed), time.Since(start).Seconds())
	g.logger.Info().
		Str("date", date.Format(domain.DateLayout)).
		Int("accrued", len(result.Succeeded)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Msg("interest accrual finished")

	return result, nil
}

// build returns the debit and credit accrual for c, or nil when the account
// earns or owes nothing today.
func (g *AccrualGenerator) build(ctx context.Context, c *domain.CustomerAccount, date time.Time, seq int, divisor decimal.Decimal) ([]*domain.InterestAccrual, error) {
	class := domain.AccountClassOf(c.GL)
	if class == domain.AccountGLOther {
		return nil, nil
	}

	sub, err := g.resolver.SubProduct(ctx, c)
	if err != nil {
		return nil, err
	}
	rate := sub.EffectiveInterestRate
	if !rate.IsPositive() {
		return nil, nil
	}
	debitGL, creditGL, ok := domain.AccrualGLs(sub)
	if !ok {
		g.logger.Warn().Str("account_no", c.No).Str("sub_product", sub.Code).Msg("sub-product has no interest GL, accrual skipped")
		return nil, nil
	}

	balance, err := g.resolver.CurrentBalance(ctx, c, date)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	amount := domain.DailyAccrual(balance, rate, divisor)
	if amount.IsZero() {
		return nil, nil
	}

	fx, err := g.currency.MidRate(ctx, c.Ccy, date)
	if err != nil {
		return nil, err
	}
	lcy := amount.Mul(fx).Round(2)
	debitNarr, creditNarr := domain.AccrualNarrations(class, c.No)

	leg := func(row int, side domain.DrCr, glNum, narration string) *domain.InterestAccrual {
		return &domain.InterestAccrual{
			AccrTranID:   domain.AccrualTranID(date, seq, row),
			AccountNo:    c.No,
			AccrualDate:  date,
			TranDate:     date,
			ValueDate:    date,
			DrCr:         side,
			GLAccountNo:  glNum,
			InterestRate: rate,
			Amount:       amount,
			TranCcy:      c.Ccy,
			FcyAmt:       amount,
			ExchangeRate: fx,
			LcyAmt:       lcy,
			Narration:    narration,
			Status:       domain.AccrualPending,
		}
	}

	return []*domain.InterestAccrual{
		leg(1, domain.Debit, debitGL, debitNarr),
		leg(2, domain.Credit, creditGL, creditNarr),
	}, nil
}

func (g *AccrualGenerator) store(ctx context.Context, pair []*domain.InterestAccrual) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := g.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := g.accrualRepo.CreateAccruals(txCtx, tx, pair); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}
