package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

const (
	testSystemDate = "2025-01-15"

	savingsGL        = "110101001"
	officeCashGL     = "220101001"
	interestExpGL    = "510101001"
	interestPayGL    = "410101001"
	savingsAccountNo = "123456781001"
	officeAccountNo  = "922010100101"
	usdAccountNo     = "123456781002"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// outboxStub records outbox events.
type outboxStub struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (o *outboxStub) Create(_ context.Context, _ usecase.Transaction, e *domain.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
	return nil
}

func (o *outboxStub) GetUnpublished(context.Context, int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (o *outboxStub) MarkPublished(context.Context, string, time.Time) error { return nil }

func (o *outboxStub) types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.EventType)
	}
	return out
}

// bank wires every usecase over in-memory repositories with a small chart
// of accounts, one savings account, one USD account and one office cash
// account.
type bank struct {
	ctx context.Context

	txManager *mocks.MockTransactionManager
	idGen     *mocks.MockIDGenerator
	gls       *mocks.MockGLRepository
	products  *mocks.MockProductRepository
	accounts  *mocks.MockAccountRepository
	trans     *mocks.MockTransactionRepository
	movements *mocks.MockGLMovementRepository
	accruals  *mocks.MockAccrualRepository
	balances  *mocks.MockBalanceRepository
	vdLogs    *mocks.MockValueDateLogRepository
	seqs      *mocks.MockSequenceRepository
	rates     *mocks.MockExchangeRateRepository
	params    *mocks.MockParameterRepository
	jobLogs   *mocks.MockEODLogRepository
	outbox    *outboxStub

	paramUC   *usecase.ParameterUseCase
	clock     *usecase.SystemDateUseCase
	hierarchy *usecase.GLHierarchyUseCase
	resolver  *usecase.AccountResolver
	currency  *usecase.CurrencyUseCase
	valueDate *usecase.ValueDateUseCase
	tranUC    *usecase.TransactionUseCase
	movement  *usecase.MovementPoster
	accrual   *usecase.AccrualPoster
	accrGen   *usecase.AccrualGenerator
	agg       *usecase.EODAggregator
	gate      *usecase.PreEODValidator
	eod       *usecase.EODUseCase
	bod       *usecase.BODUseCase

	eodDeps usecase.EODDeps
	bodDeps usecase.BODDeps
}

func chartOfAccounts() []*domain.GLSetup {
	return []*domain.GLSetup{
		{GLNum: "100000000", LayerGLNum: "100000000", LayerID: 0, GLName: "Liabilities"},
		{GLNum: "110000000", LayerGLNum: "10000000", LayerID: 1, ParentGLNum: "100000000", GLName: "Deposits"},
		{GLNum: "110100000", LayerGLNum: "0100000", LayerID: 2, ParentGLNum: "110000000", GLName: "Savings"},
		{GLNum: "110101000", LayerGLNum: "01000", LayerID: 3, ParentGLNum: "110100000", GLName: "Savings Regular"},
		{GLNum: savingsGL, LayerGLNum: "001", LayerID: 4, ParentGLNum: "110101000", GLName: "Savings Regular BDT"},
		{GLNum: "200000000", LayerGLNum: "200000000", LayerID: 0, GLName: "Assets"},
		{GLNum: "210000000", LayerGLNum: "10000000", LayerID: 1, ParentGLNum: "200000000", GLName: "Loans"},
		{GLNum: "210200000", LayerGLNum: "0200000", LayerID: 2, ParentGLNum: "210000000", GLName: "Overdrafts"},
		{GLNum: domain.OverdraftGL, LayerGLNum: "01000", LayerID: 3, ParentGLNum: "210200000", GLName: "Overdraft"},
		{GLNum: "210201001", LayerGLNum: "001", LayerID: 4, ParentGLNum: domain.OverdraftGL, GLName: "Overdraft BDT"},
		{GLNum: officeCashGL, LayerGLNum: "001", LayerID: 4, GLName: "Cash in Vault"},
		{GLNum: interestExpGL, LayerGLNum: "001", LayerID: 4, GLName: "Interest Expenditure"},
		{GLNum: interestPayGL, LayerGLNum: "001", LayerID: 4, GLName: "Interest Payable"},
	}
}

func newBank(t *testing.T) *bank {
	t.Helper()

	b := &bank{
		ctx:       context.Background(),
		txManager: mocks.NewMockTransactionManager(),
		idGen:     mocks.NewMockIDGenerator(),
		gls:       mocks.NewMockGLRepository(chartOfAccounts()...),
		products:  mocks.NewMockProductRepository(),
		accounts:  mocks.NewMockAccountRepository(),
		trans:     mocks.NewMockTransactionRepository(),
		movements: mocks.NewMockGLMovementRepository(),
		accruals:  mocks.NewMockAccrualRepository(),
		balances:  mocks.NewMockBalanceRepository(),
		vdLogs:    mocks.NewMockValueDateLogRepository(),
		seqs:      mocks.NewMockSequenceRepository(),
		rates: mocks.NewMockExchangeRateRepository(&domain.ExchangeRate{
			CcyPair:     "USD/BDT",
			RateDate:    mustDate(t, "2025-01-01"),
			MidRate:     dec("110.25"),
			BuyingRate:  dec("109.50"),
			SellingRate: dec("111.00"),
		}),
		params: mocks.NewMockParameterRepository(map[string]string{
			domain.ParamSystemDate:      testSystemDate,
			domain.ParamEODAdminUser:    "ADMIN",
			domain.ParamLastEOMDate:     "2024-12-31",
			domain.ParamInterestDivisor: "36500",
		}),
		jobLogs: mocks.NewMockEODLogRepository(),
		outbox:  &outboxStub{},
	}
	b.seqs.Accounts = b.accounts

	b.products.AddProduct(&domain.Product{ID: 1, Code: "SAV", Name: "Savings", CumGLNum: "110101000"})
	b.products.AddProduct(&domain.Product{ID: 2, Code: "CASH", Name: "Cash", CumGLNum: "220101000"})
	b.products.AddSubProduct(&domain.SubProduct{
		ID: 10, ProductID: 1, Code: "SAVBDT", Name: "Savings BDT", CumGLNum: savingsGL,
		EffectiveInterestRate:           dec("10"),
		InterestReceivableExpenditureGL: interestExpGL,
		InterestIncomePayableGL:         interestPayGL,
	})
	b.products.AddSubProduct(&domain.SubProduct{
		ID: 20, ProductID: 2, Code: "CASH", Name: "Cash in Vault", CumGLNum: officeCashGL,
	})

	for _, a := range []*domain.CustomerAccount{
		{No: savingsAccountNo, CustomerID: 12345678, SubProductRf: 10, GL: savingsGL, Ccy: "BDT", AcctName: "Savings", State: domain.AccountStatusActive},
		{No: usdAccountNo, CustomerID: 12345678, SubProductRf: 10, GL: savingsGL, Ccy: "USD", AcctName: "USD Savings", State: domain.AccountStatusActive},
	} {
		if err := b.accounts.CreateCustomerAccount(b.ctx, nil, a); err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}
	if err := b.accounts.CreateOfficeAccount(b.ctx, nil, &domain.OfficeAccount{
		No: officeAccountNo, SubProductRf: 20, GL: officeCashGL, Ccy: "BDT", AcctName: "Vault Cash", State: domain.AccountStatusActive,
	}); err != nil {
		t.Fatalf("seed office account: %v", err)
	}

	log := zerolog.Nop()
	b.paramUC = usecase.NewParameterUseCase(b.params, nil, 0, log, nil)
	b.clock = usecase.NewSystemDateUseCase(b.paramUC, "", nil, b.idGen, nil)
	b.hierarchy = usecase.NewGLHierarchyUseCase(b.gls)
	b.resolver = usecase.NewAccountResolver(b.accounts, b.products, b.balances, b.trans, b.hierarchy, "BDT")
	b.currency = usecase.NewCurrencyUseCase(b.rates, nil, nil, b.idGen, nil, usecase.CurrencyConfig{
		Local:   "BDT",
		Allowed: []string{"USD", "EUR"},
	})
	b.valueDate = usecase.NewValueDateUseCase(b.trans, b.gls, b.movements, b.vdLogs, b.balances,
		b.resolver, b.paramUC, b.currency, b.idGen, nil)
	b.tranUC = usecase.NewTransactionUseCase(b.txManager, nil, b.trans, b.outbox, nil,
		b.resolver, b.currency, b.valueDate, b.clock, b.idGen, nil)
	b.movement = usecase.NewMovementPoster(b.txManager, nil, b.trans, b.movements, b.gls, b.resolver, b.idGen, log, nil)
	b.accrual = usecase.NewAccrualPoster(b.txManager, nil, b.accruals, b.gls, b.idGen, log, nil)
	b.accrGen = usecase.NewAccrualGenerator(b.txManager, nil, b.accounts, b.accruals, b.resolver, b.currency, b.paramUC, log, nil)
	b.agg = usecase.NewEODAggregator(b.txManager, nil, b.accounts, b.trans, b.movements, b.accruals, b.balances, b.currency, log)
	b.gate = usecase.NewPreEODValidator(b.trans, b.paramUC, "")
	b.eodDeps = usecase.EODDeps{
		TxManager:      b.txManager,
		Clock:          b.clock,
		Validator:      b.gate,
		MovementPoster: b.movement,
		AccrualGen:     b.accrGen,
		AccrualPoster:  b.accrual,
		Aggregator:     b.agg,
		JobLogRepo:     b.jobLogs,
		OutboxRepo:     b.outbox,
		IDGen:          b.idGen,
		Logger:         log,
	}
	b.eod = usecase.NewEODUseCase(b.eodDeps)
	b.bodDeps = usecase.BODDeps{
		TxManager:    b.txManager,
		TranRepo:     b.trans,
		MovementRepo: b.movements,
		GLRepo:       b.gls,
		LogRepo:      b.vdLogs,
		JobLogRepo:   b.jobLogs,
		OutboxRepo:   b.outbox,
		BalanceRepo:  b.balances,
		Resolver:     b.resolver,
		Currency:     b.currency,
		Clock:        b.clock,
		IDGen:        b.idGen,
		Logger:       log,
	}
	b.bod = usecase.NewBODUseCase(b.bodDeps)
	return b
}

// transfer enters a two-leg BDT transaction from the office cash account to
// the savings account.
func (b *bank) transfer(t *testing.T, amount string, valueDate time.Time) string {
	t.Helper()
	legs, err := b.tranUC.Create(b.ctx, usecase.CreateTransactionInput{
		ValueDate: valueDate,
		Narration: "cash deposit",
		Legs: []usecase.TransactionLegInput{
			{AccountNo: officeAccountNo, DrCr: "D", TranCcy: "BDT", FcyAmt: dec(amount)},
			{AccountNo: savingsAccountNo, DrCr: "C", TranCcy: "BDT", FcyAmt: dec(amount)},
		},
		CreatedBy: "maker",
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return domain.BaseTranID(legs[0].TranID)
}

// verified enters and verifies a transfer.
func (b *bank) verified(t *testing.T, amount string, valueDate time.Time) string {
	t.Helper()
	id := b.transfer(t, amount, valueDate)
	if _, err := b.tranUC.Verify(b.ctx, id, "checker"); err != nil {
		t.Fatalf("verify transaction %s: %v", id, err)
	}
	return id
}

// seedBalance stores a closing account snapshot.
func (b *bank) seedBalance(t *testing.T, accountNo, ccy, amount string, date time.Time) {
	t.Helper()
	err := b.balances.UpsertAccountBalance(b.ctx, nil, &domain.AccountBalance{
		AccountNo:        accountNo,
		TranDate:         date,
		Currency:         ccy,
		OpeningBal:       dec(amount),
		DrSummation:      decimal.Zero,
		CrSummation:      decimal.Zero,
		CurrentBalance:   dec(amount),
		AvailableBalance: dec(amount),
	})
	if err != nil {
		t.Fatalf("seed balance: %v", err)
	}
}
