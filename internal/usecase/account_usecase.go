package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

// AccountResolver looks accounts up across the customer and office masters.
type AccountResolver struct {
	accountRepo   AccountRepository
	productRepo   ProductRepository
	balanceRepo   BalanceRepository
	tranRepo      TransactionRepository
	hierarchy     *GLHierarchyUseCase
	localCurrency string
}

// NewAccountResolver creates a new AccountResolver.
func NewAccountResolver(
	accountRepo AccountRepository,
	productRepo ProductRepository,
	balanceRepo BalanceRepository,
	tranRepo TransactionRepository,
	hierarchy *GLHierarchyUseCase,
	localCurrency string,
) *AccountResolver {
	return &AccountResolver{
		accountRepo:   accountRepo,
		productRepo:   productRepo,
		balanceRepo:   balanceRepo,
		tranRepo:      tranRepo,
		hierarchy:     hierarchy,
		localCurrency: localCurrency,
	}
}

// Resolve finds an account in the customer master, then the office master.
func (r *AccountResolver) Resolve(ctx context.Context, accountNo string) (domain.Account, error) {
	customer, err := r.accountRepo.GetCustomerAccount(ctx, accountNo)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	office, err := r.accountRepo.GetOfficeAccount(ctx, accountNo)
	if err == nil {
		return office, nil
	}
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNo)
	}
	return nil, err
}

// Info returns the normalized view of an account.
func (r *AccountResolver) Info(ctx context.Context, accountNo string) (*domain.AccountInfo, error) {
	account, err := r.Resolve(ctx, accountNo)
	if err != nil {
		return nil, err
	}

	overdraft, err := r.hierarchy.IsOverdraft(ctx, account.GLNum())
	if err != nil && !errors.Is(err, domain.ErrGLNotFound) {
		return nil, err
	}
	return domain.NewAccountInfo(account, overdraft), nil
}

// SubProduct returns the account's sub-product.
func (r *AccountResolver) SubProduct(ctx context.Context, account domain.Account) (*domain.SubProduct, error) {
	sub, err := r.productRepo.GetSubProduct(ctx, account.SubProductID())
	if err != nil {
		if errors.Is(err, domain.ErrSubProductNotFound) {
			return nil, fmt.Errorf("%w: %d for account %s", domain.ErrSubProductNotFound, account.SubProductID(), account.AccountNo())
		}
		return nil, err
	}
	return sub, nil
}

// PostingGL returns the GL an account posts to: its sub-product's
// cumulative GL.
func (r *AccountResolver) PostingGL(ctx context.Context, account domain.Account) (string, error) {
	sub, err := r.SubProduct(ctx, account)
	if err != nil {
		return "", err
	}
	if sub.CumGLNum == "" {
		return "", fmt.Errorf("%w: sub-product %d", domain.ErrGLMappingMissing, sub.ID)
	}
	return sub.CumGLNum, nil
}

// CurrentBalance is the closing balance of the last snapshot before date
// plus the verified and posted legs of date itself, in the account's
// currency.
func (r *AccountResolver) CurrentBalance(ctx context.Context, account domain.Account, date time.Time) (decimal.Decimal, error) {
	date = domain.DateOf(date)

	opening := decimal.Zero
	prev, err := r.balanceRepo.LatestAccountBalanceBefore(ctx, account.AccountNo(), date)
	if err != nil {
		return decimal.Zero, err
	}
	if prev != nil {
		opening = prev.CurrentBalance
	}

	useFcy := account.Currency() != r.localCurrency
	debits, credits, err := r.tranRepo.SumForAccount(ctx, account.AccountNo(), date, useFcy)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.CloseAccount(opening, debits, credits), nil
}

// AvailableBalance is the current balance, plus the loan limit for
// customer asset accounts.
func (r *AccountResolver) AvailableBalance(ctx context.Context, account domain.Account, date time.Time) (decimal.Decimal, error) {
	current, err := r.CurrentBalance(ctx, account, date)
	if err != nil {
		return decimal.Zero, err
	}

	if c, ok := account.(*domain.CustomerAccount); ok && domain.AccountClassOf(c.GL) == domain.AccountGLAsset {
		return current.Add(c.LoanLimit), nil
	}
	return current, nil
}

// ValidateDebit checks an account can take a debit of amount.
//
// Customer accounts need amount <= available balance; liability accounts
// under an overdraft GL are exempt. Office asset accounts take any debit,
// other office accounts must not go negative.
func (r *AccountResolver) ValidateDebit(ctx context.Context, account domain.Account, amount decimal.Decimal, date time.Time) error {
	class := domain.AccountClassOf(account.GLNum())

	if account.Kind() == domain.AccountKindCustomer && class != domain.AccountGLOther {
		if class == domain.AccountGLLiability {
			overdraft, err := r.hierarchy.IsOverdraft(ctx, account.GLNum())
			if err != nil {
				return err
			}
			if overdraft {
				return nil
			}
		}

		available, err := r.AvailableBalance(ctx, account, date)
		if err != nil {
			return err
		}
		if amount.GreaterThan(available) {
			return fmt.Errorf("%w: account %s available %s, debit %s", domain.ErrInsufficientBalance, account.AccountNo(), available.StringFixed(2), amount.StringFixed(2))
		}
		return nil
	}

	if account.Kind() == domain.AccountKindOffice && class == domain.AccountGLAsset {
		return nil
	}

	current, err := r.CurrentBalance(ctx, account, date)
	if err != nil {
		return err
	}
	if current.Sub(amount).IsNegative() {
		return fmt.Errorf("%w: account %s balance %s, debit %s", domain.ErrInsufficientBalance, account.AccountNo(), current.StringFixed(2), amount.StringFixed(2))
	}
	return nil
}

// AccountOpeningUseCase allocates numbers and opens accounts.
type AccountOpeningUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	productRepo ProductRepository
	seqRepo     SequenceRepository
	allocator   *SequenceAllocator
	clock       *SystemDateUseCase
}

// NewAccountOpeningUseCase creates a new AccountOpeningUseCase.
func NewAccountOpeningUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	productRepo ProductRepository,
	seqRepo SequenceRepository,
	allocator *SequenceAllocator,
	clock *SystemDateUseCase,
) *AccountOpeningUseCase {
	return &AccountOpeningUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
		allocator:   allocator,
		clock:       clock,
	}
}

// OpenCustomerAccountInput represents input for opening a customer account.
type OpenCustomerAccountInput struct {
	CustomerID   int64  `validate:"required,min=1,max=99999999"`
	SubProductID int64  `validate:"required,min=1"`
	Name         string `validate:"required,max=255"`
	Currency     string `validate:"required,len=3"`
	BranchCode   string `validate:"max=10"`
	LoanLimit    decimal.Decimal
}

// OpenCustomerAccount allocates a customer account number and stores the account.
func (uc *AccountOpeningUseCase) OpenCustomerAccount(ctx context.Context, input OpenCustomerAccountInput) (*domain.CustomerAccount, error) {
	if err := validateInput(input, domain.ErrInvalidAccountName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if input.LoanLimit.IsNegative() {
		return nil, fmt.Errorf("%w: loan limit", domain.ErrInvalidAmount)
	}

	sub, product, err := uc.products(ctx, input.SubProductID)
	if err != nil {
		return nil, err
	}
	openedOn, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	var account *domain.CustomerAccount
	err = retry(ctx, uc.retrier, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		accountNo, err := uc.allocator.NextCustomerAccountNo(txCtx, tx, input.CustomerID, product.CumGLNum)
		if err != nil {
			return err
		}

		account = &domain.CustomerAccount{
			No:           accountNo,
			CustomerID:   input.CustomerID,
			SubProductRf: sub.ID,
			GL:           sub.CumGLNum,
			Ccy:          input.Currency,
			AcctName:     input.Name,
			State:        domain.AccountStatusActive,
			LoanLimit:    input.LoanLimit,
			BranchCode:   input.BranchCode,
			OpenedOn:     openedOn,
			CreatedAt:    time.Now().UTC(),
		}
		if err := uc.accountRepo.CreateCustomerAccount(txCtx, tx, account); err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// OpenOfficeAccountInput represents input for opening an office account.
type OpenOfficeAccountInput struct {
	SubProductID           int64  `validate:"required,min=1"`
	Name                   string `validate:"required,max=255"`
	Currency               string `validate:"required,len=3"`
	BranchCode             string `validate:"max=10"`
	ReconciliationRequired bool
}

// OpenOfficeAccount allocates an office account number and stores the account.
func (uc *AccountOpeningUseCase) OpenOfficeAccount(ctx context.Context, input OpenOfficeAccountInput) (*domain.OfficeAccount, error) {
	if err := validateInput(input, domain.ErrInvalidAccountName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	sub, _, err := uc.products(ctx, input.SubProductID)
	if err != nil {
		return nil, err
	}
	openedOn, err := uc.clock.SystemDate(ctx)
	if err != nil {
		return nil, err
	}

	var account *domain.OfficeAccount
	err = retry(ctx, uc.retrier, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		accountNo, err := uc.allocator.NextOfficeAccountNo(txCtx, tx, sub.CumGLNum)
		if err != nil {
			return err
		}

		account = &domain.OfficeAccount{
			No:                     accountNo,
			SubProductRf:           sub.ID,
			GL:                     sub.CumGLNum,
			Ccy:                    input.Currency,
			AcctName:               input.Name,
			State:                  domain.AccountStatusActive,
			BranchCode:             input.BranchCode,
			ReconciliationRequired: input.ReconciliationRequired,
			OpenedOn:               openedOn,
			CreatedAt:              time.Now().UTC(),
		}
		if err := uc.accountRepo.CreateOfficeAccount(txCtx, tx, account); err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// AllocateCustomerIDInput represents input for reserving a customer id.
type AllocateCustomerIDInput struct {
	CustomerType string `validate:"required,oneof=Individual Corporate Bank individual corporate bank"`
	Name         string `validate:"required,max=255"`
}

// AllocateCustomerID reserves the next customer id for a customer type.
func (uc *AccountOpeningUseCase) AllocateCustomerID(ctx context.Context, input AllocateCustomerIDInput) (int64, error) {
	if err := validateInput(input, domain.ErrInvalidCustomerType); err != nil {
		return 0, err
	}
	customerType, err := domain.ParseCustomerType(input.CustomerType)
	if err != nil {
		return 0, err
	}

	var id int64
	err = retry(ctx, uc.retrier, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		id, err = uc.allocator.NextCustomerID(txCtx, tx, customerType)
		if err != nil {
			return err
		}
		if err := uc.seqRepo.ReserveCustomerID(txCtx, tx, id, customerType, input.Name, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AllocateGenericAccountNoInput represents input for reserving a GL-scoped
// account number.
type AllocateGenericAccountNoInput struct {
	GLNum string `validate:"required,len=9,numeric"`
}

// AllocateGenericAccountNo reserves the next glNum + 3-digit account number.
func (uc *AccountOpeningUseCase) AllocateGenericAccountNo(ctx context.Context, input AllocateGenericAccountNoInput) (string, error) {
	if err := validateInput(input, domain.ErrInvalidGLSetup); err != nil {
		return "", err
	}

	var accountNo string
	err := retry(ctx, uc.retrier, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		accountNo, err = uc.allocator.NextGenericAccountNo(txCtx, tx, input.GLNum)
		if err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
	if err != nil {
		return "", err
	}
	return accountNo, nil
}

func (uc *AccountOpeningUseCase) products(ctx context.Context, subProductID int64) (*domain.SubProduct, *domain.Product, error) {
	sub, err := uc.productRepo.GetSubProduct(ctx, subProductID)
	if err != nil {
		return nil, nil, err
	}
	if sub.CumGLNum == "" {
		return nil, nil, fmt.Errorf("%w: sub-product %d", domain.ErrGLMappingMissing, sub.ID)
	}
	product, err := uc.productRepo.GetProduct(ctx, sub.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return sub, product, nil
}

// retry runs op through r, or once when r is nil.
func retry(ctx context.Context, r Retrier, op func() error) error {
	if r == nil {
		return op()
	}
	return r.Retry(ctx, op)
}
