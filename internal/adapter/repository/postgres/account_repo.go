package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository over the customer
// and office account masters.
type AccountRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// GetCustomerAccount retrieves a customer account by number.
func (r *AccountRepository) GetCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error) {
	row, err := r.queries.GetCustomerAccount(ctx, accountNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNo)
		}

		return nil, err
	}

	return rowToCustomerAccount(row), nil
}

// GetOfficeAccount retrieves an office account by number.
func (r *AccountRepository) GetOfficeAccount(ctx context.Context, accountNo string) (*domain.OfficeAccount, error) {
	row, err := r.queries.GetOfficeAccount(ctx, accountNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNo)
		}

		return nil, err
	}

	return rowToOfficeAccount(row), nil
}

// CreateCustomerAccount inserts a customer account within a transaction.
func (r *AccountRepository) CreateCustomerAccount(ctx context.Context, tx usecase.Transaction, account *domain.CustomerAccount) error {
	return queriesFor(tx, r.db).CreateCustomerAccount(ctx, generated.CreateCustomerAccountParams{
		AccountNo:    account.No,
		CustomerID:   account.CustomerID,
		SubProductID: account.SubProductRf,
		GlNum:        account.GL,
		Currency:     account.Ccy,
		AcctName:     account.AcctName,
		Status:       string(account.State),
		LoanLimit:    decimalToNumeric(account.LoanLimit),
		BranchCode:   account.BranchCode,
		OpenedOn:     dateToPg(account.OpenedOn),
		CreatedAt:    timeToPgTimestamptz(account.CreatedAt),
	})
}

// CreateOfficeAccount inserts an office account within a transaction.
func (r *AccountRepository) CreateOfficeAccount(ctx context.Context, tx usecase.Transaction, account *domain.OfficeAccount) error {
	return queriesFor(tx, r.db).CreateOfficeAccount(ctx, generated.CreateOfficeAccountParams{
		AccountNo:              account.No,
		SubProductID:           account.SubProductRf,
		GlNum:                  account.GL,
		Currency:               account.Ccy,
		AcctName:               account.AcctName,
		Status:                 string(account.State),
		BranchCode:             account.BranchCode,
		ReconciliationRequired: account.ReconciliationRequired,
		OpenedOn:               dateToPg(account.OpenedOn),
		CreatedAt:              timeToPgTimestamptz(account.CreatedAt),
	})
}

// List returns every customer account followed by every office account.
func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	customers, err := r.queries.ListCustomerAccounts(ctx)
	if err != nil {
		return nil, err
	}

	offices, err := r.queries.ListOfficeAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(customers)+len(offices))
	for _, row := range customers {
		accounts = append(accounts, rowToCustomerAccount(row))
	}
	for _, row := range offices {
		accounts = append(accounts, rowToOfficeAccount(row))
	}

	return accounts, nil
}

func rowToCustomerAccount(row generated.CustomerAccount) *domain.CustomerAccount {
	return &domain.CustomerAccount{
		No:           row.AccountNo,
		CustomerID:   row.CustomerID,
		SubProductRf: row.SubProductID,
		GL:           row.GlNum,
		Ccy:          row.Currency,
		AcctName:     row.AcctName,
		State:        domain.AccountStatus(row.Status),
		LoanLimit:    numericToDecimal(row.LoanLimit),
		BranchCode:   row.BranchCode,
		OpenedOn:     pgToDate(row.OpenedOn),
		CreatedAt:    row.CreatedAt.Time,
	}
}

func rowToOfficeAccount(row generated.OfficeAccount) *domain.OfficeAccount {
	return &domain.OfficeAccount{
		No:                     row.AccountNo,
		SubProductRf:           row.SubProductID,
		GL:                     row.GlNum,
		Ccy:                    row.Currency,
		AcctName:               row.AcctName,
		State:                  domain.AccountStatus(row.Status),
		BranchCode:             row.BranchCode,
		ReconciliationRequired: row.ReconciliationRequired,
		OpenedOn:               pgToDate(row.OpenedOn),
		CreatedAt:              row.CreatedAt.Time,
	}
}
