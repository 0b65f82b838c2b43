package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

// GLRepository defines data access for the chart of accounts.
type GLRepository interface {
	GetByNum(ctx context.Context, glNum string) (*domain.GLSetup, error)
	Create(ctx context.Context, tx Transaction, gl *domain.GLSetup) error
	ListChildren(ctx context.Context, parentGLNum string) ([]*domain.GLSetup, error)
	ExistsByNameAndParent(ctx context.Context, glName, parentGLNum string) (bool, error)
	ExistsByLayerGLNum(ctx context.Context, parentGLNum, layerGLNum string) (bool, error)
}

// ProductRepository defines data access for product and sub-product masters.
// CreateSubProduct sets sub.ID on success.
type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetSubProduct(ctx context.Context, id int64) (*domain.SubProduct, error)
	CreateSubProduct(ctx context.Context, tx Transaction, sub *domain.SubProduct) error
}

// AccountRepository defines data access for customer and office accounts.
type AccountRepository interface {
	GetCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error)
	GetOfficeAccount(ctx context.Context, accountNo string) (*domain.OfficeAccount, error)
	CreateCustomerAccount(ctx context.Context, tx Transaction, account *domain.CustomerAccount) error
	CreateOfficeAccount(ctx context.Context, tx Transaction, account *domain.OfficeAccount) error
	List(ctx context.Context) ([]domain.Account, error)
}

// TransactionRepository defines data access for transaction legs.
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, legs []*domain.Transaction) error
	GetByBaseID(ctx context.Context, baseID string) ([]*domain.Transaction, error)
	GetByBaseIDForUpdate(ctx context.Context, tx Transaction, baseID string) ([]*domain.Transaction, error)
	GetLegForUpdate(ctx context.Context, tx Transaction, tranID string) (*domain.Transaction, error)
	ListByStatusAndDate(ctx context.Context, status domain.TranStatus, tranDate time.Time) ([]*domain.Transaction, error)
	ListFutureDue(ctx context.Context, systemDate time.Time) ([]*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, tranID string, status domain.TranStatus, updatedAt time.Time) error
	Promote(ctx context.Context, tx Transaction, tranID string, tranDate, updatedAt time.Time) error
	SumByFlag(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) (debits, credits decimal.Decimal, err error)
	SumForAccount(ctx context.Context, accountNo string, tranDate time.Time, useFcy bool) (debits, credits decimal.Decimal, err error)
}

// GLMovementRepository defines data access for GL movements.
type GLMovementRepository interface {
	CreateTx(ctx context.Context, tx Transaction, movement *domain.GLMovement) error
	ExistsForTransaction(ctx context.Context, tranID string) (bool, error)
	ListByTranID(ctx context.Context, tranID string) ([]*domain.GLMovement, error)
	SumByGL(ctx context.Context, glNum string, tranDate time.Time) (debits, credits decimal.Decimal, err error)
	ListGLNums(ctx context.Context, tranDate time.Time) ([]string, error)
}

// AccrualRepository defines data access for interest accruals, their GL
// movements and the per-account accrual balances. LatestBalanceBefore
// returns (nil, nil) when no row exists.
type AccrualRepository interface {
	ListPending(ctx context.Context, accrualDate time.Time) ([]*domain.InterestAccrual, error)
	UpdateStatus(ctx context.Context, tx Transaction, accrTranID string, status domain.AccrualStatus) error
	MovementExists(ctx context.Context, accrTranID string) (bool, error)
	CreateMovement(ctx context.Context, tx Transaction, movement *domain.GLMovementAccrual) error
	SumMovementsByGL(ctx context.Context, glNum string, accrualDate time.Time) (debits, credits decimal.Decimal, err error)
	ListMovementGLNums(ctx context.Context, accrualDate time.Time) ([]string, error)

	CreateAccruals(ctx context.Context, tx Transaction, accruals []*domain.InterestAccrual) error
	MaxSequence(ctx context.Context, accrualDate time.Time) (int, error)
	ListAccountNos(ctx context.Context, accrualDate time.Time) ([]string, error)
	SumForAccount(ctx context.Context, accountNo string, accrualDate time.Time) (debits, credits decimal.Decimal, err error)
	LatestBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalanceAccrual, error)
	UpsertBalance(ctx context.Context, tx Transaction, balance *domain.AccountBalanceAccrual) error
}

// BalanceRepository defines data access for daily balance snapshots.
// Latest* lookups return (nil, nil) when no snapshot exists.
type BalanceRepository interface {
	LatestAccountBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error)
	LatestAccountBalance(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error)
	LockAccountBalance(ctx context.Context, tx Transaction, accountNo, currency string, date time.Time) (*domain.AccountBalance, error)
	UpsertAccountBalance(ctx context.Context, tx Transaction, balance *domain.AccountBalance) error

	LatestGLBalanceBefore(ctx context.Context, glNum string, date time.Time) (*domain.GLBalance, error)
	LockGLBalance(ctx context.Context, tx Transaction, glNum string, date time.Time) (*domain.GLBalance, error)
	UpsertGLBalance(ctx context.Context, tx Transaction, balance *domain.GLBalance) error
	ListGLNums(ctx context.Context) ([]string, error)
}

// ValueDateLogRepository defines data access for the value-date audit log.
type ValueDateLogRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.ValueDateLog) error
	MarkPosted(ctx context.Context, tx Transaction, tranID string) error
	GetByTranID(ctx context.Context, tranID string) (*domain.ValueDateLog, error)
}

// SequenceRepository defines the persisted counters used for number allocation.
type SequenceRepository interface {
	// LockAccountSeq locks the GL's counter row, creating it at zero when
	// missing, and returns its current value.
	LockAccountSeq(ctx context.Context, tx Transaction, glNum string) (int, error)
	SetAccountSeq(ctx context.Context, tx Transaction, glNum string, seq int, updatedAt time.Time) error

	// LockKey takes a transaction-scoped advisory lock.
	LockKey(ctx context.Context, tx Transaction, namespace int32, key int32) error
	MaxCustomerAccountSeq(ctx context.Context, tx Transaction, prefix string) (int, error)
	MaxCustomerID(ctx context.Context, tx Transaction, lo, hi int64) (int64, bool, error)
	FirstFreeCustomerID(ctx context.Context, tx Transaction, lo, hi int64) (int64, bool, error)
	ReserveCustomerID(ctx context.Context, tx Transaction, id int64, customerType domain.CustomerType, name string, createdAt time.Time) error
}

// ExchangeRateRepository defines data access for exchange rates.
type ExchangeRateRepository interface {
	LatestOnOrBefore(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error)
	Get(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error)
	Create(ctx context.Context, rate *domain.ExchangeRate) error
	Update(ctx context.Context, rate *domain.ExchangeRate) error
}

// ParameterRepository defines data access for the parameter store.
type ParameterRepository interface {
	Get(ctx context.Context, name string) (*domain.Parameter, error)
	Set(ctx context.Context, param *domain.Parameter) error
}

// EODLogRepository defines data access for EOD job logs.
type EODLogRepository interface {
	Create(ctx context.Context, log *domain.EODJobLog) error
	Finish(ctx context.Context, log *domain.EODJobLog) error
	ListByDate(ctx context.Context, eodDate time.Time) ([]*domain.EODJobLog, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Locker provides mutual exclusion across processes.
type Locker interface {
	// TryLock returns ok=false when the lock is held elsewhere.
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so the key can be retried.
	Release(ctx context.Context, key string) error
}
