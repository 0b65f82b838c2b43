package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

const (
	maxCustomerAccountSeq = 999
	maxOfficeAccountSeq   = 99
	maxGenericAccountSeq  = 999
	maxCustomerID         = 99_999_999

	// Advisory lock namespaces
	lockNamespaceCustomerAccount int32 = 1001
	lockNamespaceCustomerID      int32 = 1002
)

// Allocation kinds used as metric labels.
const (
	seqKindCustomerAccount = "customer_account"
	seqKindOfficeAccount   = "office_account"
	seqKindGenericAccount  = "generic_account"
	seqKindCustomerID      = "customer_id"
)

// SequenceAllocator hands out account numbers and customer ids. Every call
// runs inside the caller's transaction.
type SequenceAllocator struct {
	glRepo  GLRepository
	seqRepo SequenceRepository
	metrics *metrics.Metrics
}

// NewSequenceAllocator creates a new SequenceAllocator.
func NewSequenceAllocator(glRepo GLRepository, seqRepo SequenceRepository, m *metrics.Metrics) *SequenceAllocator {
	return &SequenceAllocator{glRepo: glRepo, seqRepo: seqRepo, metrics: m}
}

// NextCustomerAccountNo allocates <8-digit customer id><product code><3-digit seq>.
func (a *SequenceAllocator) NextCustomerAccountNo(ctx context.Context, tx Transaction, customerID int64, productGL string) (string, error) {
	code, ok := domain.ProductTypeCode(productGL)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownProductType, productGL)
	}
	if customerID <= 0 || customerID > maxCustomerID {
		return "", fmt.Errorf("%w: customer id %d out of range", domain.ErrInvalidCustomerType, customerID)
	}

	prefix := fmt.Sprintf("%08d%d", customerID, code)
	if err := a.seqRepo.LockKey(ctx, tx, lockNamespaceCustomerAccount, lockKey(prefix)); err != nil {
		return "", err
	}

	last, err := a.seqRepo.MaxCustomerAccountSeq(ctx, tx, prefix)
	if err != nil {
		return "", err
	}

	next := last + 1
	if next > maxCustomerAccountSeq {
		a.exhausted(seqKindCustomerAccount)
		return "", fmt.Errorf("%w: customer %d product %d reached %d accounts", domain.ErrSequenceExhausted, customerID, code, maxCustomerAccountSeq)
	}

	a.allocated(seqKindCustomerAccount)
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// NextOfficeAccountNo allocates "9" + glNum + <2-digit seq>.
func (a *SequenceAllocator) NextOfficeAccountNo(ctx context.Context, tx Transaction, glNum string) (string, error) {
	next, err := a.nextGLSeq(ctx, tx, glNum, maxOfficeAccountSeq, seqKindOfficeAccount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("9%s%02d", glNum, next), nil
}

// NextGenericAccountNo allocates glNum + <3-digit seq>.
func (a *SequenceAllocator) NextGenericAccountNo(ctx context.Context, tx Transaction, glNum string) (string, error) {
	next, err := a.nextGLSeq(ctx, tx, glNum, maxGenericAccountSeq, seqKindGenericAccount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", glNum, next), nil
}

func (a *SequenceAllocator) nextGLSeq(ctx context.Context, tx Transaction, glNum string, limit int, kind string) (int, error) {
	if _, err := a.glRepo.GetByNum(ctx, glNum); err != nil {
		if errors.Is(err, domain.ErrGLNotFound) {
			return 0, fmt.Errorf("%w: %s", domain.ErrGLNotFound, glNum)
		}
		return 0, err
	}

	current, err := a.seqRepo.LockAccountSeq(ctx, tx, glNum)
	if err != nil {
		return 0, err
	}

	next := current + 1
	if next > limit {
		a.exhausted(kind)
		return 0, fmt.Errorf("%w: GL %s reached %d accounts", domain.ErrSequenceExhausted, glNum, limit)
	}

	if err := a.seqRepo.SetAccountSeq(ctx, tx, glNum, next, time.Now().UTC()); err != nil {
		return 0, err
	}

	a.allocated(kind)
	return next, nil
}

// NextCustomerID allocates the next id in the customer type's band. When
// the band's top is taken it falls back to the lowest unused id.
func (a *SequenceAllocator) NextCustomerID(ctx context.Context, tx Transaction, customerType domain.CustomerType) (int64, error) {
	if !customerType.Valid() {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidCustomerType, customerType)
	}

	if err := a.seqRepo.LockKey(ctx, tx, lockNamespaceCustomerID, int32(customerType)); err != nil {
		return 0, err
	}

	lo, hi := customerType.Range()
	last, found, err := a.seqRepo.MaxCustomerID(ctx, tx, lo, hi)
	if err != nil {
		return 0, err
	}

	switch {
	case !found:
		a.allocated(seqKindCustomerID)
		return lo, nil
	case last < hi:
		a.allocated(seqKindCustomerID)
		return last + 1, nil
	}

	free, ok, err := a.seqRepo.FirstFreeCustomerID(ctx, tx, lo, hi)
	if err != nil {
		return 0, err
	}
	if !ok {
		a.exhausted(seqKindCustomerID)
		return 0, fmt.Errorf("%w: no free customer id for type %d", domain.ErrSequenceExhausted, customerType)
	}

	a.allocated(seqKindCustomerID)
	return free, nil
}

func (a *SequenceAllocator) allocated(kind string) {
	if a.metrics != nil {
		a.metrics.SequenceAllocations.WithLabelValues(kind).Inc()
	}
}

func (a *SequenceAllocator) exhausted(kind string) {
	if a.metrics != nil {
		a.metrics.SequenceExhausted.WithLabelValues(kind).Inc()
	}
}

func lockKey(s string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int32(h.Sum32())
}
