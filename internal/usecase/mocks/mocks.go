package mocks

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// MockGLRepository is an in-memory GLRepository.
type MockGLRepository struct {
	mu  sync.RWMutex
	gls map[string]*domain.GLSetup

	GetByNumFunc func(ctx context.Context, glNum string) (*domain.GLSetup, error)
	CreateFunc   func(ctx context.Context, tx usecase.Transaction, gl *domain.GLSetup) error
}

func NewMockGLRepository(gls ...*domain.GLSetup) *MockGLRepository {
	m := &MockGLRepository{gls: make(map[string]*domain.GLSetup)}
	for _, gl := range gls {
		m.gls[gl.GLNum] = gl
	}
	return m
}

func (m *MockGLRepository) GetByNum(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	if m.GetByNumFunc != nil {
		return m.GetByNumFunc(ctx, glNum)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if gl, ok := m.gls[glNum]; ok {
		return gl, nil
	}
	return nil, domain.ErrGLNotFound
}

func (m *MockGLRepository) Create(ctx context.Context, tx usecase.Transaction, gl *domain.GLSetup) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, gl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.gls[gl.GLNum]; ok {
		return domain.ErrGLAlreadyExists
	}
	m.gls[gl.GLNum] = gl
	return nil
}

func (m *MockGLRepository) ListChildren(ctx context.Context, parentGLNum string) ([]*domain.GLSetup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.GLSetup
	for _, gl := range m.gls {
		if gl.ParentGLNum == parentGLNum && gl.GLNum != parentGLNum {
			out = append(out, gl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GLNum < out[j].GLNum })
	return out, nil
}

func (m *MockGLRepository) ExistsByNameAndParent(ctx context.Context, glName, parentGLNum string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, gl := range m.gls {
		if gl.GLName == glName && gl.ParentGLNum == parentGLNum {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockGLRepository) ExistsByLayerGLNum(ctx context.Context, parentGLNum, layerGLNum string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, gl := range m.gls {
		if gl.ParentGLNum == parentGLNum && gl.LayerGLNum == layerGLNum {
			return true, nil
		}
	}
	return false, nil
}

// MockProductRepository is an in-memory ProductRepository.
type MockProductRepository struct {
	mu          sync.RWMutex
	products    map[int64]*domain.Product
	subProducts map[int64]*domain.SubProduct
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:    make(map[int64]*domain.Product),
		subProducts: make(map[int64]*domain.SubProduct),
	}
}

// AddProduct seeds a product.
func (m *MockProductRepository) AddProduct(p *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// AddSubProduct seeds a sub-product.
func (m *MockProductRepository) AddSubProduct(s *domain.SubProduct) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subProducts[s.ID] = s
}

func (m *MockProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) GetSubProduct(ctx context.Context, id int64) (*domain.SubProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.subProducts[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSubProductNotFound
}

func (m *MockProductRepository) CreateSubProduct(ctx context.Context, tx usecase.Transaction, sub *domain.SubProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var next int64
	for id, s := range m.subProducts {
		if s.Code == sub.Code {
			return fmt.Errorf("%w: %s", domain.ErrSubProductExists, sub.Code)
		}
		if id > next {
			next = id
		}
	}
	sub.ID = next + 1
	m.subProducts[sub.ID] = sub
	return nil
}

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.CustomerAccount
	offices   map[string]*domain.OfficeAccount

	CreateCustomerAccountFunc func(ctx context.Context, tx usecase.Transaction, account *domain.CustomerAccount) error
	ListFunc                  func(ctx context.Context) ([]domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		customers: make(map[string]*domain.CustomerAccount),
		offices:   make(map[string]*domain.OfficeAccount),
	}
}

func (m *MockAccountRepository) GetCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.customers[accountNo]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetOfficeAccount(ctx context.Context, accountNo string) (*domain.OfficeAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.offices[accountNo]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) CreateCustomerAccount(ctx context.Context, tx usecase.Transaction, account *domain.CustomerAccount) error {
	if m.CreateCustomerAccountFunc != nil {
		return m.CreateCustomerAccountFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[account.No] = account
	return nil
}

func (m *MockAccountRepository) CreateOfficeAccount(ctx context.Context, tx usecase.Transaction, account *domain.OfficeAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offices[account.No] = account
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Account, 0, len(m.customers)+len(m.offices))
	for _, a := range m.customers {
		out = append(out, a)
	}
	for _, a := range m.offices {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNo() < out[j].AccountNo() })
	return out, nil
}

// CustomerAccountNos returns the stored customer account numbers with prefix.
func (m *MockAccountRepository) CustomerAccountNos(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for no := range m.customers {
		if strings.HasPrefix(no, prefix) {
			out = append(out, no)
		}
	}
	return out
}

// MockTransactionRepository is an in-memory TransactionRepository. Reads
// return copies so callers cannot change stored legs without a write.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	legs map[string]*domain.Transaction

	CreateTxFunc     func(ctx context.Context, tx usecase.Transaction, legs []*domain.Transaction) error
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, tranID string, status domain.TranStatus, updatedAt time.Time) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{legs: make(map[string]*domain.Transaction)}
}

func cloneLeg(l *domain.Transaction) *domain.Transaction {
	c := *l
	return &c
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, legs []*domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, legs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range legs {
		m.legs[l.TranID] = cloneLeg(l)
	}
	return nil
}

func (m *MockTransactionRepository) filter(keep func(*domain.Transaction) bool) []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, l := range m.legs {
		if keep(l) {
			out = append(out, cloneLeg(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TranID < out[j].TranID })
	return out
}

func (m *MockTransactionRepository) GetByBaseID(ctx context.Context, baseID string) ([]*domain.Transaction, error) {
	return m.filter(func(l *domain.Transaction) bool { return domain.BaseTranID(l.TranID) == baseID }), nil
}

func (m *MockTransactionRepository) GetByBaseIDForUpdate(ctx context.Context, tx usecase.Transaction, baseID string) ([]*domain.Transaction, error) {
	return m.GetByBaseID(ctx, baseID)
}

func (m *MockTransactionRepository) GetLegForUpdate(ctx context.Context, tx usecase.Transaction, tranID string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.legs[tranID]; ok {
		return cloneLeg(l), nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByStatusAndDate(ctx context.Context, status domain.TranStatus, tranDate time.Time) ([]*domain.Transaction, error) {
	return m.filter(func(l *domain.Transaction) bool {
		return l.Status == status && l.TranDate.Equal(domain.DateOf(tranDate))
	}), nil
}

func (m *MockTransactionRepository) ListFutureDue(ctx context.Context, systemDate time.Time) ([]*domain.Transaction, error) {
	return m.filter(func(l *domain.Transaction) bool {
		return l.Status == domain.TranStatusFuture && !l.ValueDate.After(domain.DateOf(systemDate))
	}), nil
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tranID string, status domain.TranStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, tranID, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.legs[tranID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	l.Status = status
	l.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) Promote(ctx context.Context, tx usecase.Transaction, tranID string, tranDate, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.legs[tranID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	l.Status = domain.TranStatusPosted
	l.TranDate = domain.DateOf(tranDate)
	l.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) SumByFlag(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) (decimal.Decimal, decimal.Decimal, error) {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range m.filter(func(l *domain.Transaction) bool {
		return l.TranDate.Equal(domain.DateOf(tranDate)) && slices.Contains(statuses, l.Status)
	}) {
		if l.DrCr == domain.Debit {
			debits = debits.Add(l.LcyAmt)
		} else {
			credits = credits.Add(l.LcyAmt)
		}
	}
	return debits, credits, nil
}

func (m *MockTransactionRepository) SumForAccount(ctx context.Context, accountNo string, tranDate time.Time, useFcy bool) (decimal.Decimal, decimal.Decimal, error) {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range m.filter(func(l *domain.Transaction) bool {
		return l.AccountNo == accountNo &&
			l.TranDate.Equal(domain.DateOf(tranDate)) &&
			(l.Status == domain.TranStatusVerified || l.Status == domain.TranStatusPosted)
	}) {
		amount := l.LcyAmt
		if useFcy {
			amount = l.FcyAmt
		}
		if l.DrCr == domain.Debit {
			debits = debits.Add(amount)
		} else {
			credits = credits.Add(amount)
		}
	}
	return debits, credits, nil
}

// Leg returns a copy of a stored leg.
func (m *MockTransactionRepository) Leg(tranID string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.legs[tranID]; ok {
		return cloneLeg(l)
	}
	return nil
}

// MockGLMovementRepository is an in-memory GLMovementRepository.
type MockGLMovementRepository struct {
	mu        sync.RWMutex
	movements []*domain.GLMovement

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, movement *domain.GLMovement) error
}

func NewMockGLMovementRepository() *MockGLMovementRepository {
	return &MockGLMovementRepository{}
}

func (m *MockGLMovementRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.GLMovement) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, movement)
	return nil
}

func (m *MockGLMovementRepository) ExistsForTransaction(ctx context.Context, tranID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movements {
		if mv.TranID == tranID && mv.Source == domain.MovementFromTransaction {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockGLMovementRepository) ListByTranID(ctx context.Context, tranID string) ([]*domain.GLMovement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.GLMovement
	for _, mv := range m.movements {
		if mv.TranID == tranID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *MockGLMovementRepository) SumByGL(ctx context.Context, glNum string, tranDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, mv := range m.movements {
		if mv.GLNum != glNum || !mv.TranDate.Equal(domain.DateOf(tranDate)) {
			continue
		}
		if mv.DrCr == domain.Debit {
			debits = debits.Add(mv.LcyAmt)
		} else {
			credits = credits.Add(mv.LcyAmt)
		}
	}
	return debits, credits, nil
}

func (m *MockGLMovementRepository) ListGLNums(ctx context.Context, tranDate time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, mv := range m.movements {
		if mv.TranDate.Equal(domain.DateOf(tranDate)) && !slices.Contains(out, mv.GLNum) {
			out = append(out, mv.GLNum)
		}
	}
	sort.Strings(out)
	return out, nil
}

// All returns every stored movement.
func (m *MockGLMovementRepository) All() []*domain.GLMovement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.movements)
}

// MockAccrualRepository is an in-memory AccrualRepository.
type MockAccrualRepository struct {
	mu        sync.RWMutex
	accruals  map[string]*domain.InterestAccrual
	movements []*domain.GLMovementAccrual
	balances  map[balanceKey]domain.AccountBalanceAccrual
}

func NewMockAccrualRepository(accruals ...*domain.InterestAccrual) *MockAccrualRepository {
	m := &MockAccrualRepository{
		accruals: make(map[string]*domain.InterestAccrual),
		balances: make(map[balanceKey]domain.AccountBalanceAccrual),
	}
	for _, a := range accruals {
		m.accruals[a.AccrTranID] = a
	}
	return m
}

func (m *MockAccrualRepository) ListPending(ctx context.Context, accrualDate time.Time) ([]*domain.InterestAccrual, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.InterestAccrual
	for _, a := range m.accruals {
		if a.Status == domain.AccrualPending && a.AccrualDate.Equal(domain.DateOf(accrualDate)) {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccrTranID < out[j].AccrTranID })
	return out, nil
}

func (m *MockAccrualRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, accrTranID string, status domain.AccrualStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accruals[accrTranID]
	if !ok {
		return fmt.Errorf("accrual %s not found", accrTranID)
	}
	a.Status = status
	return nil
}

func (m *MockAccrualRepository) MovementExists(ctx context.Context, accrTranID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movements {
		if mv.AccrTranID == accrTranID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccrualRepository) CreateMovement(ctx context.Context, tx usecase.Transaction, movement *domain.GLMovementAccrual) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, movement)
	return nil
}

func (m *MockAccrualRepository) SumMovementsByGL(ctx context.Context, glNum string, accrualDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, mv := range m.movements {
		if mv.GLNum != glNum || !mv.AccrualDate.Equal(domain.DateOf(accrualDate)) {
			continue
		}
		if mv.DrCr == domain.Debit {
			debits = debits.Add(mv.LcyAmt)
		} else {
			credits = credits.Add(mv.LcyAmt)
		}
	}
	return debits, credits, nil
}

func (m *MockAccrualRepository) ListMovementGLNums(ctx context.Context, accrualDate time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, mv := range m.movements {
		if mv.AccrualDate.Equal(domain.DateOf(accrualDate)) && !slices.Contains(out, mv.GLNum) {
			out = append(out, mv.GLNum)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Movements returns every stored accrual movement.
func (m *MockAccrualRepository) Movements() []*domain.GLMovementAccrual {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.movements)
}

func (m *MockAccrualRepository) CreateAccruals(ctx context.Context, tx usecase.Transaction, accruals []*domain.InterestAccrual) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accruals {
		if _, ok := m.accruals[a.AccrTranID]; ok {
			return fmt.Errorf("accrual %s already exists", a.AccrTranID)
		}
	}
	for _, a := range accruals {
		c := *a
		m.accruals[a.AccrTranID] = &c
	}
	return nil
}

func (m *MockAccrualRepository) MaxSequence(ctx context.Context, accrualDate time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := "S" + domain.DateOf(accrualDate).Format("20060102")
	highest := 0
	for id := range m.accruals {
		if !strings.HasPrefix(id, prefix) || len(id) < len(prefix)+9 {
			continue
		}
		var seq int
		if _, err := fmt.Sscanf(id[len(prefix):len(prefix)+9], "%09d", &seq); err == nil && seq > highest {
			highest = seq
		}
	}
	return highest, nil
}

func (m *MockAccrualRepository) ListAccountNos(ctx context.Context, accrualDate time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, a := range m.accruals {
		if a.AccrualDate.Equal(domain.DateOf(accrualDate)) && !slices.Contains(out, a.AccountNo) {
			out = append(out, a.AccountNo)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockAccrualRepository) SumForAccount(ctx context.Context, accountNo string, accrualDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, a := range m.accruals {
		if a.AccountNo != accountNo || !a.AccrualDate.Equal(domain.DateOf(accrualDate)) {
			continue
		}
		if a.DrCr == domain.Debit {
			debits = debits.Add(a.Amount)
		} else {
			credits = credits.Add(a.Amount)
		}
	}
	return debits, credits, nil
}

func (m *MockAccrualRepository) LatestBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalanceAccrual, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *domain.AccountBalanceAccrual
	for k, b := range m.balances {
		if k.id != accountNo || !b.TranDate.Before(domain.DateOf(date)) {
			continue
		}
		if best == nil || b.TranDate.After(best.TranDate) {
			c := b
			best = &c
		}
	}
	return best, nil
}

func (m *MockAccrualRepository) UpsertBalance(ctx context.Context, tx usecase.Transaction, balance *domain.AccountBalanceAccrual) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[keyOf(balance.AccountNo, balance.TranDate)] = *balance
	return nil
}

// Accruals returns every stored accrual ordered by id.
func (m *MockAccrualRepository) Accruals() []*domain.InterestAccrual {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.InterestAccrual, 0, len(m.accruals))
	for _, a := range m.accruals {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccrTranID < out[j].AccrTranID })
	return out
}

// Balance returns the stored accrual balance for accountNo on date.
func (m *MockAccrualRepository) Balance(accountNo string, date time.Time) (domain.AccountBalanceAccrual, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.balances[keyOf(accountNo, date)]
	return b, ok
}

type balanceKey struct {
	id   string
	date string
}

func keyOf(id string, date time.Time) balanceKey {
	return balanceKey{id: id, date: domain.DateOf(date).Format(domain.DateLayout)}
}

// MockBalanceRepository is an in-memory BalanceRepository.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	accounts map[balanceKey]domain.AccountBalance
	gls      map[balanceKey]domain.GLBalance
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		accounts: make(map[balanceKey]domain.AccountBalance),
		gls:      make(map[balanceKey]domain.GLBalance),
	}
}

func (m *MockBalanceRepository) latestAccount(accountNo string, date time.Time, inclusive bool) *domain.AccountBalance {
	var best *domain.AccountBalance
	for _, b := range m.accounts {
		if b.AccountNo != accountNo {
			continue
		}
		if b.TranDate.After(date) || (!inclusive && b.TranDate.Equal(date)) {
			continue
		}
		if best == nil || b.TranDate.After(best.TranDate) {
			c := b
			best = &c
		}
	}
	return best
}

func (m *MockBalanceRepository) LatestAccountBalanceBefore(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestAccount(accountNo, domain.DateOf(date), false), nil
}

func (m *MockBalanceRepository) LatestAccountBalance(ctx context.Context, accountNo string, date time.Time) (*domain.AccountBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestAccount(accountNo, domain.DateOf(date), true), nil
}

func (m *MockBalanceRepository) LockAccountBalance(ctx context.Context, tx usecase.Transaction, accountNo, currency string, date time.Time) (*domain.AccountBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	date = domain.DateOf(date)
	if b, ok := m.accounts[keyOf(accountNo, date)]; ok {
		return &b, nil
	}
	b := domain.AccountBalance{
		AccountNo:        accountNo,
		TranDate:         date,
		Currency:         currency,
		OpeningBal:       decimal.Zero,
		DrSummation:      decimal.Zero,
		CrSummation:      decimal.Zero,
		CurrentBalance:   decimal.Zero,
		AvailableBalance: decimal.Zero,
	}
	if prev := m.latestAccount(accountNo, date, false); prev != nil {
		b.OpeningBal = prev.CurrentBalance
		b.CurrentBalance = prev.CurrentBalance
		b.AvailableBalance = prev.CurrentBalance
	}
	m.accounts[keyOf(accountNo, date)] = b
	return &b, nil
}

func (m *MockBalanceRepository) UpsertAccountBalance(ctx context.Context, tx usecase.Transaction, balance *domain.AccountBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[keyOf(balance.AccountNo, balance.TranDate)] = *balance
	return nil
}

func (m *MockBalanceRepository) latestGL(glNum string, date time.Time) *domain.GLBalance {
	var best *domain.GLBalance
	for _, b := range m.gls {
		if b.GLNum != glNum || !b.TranDate.Before(date) {
			continue
		}
		if best == nil || b.TranDate.After(best.TranDate) {
			c := b
			best = &c
		}
	}
	return best
}

func (m *MockBalanceRepository) LatestGLBalanceBefore(ctx context.Context, glNum string, date time.Time) (*domain.GLBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestGL(glNum, domain.DateOf(date)), nil
}

func (m *MockBalanceRepository) LockGLBalance(ctx context.Context, tx usecase.Transaction, glNum string, date time.Time) (*domain.GLBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	date = domain.DateOf(date)
	if b, ok := m.gls[keyOf(glNum, date)]; ok {
		return &b, nil
	}
	b := domain.GLBalance{
		GLNum:          glNum,
		TranDate:       date,
		OpeningBal:     decimal.Zero,
		DrSummation:    decimal.Zero,
		CrSummation:    decimal.Zero,
		CurrentBalance: decimal.Zero,
	}
	if prev := m.latestGL(glNum, date); prev != nil {
		b.OpeningBal = prev.CurrentBalance
		b.CurrentBalance = prev.CurrentBalance
	}
	m.gls[keyOf(glNum, date)] = b
	return &b, nil
}

func (m *MockBalanceRepository) UpsertGLBalance(ctx context.Context, tx usecase.Transaction, balance *domain.GLBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gls[keyOf(balance.GLNum, balance.TranDate)] = *balance
	return nil
}

func (m *MockBalanceRepository) ListGLNums(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for k := range m.gls {
		if !slices.Contains(out, k.id) {
			out = append(out, k.id)
		}
	}
	sort.Strings(out)
	return out, nil
}

// AccountBalance returns the stored snapshot for (accountNo, date).
func (m *MockBalanceRepository) AccountBalance(accountNo string, date time.Time) (domain.AccountBalance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.accounts[keyOf(accountNo, date)]
	return b, ok
}

// GLBalance returns the stored snapshot for (glNum, date).
func (m *MockBalanceRepository) GLBalance(glNum string, date time.Time) (domain.GLBalance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.gls[keyOf(glNum, date)]
	return b, ok
}

// MockValueDateLogRepository is an in-memory ValueDateLogRepository.
type MockValueDateLogRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.ValueDateLog
}

func NewMockValueDateLogRepository() *MockValueDateLogRepository {
	return &MockValueDateLogRepository{logs: make(map[string]*domain.ValueDateLog)}
}

func (m *MockValueDateLogRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.ValueDateLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *log
	m.logs[log.TranID] = &c
	return nil
}

func (m *MockValueDateLogRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, tranID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.logs[tranID]; ok {
		l.AdjustmentPosted = true
	}
	return nil
}

func (m *MockValueDateLogRepository) GetByTranID(ctx context.Context, tranID string) (*domain.ValueDateLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.logs[tranID]; ok {
		c := *l
		return &c, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// MockSequenceRepository is an in-memory SequenceRepository. Customer
// account sequences are read from Accounts when it is set.
type MockSequenceRepository struct {
	mu          sync.Mutex
	accountSeqs map[string]int
	customerIDs map[int64]domain.CustomerType

	Accounts *MockAccountRepository
	Locks    []int32

	MaxCustomerAccountSeqFunc func(ctx context.Context, tx usecase.Transaction, prefix string) (int, error)
	MaxCustomerIDFunc         func(ctx context.Context, tx usecase.Transaction, lo, hi int64) (int64, bool, error)
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{
		accountSeqs: make(map[string]int),
		customerIDs: make(map[int64]domain.CustomerType),
	}
}

func (m *MockSequenceRepository) LockAccountSeq(ctx context.Context, tx usecase.Transaction, glNum string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accountSeqs[glNum], nil
}

func (m *MockSequenceRepository) SetAccountSeq(ctx context.Context, tx usecase.Transaction, glNum string, seq int, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountSeqs[glNum] = seq
	return nil
}

func (m *MockSequenceRepository) LockKey(ctx context.Context, tx usecase.Transaction, namespace int32, key int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Locks = append(m.Locks, namespace)
	return nil
}

func (m *MockSequenceRepository) MaxCustomerAccountSeq(ctx context.Context, tx usecase.Transaction, prefix string) (int, error) {
	if m.MaxCustomerAccountSeqFunc != nil {
		return m.MaxCustomerAccountSeqFunc(ctx, tx, prefix)
	}
	if m.Accounts == nil {
		return 0, nil
	}
	highest := 0
	for _, no := range m.Accounts.CustomerAccountNos(prefix) {
		var seq int
		if _, err := fmt.Sscanf(no[len(prefix):], "%d", &seq); err == nil && seq > highest {
			highest = seq
		}
	}
	return highest, nil
}

func (m *MockSequenceRepository) MaxCustomerID(ctx context.Context, tx usecase.Transaction, lo, hi int64) (int64, bool, error) {
	if m.MaxCustomerIDFunc != nil {
		return m.MaxCustomerIDFunc(ctx, tx, lo, hi)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		highest int64
		found   bool
	)
	for id := range m.customerIDs {
		if id >= lo && id <= hi && (!found || id > highest) {
			highest, found = id, true
		}
	}
	return highest, found, nil
}

func (m *MockSequenceRepository) FirstFreeCustomerID(ctx context.Context, tx usecase.Transaction, lo, hi int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := lo; id <= hi; id++ {
		if _, taken := m.customerIDs[id]; !taken {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (m *MockSequenceRepository) ReserveCustomerID(ctx context.Context, tx usecase.Transaction, id int64, customerType domain.CustomerType, name string, createdAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.customerIDs[id]; taken {
		return fmt.Errorf("customer id %d already reserved", id)
	}
	m.customerIDs[id] = customerType
	return nil
}

// SetAccountSeqValue seeds a GL counter.
func (m *MockSequenceRepository) SetAccountSeqValue(glNum string, seq int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountSeqs[glNum] = seq
}

// MockExchangeRateRepository is an in-memory ExchangeRateRepository.
type MockExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[balanceKey]*domain.ExchangeRate

	Lookups int
}

func NewMockExchangeRateRepository(rates ...*domain.ExchangeRate) *MockExchangeRateRepository {
	m := &MockExchangeRateRepository{rates: make(map[balanceKey]*domain.ExchangeRate)}
	for _, r := range rates {
		m.rates[keyOf(r.CcyPair, r.RateDate)] = r
	}
	return m
}

func (m *MockExchangeRateRepository) LatestOnOrBefore(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups++
	var best *domain.ExchangeRate
	for _, r := range m.rates {
		if r.CcyPair != ccyPair || r.RateDate.After(domain.DateOf(date)) {
			continue
		}
		if best == nil || r.RateDate.After(best.RateDate) {
			best = r
		}
	}
	if best == nil {
		return nil, domain.ErrExchangeRateNotFound
	}
	return best, nil
}

func (m *MockExchangeRateRepository) Get(ctx context.Context, ccyPair string, date time.Time) (*domain.ExchangeRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rates[keyOf(ccyPair, date)]; ok {
		return r, nil
	}
	return nil, domain.ErrExchangeRateNotFound
}

func (m *MockExchangeRateRepository) Create(ctx context.Context, rate *domain.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[keyOf(rate.CcyPair, rate.RateDate)] = rate
	return nil
}

func (m *MockExchangeRateRepository) Update(ctx context.Context, rate *domain.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := keyOf(rate.CcyPair, rate.RateDate)
	if _, ok := m.rates[k]; !ok {
		return domain.ErrExchangeRateNotFound
	}
	m.rates[k] = rate
	return nil
}

// MockParameterRepository is an in-memory ParameterRepository.
type MockParameterRepository struct {
	mu     sync.RWMutex
	params map[string]string
}

func NewMockParameterRepository(params map[string]string) *MockParameterRepository {
	m := &MockParameterRepository{params: make(map[string]string)}
	for k, v := range params {
		m.params[k] = v
	}
	return m
}

func (m *MockParameterRepository) Get(ctx context.Context, name string) (*domain.Parameter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.params[name]
	if !ok {
		return nil, domain.ErrParameterNotFound
	}
	return &domain.Parameter{Name: name, Value: v}, nil
}

func (m *MockParameterRepository) Set(ctx context.Context, param *domain.Parameter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params[param.Name] = param.Value
	return nil
}

// MockEODLogRepository is an in-memory EODLogRepository.
type MockEODLogRepository struct {
	mu   sync.RWMutex
	logs []*domain.EODJobLog
}

func NewMockEODLogRepository() *MockEODLogRepository {
	return &MockEODLogRepository{}
}

func (m *MockEODLogRepository) Create(ctx context.Context, log *domain.EODJobLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *log
	m.logs = append(m.logs, &c)
	return nil
}

func (m *MockEODLogRepository) Finish(ctx context.Context, log *domain.EODJobLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.logs {
		if l.ID == log.ID {
			c := *log
			m.logs[i] = &c
			return nil
		}
	}
	return fmt.Errorf("job log %s not found", log.ID)
}

func (m *MockEODLogRepository) ListByDate(ctx context.Context, eodDate time.Time) ([]*domain.EODJobLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.EODJobLog
	for _, l := range m.logs {
		if l.EODDate.Equal(domain.DateOf(eodDate)) {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier runs an operation up to Attempts times while it fails.
type MockRetrier struct {
	Attempts int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	attempts := max(m.Attempts, 1)
	var err error
	for range attempts {
		if err = operation(); err == nil {
			return nil
		}
	}
	return err
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("MOCKID%06d", m.counter)
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Stored returns the value held for key.
func (m *MockIdempotencyStore) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
