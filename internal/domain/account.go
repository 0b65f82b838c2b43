package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes the two account masters.
type AccountKind string

const (
	AccountKindCustomer AccountKind = "customer"
	AccountKindOffice   AccountKind = "office"
)

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusInactive AccountStatus = "Inactive"
	AccountStatusClosed   AccountStatus = "Closed"
	AccountStatusDormant  AccountStatus = "Dormant"
)

// Account is the capability set shared by customer and office accounts.
type Account interface {
	AccountNo() string
	GLNum() string
	Currency() string
	Status() AccountStatus
	SubProductID() int64
	Name() string
	Kind() AccountKind
}

// CustomerAccount is an account held by a customer.
type CustomerAccount struct {
	No           string
	CustomerID   int64
	SubProductRf int64
	GL           string
	Ccy          string
	AcctName     string
	State        AccountStatus
	LoanLimit    decimal.Decimal
	BranchCode   string
	OpenedOn     time.Time
	CreatedAt    time.Time
}

func (a *CustomerAccount) AccountNo() string     { return a.No }
func (a *CustomerAccount) GLNum() string         { return a.GL }
func (a *CustomerAccount) Currency() string      { return a.Ccy }
func (a *CustomerAccount) Status() AccountStatus { return a.State }
func (a *CustomerAccount) SubProductID() int64   { return a.SubProductRf }
func (a *CustomerAccount) Name() string          { return a.AcctName }
func (a *CustomerAccount) Kind() AccountKind     { return AccountKindCustomer }

// OfficeAccount is an internal account owned by the bank.
type OfficeAccount struct {
	No                     string
	SubProductRf           int64
	GL                     string
	Ccy                    string
	AcctName               string
	State                  AccountStatus
	BranchCode             string
	ReconciliationRequired bool
	OpenedOn               time.Time
	CreatedAt              time.Time
}

func (a *OfficeAccount) AccountNo() string     { return a.No }
func (a *OfficeAccount) GLNum() string         { return a.GL }
func (a *OfficeAccount) Currency() string      { return a.Ccy }
func (a *OfficeAccount) Status() AccountStatus { return a.State }
func (a *OfficeAccount) SubProductID() int64   { return a.SubProductRf }
func (a *OfficeAccount) Name() string          { return a.AcctName }
func (a *OfficeAccount) Kind() AccountKind     { return AccountKindOffice }

// AccountInfo is the normalized read view over either account kind.
type AccountInfo struct {
	AccountNo   string
	GLNum       string
	Name        string
	Currency    string
	IsCustomer  bool
	IsAsset     bool
	IsLiability bool
	IsOverdraft bool
}

// NewAccountInfo builds the normalized view of an account.
func NewAccountInfo(a Account, overdraft bool) *AccountInfo {
	class := AccountClassOf(a.GLNum())
	return &AccountInfo{
		AccountNo:   a.AccountNo(),
		GLNum:       a.GLNum(),
		Name:        a.Name(),
		Currency:    a.Currency(),
		IsCustomer:  a.Kind() == AccountKindCustomer,
		IsAsset:     class == AccountGLAsset,
		IsLiability: class == AccountGLLiability,
		IsOverdraft: overdraft,
	}
}

// Customer types encoded as the first digit of the customer id.
type CustomerType int

const (
	CustomerIndividual CustomerType = 1
	CustomerCorporate  CustomerType = 2
	CustomerBank       CustomerType = 3
)

// CustomerIDBand is the width of one customer-type id band.
const CustomerIDBand int64 = 10_000_000

// ParseCustomerType parses "Individual", "Corporate" or "Bank".
func ParseCustomerType(s string) (CustomerType, error) {
	switch s {
	case "Individual", "individual":
		return CustomerIndividual, nil
	case "Corporate", "corporate":
		return CustomerCorporate, nil
	case "Bank", "bank":
		return CustomerBank, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCustomerType, s)
	}
}

// Range returns the inclusive id band for the customer type.
func (t CustomerType) Range() (lo, hi int64) {
	lo = int64(t) * CustomerIDBand
	return lo, lo + CustomerIDBand - 1
}

// Valid reports whether t is a known customer type.
func (t CustomerType) Valid() bool {
	return t >= CustomerIndividual && t <= CustomerBank
}
