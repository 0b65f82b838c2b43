package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// TransactionLegRequest is one leg of a transaction entry.
type TransactionLegRequest struct {
	AccountNo string          `json:"account_no"`
	DrCr      string          `json:"dr_cr"`
	TranCcy   string          `json:"tran_ccy"`
	FcyAmt    decimal.Decimal `json:"fcy_amt"`
	LcyAmt    decimal.Decimal `json:"lcy_amt"`
	Narration string          `json:"narration,omitempty"`
}

// CreateTransactionRequest represents a request to enter a transaction.
type CreateTransactionRequest struct {
	ValueDate string                  `json:"value_date,omitempty"`
	Narration string                  `json:"narration,omitempty"`
	Legs      []TransactionLegRequest `json:"legs"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(createdBy string) (usecase.CreateTransactionInput, error) {
	valueDate, err := optionalDate(r.ValueDate)
	if err != nil {
		return usecase.CreateTransactionInput{}, fmt.Errorf("value_date: %w", err)
	}

	legs := make([]usecase.TransactionLegInput, len(r.Legs))
	for i, l := range r.Legs {
		legs[i] = usecase.TransactionLegInput{
			AccountNo: l.AccountNo,
			DrCr:      l.DrCr,
			TranCcy:   l.TranCcy,
			FcyAmt:    l.FcyAmt,
			LcyAmt:    l.LcyAmt,
			Narration: l.Narration,
		}
	}
	return usecase.CreateTransactionInput{
		ValueDate: valueDate,
		Narration: r.Narration,
		Legs:      legs,
		CreatedBy: createdBy,
	}, nil
}

// OpenCustomerAccountRequest represents a request to open a customer account.
type OpenCustomerAccountRequest struct {
	CustomerID   int64           `json:"customer_id"`
	SubProductID int64           `json:"sub_product_id"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	BranchCode   string          `json:"branch_code,omitempty"`
	LoanLimit    decimal.Decimal `json:"loan_limit"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenCustomerAccountRequest) ToUseCaseInput() usecase.OpenCustomerAccountInput {
	return usecase.OpenCustomerAccountInput{
		CustomerID:   r.CustomerID,
		SubProductID: r.SubProductID,
		Name:         r.Name,
		Currency:     r.Currency,
		BranchCode:   r.BranchCode,
		LoanLimit:    r.LoanLimit,
	}
}

// OpenOfficeAccountRequest represents a request to open an office account.
type OpenOfficeAccountRequest struct {
	SubProductID           int64  `json:"sub_product_id"`
	Name                   string `json:"name"`
	Currency               string `json:"currency"`
	BranchCode             string `json:"branch_code,omitempty"`
	ReconciliationRequired bool   `json:"reconciliation_required"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenOfficeAccountRequest) ToUseCaseInput() usecase.OpenOfficeAccountInput {
	return usecase.OpenOfficeAccountInput{
		SubProductID:           r.SubProductID,
		Name:                   r.Name,
		Currency:               r.Currency,
		BranchCode:             r.BranchCode,
		ReconciliationRequired: r.ReconciliationRequired,
	}
}

// AllocateCustomerIDRequest represents a request for a new customer id.
type AllocateCustomerIDRequest struct {
	CustomerType string `json:"customer_type"`
	Name         string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocateCustomerIDRequest) ToUseCaseInput() usecase.AllocateCustomerIDInput {
	return usecase.AllocateCustomerIDInput{
		CustomerType: r.CustomerType,
		Name:         r.Name,
	}
}

// AllocateGenericAccountNoRequest represents a request for a GL-scoped account number.
type AllocateGenericAccountNoRequest struct {
	GLNum string `json:"gl_num"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocateGenericAccountNoRequest) ToUseCaseInput() usecase.AllocateGenericAccountNoInput {
	return usecase.AllocateGenericAccountNoInput{GLNum: r.GLNum}
}

// CreateGLRequest represents a request to add a GL node.
type CreateGLRequest struct {
	GLNum       string `json:"gl_num"`
	LayerGLNum  string `json:"layer_gl_num"`
	LayerID     int    `json:"layer_id"`
	ParentGLNum string `json:"parent_gl_num,omitempty"`
	GLName      string `json:"gl_name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGLRequest) ToUseCaseInput(createdBy string) usecase.CreateGLInput {
	return usecase.CreateGLInput{
		GLNum:       r.GLNum,
		LayerGLNum:  r.LayerGLNum,
		LayerID:     r.LayerID,
		ParentGLNum: r.ParentGLNum,
		GLName:      r.GLName,
		CreatedBy:   createdBy,
	}
}

// RateRequest represents an exchange rate create or update.
type RateRequest struct {
	CcyPair     string          `json:"ccy_pair"`
	RateDate    string          `json:"rate_date"`
	MidRate     decimal.Decimal `json:"mid_rate"`
	BuyingRate  decimal.Decimal `json:"buying_rate"`
	SellingRate decimal.Decimal `json:"selling_rate"`
	Source      string          `json:"source,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RateRequest) ToUseCaseInput(updatedBy string) (usecase.RateInput, error) {
	rateDate, err := domain.ParseDate(r.RateDate)
	if err != nil {
		return usecase.RateInput{}, fmt.Errorf("rate_date: %w", err)
	}
	return usecase.RateInput{
		CcyPair:     r.CcyPair,
		RateDate:    rateDate,
		MidRate:     r.MidRate,
		BuyingRate:  r.BuyingRate,
		SellingRate: r.SellingRate,
		Source:      r.Source,
		UpdatedBy:   updatedBy,
	}, nil
}

// SetSystemDateRequest represents a request to move the business date.
type SetSystemDateRequest struct {
	SystemDate string `json:"system_date"`
}

// SettlementItem is one realised gain or loss to check against thresholds.
type SettlementItem struct {
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
}

// SettlementCheckRequest represents a batch of settlements to check.
type SettlementCheckRequest struct {
	Settlements []SettlementItem `json:"settlements"`
}

// ToUseCaseInput converts to use case input.
func (r *SettlementCheckRequest) ToUseCaseInput() ([]usecase.SettlementInput, error) {
	inputs := make([]usecase.SettlementInput, len(r.Settlements))
	for i, s := range r.Settlements {
		kind := domain.SettlementKind(s.Kind)
		if kind != domain.SettlementGain && kind != domain.SettlementLoss {
			return nil, fmt.Errorf("settlements[%d]: kind must be GAIN or LOSS, got %q", i, s.Kind)
		}
		inputs[i] = usecase.SettlementInput{
			Kind:      kind,
			Amount:    s.Amount,
			Currency:  s.Currency,
			Reference: s.Reference,
		}
	}
	return inputs, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}

// CreateSubProductRequest represents a request to add a sub-product.
type CreateSubProductRequest struct {
	ProductID                       int64           `json:"product_id"`
	Code                            string          `json:"code"`
	Name                            string          `json:"name"`
	CumGLNum                        string          `json:"cum_gl_num"`
	EffectiveInterestRate           decimal.Decimal `json:"effective_interest_rate"`
	InterestReceivableExpenditureGL string          `json:"interest_receivable_expenditure_gl,omitempty"`
	InterestIncomePayableGL         string          `json:"interest_income_payable_gl,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSubProductRequest) ToUseCaseInput(createdBy string) usecase.CreateSubProductInput {
	return usecase.CreateSubProductInput{
		ProductID:                       r.ProductID,
		Code:                            r.Code,
		Name:                            r.Name,
		CumGLNum:                        r.CumGLNum,
		EffectiveInterestRate:           r.EffectiveInterestRate,
		InterestReceivableExpenditureGL: r.InterestReceivableExpenditureGL,
		InterestIncomePayableGL:         r.InterestIncomePayableGL,
		CreatedBy:                       createdBy,
	}
}
