package dto

import (
	"time"

	"github.com/iho/corebank/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionLegResponse represents one transaction leg in API responses.
type TransactionLegResponse struct {
	TranID       string `json:"tran_id"`
	AccountNo    string `json:"account_no"`
	DrCr         string `json:"dr_cr"`
	TranDate     string `json:"tran_date"`
	ValueDate    string `json:"value_date"`
	TranCcy      string `json:"tran_ccy"`
	FcyAmt       string `json:"fcy_amt"`
	ExchangeRate string `json:"exchange_rate"`
	LcyAmt       string `json:"lcy_amt"`
	Narration    string `json:"narration,omitempty"`
	Status       string `json:"status"`
}

// TransactionResponse groups the legs sharing a base transaction id.
type TransactionResponse struct {
	TranID string                    `json:"tran_id"`
	Status string                    `json:"status"`
	Legs   []*TransactionLegResponse `json:"legs"`
}

// TransactionFromDomain converts the legs of one transaction to a response.
func TransactionFromDomain(legs []*domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{Legs: make([]*TransactionLegResponse, len(legs))}
	for i, l := range legs {
		resp.Legs[i] = &TransactionLegResponse{
			TranID:       l.TranID,
			AccountNo:    l.AccountNo,
			DrCr:         string(l.DrCr),
			TranDate:     formatDate(l.TranDate),
			ValueDate:    formatDate(l.ValueDate),
			TranCcy:      l.TranCcy,
			FcyAmt:       l.FcyAmt.StringFixed(2),
			ExchangeRate: l.ExchangeRate.String(),
			LcyAmt:       l.LcyAmt.StringFixed(2),
			Narration:    l.Narration,
			Status:       string(l.Status),
		}
	}
	if len(legs) > 0 {
		resp.TranID = domain.BaseTranID(legs[0].TranID)
		resp.Status = string(legs[0].Status)
	}
	return resp
}

// AccountInfoResponse is the normalized view of an account.
type AccountInfoResponse struct {
	AccountNo   string `json:"account_no"`
	GLNum       string `json:"gl_num"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	IsCustomer  bool   `json:"is_customer"`
	IsAsset     bool   `json:"is_asset"`
	IsLiability bool   `json:"is_liability"`
	IsOverdraft bool   `json:"is_overdraft"`
}

// AccountInfoFromDomain converts account info to response.
func AccountInfoFromDomain(a *domain.AccountInfo) *AccountInfoResponse {
	return &AccountInfoResponse{
		AccountNo:   a.AccountNo,
		GLNum:       a.GLNum,
		Name:        a.Name,
		Currency:    a.Currency,
		IsCustomer:  a.IsCustomer,
		IsAsset:     a.IsAsset,
		IsLiability: a.IsLiability,
		IsOverdraft: a.IsOverdraft,
	}
}

// AccountResponse represents a newly opened account.
type AccountResponse struct {
	AccountNo    string `json:"account_no"`
	Kind         string `json:"kind"`
	CustomerID   int64  `json:"customer_id,omitempty"`
	SubProductID int64  `json:"sub_product_id"`
	GLNum        string `json:"gl_num"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	BranchCode   string `json:"branch_code,omitempty"`
	LoanLimit    string `json:"loan_limit,omitempty"`
	OpenedOn     string `json:"opened_on"`
}

// CustomerAccountFromDomain converts a customer account to response.
func CustomerAccountFromDomain(a *domain.CustomerAccount) *AccountResponse {
	resp := accountResponse(a)
	resp.CustomerID = a.CustomerID
	resp.BranchCode = a.BranchCode
	resp.OpenedOn = formatDate(a.OpenedOn)
	if !a.LoanLimit.IsZero() {
		resp.LoanLimit = a.LoanLimit.StringFixed(2)
	}
	return resp
}

// OfficeAccountFromDomain converts an office account to response.
func OfficeAccountFromDomain(a *domain.OfficeAccount) *AccountResponse {
	resp := accountResponse(a)
	resp.BranchCode = a.BranchCode
	resp.OpenedOn = formatDate(a.OpenedOn)
	return resp
}

func accountResponse(a domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountNo:    a.AccountNo(),
		Kind:         string(a.Kind()),
		SubProductID: a.SubProductID(),
		GLNum:        a.GLNum(),
		Name:         a.Name(),
		Currency:     a.Currency(),
		Status:       string(a.Status()),
	}
}

// CustomerIDResponse carries an allocated customer id.
type CustomerIDResponse struct {
	CustomerID int64 `json:"customer_id"`
}

// GenericAccountNoResponse carries an allocated GL-scoped account number.
type GenericAccountNoResponse struct {
	AccountNo string `json:"account_no"`
}

// GLResponse represents a GL node.
type GLResponse struct {
	GLNum       string `json:"gl_num"`
	LayerGLNum  string `json:"layer_gl_num"`
	LayerID     int    `json:"layer_id"`
	ParentGLNum string `json:"parent_gl_num,omitempty"`
	GLName      string `json:"gl_name"`
}

// GLFromDomain converts a GL node to response.
func GLFromDomain(g *domain.GLSetup) *GLResponse {
	return &GLResponse{
		GLNum:       g.GLNum,
		LayerGLNum:  g.LayerGLNum,
		LayerID:     g.LayerID,
		ParentGLNum: g.ParentGLNum,
		GLName:      g.GLName,
	}
}

// GLsFromDomain converts GL nodes to responses.
func GLsFromDomain(gls []*domain.GLSetup) []*GLResponse {
	result := make([]*GLResponse, len(gls))
	for i, g := range gls {
		result[i] = GLFromDomain(g)
	}
	return result
}

// GLProfileResponse is a GL node with its overdraft classification.
type GLProfileResponse struct {
	*GLResponse
	OverdraftLiability bool `json:"overdraft_liability"`
	OverdraftAsset     bool `json:"overdraft_asset"`
}

// GLProfileFromDomain converts a GL profile to response.
func GLProfileFromDomain(p *domain.GLProfile) *GLProfileResponse {
	return &GLProfileResponse{
		GLResponse:         GLFromDomain(p.GL),
		OverdraftLiability: p.OverdraftLiability,
		OverdraftAsset:     p.OverdraftAsset,
	}
}

// SubProductResponse represents a sub-product.
type SubProductResponse struct {
	ID                              int64  `json:"id"`
	ProductID                       int64  `json:"product_id"`
	Code                            string `json:"code"`
	Name                            string `json:"name"`
	CumGLNum                        string `json:"cum_gl_num"`
	EffectiveInterestRate           string `json:"effective_interest_rate"`
	InterestReceivableExpenditureGL string `json:"interest_receivable_expenditure_gl,omitempty"`
	InterestIncomePayableGL         string `json:"interest_income_payable_gl,omitempty"`
}

// SubProductFromDomain converts a sub-product to response.
func SubProductFromDomain(s *domain.SubProduct) *SubProductResponse {
	return &SubProductResponse{
		ID:                              s.ID,
		ProductID:                       s.ProductID,
		Code:                            s.Code,
		Name:                            s.Name,
		CumGLNum:                        s.CumGLNum,
		EffectiveInterestRate:           s.EffectiveInterestRate.String(),
		InterestReceivableExpenditureGL: s.InterestReceivableExpenditureGL,
		InterestIncomePayableGL:         s.InterestIncomePayableGL,
	}
}

// RateResponse represents an exchange rate.
type RateResponse struct {
	CcyPair     string `json:"ccy_pair"`
	RateDate    string `json:"rate_date"`
	MidRate     string `json:"mid_rate"`
	BuyingRate  string `json:"buying_rate"`
	SellingRate string `json:"selling_rate"`
	Source      string `json:"source,omitempty"`
}

// RateFromDomain converts an exchange rate to response.
func RateFromDomain(r *domain.ExchangeRate) *RateResponse {
	return &RateResponse{
		CcyPair:     r.CcyPair,
		RateDate:    formatDate(r.RateDate),
		MidRate:     r.MidRate.String(),
		BuyingRate:  r.BuyingRate.String(),
		SellingRate: r.SellingRate.String(),
		Source:      r.Source,
	}
}

// ConvertResponse is the result of a conversion to local currency.
type ConvertResponse struct {
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Rate          string `json:"rate"`
	LocalCurrency string `json:"local_currency"`
	LocalAmount   string `json:"local_amount"`
}

// SystemDateResponse carries the business date.
type SystemDateResponse struct {
	SystemDate string `json:"system_date"`
}

// NewSystemDateResponse formats d as a business date.
func NewSystemDateResponse(d time.Time) *SystemDateResponse {
	return &SystemDateResponse{SystemDate: formatDate(d)}
}

// EODSummaryResponse represents the outcome of an EOD run.
type EODSummaryResponse struct {
	RunID             string `json:"run_id,omitempty"`
	EODDate           string `json:"eod_date"`
	StartTime         string `json:"start_time,omitempty"`
	EndTime           string `json:"end_time,omitempty"`
	MovementsPosted   int    `json:"movements_posted"`
	AccrualsGenerated int    `json:"accruals_generated"`
	AccrualsPosted    int    `json:"accruals_posted"`
	AccountsProcessed int    `json:"accounts_processed"`
	AccrualAccounts   int    `json:"accrual_accounts"`
	GLsProcessed      int    `json:"gls_processed"`
	TotalDebits       string `json:"total_debits"`
	TotalCredits      string `json:"total_credits"`
	Balanced          bool   `json:"balanced"`
	Status            string `json:"status"`
	ErrorMessage      string `json:"error_message,omitempty"`
	NextSystemDate    string `json:"next_system_date,omitempty"`
}

// EODSummaryFromDomain converts an EOD summary to response.
func EODSummaryFromDomain(s *domain.EODSummary) *EODSummaryResponse {
	resp := &EODSummaryResponse{
		RunID:             s.RunID,
		EODDate:           formatDate(s.EODDate),
		StartTime:         formatTime(s.StartTime),
		EndTime:           formatTime(s.EndTime),
		MovementsPosted:   s.MovementsPosted,
		AccrualsGenerated: s.AccrualsGenerated,
		AccrualsPosted:    s.AccrualsPosted,
		AccountsProcessed: s.AccountsProcessed,
		AccrualAccounts:   s.AccrualAccounts,
		GLsProcessed:      s.GLsProcessed,
		TotalDebits:       s.TotalDebits.StringFixed(2),
		TotalCredits:      s.TotalCredits.StringFixed(2),
		Balanced:          s.Balanced,
		Status:            string(s.Status),
		ErrorMessage:      s.ErrorMessage,
	}
	if s.NextSystemDate != nil {
		resp.NextSystemDate = formatDate(*s.NextSystemDate)
	}
	return resp
}

// BatchFailureResponse is one failed batch item.
type BatchFailureResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BatchResponse summarises a batch job run.
type BatchResponse struct {
	Succeeded []string                `json:"succeeded"`
	Skipped   []string                `json:"skipped"`
	Failed    []*BatchFailureResponse `json:"failed"`
}

// BatchFromDomain converts a batch result to response, naming items with id.
func BatchFromDomain[T any](r *domain.BatchResult[T], id func(T) string) *BatchResponse {
	resp := &BatchResponse{
		Succeeded: make([]string, len(r.Succeeded)),
		Skipped:   make([]string, len(r.Skipped)),
		Failed:    make([]*BatchFailureResponse, len(r.Failed)),
	}
	for i, item := range r.Succeeded {
		resp.Succeeded[i] = id(item)
	}
	for i, item := range r.Skipped {
		resp.Skipped[i] = id(item)
	}
	for i, f := range r.Failed {
		resp.Failed[i] = &BatchFailureResponse{ID: id(f.Item), Error: f.Err.Error()}
	}
	return resp
}

// TransactionID names a transaction leg in batch responses.
func TransactionID(t *domain.Transaction) string { return t.TranID }

// AccrualID names an accrual in batch responses.
func AccrualID(a *domain.InterestAccrual) string { return a.AccrTranID }

// SettlementAlertResponse represents a raised settlement alert.
type SettlementAlertResponse struct {
	Kind           string `json:"kind"`
	Reference      string `json:"reference"`
	Currency       string `json:"currency"`
	Amount         string `json:"amount"`
	Threshold      string `json:"threshold"`
	Severity       string `json:"severity"`
	ActionRequired bool   `json:"action_required"`
}

// SettlementAlertsFromDomain converts alerts to responses.
func SettlementAlertsFromDomain(alerts []*domain.SettlementAlert) []*SettlementAlertResponse {
	result := make([]*SettlementAlertResponse, len(alerts))
	for i, a := range alerts {
		result[i] = &SettlementAlertResponse{
			Kind:           string(a.Kind),
			Reference:      a.Reference,
			Currency:       a.Currency,
			Amount:         a.Amount.StringFixed(2),
			Threshold:      a.Threshold.StringFixed(2),
			Severity:       string(a.Severity),
			ActionRequired: a.ActionRequired,
		}
	}
	return result
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
