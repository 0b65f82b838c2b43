package domain

import "github.com/shopspring/decimal"

// Product is a layer-3 product bound to a product GL.
type Product struct {
	ID       int64
	Code     string
	Name     string
	CumGLNum string
}

// SubProduct is a layer-4 sub-product. Accounts post to its CumGLNum.
type SubProduct struct {
	ID                              int64
	ProductID                       int64
	Code                            string
	Name                            string
	CumGLNum                        string
	EffectiveInterestRate           decimal.Decimal
	InterestReceivableExpenditureGL string
	InterestIncomePayableGL         string
}

// productTypeCodes maps product GLs to the digit embedded in customer
// account numbers.
var productTypeCodes = map[string]int{
	"110101000": 1,
	"110102000": 2,
	"110201000": 3,
	"130101000": 4,
	"140101000": 5,
	"210201000": 6,
	"240101000": 7,
	"110203000": 8,
	"210102000": 9,
}

// ProductTypeCode returns the account-number product digit for a product GL.
func ProductTypeCode(productGL string) (int, bool) {
	code, ok := productTypeCodes[productGL]
	return code, ok
}
