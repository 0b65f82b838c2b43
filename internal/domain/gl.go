package domain

import (
	"fmt"
	"time"
)

// GL layers, root to leaf.
const (
	LayerRoot       = 0
	LayerCategory   = 1
	LayerGroup      = 2
	LayerProduct    = 3
	LayerSubProduct = 4

	GLNumLength = 9
)

// layerSegmentLength is the length of the layer GL segment at each layer.
var layerSegmentLength = [...]int{9, 8, 7, 5, 3}

// Overdraft product GLs (layer 3).
const (
	OverdraftGL               = "210201000"
	OverdraftInterestIncomeGL = "140101000"
)

// GLSetup is a node in the 5-layer chart of accounts.
type GLSetup struct {
	GLNum       string
	LayerGLNum  string
	LayerID     int
	ParentGLNum string
	GLName      string
	CreatedAt   time.Time
}

// IsRoot reports whether the GL sits at layer 0.
func (g *GLSetup) IsRoot() bool {
	return g.LayerID == LayerRoot
}

// GLProfile is a GL node with the overdraft product it falls under, if any.
type GLProfile struct {
	GL                 *GLSetup
	OverdraftLiability bool
	OverdraftAsset     bool
}

// SegmentLength returns the expected layer GL segment length for a layer.
func SegmentLength(layerID int) (int, bool) {
	if layerID < LayerRoot || layerID > LayerSubProduct {
		return 0, false
	}
	return layerSegmentLength[layerID], true
}

// ComposeGLNum builds a GL number from the parent's GL number and the
// child's layer segment: the parent's leading digits are kept and the
// trailing positions are replaced by the segment.
func ComposeGLNum(parentGLNum, layerGLNum string) (string, error) {
	if len(layerGLNum) == GLNumLength {
		return layerGLNum, nil
	}
	if len(parentGLNum) != GLNumLength {
		return "", fmt.Errorf("%w: parent GL %q must be %d digits", ErrInvalidGLSetup, parentGLNum, GLNumLength)
	}
	if len(layerGLNum) == 0 || len(layerGLNum) > GLNumLength {
		return "", fmt.Errorf("%w: layer GL %q has invalid length", ErrInvalidGLSetup, layerGLNum)
	}
	return parentGLNum[:GLNumLength-len(layerGLNum)] + layerGLNum, nil
}

// IsDigits reports whether s is non-empty and all ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// GLNature is the chart-of-accounts class encoded by the first digit of a
// GL number. It drives closing-balance direction at EOD.
type GLNature int

const (
	GLNatureUnknown GLNature = iota
	GLNatureAsset
	GLNatureLiability
	GLNatureEquity
	GLNatureIncome
	GLNatureExpense
)

func (n GLNature) String() string {
	switch n {
	case GLNatureAsset:
		return "Asset"
	case GLNatureLiability:
		return "Liability"
	case GLNatureEquity:
		return "Equity"
	case GLNatureIncome:
		return "Income"
	case GLNatureExpense:
		return "Expense"
	default:
		return "Unknown"
	}
}

// NatureOf classifies a GL number for balance purposes
// (1 Asset, 2 Liability, 3 Equity, 4 Income, 5 Expense).
func NatureOf(glNum string) GLNature {
	if glNum == "" {
		return GLNatureUnknown
	}
	switch glNum[0] {
	case '1':
		return GLNatureAsset
	case '2':
		return GLNatureLiability
	case '3':
		return GLNatureEquity
	case '4':
		return GLNatureIncome
	case '5':
		return GLNatureExpense
	default:
		return GLNatureUnknown
	}
}

// IsDebitNatured reports whether balances grow with debits.
func (n GLNature) IsDebitNatured() bool {
	return n == GLNatureAsset || n == GLNatureExpense
}

// AccountGLClass is the account-level business classification of a GL.
// It uses a different digit mapping from GLNature and applies only to
// account GLs (value-date adjustments, balance sufficiency).
type AccountGLClass int

const (
	AccountGLOther AccountGLClass = iota
	AccountGLLiability
	AccountGLAsset
)

// AccountClassOf classifies an account GL: prefix "1" is a liability
// (deposit) GL, prefix "2" an asset (loan) GL.
func AccountClassOf(glNum string) AccountGLClass {
	if glNum == "" {
		return AccountGLOther
	}
	switch glNum[0] {
	case '1':
		return AccountGLLiability
	case '2':
		return AccountGLAsset
	default:
		return AccountGLOther
	}
}

// IsCustomerGL reports whether the GL hosts customer accounts (second digit 1).
func IsCustomerGL(glNum string) bool {
	return len(glNum) >= 2 && glNum[1] == '1'
}

// IsOfficeGL reports whether the GL hosts office accounts.
func IsOfficeGL(glNum string) bool {
	return len(glNum) >= 2 && glNum[1] != '1'
}
