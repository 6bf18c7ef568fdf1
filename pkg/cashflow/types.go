// Package cashflow implements the cash-flow engine for commercial term-loan
// pricing: fixed-payment amortization, funds-transfer-pricing expense lines,
// fee income, and present-value discounting. All functions are pure; nothing
// here logs or keeps state between calls.
package cashflow

import "errors"

// ErrInvalidInput indicates malformed loan parameters (non-positive term,
// negative principal, NII window outside the term bounds).
var ErrInvalidInput = errors.New("invalid input")

// LoanParameters describes one loan to be priced. Rates are annual
// percentages (6.5 means 6.5%/year). The classification fields are carried
// through unchanged and take no part in the arithmetic.
type LoanParameters struct {
	Principal    float64 `json:"principal"`
	AnnualRate   float64 `json:"annualRate"`
	TermMonths   int     `json:"termMonths"`
	FTPRate      float64 `json:"ftpRate"`
	DiscountRate float64 `json:"discountRate"`
	NIIFee       float64 `json:"niiFee"`
	NIIMonths    int     `json:"niiMonths"`
	NIEAmount    float64 `json:"nieAmount"`

	PDRating int    `json:"pdRating,omitempty"`
	LGDGrade string `json:"lgdGrade,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	LoanID   string `json:"loanId,omitempty"`
}

// AmortizationRow holds the cash flows for one period of the schedule.
// Values are unformatted; rendering layers apply display precision.
type AmortizationRow struct {
	Period           int     `json:"period"`
	BeginningBalance float64 `json:"beginningBalance"`
	Payment          float64 `json:"payment"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	EndingBalance    float64 `json:"endingBalance"`

	InterestIncome     float64 `json:"interestIncome"`
	InterestExpense    float64 `json:"interestExpense"`
	NonInterestIncome  float64 `json:"nonInterestIncome"`
	NonInterestExpense float64 `json:"nonInterestExpense"`
	NetIncome          float64 `json:"netIncome"`

	DiscountFactor       float64 `json:"discountFactor"`
	PVInterestIncome     float64 `json:"pvInterestIncome"`
	PVInterestExpense    float64 `json:"pvInterestExpense"`
	PVNonInterestIncome  float64 `json:"pvNonInterestIncome"`
	PVNonInterestExpense float64 `json:"pvNonInterestExpense"`
	PVNetIncome          float64 `json:"pvNetIncome"`
}

// SummaryMetrics holds the portfolio-style totals over a full schedule:
// nominal and present-value sums of each income/expense line.
type SummaryMetrics struct {
	TotalInterestIncome     float64 `json:"totalInterestIncome"`
	TotalInterestExpense    float64 `json:"totalInterestExpense"`
	TotalNonInterestIncome  float64 `json:"totalNonInterestIncome"`
	TotalNonInterestExpense float64 `json:"totalNonInterestExpense"`
	TotalNetIncome          float64 `json:"totalNetIncome"`

	PVInterestIncome     float64 `json:"pvInterestIncome"`
	PVInterestExpense    float64 `json:"pvInterestExpense"`
	PVNonInterestIncome  float64 `json:"pvNonInterestIncome"`
	PVNonInterestExpense float64 `json:"pvNonInterestExpense"`
	PVNetIncome          float64 `json:"pvNetIncome"`
}
