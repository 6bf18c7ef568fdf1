package cashflow

import (
	"fmt"
	"math"

	"github.com/iwvelando/raroc-pricing/pkg/constants"
)

// GenerateSchedule produces the full month-by-month amortization and
// cash-flow schedule for one loan. The returned slice is ordered by period
// (1-based) and has exactly TermMonths rows.
//
// The FTP expense is charged on the balance outstanding during the period,
// reconstructed as endingBalance + principalPaid after the balance update.
// That ordering matches the reference model and must be preserved.
func GenerateSchedule(params LoanParameters) ([]AmortizationRow, error) {
	payment, err := MonthlyPayment(params.Principal, params.AnnualRate, params.TermMonths)
	if err != nil {
		return nil, err
	}
	if params.NIIMonths < 0 || params.NIIMonths > params.TermMonths {
		return nil, fmt.Errorf("%w: niiMonths must be within [0, %d], got %d",
			ErrInvalidInput, params.TermMonths, params.NIIMonths)
	}

	monthlyRate := params.AnnualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	monthlyFTPRate := params.FTPRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	monthlyDiscountRate := params.DiscountRate / (constants.PercentageMultiplier * constants.MonthsPerYear)

	rows := make([]AmortizationRow, 0, params.TermMonths)
	balance := params.Principal

	for period := 1; period <= params.TermMonths; period++ {
		interestPaid := balance * monthlyRate
		principalPaid := payment - interestPaid
		balance = math.Max(0, balance-principalPaid)

		interestIncome := interestPaid
		interestExpense := (balance + principalPaid) * monthlyFTPRate

		nonInterestIncome := 0.0
		if period <= params.NIIMonths {
			nonInterestIncome = params.NIIFee
		}
		nonInterestExpense := params.NIEAmount

		netIncome := interestIncome - interestExpense + nonInterestIncome - nonInterestExpense

		discountFactor := 1 / math.Pow(1+monthlyDiscountRate, float64(period))

		rows = append(rows, AmortizationRow{
			Period:           period,
			BeginningBalance: balance + principalPaid,
			Payment:          payment,
			PrincipalPaid:    principalPaid,
			InterestPaid:     interestPaid,
			EndingBalance:    balance,

			InterestIncome:     interestIncome,
			InterestExpense:    interestExpense,
			NonInterestIncome:  nonInterestIncome,
			NonInterestExpense: nonInterestExpense,
			NetIncome:          netIncome,

			DiscountFactor:       discountFactor,
			PVInterestIncome:     interestIncome * discountFactor,
			PVInterestExpense:    interestExpense * discountFactor,
			PVNonInterestIncome:  nonInterestIncome * discountFactor,
			PVNonInterestExpense: nonInterestExpense * discountFactor,
			PVNetIncome:          netIncome * discountFactor,
		})
	}

	return rows, nil
}
