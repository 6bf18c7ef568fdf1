package cashflow

import (
	"fmt"
	"math"

	"github.com/iwvelando/raroc-pricing/pkg/constants"
)

// MonthlyPayment calculates the fixed monthly P&I payment for a fully
// amortizing loan using the standard annuity formula. A zero rate falls back
// to straight-line repayment. Negative rates are mathematically permitted and
// return a numeric result.
func MonthlyPayment(principal, annualRate float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: termMonths must be positive, got %d", ErrInvalidInput, termMonths)
	}
	if principal < 0 {
		return 0, fmt.Errorf("%w: principal must not be negative, got %.2f", ErrInvalidInput, principal)
	}

	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths), nil
	}

	monthlyRate := annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1.00), nil
}
