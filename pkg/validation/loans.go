package validation

import (
	"fmt"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"github.com/iwvelando/raroc-pricing/pkg/mathutil"
	"github.com/iwvelando/raroc-pricing/pkg/ratings"
)

// ValidateLoanParameters returns non-fatal advisories about a loan's
// parameters. Hard failures (non-positive term, negative principal, NII
// window outside the term) are the engine's job; these warnings exist for the
// presentation layer to surface alongside results.
func ValidateLoanParameters(params cashflow.LoanParameters) []string {
	var warnings []string

	name := params.LoanID
	if name == "" {
		name = "loan"
	}

	if params.AnnualRate == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: zero interest rate, repayment is straight-line", name))
	}
	if params.AnnualRate < 0 {
		warnings = append(warnings, fmt.Sprintf("%s: negative interest rate %.2f%%", name, params.AnnualRate))
	}
	if params.DiscountRate == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: zero discount rate, present values equal nominal values", name))
	}
	if params.NIIMonths == 0 && !mathutil.IsZero(params.NIIFee) {
		warnings = append(warnings, fmt.Sprintf("%s: niiFee %.2f is configured but niiMonths is 0, fee never applies", name, params.NIIFee))
	}

	if params.PDRating != 0 {
		if _, err := ratings.PD(params.PDRating); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: PD rating %d outside 1-13", name, params.PDRating))
		}
	}
	if params.LGDGrade != "" {
		if _, err := ratings.LGD(params.LGDGrade); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: LGD grade %q outside A-H", name, params.LGDGrade))
		}
	}

	return warnings
}
