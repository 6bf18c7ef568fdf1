// Package output provides utilities for formatting and displaying pricing results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result pairs one loan's inputs with everything the engine derived from
// them. This is the unit the rendering layers work with.
type Result struct {
	Params  cashflow.LoanParameters
	Payment float64
	Rows    []cashflow.AmortizationRow
	Summary cashflow.SummaryMetrics
}

// csvHeader is the schedule export column order expected by downstream
// consumers of the CSV.
const csvHeader = "Month,Beginning_Balance,Payment,Principal,Interest,Ending_Balance," +
	"Interest_Income,Interest_Expense,Non_Interest_Income,Non_Interest_Expense,Net_Income," +
	"PV_Interest_Income,PV_Interest_Expense,PV_Non_Interest_Income,PV_Non_Interest_Expense," +
	"PV_Net_Income,Discount_Factor"

// PrettyFormat outputs a human-readable summary table per loan.
func PrettyFormat(results []Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		name := result.Params.LoanID
		if name == "" {
			name = fmt.Sprintf("loan %d", i+1)
		}
		fmt.Printf("--- Results for %s ---\n", name)
		_, _ = p.Printf("Monthly payment: $%.2f over %d months\n", result.Payment, result.Params.TermMonths)
		fmt.Printf("Metric               | Nominal         | Present Value\n")
		fmt.Printf("______               | _______         | _____________\n")
		_, _ = p.Printf("Interest Income      | $%.2f | $%.2f\n",
			result.Summary.TotalInterestIncome, result.Summary.PVInterestIncome)
		_, _ = p.Printf("Interest Expense     | $%.2f | $%.2f\n",
			result.Summary.TotalInterestExpense, result.Summary.PVInterestExpense)
		_, _ = p.Printf("Non-Interest Income  | $%.2f | $%.2f\n",
			result.Summary.TotalNonInterestIncome, result.Summary.PVNonInterestIncome)
		_, _ = p.Printf("Non-Interest Expense | $%.2f | $%.2f\n",
			result.Summary.TotalNonInterestExpense, result.Summary.PVNonInterestExpense)
		_, _ = p.Printf("Net Income           | $%.2f | $%.2f\n",
			result.Summary.TotalNetIncome, result.Summary.PVNetIncome)
		if len(results) > 1 && i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs each loan's full schedule in comma-separated value
// format. Multiple schedules are separated by a blank line, each with its own
// header row.
func CsvFormat(results []Result) {
	for i, result := range results {
		fmt.Print(CsvString(result.Rows))
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvString renders one schedule as CSV. Monetary columns use two decimal
// places and the discount factor six, matching the display convention; the
// underlying rows stay unformatted.
func CsvString(rows []cashflow.AmortizationRow) string {
	var builder strings.Builder
	builder.WriteString(csvHeader)
	builder.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(&builder, "%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.6f\n",
			row.Period,
			row.BeginningBalance,
			row.Payment,
			row.PrincipalPaid,
			row.InterestPaid,
			row.EndingBalance,
			row.InterestIncome,
			row.InterestExpense,
			row.NonInterestIncome,
			row.NonInterestExpense,
			row.NetIncome,
			row.PVInterestIncome,
			row.PVInterestExpense,
			row.PVNonInterestIncome,
			row.PVNonInterestExpense,
			row.PVNetIncome,
			row.DiscountFactor,
		)
	}
	return builder.String()
}
