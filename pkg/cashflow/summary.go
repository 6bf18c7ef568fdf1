package cashflow

// Summarize reduces a schedule to its ten column totals. The reduction is a
// plain sum over every row, so row order does not affect the result.
func Summarize(rows []AmortizationRow) SummaryMetrics {
	var m SummaryMetrics
	for _, row := range rows {
		m.TotalInterestIncome += row.InterestIncome
		m.TotalInterestExpense += row.InterestExpense
		m.TotalNonInterestIncome += row.NonInterestIncome
		m.TotalNonInterestExpense += row.NonInterestExpense
		m.TotalNetIncome += row.NetIncome

		m.PVInterestIncome += row.PVInterestIncome
		m.PVInterestExpense += row.PVInterestExpense
		m.PVNonInterestIncome += row.PVNonInterestIncome
		m.PVNonInterestExpense += row.PVNonInterestExpense
		m.PVNetIncome += row.PVNetIncome
	}
	return m
}
