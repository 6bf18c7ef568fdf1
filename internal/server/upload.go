package server

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
)

// ParseLoansCSV reads loan parameters from an uploaded CSV, one loan per
// line. The header row is mapped field-for-field onto LoanParameters;
// header matching ignores case, underscores, and spaces, so "Term_Months",
// "term months", and "termMonths" are all accepted.
func ParseLoansCSV(r io.Reader) ([]cashflow.LoanParameters, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	if _, ok := columns["principal"]; !ok {
		return nil, fmt.Errorf("missing required column principal")
	}
	if _, ok := columns["termmonths"]; !ok {
		if _, ok := columns["term"]; !ok {
			return nil, fmt.Errorf("missing required column term_months")
		}
	}

	var loans []cashflow.LoanParameters
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		params, err := recordToLoan(columns, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		loans = append(loans, params)
	}

	if len(loans) == 0 {
		return nil, fmt.Errorf("no loan rows in file")
	}
	return loans, nil
}

func recordToLoan(columns map[string]int, record []string) (cashflow.LoanParameters, error) {
	var params cashflow.LoanParameters
	var err error

	if params.Principal, err = floatField(columns, record, "principal"); err != nil {
		return params, err
	}
	if params.AnnualRate, err = floatField(columns, record, "annualrate", "interestrate"); err != nil {
		return params, err
	}
	if params.TermMonths, err = intField(columns, record, "termmonths", "term"); err != nil {
		return params, err
	}
	if params.FTPRate, err = floatField(columns, record, "ftprate", "ftpcost"); err != nil {
		return params, err
	}
	if params.DiscountRate, err = floatField(columns, record, "discountrate"); err != nil {
		return params, err
	}
	if params.NIIFee, err = floatField(columns, record, "niifee"); err != nil {
		return params, err
	}
	if params.NIIMonths, err = intField(columns, record, "niimonths"); err != nil {
		return params, err
	}
	if params.NIEAmount, err = floatField(columns, record, "nieamount"); err != nil {
		return params, err
	}
	if params.PDRating, err = intField(columns, record, "pdrating"); err != nil {
		return params, err
	}

	params.LGDGrade = stringField(columns, record, "lgdgrade")
	params.ZipCode = stringField(columns, record, "zipcode")
	params.LoanID = stringField(columns, record, "loanid")

	return params, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

func stringField(columns map[string]int, record []string, names ...string) string {
	for _, name := range names {
		if i, ok := columns[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func floatField(columns map[string]int, record []string, names ...string) (float64, error) {
	raw := stringField(columns, record, names...)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s", raw, names[0])
	}
	return value, nil
}

func intField(columns map[string]int, record []string, names ...string) (int, error) {
	raw := stringField(columns, record, names...)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s", raw, names[0])
	}
	return value, nil
}
