// Package ratings exposes the fixed PD and LGD lookup scales used for risk
// classification. The tables are process-wide constants: they are populated
// at init and never mutated, so unsynchronized concurrent reads are safe.
// The cash-flow engine carries these classifications through untouched; the
// scales exist for downstream risk-adjustment phases.
package ratings

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound indicates a lookup outside the defined rating or grade domain.
var ErrNotFound = errors.New("not found")

// pdScale maps the 13-point internal rating to an annual probability of
// default. Strictly increasing in rating.
var pdScale = map[int]float64{
	1: 0.0010, 2: 0.0025, 3: 0.0050, 4: 0.0100, 5: 0.0200,
	6: 0.0400, 7: 0.0800, 8: 0.1500, 9: 0.2500, 10: 0.4000,
	11: 0.6000, 12: 0.8000, 13: 0.9500,
}

// lgdScale maps the collateral grade to a loss-given-default fraction.
// Strictly increasing from A to H.
var lgdScale = map[string]float64{
	"A": 0.10, "B": 0.20, "C": 0.30, "D": 0.40,
	"E": 0.50, "F": 0.60, "G": 0.75, "H": 0.90,
}

// PD returns the probability-of-default fraction for an internal rating
// between 1 and 13.
func PD(rating int) (float64, error) {
	pd, ok := pdScale[rating]
	if !ok {
		return 0, fmt.Errorf("%w: PD rating %d outside 1-13", ErrNotFound, rating)
	}
	return pd, nil
}

// LGD returns the loss-given-default fraction for a grade between A and H.
func LGD(grade string) (float64, error) {
	lgd, ok := lgdScale[grade]
	if !ok {
		return 0, fmt.Errorf("%w: LGD grade %q outside A-H", ErrNotFound, grade)
	}
	return lgd, nil
}

// PDRatings returns the defined ratings in ascending order.
func PDRatings() []int {
	keys := make([]int, 0, len(pdScale))
	for rating := range pdScale {
		keys = append(keys, rating)
	}
	sort.Ints(keys)
	return keys
}

// LGDGrades returns the defined grades in ascending order.
func LGDGrades() []string {
	keys := make([]string, 0, len(lgdScale))
	for grade := range lgdScale {
		keys = append(keys, grade)
	}
	sort.Strings(keys)
	return keys
}
