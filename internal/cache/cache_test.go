package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
)

func TestKeyDeterministic(t *testing.T) {
	params := cashflow.LoanParameters{
		Principal:  1000000,
		AnnualRate: 6.5,
		TermMonths: 100,
		LoanID:     "LOAN-001",
	}

	first, err := Key(params)
	if err != nil {
		t.Fatalf("Key() unexpected error: %v", err)
	}
	second, err := Key(params)
	if err != nil {
		t.Fatalf("Key() unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Key() not deterministic: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "schedule:") {
		t.Errorf("Key() = %q, expected schedule: prefix", first)
	}
}

func TestKeyDistinguishesParameters(t *testing.T) {
	base := cashflow.LoanParameters{Principal: 1000000, AnnualRate: 6.5, TermMonths: 100}
	changed := base
	changed.TermMonths = 99

	baseKey, err := Key(base)
	if err != nil {
		t.Fatalf("Key() unexpected error: %v", err)
	}
	changedKey, err := Key(changed)
	if err != nil {
		t.Fatalf("Key() unexpected error: %v", err)
	}
	if baseKey == changedKey {
		t.Errorf("different parameters mapped to the same key %q", baseKey)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCache()

	if _, ok := repo.Get(ctx, "missing"); ok {
		t.Error("Get() on an empty cache reported a hit")
	}

	if err := repo.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	val, ok := repo.Get(ctx, "k")
	if !ok || val != "v" {
		t.Errorf("Get() = (%q, %v), expected (\"v\", true)", val, ok)
	}
}
