package ratings

import (
	"errors"
	"testing"
)

func TestPD(t *testing.T) {
	tests := []struct {
		rating   int
		expected float64
	}{
		{1, 0.0010},
		{2, 0.0025},
		{5, 0.0200},
		{8, 0.1500},
		{13, 0.9500},
	}

	for _, tt := range tests {
		pd, err := PD(tt.rating)
		if err != nil {
			t.Errorf("PD(%d) unexpected error: %v", tt.rating, err)
			continue
		}
		if pd != tt.expected {
			t.Errorf("PD(%d) = %v, expected %v", tt.rating, pd, tt.expected)
		}
	}
}

func TestPDNotFound(t *testing.T) {
	for _, rating := range []int{0, -1, 14, 100} {
		if _, err := PD(rating); !errors.Is(err, ErrNotFound) {
			t.Errorf("PD(%d) error = %v, expected ErrNotFound", rating, err)
		}
	}
}

func TestLGD(t *testing.T) {
	tests := []struct {
		grade    string
		expected float64
	}{
		{"A", 0.10},
		{"C", 0.30},
		{"G", 0.75},
		{"H", 0.90},
	}

	for _, tt := range tests {
		lgd, err := LGD(tt.grade)
		if err != nil {
			t.Errorf("LGD(%q) unexpected error: %v", tt.grade, err)
			continue
		}
		if lgd != tt.expected {
			t.Errorf("LGD(%q) = %v, expected %v", tt.grade, lgd, tt.expected)
		}
	}
}

func TestLGDNotFound(t *testing.T) {
	for _, grade := range []string{"", "I", "Z", "a", "AA"} {
		if _, err := LGD(grade); !errors.Is(err, ErrNotFound) {
			t.Errorf("LGD(%q) error = %v, expected ErrNotFound", grade, err)
		}
	}
}

func TestScalesStrictlyIncreasing(t *testing.T) {
	ratings := PDRatings()
	if len(ratings) != 13 {
		t.Fatalf("PDRatings() returned %d entries, expected 13", len(ratings))
	}
	previous := -1.0
	for _, rating := range ratings {
		pd, err := PD(rating)
		if err != nil {
			t.Fatalf("PD(%d) unexpected error: %v", rating, err)
		}
		if pd <= previous {
			t.Errorf("PD scale not strictly increasing at rating %d: %v <= %v", rating, pd, previous)
		}
		previous = pd
	}

	grades := LGDGrades()
	if len(grades) != 8 {
		t.Fatalf("LGDGrades() returned %d entries, expected 8", len(grades))
	}
	previous = -1.0
	for _, grade := range grades {
		lgd, err := LGD(grade)
		if err != nil {
			t.Fatalf("LGD(%q) unexpected error: %v", grade, err)
		}
		if lgd <= previous {
			t.Errorf("LGD scale not strictly increasing at grade %q: %v <= %v", grade, lgd, previous)
		}
		previous = lgd
	}
}
