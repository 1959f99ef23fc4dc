package fontmatch

import (
	"math"
	"testing"
)

func TestCharacterScoreSelfMatch(t *testing.T) {
	r := square(0, 0, 10)
	if got := CharacterScore(r, r.Scale(Identity)); !approx(got, 0) {
		t.Errorf("self match: expected 0, got %v", got)
	}
}

func TestCharacterScoreDisjointRegions(t *testing.T) {
	a := square(0, 0, 1)
	b := square(5, 5, 1)
	if got := CharacterScore(a, b); !approx(got, 1) {
		t.Errorf("disjoint regions: expected 1, got %v", got)
	}
}

func TestCharacterScoreSymmetric(t *testing.T) {
	a := square(0, 0, 10)
	b := square(4, 2, 10)
	ab := CharacterScore(a, b)
	ba := CharacterScore(b, a)
	if !approx(ab, ba) {
		t.Errorf("score not symmetric: %v != %v", ab, ba)
	}
}

func TestCharacterScorePartialOverlap(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)
	// union 150, intersection 50: score (150-50)/150 = 2/3.
	if got := CharacterScore(a, b); !approx(got, 2.0/3.0) {
		t.Errorf("expected 2/3, got %v", got)
	}
}

// Two empty regions have an undefined overlap ratio; that case is defined
// as a perfect vacuous match rather than a division by zero.
func TestCharacterScoreBothEmpty(t *testing.T) {
	var a, b Region
	got := CharacterScore(a, b)
	if got != 0 {
		t.Errorf("expected 0 for two empty regions, got %v", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("expected a finite score, got %v", got)
	}
}

// Identical shapes at different font sizes score 0 once normalized.
func TestCharacterScoreNormalizedSquares(t *testing.T) {
	ref := square(0, 0, 10)
	cand := square(0, 0, 20)

	factor, err := ScaleBetween(ref, cand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := CharacterScore(ref, cand.Scale(factor)); !approx(got, 0) {
		t.Errorf("expected 0 after normalization, got %v", got)
	}
}

func TestAggregateScore(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"single", []float64{0.5}, 50},
		{"mean of three", []float64{0, 0.5, 1}, 50},
		{"all perfect", []float64{0, 0, 0}, 0},
		{"all disjoint", []float64{1, 1}, 100},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		if got := AggregateScore(tc.scores); !approx(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
