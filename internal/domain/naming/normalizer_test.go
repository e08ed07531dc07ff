package naming

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "José María García", want: "JOSE MARIA GARCIA"},
		{in: "  pérez,   juan ", want: "PEREZ, JUAN"},
		{in: "O'Neal Jr.", want: "ONEAL JR."},
		{in: "Núñez-Ibáñez\tÁlvaro", want: "NUNEZ-IBANEZ ALVARO"},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Components
	}{
		{in: "J. Pérez", want: Components{Initial: "J", Surnames: "PEREZ"}},
		{in: "J.M. García López", want: Components{Initial: "J", Surnames: "GARCIA LOPEZ"}},
		{in: "Juan Pérez", want: Components{Initial: "J", FirstName: "JUAN", Surnames: "PEREZ"}},
		{in: "Pérez, Juan", want: Components{Initial: "J", FirstName: "JUAN", Surnames: "PEREZ"}},
		{in: "De La Torre, María", want: Components{Initial: "M", FirstName: "MARIA", Surnames: "DE LA TORRE"}},
		{in: "Pérez, J.", want: Components{Initial: "J", Surnames: "PEREZ"}},
		{in: "Sabonis", want: Components{Surnames: "SABONIS"}},
		{in: "", want: Components{}},
	}

	for _, tc := range tests {
		if got := Parse(tc.in); got != tc.want {
			t.Fatalf("Parse(%q): got=%+v want=%+v", tc.in, got, tc.want)
		}
	}
}

func TestSurnameTokens_DropsParticles(t *testing.T) {
	t.Parallel()

	got := SurnameTokens("de la Torre del Río")
	if len(got) != 2 || got[0] != "TORRE" || got[1] != "RÍO" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{a: "J. Pérez", b: "Juan Pérez", want: 0.90},
		{a: "Juan Pérez", b: "Pérez, Juan", want: 1.0},
		{a: "Juan Pérez", b: "Juanjo Pérez", want: 0.90},
		{a: "María de la Torre", b: "De La Torre, María", want: 1.0},
		{a: "Juan Pérez García", b: "Juan Pérez López", want: 0.60*(1.0/3) + 0.40},
		{a: "Juan Pérez", b: "Pedro Gómez", want: 0},
		{a: "", b: "Juan Pérez", want: 0},
	}

	for _, tc := range tests {
		got := Similarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Similarity(%q, %q): got=%v want=%v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilarity_SymmetricAndBounded(t *testing.T) {
	t.Parallel()

	pool := []string{
		"J. Pérez", "Juan Pérez", "Pérez, Juan", "J.M. García", "José María García",
		"Fernández López", "Fernandez, Juan", "De La Torre, María", "María de la Torre",
		"Sabonis", "A. Sabonis", "Arvydas Sabonis", "", "Juanjo Pérez",
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		a := pool[rng.IntN(len(pool))]
		b := pool[rng.IntN(len(pool))]
		ab, ba := Similarity(a, b), Similarity(b, a)
		if ab != ba {
			t.Fatalf("asymmetric similarity for %q/%q: %v vs %v", a, b, ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("similarity out of range for %q/%q: %v", a, b, ab)
		}
	}
}

func TestLevenshteinAndFuzzy(t *testing.T) {
	t.Parallel()

	if got := Levenshtein("kitten", "sitting"); got != 3 {
		t.Fatalf("unexpected distance: %d", got)
	}
	if got := Levenshtein("", "abc"); got != 3 {
		t.Fatalf("unexpected distance to empty: %d", got)
	}
	if got := FuzzyScore("Pérez", "PEREZ"); got != 1 {
		t.Fatalf("expected identical normalized names to score 1, got %v", got)
	}
	if got := FuzzyScore("", "PEREZ"); got != 0 {
		t.Fatalf("expected empty name to score 0, got %v", got)
	}
	if got := FuzzyScore("PEREZ", "PERES"); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("unexpected fuzzy score: %v", got)
	}
}

func TestBlockKeys(t *testing.T) {
	t.Parallel()

	a := BlockKeys("Juan Manuel Pérez", 3)
	b := BlockKeys("J. Pérez", 3)
	if len(b) != 1 || b[0] != "PER" {
		t.Fatalf("unexpected keys for initial form: %v", b)
	}
	shared := false
	for _, k := range a {
		if k == "PER" {
			shared = true
		}
	}
	if !shared {
		t.Fatalf("expected shared PER block, got %v", a)
	}
	if keys := BlockKeys("", 3); len(keys) != 0 {
		t.Fatalf("expected no keys for empty name, got %v", keys)
	}
}
