// Package naming canonicalizes and compares player names as they appear in
// box scores ("J. PÉREZ", "JUAN PÉREZ", "PÉREZ, JUAN").
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	surnameWeight   = 0.60
	initialWeight   = 0.20
	firstNameWeight = 0.20
	partialFirst    = 0.10
	initialOnly     = 0.10
)

var particles = map[string]struct{}{
	"DE": {}, "DEL": {}, "LA": {}, "LOS": {}, "LAS": {}, "DA": {},
	"DOS": {}, "DAS": {}, "VAN": {}, "VON": {}, "EL": {},
}

// Components is the parsed shape of a name.
type Components struct {
	Initial   string
	FirstName string
	Surnames  string
}

// Normalize uppercases, strips diacritics, keeps only [A-Z0-9 .,-] and
// collapses whitespace.
func Normalize(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	upper := strings.ToUpper(strings.TrimSpace(name))
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), upper)
	if err != nil {
		stripped = upper
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Parse splits a name into initial, first name and surnames. Formats are
// checked in order: "SURNAMES, GIVEN", dotted initials, "GIVEN SURNAMES".
// A single token is treated as a surname.
func Parse(name string) Components {
	n := Normalize(name)
	if n == "" {
		return Components{}
	}

	if idx := strings.Index(n, ","); idx >= 0 {
		surnames := strings.TrimSpace(n[:idx])
		given := strings.Fields(n[idx+1:])
		if len(given) == 0 {
			return Components{Surnames: surnames}
		}
		first := given[0]
		out := Components{Initial: first[:1], Surnames: surnames}
		if !strings.Contains(first, ".") {
			out.FirstName = first
		}
		return out
	}

	parts := strings.Fields(n)
	if strings.Contains(n, ".") {
		initialsEnd := 0
		for _, part := range parts {
			if !strings.Contains(part, ".") {
				break
			}
			initialsEnd++
		}
		return Components{
			Initial:  parts[0][:1],
			Surnames: strings.Join(parts[initialsEnd:], " "),
		}
	}

	if len(parts) == 1 {
		return Components{Surnames: parts[0]}
	}

	return Components{
		Initial:   parts[0][:1],
		FirstName: parts[0],
		Surnames:  strings.Join(parts[1:], " "),
	}
}

// SurnameTokens returns the uppercase surname tokens without particles.
func SurnameTokens(surnames string) []string {
	fields := strings.Fields(strings.ToUpper(surnames))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := particles[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Similarity scores two names in [0,1]. It is symmetric.
func Similarity(a, b string) float64 {
	ca, cb := Parse(a), Parse(b)
	score := 0.0

	if ca.Surnames != "" && cb.Surnames != "" {
		if ca.Surnames == cb.Surnames {
			score += surnameWeight
		} else {
			score += surnameWeight * jaccard(SurnameTokens(ca.Surnames), SurnameTokens(cb.Surnames))
		}
	}

	initialsMatch := ca.Initial != "" && ca.Initial == cb.Initial
	if initialsMatch {
		score += initialWeight
	}

	switch {
	case ca.FirstName != "" && cb.FirstName != "":
		if ca.FirstName == cb.FirstName {
			score += firstNameWeight
		} else if strings.Contains(ca.FirstName, cb.FirstName) || strings.Contains(cb.FirstName, ca.FirstName) {
			score += partialFirst
		}
	case initialsMatch:
		score += initialOnly
	}

	if score > 1 {
		return 1
	}
	return score
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]uint8, len(a)+len(b))
	for _, t := range a {
		set[t] |= 1
	}
	for _, t := range b {
		set[t] |= 2
	}
	inter := 0
	for _, v := range set {
		if v == 3 {
			inter++
		}
	}
	return float64(inter) / float64(len(set))
}

// Levenshtein returns the edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FuzzyScore is 1 - distance/maxLen over normalized names; 0 if either is empty.
func FuzzyScore(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	maxLen := max(len([]rune(na)), len([]rune(nb)))
	return 1 - float64(Levenshtein(na, nb))/float64(maxLen)
}

// BlockKeys buckets a name by the first prefixLen letters of each surname
// token, so "JUAN MANUEL PEREZ" and "J. PEREZ" share the PER block.
// Names without surnames get no keys.
func BlockKeys(name string, prefixLen int) []string {
	tokens := SurnameTokens(Parse(name).Surnames)
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		key := strings.Trim(token, ".,-")
		if key == "" {
			continue
		}
		if prefixLen > 0 && len(key) > prefixLen {
			key = key[:prefixLen]
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
