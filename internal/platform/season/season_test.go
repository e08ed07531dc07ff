package season

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "slash full", input: "2023/2024", want: 2023},
		{name: "slash short", input: "2023/24", want: 2023},
		{name: "dash full", input: "2019-2020", want: 2019},
		{name: "century rollover", input: "1999/00", want: 1999},
		{name: "single year", input: "2021", want: 2021},
		{name: "surrounding spaces", input: "  2022/2023 ", want: 2022},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if got.StartYear != tc.want {
				t.Fatalf("unexpected start year: got=%d want=%d", got.StartYear, tc.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "abc", "2023/2025", "23/24", "2023/2", "2023/abcd", "2023/2022"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrMalformedSeason) {
			t.Fatalf("expected ErrMalformedSeason for %q, got %v", input, err)
		}
	}
}

func TestSeason_StringAndNavigation(t *testing.T) {
	t.Parallel()

	s := MustParse("2023/24")
	if s.String() != "2023/2024" {
		t.Fatalf("unexpected canonical label: %s", s.String())
	}
	if s.Previous().String() != "2022/2023" || s.Next().String() != "2024/2025" {
		t.Fatalf("unexpected navigation: prev=%s next=%s", s.Previous(), s.Next())
	}
	if got := s.YearsBefore(2026); got != 3 {
		t.Fatalf("unexpected years before: %d", got)
	}
	if got := s.YearsBefore(2020); got != 0 {
		t.Fatalf("future season must report zero, got %d", got)
	}
}

func TestBetween(t *testing.T) {
	t.Parallel()

	got := Between(MustParse("2022"), MustParse("2020"))
	if len(got) != 3 {
		t.Fatalf("expected 3 seasons, got %d", len(got))
	}
	if got[0].StartYear != 2020 || got[2].StartYear != 2022 {
		t.Fatalf("unexpected ordering: %+v", got)
	}
}
