package season

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSeason is returned for season labels that cannot be parsed.
var ErrMalformedSeason = errors.New("malformed season")

// Season is a basketball season spanning StartYear to StartYear+1.
type Season struct {
	StartYear int
}

// Parse accepts "2023/2024", "2023/24", "2023-2024", "2023-24" and "2023".
func Parse(raw string) (Season, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Season{}, fmt.Errorf("%w: empty value", ErrMalformedSeason)
	}

	sep := strings.IndexAny(value, "/-")
	if sep < 0 {
		start, err := parseYear(value)
		if err != nil {
			return Season{}, fmt.Errorf("%w: %q", ErrMalformedSeason, raw)
		}
		return Season{StartYear: start}, nil
	}

	start, err := parseYear(value[:sep])
	if err != nil {
		return Season{}, fmt.Errorf("%w: %q", ErrMalformedSeason, raw)
	}

	endRaw := strings.TrimSpace(value[sep+1:])
	var end int
	switch len(endRaw) {
	case 2:
		suffix, err := strconv.Atoi(endRaw)
		if err != nil {
			return Season{}, fmt.Errorf("%w: %q", ErrMalformedSeason, raw)
		}
		end = (start/100)*100 + suffix
		if end < start {
			end += 100
		}
	case 4:
		end, err = parseYear(endRaw)
		if err != nil {
			return Season{}, fmt.Errorf("%w: %q", ErrMalformedSeason, raw)
		}
	default:
		return Season{}, fmt.Errorf("%w: %q", ErrMalformedSeason, raw)
	}

	if end != start+1 {
		return Season{}, fmt.Errorf("%w: %q end year must follow start year", ErrMalformedSeason, raw)
	}

	return Season{StartYear: start}, nil
}

// MustParse panics on malformed input. Intended for tests and static tables.
func MustParse(raw string) Season {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func parseYear(v string) (int, error) {
	v = strings.TrimSpace(v)
	if len(v) != 4 {
		return 0, fmt.Errorf("year %q must have four digits", v)
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if year < 1900 || year > 2999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}

func (s Season) EndYear() int {
	return s.StartYear + 1
}

// String returns the canonical "YYYY/YYYY" label.
func (s Season) String() string {
	return fmt.Sprintf("%d/%d", s.StartYear, s.EndYear())
}

func (s Season) Previous() Season {
	return Season{StartYear: s.StartYear - 1}
}

func (s Season) Next() Season {
	return Season{StartYear: s.StartYear + 1}
}

// YearsBefore reports how many years the season started before refYear.
// Seasons starting after refYear report zero.
func (s Season) YearsBefore(refYear int) int {
	diff := refYear - s.StartYear
	if diff < 0 {
		return 0
	}
	return diff
}

// Between returns every season from a to b inclusive, in ascending order.
func Between(a, b Season) []Season {
	if b.StartYear < a.StartYear {
		a, b = b, a
	}
	out := make([]Season, 0, b.StartYear-a.StartYear+1)
	for year := a.StartYear; year <= b.StartYear; year++ {
		out = append(out, Season{StartYear: year})
	}
	return out
}

// Normalize parses raw and returns its canonical label.
func Normalize(raw string) (string, error) {
	s, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}
