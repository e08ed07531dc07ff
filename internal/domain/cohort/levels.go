package cohort

import (
	"fmt"
	"os"
	"sort"

	"github.com/riskibarqy/hoops-scout/internal/domain/naming"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
	"gopkg.in/yaml.v3"
)

const (
	TopLevel    = 1
	LowestLevel = 4
)

// LevelRule assigns a competition to a level, optionally moving it to
// LevelFrom starting with the FromSeason season.
type LevelRule struct {
	Name       string `yaml:"name"`
	Level      int    `yaml:"level"`
	FromSeason string `yaml:"from_season,omitempty"`
	LevelFrom  int    `yaml:"level_from,omitempty"`
}

type levelsFile struct {
	Competitions []LevelRule `yaml:"competitions"`
}

// Levels resolves competition names to levels (1 is the top tier).
type Levels struct {
	rules map[string]LevelRule
}

var defaultRules = []LevelRule{
	{Name: "ACB", Level: 1},
	{Name: "LEB ORO", Level: 2},
	{Name: "LEB PLATA", Level: 3},
	{Name: "EBA", Level: 4},
	{Name: "LIGA FEMENINA", Level: 1},
	{Name: "LIGA FEMENINA 2", Level: 2, FromSeason: "2020/2021", LevelFrom: 3},
	{Name: "LIGA CHALLENGE", Level: 2},
	{Name: "PRIMERA FEB", Level: 3},
}

func DefaultLevels() *Levels {
	l := &Levels{rules: make(map[string]LevelRule, len(defaultRules))}
	for _, rule := range defaultRules {
		l.rules[naming.Normalize(rule.Name)] = rule
	}
	return l
}

// LoadLevels reads a YAML override file on top of the default table. An
// empty path returns the defaults.
func LoadLevels(path string) (*Levels, error) {
	if path == "" {
		return DefaultLevels(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read competition levels file: %w", err)
	}
	return ParseLevels(data)
}

func ParseLevels(data []byte) (*Levels, error) {
	var file levelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode competition levels: %w", err)
	}

	l := DefaultLevels()
	for i, rule := range file.Competitions {
		name := naming.Normalize(rule.Name)
		if name == "" {
			return nil, fmt.Errorf("competition levels entry %d: name is required", i)
		}
		if rule.Level < TopLevel {
			return nil, fmt.Errorf("competition levels entry %q: level must be >= %d", rule.Name, TopLevel)
		}
		if rule.FromSeason != "" {
			if _, err := season.Parse(rule.FromSeason); err != nil {
				return nil, fmt.Errorf("competition levels entry %q: %w", rule.Name, err)
			}
			if rule.LevelFrom < TopLevel {
				return nil, fmt.Errorf("competition levels entry %q: level_from is required with from_season", rule.Name)
			}
		}
		l.rules[name] = rule
	}
	return l, nil
}

// Resolve returns the level of competition in the given season. Unmapped
// competitions get LowestLevel.
func (l *Levels) Resolve(competition, seasonLabel string) int {
	rule, ok := l.rules[naming.Normalize(competition)]
	if !ok {
		return LowestLevel
	}
	if rule.FromSeason == "" {
		return rule.Level
	}
	from, err := season.Parse(rule.FromSeason)
	if err != nil {
		return rule.Level
	}
	current, err := season.Parse(seasonLabel)
	if err != nil {
		return rule.Level
	}
	if current.StartYear >= from.StartYear {
		return rule.LevelFrom
	}
	return rule.Level
}

// Rules returns the effective table ordered by name.
func (l *Levels) Rules() []LevelRule {
	out := make([]LevelRule, 0, len(l.rules))
	for _, rule := range l.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Strength groups levels for career multipliers.
type Strength string

const (
	StrengthTop   Strength = "top"
	StrengthMid   Strength = "mid"
	StrengthLow   Strength = "low"
	StrengthOther Strength = "other"
)

func StrengthOf(level int) Strength {
	switch level {
	case 1:
		return StrengthTop
	case 2:
		return StrengthMid
	case 3:
		return StrengthLow
	default:
		return StrengthOther
	}
}

func (s Strength) Multiplier() float64 {
	switch s {
	case StrengthTop:
		return 1.0
	case StrengthMid:
		return 0.90
	case StrengthLow:
		return 0.85
	default:
		return 0.80
	}
}
