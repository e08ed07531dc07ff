package potential

type Tier string

const (
	TierVeryHigh Tier = "very_high"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierVeryLow  Tier = "very_low"
)

type Flag string

const (
	FlagYoungTalent         Flag = "young_talent"
	FlagConsistentPerformer Flag = "consistent_performer"
)

// Components are the 0-1 sub-scores of a season potential.
type Components struct {
	Age         float64
	Performance float64
	Production  float64
	Consistency float64
	Advanced    float64
	Momentum    float64
}

// ProfilePotential is the season-level potential of one profile.
// Ineligible profiles carry reasons and no scores.
type ProfilePotential struct {
	ProfileID        int64
	Season           string
	TeamID           string
	Competition      string
	CompetitionLevel int
	Age              *int

	GamesPlayed  int
	TotalMinutes float64
	AvgMinutes   float64

	Eligible bool
	Reasons  []string

	Components           *Components
	Composite            *float64
	TemporalWeight       float64
	ConfidenceMultiplier *float64
	PotentialScore       *float64
	Tier                 Tier
	Flags                []Flag
}

func (p ProfilePotential) HasFlag(flag Flag) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
