package career

type Tier string

const (
	TierElite    Tier = "elite"
	TierVeryHigh Tier = "very_high"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

type Flag string

const (
	FlagRisingStar        Flag = "rising_star"
	FlagEstablishedTalent Flag = "established_talent"
	FlagPeakPerformer     Flag = "peak_performer"
)

// SeasonEntry is one season of a career after merging every eligible
// profile of the player in that season.
type SeasonEntry struct {
	Season    string  `json:"season"`
	StartYear int     `json:"start_year"`
	Games     int     `json:"games"`
	Minutes   float64 `json:"minutes"`
	Score     float64 `json:"score"`
	Profiles  int     `json:"profiles"`
	BestLevel int     `json:"best_level"`
}

// CareerPotential is the unified potential of one real player.
type CareerPotential struct {
	PlayerKey            string
	Name                 string
	BirthYear            *int
	ConsolidatedPlayerID *int64
	ProfileIDs           []int64

	SeasonsCount int
	TotalGames   int
	TotalMinutes float64
	FirstSeason  string
	LastSeason   string
	CurrentAge   *int

	CareerAvg      float64
	Recent         float64
	Trajectory     float64
	Consistency    float64
	AgeScore       float64
	Confidence     float64
	LevelJumpBonus float64

	BaseScore         float64
	SeasonsInactive   int
	InactivityPenalty float64
	UnifiedScore      float64
	Tier              Tier
	Flags             []Flag

	BestSeason      string
	BestSeasonScore float64
	Seasons         []SeasonEntry
}

func (c CareerPotential) HasFlag(flag Flag) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
