package httpapi

import (
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
)

type profileMetricsDTO struct {
	ProfileID        int64   `json:"profile_id"`
	Season           string  `json:"season"`
	TeamID           string  `json:"team_id"`
	CompetitionLevel int     `json:"competition_level"`
	GamesPlayed      int     `json:"games_played"`
	TotalMinutes     float64 `json:"total_minutes"`
	AvgMinutes       float64 `json:"avg_minutes"`
	TotalPoints      int     `json:"total_points"`

	AvgPoints    float64 `json:"avg_points"`
	AvgRebounds  float64 `json:"avg_rebounds"`
	AvgAssists   float64 `json:"avg_assists"`
	AvgSteals    float64 `json:"avg_steals"`
	AvgBlocks    float64 `json:"avg_blocks"`
	AvgTurnovers float64 `json:"avg_turnovers"`
	AvgPlusMinus float64 `json:"avg_plus_minus"`

	AvgFGPct           *float64 `json:"avg_fg_pct"`
	AvgFG3Pct          *float64 `json:"avg_fg3_pct"`
	AvgFTPct           *float64 `json:"avg_ft_pct"`
	AvgTrueShooting    *float64 `json:"avg_true_shooting"`
	AvgEffectiveFG     *float64 `json:"avg_effective_fg"`
	AvgOffensiveRating *float64 `json:"avg_offensive_rating"`
	AvgPER             *float64 `json:"avg_per"`
	AvgUsage           *float64 `json:"avg_usage"`
	TotalWinShares     float64  `json:"total_win_shares"`

	StdPoints      float64  `json:"std_points"`
	PointsCV       *float64 `json:"points_cv"`
	StabilityIndex *float64 `json:"stability_index"`
	OutlierGames   int      `json:"outlier_games"`
	TrendPoints    float64  `json:"trend_points"`
	MomentumIndex  *float64 `json:"momentum_index"`

	PointsPer36   *float64 `json:"points_per36"`
	ReboundsPer36 *float64 `json:"rebounds_per36"`
	AssistsPer36  *float64 `json:"assists_per36"`

	PointsShare      *float64 `json:"points_share"`
	MinutesShare     *float64 `json:"minutes_share"`
	EfficiencyVsTeam *float64 `json:"efficiency_vs_team"`

	AvgZOffensiveRating *float64 `json:"avg_z_offensive_rating"`
	AvgZPER             *float64 `json:"avg_z_per"`
	AvgZMinutes         *float64 `json:"avg_z_minutes"`
	AvgZPoints          *float64 `json:"avg_z_points"`
	AvgZTrueShooting    *float64 `json:"avg_z_true_shooting"`

	PerformanceTier string `json:"performance_tier"`
	Percentile      int    `json:"percentile"`
	PercentileTier  string `json:"percentile_tier"`
}

func profileMetricsToDTO(v metrics.ProfileMetrics) profileMetricsDTO {
	return profileMetricsDTO{
		ProfileID:           v.ProfileID,
		Season:              v.Season,
		TeamID:              v.TeamID,
		CompetitionLevel:    v.CompetitionLevel,
		GamesPlayed:         v.GamesPlayed,
		TotalMinutes:        v.TotalMinutes,
		AvgMinutes:          v.AvgMinutes,
		TotalPoints:         v.TotalPoints,
		AvgPoints:           v.AvgPoints,
		AvgRebounds:         v.AvgRebounds,
		AvgAssists:          v.AvgAssists,
		AvgSteals:           v.AvgSteals,
		AvgBlocks:           v.AvgBlocks,
		AvgTurnovers:        v.AvgTurnovers,
		AvgPlusMinus:        v.AvgPlusMinus,
		AvgFGPct:            v.AvgFGPct,
		AvgFG3Pct:           v.AvgFG3Pct,
		AvgFTPct:            v.AvgFTPct,
		AvgTrueShooting:     v.AvgTrueShooting,
		AvgEffectiveFG:      v.AvgEffectiveFG,
		AvgOffensiveRating:  v.AvgOffensiveRating,
		AvgPER:              v.AvgPER,
		AvgUsage:            v.AvgUsage,
		TotalWinShares:      v.TotalWinShares,
		StdPoints:           v.StdPoints,
		PointsCV:            v.PointsCV,
		StabilityIndex:      v.StabilityIndex,
		OutlierGames:        v.OutlierGames,
		TrendPoints:         v.TrendPoints,
		MomentumIndex:       v.MomentumIndex,
		PointsPer36:         v.PointsPer36,
		ReboundsPer36:       v.ReboundsPer36,
		AssistsPer36:        v.AssistsPer36,
		PointsShare:         v.PointsShare,
		MinutesShare:        v.MinutesShare,
		EfficiencyVsTeam:    v.EfficiencyVsTeam,
		AvgZOffensiveRating: v.AvgZOffensiveRating,
		AvgZPER:             v.AvgZPER,
		AvgZMinutes:         v.AvgZMinutes,
		AvgZPoints:          v.AvgZPoints,
		AvgZTrueShooting:    v.AvgZTrueShooting,
		PerformanceTier:     string(v.PerformanceTier),
		Percentile:          v.Percentile,
		PercentileTier:      string(v.PercentileTier),
	}
}

type componentsDTO struct {
	Age         float64 `json:"age"`
	Performance float64 `json:"performance"`
	Production  float64 `json:"production"`
	Consistency float64 `json:"consistency"`
	Advanced    float64 `json:"advanced"`
	Momentum    float64 `json:"momentum"`
}

type profilePotentialDTO struct {
	ProfileID            int64          `json:"profile_id"`
	Season               string         `json:"season"`
	TeamID               string         `json:"team_id"`
	Competition          string         `json:"competition"`
	CompetitionLevel     int            `json:"competition_level"`
	Age                  *int           `json:"age"`
	GamesPlayed          int            `json:"games_played"`
	TotalMinutes         float64        `json:"total_minutes"`
	AvgMinutes           float64        `json:"avg_minutes"`
	Eligible             bool           `json:"eligible"`
	Reasons              []string       `json:"reasons"`
	Components           *componentsDTO `json:"components,omitempty"`
	Composite            *float64       `json:"composite"`
	TemporalWeight       float64        `json:"temporal_weight"`
	ConfidenceMultiplier *float64       `json:"confidence_multiplier"`
	PotentialScore       *float64       `json:"potential_score"`
	Tier                 string         `json:"tier,omitempty"`
	Flags                []string       `json:"flags"`
}

func profilePotentialToDTO(v potential.ProfilePotential) profilePotentialDTO {
	out := profilePotentialDTO{
		ProfileID:            v.ProfileID,
		Season:               v.Season,
		TeamID:               v.TeamID,
		Competition:          v.Competition,
		CompetitionLevel:     v.CompetitionLevel,
		Age:                  v.Age,
		GamesPlayed:          v.GamesPlayed,
		TotalMinutes:         v.TotalMinutes,
		AvgMinutes:           v.AvgMinutes,
		Eligible:             v.Eligible,
		Reasons:              append([]string{}, v.Reasons...),
		Composite:            v.Composite,
		TemporalWeight:       v.TemporalWeight,
		ConfidenceMultiplier: v.ConfidenceMultiplier,
		PotentialScore:       v.PotentialScore,
		Tier:                 string(v.Tier),
		Flags:                make([]string, 0, len(v.Flags)),
	}
	if c := v.Components; c != nil {
		out.Components = &componentsDTO{
			Age:         c.Age,
			Performance: c.Performance,
			Production:  c.Production,
			Consistency: c.Consistency,
			Advanced:    c.Advanced,
			Momentum:    c.Momentum,
		}
	}
	for _, f := range v.Flags {
		out.Flags = append(out.Flags, string(f))
	}
	return out
}

type careerDTO struct {
	PlayerKey            string               `json:"player_key"`
	Name                 string               `json:"name"`
	BirthYear            *int                 `json:"birth_year"`
	ConsolidatedPlayerID *int64               `json:"consolidated_player_id"`
	ProfileIDs           []int64              `json:"profile_ids"`
	SeasonsCount         int                  `json:"seasons_count"`
	TotalGames           int                  `json:"total_games"`
	TotalMinutes         float64              `json:"total_minutes"`
	FirstSeason          string               `json:"first_season"`
	LastSeason           string               `json:"last_season"`
	CurrentAge           *int                 `json:"current_age"`
	CareerAvg            float64              `json:"career_avg"`
	Recent               float64              `json:"recent"`
	Trajectory           float64              `json:"trajectory"`
	Consistency          float64              `json:"consistency"`
	AgeScore             float64              `json:"age_score"`
	Confidence           float64              `json:"confidence"`
	LevelJumpBonus       float64              `json:"level_jump_bonus"`
	BaseScore            float64              `json:"base_score"`
	SeasonsInactive      int                  `json:"seasons_inactive"`
	InactivityPenalty    float64              `json:"inactivity_penalty"`
	UnifiedScore         float64              `json:"unified_score"`
	Tier                 string               `json:"tier"`
	Flags                []string             `json:"flags"`
	BestSeason           string               `json:"best_season"`
	BestSeasonScore      float64              `json:"best_season_score"`
	Seasons              []career.SeasonEntry `json:"seasons"`
}

func careerToDTO(v career.CareerPotential) careerDTO {
	out := careerDTO{
		PlayerKey:            v.PlayerKey,
		Name:                 v.Name,
		BirthYear:            v.BirthYear,
		ConsolidatedPlayerID: v.ConsolidatedPlayerID,
		ProfileIDs:           append([]int64{}, v.ProfileIDs...),
		SeasonsCount:         v.SeasonsCount,
		TotalGames:           v.TotalGames,
		TotalMinutes:         v.TotalMinutes,
		FirstSeason:          v.FirstSeason,
		LastSeason:           v.LastSeason,
		CurrentAge:           v.CurrentAge,
		CareerAvg:            v.CareerAvg,
		Recent:               v.Recent,
		Trajectory:           v.Trajectory,
		Consistency:          v.Consistency,
		AgeScore:             v.AgeScore,
		Confidence:           v.Confidence,
		LevelJumpBonus:       v.LevelJumpBonus,
		BaseScore:            v.BaseScore,
		SeasonsInactive:      v.SeasonsInactive,
		InactivityPenalty:    v.InactivityPenalty,
		UnifiedScore:         v.UnifiedScore,
		Tier:                 string(v.Tier),
		Flags:                make([]string, 0, len(v.Flags)),
		BestSeason:           v.BestSeason,
		BestSeasonScore:      v.BestSeasonScore,
		Seasons:              append([]career.SeasonEntry{}, v.Seasons...),
	}
	for _, f := range v.Flags {
		out.Flags = append(out.Flags, string(f))
	}
	return out
}

type profileSummaryDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	TeamID           string `json:"team_id"`
	TeamName         string `json:"team_name"`
	Season           string `json:"season"`
	Competition      string `json:"competition"`
	CompetitionLevel int    `json:"competition_level"`
	BirthYear        *int   `json:"birth_year"`
	GamesPlayed      int    `json:"games_played"`
}

func profileSummaryToDTO(v profile.Profile) *profileSummaryDTO {
	if v.ID == 0 {
		return nil
	}
	return &profileSummaryDTO{
		ID:               v.ID,
		Name:             v.Name,
		TeamID:           v.TeamID,
		TeamName:         v.TeamName,
		Season:           v.Season,
		Competition:      v.Competition,
		CompetitionLevel: v.CompetitionLevel,
		BirthYear:        v.BirthYear,
		GamesPlayed:      v.GamesPlayed,
	}
}

type candidateDTO struct {
	ID            int64              `json:"id"`
	ProfileID1    int64              `json:"profile_id_1"`
	ProfileID2    int64              `json:"profile_id_2"`
	NameScore     float64            `json:"name_score"`
	AgeScore      float64            `json:"age_score"`
	TeamScore     float64            `json:"team_score"`
	TimelineScore float64            `json:"timeline_score"`
	TotalScore    float64            `json:"total_score"`
	Confidence    string             `json:"confidence"`
	Status        string             `json:"validation_status"`
	ValidatedBy   string             `json:"validated_by,omitempty"`
	ValidatedAt   string             `json:"validated_at,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     string             `json:"created_at"`
	Profile1      *profileSummaryDTO `json:"profile_1,omitempty"`
	Profile2      *profileSummaryDTO `json:"profile_2,omitempty"`
}

func candidateToDTO(v identity.Candidate) candidateDTO {
	return candidateDTO{
		ID:            v.ID,
		ProfileID1:    v.ProfileID1,
		ProfileID2:    v.ProfileID2,
		NameScore:     v.NameScore,
		AgeScore:      v.AgeScore,
		TeamScore:     v.TeamScore,
		TimelineScore: v.TimelineScore,
		TotalScore:    v.TotalScore,
		Confidence:    string(v.Confidence),
		Status:        string(v.Status),
		ValidatedBy:   v.ValidatedBy,
		ValidatedAt:   formatOptionalTime(v.ValidatedAt),
		Notes:         v.Notes,
		CreatedAt:     formatTime(v.CreatedAt),
	}
}

func candidateViewToDTO(v usecase.CandidateView) candidateDTO {
	out := candidateToDTO(v.Candidate)
	out.Profile1 = profileSummaryToDTO(v.Profile1)
	out.Profile2 = profileSummaryToDTO(v.Profile2)
	return out
}

type candidateStatsDTO struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"by_status"`
	ByConfidence map[string]int `json:"by_confidence"`
}

func candidateStatsToDTO(v identity.Stats) candidateStatsDTO {
	out := candidateStatsDTO{
		Total:        v.Total,
		ByStatus:     make(map[string]int, len(v.ByStatus)),
		ByConfidence: make(map[string]int, len(v.ByConfidence)),
	}
	for k, n := range v.ByStatus {
		out.ByStatus[string(k)] = n
	}
	for k, n := range v.ByConfidence {
		out.ByConfidence[string(k)] = n
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
