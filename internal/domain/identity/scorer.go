package identity

import (
	"math"

	"github.com/riskibarqy/hoops-scout/internal/domain/naming"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
)

const (
	nameWeight     = 0.40
	ageWeight      = 0.30
	teamWeight     = 0.20
	timelineWeight = 0.10

	missingAgeScore      = 0.5
	missingTeamScore     = 0.3
	differentTeamScore   = 0.2
	missingTimelineScore = 0.3
)

// Subject is the slice of a profile the pairwise scorer looks at.
type Subject struct {
	ID        int64
	Name      string
	BirthYear *int
	TeamID    string
	Season    string
}

func SubjectFromProfile(p profile.Profile) Subject {
	return Subject{
		ID:        p.ID,
		Name:      p.NameNormalized,
		BirthYear: p.BirthYear,
		TeamID:    p.TeamID,
		Season:    p.Season,
	}
}

// Score is the component breakdown of a candidate pair.
type Score struct {
	Name       float64
	Age        float64
	Team       float64
	Timeline   float64
	Total      float64
	Confidence Confidence
	// MalformedSeason is set when a season label could not be parsed and
	// the timeline fell back to its neutral value.
	MalformedSeason bool
}

// ScorePair is pure and symmetric: ScorePair(a,b) == ScorePair(b,a).
func ScorePair(a, b Subject) Score {
	s := Score{
		Name: round6(naming.Similarity(a.Name, b.Name)),
		Age:  AgeScore(a.BirthYear, b.BirthYear),
		Team: TeamScore(a.TeamID, b.TeamID),
	}
	s.Timeline, s.MalformedSeason = TimelineScore(a.Season, b.Season)
	s.Total = round6(nameWeight*s.Name + ageWeight*s.Age + teamWeight*s.Team + timelineWeight*s.Timeline)
	s.Confidence = ClassifyConfidence(s.Total)
	return s
}

func AgeScore(a, b *int) float64 {
	if a == nil || b == nil {
		return missingAgeScore
	}
	switch diff := absInt(*a - *b); diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.3
	default:
		return 0
	}
}

func TeamScore(a, b string) float64 {
	if a == "" || b == "" {
		return missingTeamScore
	}
	if a == b {
		return 1.0
	}
	return differentTeamScore
}

// TimelineScore favors consecutive seasons over same-season appearances.
func TimelineScore(a, b string) (score float64, malformed bool) {
	if a == "" || b == "" {
		return missingTimelineScore, false
	}
	sa, errA := season.Parse(a)
	sb, errB := season.Parse(b)
	if errA != nil || errB != nil {
		return missingTimelineScore, true
	}
	switch diff := absInt(sa.StartYear - sb.StartYear); {
	case diff == 0:
		return 0.8, false
	case diff == 1:
		return 1.0, false
	case diff == 2:
		return 0.6, false
	case diff <= 4:
		return 0.3, false
	default:
		return 0.1, false
	}
}

// ClassifyConfidence partitions [0,1]; boundaries belong to the upper tier.
func ClassifyConfidence(total float64) Confidence {
	switch {
	case total >= 0.85:
		return ConfidenceVeryHigh
	case total >= 0.70:
		return ConfidenceHigh
	case total >= 0.50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// NewCandidate orders the pair and starts it in pending review.
func NewCandidate(a, b Subject, s Score) (Candidate, error) {
	if a.ID == b.ID {
		return Candidate{}, ErrSelfPair
	}
	id1, id2 := a.ID, b.ID
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return Candidate{
		ProfileID1:    id1,
		ProfileID2:    id2,
		NameScore:     s.Name,
		AgeScore:      s.Age,
		TeamScore:     s.Team,
		TimelineScore: s.Timeline,
		TotalScore:    s.Total,
		Confidence:    s.Confidence,
		Status:        StatusPending,
	}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
