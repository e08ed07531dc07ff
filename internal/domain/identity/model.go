package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus = errors.New("invalid validation status")
	ErrSelfPair      = errors.New("candidate pair must reference two distinct profiles")
	ErrMergeConflict = errors.New("merge conflict")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusUnsure    Status = "unsure"
)

// ParseStatus accepts any case and surrounding whitespace.
func ParseStatus(v string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(v))); s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusUnsure:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
}

type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
)

// Candidate is a scored hypothesis that two profiles are the same player.
// ProfileID1 is always the smaller id.
type Candidate struct {
	ID            int64
	ProfileID1    int64
	ProfileID2    int64
	NameScore     float64
	AgeScore      float64
	TeamScore     float64
	TimelineScore float64
	TotalScore    float64
	Confidence    Confidence
	Status        Status
	ValidatedBy   string
	ValidatedAt   *time.Time
	Notes         string
	CreatedAt     time.Time
}

// Validation is a reviewer decision on a candidate.
type Validation struct {
	CandidateID int64
	Status      Status
	By          string
	Notes       string
}

// Query filters candidate listings. Empty Status matches every status.
type Query struct {
	Status   Status
	MinScore float64
	Limit    int
}

// Stats summarizes the review queue.
type Stats struct {
	Total        int
	ByStatus     map[Status]int
	ByConfidence map[Confidence]int
}

// ConsolidatedPlayer is a merged real-world identity. ID is the smallest
// member profile id.
type ConsolidatedPlayer struct {
	ID         int64
	ProfileIDs []int64
}

// MergeConflict records a confirmed candidate whose merge was refused
// because it would join incompatible profiles.
type MergeConflict struct {
	CandidateID int64
	ProfileID1  int64
	ProfileID2  int64
	Reason      string
}

func (c MergeConflict) Err() error {
	return fmt.Errorf("%w: candidate %d (%d,%d): %s", ErrMergeConflict, c.CandidateID, c.ProfileID1, c.ProfileID2, c.Reason)
}
