package domain

import "time"

// MatchRecord is written when a viewer explicitly asks to match with a candidate.
// One record exists per ordered (viewer, candidate) pair.
type MatchRecord struct {
	ViewerID    string    `json:"viewer_id" db:"viewer_id"`
	CandidateID string    `json:"candidate_id" db:"candidate_id"`
	Score       int       `json:"score" db:"score"`
	Explanation *string   `json:"explanation,omitempty" db:"explanation"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
}

// ScoredCandidate is a candidate profile paired with its score from the viewer's side.
type ScoredCandidate struct {
	Profile *Profile `json:"profile"`
	Score   int      `json:"score"`
}
