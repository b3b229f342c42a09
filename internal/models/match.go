// internal/models/match.go
package models

import "time"

// Match is a single scheduled match inside a competition bracket.
// A-side and B-side reference applicant_info rows so both singles and
// doubles entries are addressed uniformly.
type Match struct {
	ID            int64     `json:"id" db:"id"`
	CompetitionID int64     `json:"competitionId" db:"competition_id"`
	Round         int       `json:"round" db:"match_round"`
	Number        int       `json:"number" db:"match_number"`
	Court         *int      `json:"court,omitempty" db:"court_number"`
	ASideID       *int64    `json:"aSideId,omitempty" db:"a_side_id"`
	BSideID       *int64    `json:"bSideId,omitempty" db:"b_side_id"`
	WinnerID      *int64    `json:"winnerId,omitempty" db:"winner_id"`
	IsDeleted     bool      `json:"-" db:"is_deleted"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Set holds the game score of one set within a match.
type Set struct {
	ID        int64     `json:"id" db:"id"`
	MatchID   int64     `json:"matchId" db:"match_id"`
	SetNumber int       `json:"setNumber" db:"set_number"`
	AGames    int       `json:"aGames" db:"a_score"`
	BGames    int       `json:"bGames" db:"b_score"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
