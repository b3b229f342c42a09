// internal/api/match/models.go
package match

import "matchpoint/internal/models"

// CreateMatchRequest schedules one bracket match.
type CreateMatchRequest struct {
	Round   int    `json:"round"`
	Number  int    `json:"number"`
	Court   *int   `json:"court,omitempty"`
	ASideID *int64 `json:"aSideId,omitempty"`
	BSideID *int64 `json:"bSideId,omitempty"`
}

// RecordSetRequest stores the game score of one set.
type RecordSetRequest struct {
	SetNumber int `json:"setNumber"`
	AGames    int `json:"aGames"`
	BGames    int `json:"bGames"`
}

// CompleteRequest declares the winning side of a match.
type CompleteRequest struct {
	WinnerID int64 `json:"winnerId"`
}

// MatchView is a match with its recorded sets.
type MatchView struct {
	models.Match
	Sets []models.Set `json:"sets,omitempty"`
}
