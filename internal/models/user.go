// internal/models/user.go
package models

import "time"

// Role values.
const (
	RoleUser  = "user"
	RoleCoach = "coach"
	RoleAdmin = "admin"
)

// User is an account record. TierID is nil until the user is placed in a
// tier; ClubID is nil until a club admission is accepted.
type User struct {
	ID            int64     `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Phone         string    `json:"phone" db:"phone"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Gender        string    `json:"gender" db:"gender"`
	Birth         int       `json:"birth" db:"birth"`
	Role          string    `json:"role" db:"role"`
	IsStaff       bool      `json:"isStaff" db:"is_staff"`
	TierID        *int64    `json:"tierId,omitempty" db:"tier_id"`
	ClubID        *int64    `json:"clubId,omitempty" db:"club_id"`
	MainRankingID *int64    `json:"mainRankingId,omitempty" db:"main_ranking_id"`
	IsDeleted     bool      `json:"-" db:"is_deleted"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Ranking is a per-match-type standing for a user.
type Ranking struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	MatchTypeID int64     `json:"matchTypeId" db:"match_type_id"`
	TierID      *int64    `json:"tierId,omitempty" db:"tier_id"`
	Rank        int       `json:"rank" db:"rank"`
	Points      int       `json:"points" db:"points"`
	IsMain      bool      `json:"isMain" db:"is_main"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// InTier reports whether the user belongs to the given tier.
func (u *User) InTier(tierID int64) bool {
	return u.TierID != nil && *u.TierID == tierID
}
