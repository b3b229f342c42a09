// internal/models/classification.go
package models

import "time"

// Gender values for users and match types.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderMix    = "mix"
)

// Match type values.
const (
	MatchTypeSingle = "single"
	MatchTypeDuo    = "duo"
	MatchTypeTeam   = "team"
)

// MatchType enumerates an eligible gender/type combination.
type MatchType struct {
	ID        int64     `json:"id" db:"id"`
	Gender    string    `json:"gender" db:"gender"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Tier is a skill bracket scoped to a match type.
type Tier struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Level       int       `json:"level" db:"level"`
	MatchTypeID int64     `json:"matchTypeId" db:"match_type_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidGender reports whether g is a known gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderMix
}

// ValidMatchType reports whether t is a known match type value.
func ValidMatchType(t string) bool {
	return t == MatchTypeSingle || t == MatchTypeDuo || t == MatchTypeTeam
}
