// internal/models/club.go
package models

import "time"

// Club admission statuses.
const (
	ClubApplicantPending  = "pending"
	ClubApplicantAccepted = "accepted"
	ClubApplicantRejected = "rejected"
)

type Club struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Address     string    `json:"address,omitempty" db:"address"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Team struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	ClubID      int64     `json:"clubId" db:"club_id"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Coach struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ClubApplicant is one admission request, pending until a coach or admin
// accepts or rejects it.
type ClubApplicant struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
