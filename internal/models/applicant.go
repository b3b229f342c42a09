// internal/models/applicant.go
package models

import "time"

// ApplicantInfo statuses.
const (
	StatusUnpaid                 = "unpaid"
	StatusPendingParticipation   = "pending_participation"
	StatusConfirmedParticipation = "confirmed_participation"
	StatusUserCanceled           = "user_canceled"
	StatusAdminCanceled          = "admin_canceled"
)

// ApplicantInfo is one registration slot: one applicant in singles, two in
// doubles. Rows are never hard-deleted; cancellation flips Status and
// IsDeleted stays the shared soft-delete flag.
type ApplicantInfo struct {
	ID            int64      `json:"id" db:"id"`
	CompetitionID int64      `json:"competitionId" db:"competition_id"`
	Status        string     `json:"status" db:"status"`
	IsWaiting     bool       `json:"isWaiting" db:"is_waiting"`
	WaitingNumber *int       `json:"waitingNumber,omitempty" db:"waiting_number"`
	ExpiredDate   time.Time  `json:"expiredDate" db:"expired_date"`
	IsDeleted     bool       `json:"-" db:"is_deleted"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// Applicant links one user to one ApplicantInfo. A user holds at most
// one non-deleted row per competition.
type Applicant struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	ApplicantInfoID int64     `json:"applicantInfoId" db:"applicant_info_id"`
	IsDeleted       bool      `json:"-" db:"is_deleted"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Canceled reports whether the slot has been canceled by either side.
func (a *ApplicantInfo) Canceled() bool {
	return a.Status == StatusUserCanceled || a.Status == StatusAdminCanceled
}
