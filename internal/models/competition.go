// internal/models/competition.go
package models

import "time"

// Competition lifecycle statuses.
const (
	CompetitionBefore = "before"
	CompetitionDuring = "during"
	CompetitionAfter  = "after"
)

// Competition is the event descriptor. Code gates applicant actions;
// DepositDays controls how long an applicant has to pay after registering.
type Competition struct {
	ID                  int64     `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Description         string    `json:"description,omitempty" db:"description"`
	StartDate           time.Time `json:"startDate" db:"start_date"`
	EndDate             time.Time `json:"endDate" db:"end_date"`
	Status              string    `json:"status" db:"status"`
	MatchTypeID         int64     `json:"matchTypeId" db:"match_type_id"`
	TierID              int64     `json:"tierId" db:"tier_id"`
	MaxParticipants     int       `json:"maxParticipants" db:"max_participants"`
	Code                string    `json:"-" db:"code"`
	TotalRounds         int       `json:"totalRounds,omitempty" db:"total_rounds"`
	TotalSets           int       `json:"totalSets,omitempty" db:"total_sets"`
	Rule                string    `json:"rule,omitempty" db:"rule"`
	Location            string    `json:"location,omitempty" db:"location"`
	Address             string    `json:"address,omitempty" db:"address"`
	Phone               string    `json:"phone,omitempty" db:"phone"`
	Fee                 int       `json:"fee" db:"fee"`
	BankName            string    `json:"bankName,omitempty" db:"bank_name"`
	BankAccountNumber   string    `json:"bankAccountNumber,omitempty" db:"bank_account_number"`
	BankAccountName     string    `json:"bankAccountName,omitempty" db:"bank_account_name"`
	DepositRefundPolicy string    `json:"depositRefundPolicy,omitempty" db:"deposit_refund_policy"`
	DepositDays         int       `json:"depositDays" db:"deposit_days"`
	SiteLink            string    `json:"siteLink,omitempty" db:"site_link"`
	IsDeleted           bool      `json:"-" db:"is_deleted"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`

	// Joined classification fields, populated by queries.
	MatchTypeGender string `json:"-" db:"match_type_gender"`
	MatchTypeType   string `json:"-" db:"match_type_type"`
	TierName        string `json:"-" db:"tier_name"`
}

// PaymentDeadline computes the deposit deadline for a registration made now.
func (c *Competition) PaymentDeadline(now time.Time) time.Time {
	return now.Add(time.Duration(c.DepositDays) * 24 * time.Hour)
}
