// internal/api/competition/models.go
package competition

import "time"

// ListFilters narrows the competition listing.
type ListFilters struct {
	Gender string
	Type   string
	TierID int64
	Status string
}

// Summary is one row of the competition listing. ApplicationStatus carries
// the viewer-specific display label.
type Summary struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Status            string    `json:"status"`
	Location          string    `json:"location,omitempty"`
	Fee               int       `json:"fee"`
	MatchTypeGender   string    `json:"matchTypeGender"`
	MatchTypeType     string    `json:"matchTypeType"`
	TierName          string    `json:"tierName"`
	MaxParticipants   int       `json:"maxParticipants"`
	ApplicantCount    int       `json:"applicantCount"`
	WaitingCount      int       `json:"waitingCount"`
	ApplicationStatus string    `json:"applicationStatus"`
}

// Detail is the full competition view.
type Detail struct {
	Summary
	Description         string `json:"description,omitempty"`
	TotalRounds         int    `json:"totalRounds,omitempty"`
	TotalSets           int    `json:"totalSets,omitempty"`
	Rule                string `json:"rule,omitempty"`
	Address             string `json:"address,omitempty"`
	Phone               string `json:"phone,omitempty"`
	BankName            string `json:"bankName,omitempty"`
	BankAccountNumber   string `json:"bankAccountNumber,omitempty"`
	BankAccountName     string `json:"bankAccountName,omitempty"`
	DepositRefundPolicy string `json:"depositRefundPolicy,omitempty"`
	SiteLink            string `json:"siteLink,omitempty"`
}

// ApplyRequest is the registration payload. PartnerID is required for
// doubles competitions and ignored for singles.
type ApplyRequest struct {
	Code      string `json:"code"`
	PartnerID *int64 `json:"partner_id,omitempty"`
}

// ApplyResponse echoes the data an applicant needs to complete the deposit.
type ApplyResponse struct {
	ApplicantName     string    `json:"applicantName"`
	ApplicantPhone    string    `json:"applicantPhone"`
	PartnerName       string    `json:"partnerName,omitempty"`
	PartnerPhone      string    `json:"partnerPhone,omitempty"`
	CompetitionName   string    `json:"competitionName"`
	Fee               int       `json:"fee"`
	BankName          string    `json:"bankName,omitempty"`
	BankAccountNumber string    `json:"bankAccountNumber,omitempty"`
	BankAccountName   string    `json:"bankAccountName,omitempty"`
	ExpiredDate       time.Time `json:"expiredDate"`
	IsWaiting         bool      `json:"isWaiting"`
	WaitingNumber     *int      `json:"waitingNumber,omitempty"`
}

// ApplicationResponse is the viewer's own registration state.
type ApplicationResponse struct {
	ApplicantInfoID int64      `json:"applicantInfoId"`
	CompetitionID   int64      `json:"competitionId"`
	Status          string     `json:"status"`
	IsWaiting       bool       `json:"isWaiting"`
	WaitingNumber   *int       `json:"waitingNumber,omitempty"`
	ExpiredDate     *time.Time `json:"expiredDate,omitempty"`
	PartnerName     string     `json:"partnerName,omitempty"`
}

// PartnerCandidate is one hit of the partner search.
type PartnerCandidate struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Gender   string `json:"gender"`
	Birth    int    `json:"birth,omitempty"`
	ClubName string `json:"clubName,omitempty"`
}
