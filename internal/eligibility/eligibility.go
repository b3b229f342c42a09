// internal/eligibility/eligibility.go
package eligibility

import "matchpoint/internal/models"

// Result classifies what a viewer can do with a competition right now.
type Result int

const (
	NotEligible Result = iota
	WaitlistEligible
	OpenEligible
	InProgress
	Ended
)

// Display labels shown on competition listings.
const (
	labelNotEligible = "신청 불가능"
	labelWaitlist    = "대기 가능"
	labelOpen        = "신청 가능"
	labelInProgress  = "대회 진행중"
	labelEnded       = "대회 종료"
)

func (r Result) String() string {
	switch r {
	case WaitlistEligible:
		return labelWaitlist
	case OpenEligible:
		return labelOpen
	case InProgress:
		return labelInProgress
	case Ended:
		return labelEnded
	default:
		return labelNotEligible
	}
}

// CanApply reports whether the result permits submitting an application.
// Waitlist entries are still applications, only flagged as waiting.
func (r Result) CanApply() bool {
	return r == OpenEligible || r == WaitlistEligible
}

// Evaluate computes the application status of comp for viewer given the
// current number of non-canceled applications. viewer may be nil for
// anonymous listings, which always yields NotEligible for open
// competitions.
func Evaluate(comp models.Competition, viewer *models.User, applicantCount int) Result {
	switch comp.Status {
	case models.CompetitionDuring:
		return InProgress
	case models.CompetitionAfter:
		return Ended
	}

	if viewer == nil || viewer.IsDeleted {
		return NotEligible
	}
	if !genderAllowed(comp.MatchTypeGender, viewer.Gender) {
		return NotEligible
	}
	if !tierAllowed(comp.TierID, viewer.TierID) {
		return NotEligible
	}

	if applicantCount >= comp.MaxParticipants {
		return WaitlistEligible
	}
	return OpenEligible
}

// genderAllowed: mixed competitions admit everyone, otherwise the
// viewer's gender must match the competition's.
func genderAllowed(compGender, viewerGender string) bool {
	if compGender == models.GenderMix {
		return true
	}
	return compGender == viewerGender
}

func tierAllowed(compTier int64, viewerTier *int64) bool {
	if viewerTier == nil {
		return false
	}
	return *viewerTier == compTier
}
