// internal/api/users/models.go
package users

import (
	"strings"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/models"
)

// SignupRequest creates a new account.
type SignupRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Birth    int    `json:"birth"`
}

// Validate checks field shape before any storage access.
func (r *SignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)

	if r.Username == "" {
		return apperrors.NewValidationError("이름을 입력해주세요.", "username is empty")
	}
	if r.Phone == "" {
		return apperrors.NewValidationError("휴대폰 번호를 입력해주세요.", "phone is empty")
	}
	if len(r.Password) < 8 {
		return apperrors.NewValidationError("비밀번호는 8자 이상이어야 합니다.", "password too short")
	}
	if r.Gender != models.GenderMale && r.Gender != models.GenderFemale {
		return apperrors.NewValidationError("성별이 올바르지 않습니다.", "gender: "+r.Gender)
	}
	if r.Birth < 1900 || r.Birth > 2050 {
		return apperrors.NewValidationError("출생연도는 1900년부터 2050년 사이여야 합니다.", "birth out of range")
	}
	return nil
}

// SigninRequest authenticates by phone and password.
type SigninRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// TokenRequest carries a refresh token for refresh and logout.
type TokenRequest struct {
	Refresh string `json:"refresh"`
}

// CheckPhoneRequest asks whether a phone number is free.
type CheckPhoneRequest struct {
	Phone string `json:"phone"`
}

// CheckPhoneResponse reports availability.
type CheckPhoneResponse struct {
	Available bool `json:"available"`
}

// Profile is the authenticated user's own view.
type Profile struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Phone         string `json:"phone"`
	Gender        string `json:"gender"`
	Birth         int    `json:"birth"`
	Role          string `json:"role"`
	TierName      string `json:"tierName,omitempty"`
	ClubName      string `json:"clubName,omitempty"`
	MainRankingID *int64 `json:"mainRankingId,omitempty"`
}

// PublicProfile is what other users can see.
type PublicProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Gender   string `json:"gender"`
	Birth    int    `json:"birth,omitempty"`
	TierName string `json:"tierName,omitempty"`
	ClubName string `json:"clubName,omitempty"`
}

// RankingView is one of the user's standings.
type RankingView struct {
	ID          int64  `json:"id"`
	MatchTypeID int64  `json:"matchTypeId"`
	Gender      string `json:"gender"`
	Type        string `json:"type"`
	TierName    string `json:"tierName,omitempty"`
	Rank        int    `json:"rank"`
	Points      int    `json:"points"`
	IsMain      bool   `json:"isMain"`
}

// SetMainRankingRequest selects which ranking appears on the profile.
type SetMainRankingRequest struct {
	RankingID int64 `json:"rankingId"`
}
