// internal/api/club/models.go
package club

import (
	"strings"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/models"
)

// CreateClubRequest registers a new club managed by the caller.
type CreateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func (r *CreateClubRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperrors.NewValidationError("클럽 이름을 입력해주세요.", "name is empty")
	}
	return nil
}

// CreateTeamRequest adds a team under a club.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r *CreateTeamRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperrors.NewValidationError("팀 이름을 입력해주세요.", "name is empty")
	}
	return nil
}

// ClubView is the listing/detail projection of a club.
type ClubView struct {
	models.Club
	MemberCount int           `json:"memberCount"`
	Teams       []models.Team `json:"teams,omitempty"`
}

// AdmissionView is one admission request as a coach sees it.
type AdmissionView struct {
	ID       int64  `json:"id"`
	ClubID   int64  `json:"clubId"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Status   string `json:"status"`
}
