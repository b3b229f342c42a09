// internal/api/users/handler.go
package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"matchpoint/internal/api/middleware"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

// Handler exposes the identity endpoints.
type Handler struct {
	service *Service
	log     logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Signup handles POST /auth/signup/.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	id, err := h.service.Signup(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// CheckPhone handles POST /auth/signup/check-phone/.
func (h *Handler) CheckPhone(w http.ResponseWriter, r *http.Request) {
	var req CheckPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	available, err := h.service.CheckPhone(r.Context(), req.Phone)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, CheckPhoneResponse{Available: available})
}

// Signin handles POST /auth/signin/.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	pair, err := h.service.Signin(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, pair)
}

// Refresh handles POST /auth/token/refresh/.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, pair)
}

// Logout handles POST /auth/logout/.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyProfile handles GET /user/myprofile/.
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, profile)
}

// MyRankings handles GET /user/myprofile/rankings/.
func (h *Handler) MyRankings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	rankings, err := h.service.Rankings(r.Context(), userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, rankings)
}

// SetMainRanking handles PATCH /user/myprofile/mainranking/.
func (h *Handler) SetMainRanking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	var req SetMainRankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	if err := h.service.SetMainRanking(r.Context(), userID, req.RankingID); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Detail handles GET /user/{id}/.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apperrors.WriteError(w, apperrors.NewValidationError("유효하지 않은 사용자 ID입니다.", "id: "+raw))
		return
	}

	profile, err := h.service.PublicProfile(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, profile)
}
