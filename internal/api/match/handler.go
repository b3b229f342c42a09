// internal/api/match/handler.go
package match

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"matchpoint/internal/api/middleware"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

// Handler exposes bracket and scoring endpoints. Writes are staff-only.
type Handler struct {
	service *Service
	log     logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// List handles GET /competitions/{id}/matches/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	competitionID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	views, err := h.service.List(r.Context(), competitionID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, views)
}

// Create handles POST /competitions/{id}/matches/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	competitionID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	id, err := h.service.CreateMatch(r.Context(), competitionID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// RecordSet handles POST /matches/{id}/sets/.
func (h *Handler) RecordSet(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	matchID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req RecordSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	id, err := h.service.RecordSet(r.Context(), matchID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// Complete handles POST /matches/{id}/complete/.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	matchID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	if err := h.service.Complete(r.Context(), matchID, req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireStaff(r *http.Request) error {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return apperrors.NewUnauthorizedError()
	}
	if claims.Role != models.RoleAdmin && claims.Role != models.RoleCoach {
		return apperrors.NewForbiddenError("staff role required")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("유효하지 않은 ID입니다.", name+": "+raw)
	}
	return id, nil
}
