// internal/api/club/handler.go
package club

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"matchpoint/internal/api/middleware"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

// Handler exposes the club endpoints. All mutating routes require auth.
type Handler struct {
	service *Service
	log     logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Create handles POST /clubs/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	var req CreateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// List handles GET /clubs/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, views)
}

// Detail handles GET /clubs/{id}/.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, view)
}

// CreateTeam handles POST /clubs/{id}/teams/.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	id, err := h.service.CreateTeam(r.Context(), clubID, userID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// Apply handles POST /clubs/{id}/apply/.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	id, err := h.service.Apply(r.Context(), clubID, userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// Admissions handles GET /clubs/{id}/applicants/.
func (h *Handler) Admissions(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	views, err := h.service.Admissions(r.Context(), clubID, userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, views)
}

// Accept handles POST /clubs/applications/{id}/accept/.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject handles POST /clubs/applications/{id}/reject/.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, accept bool) {
	admissionID, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	if err := h.service.Decide(r.Context(), admissionID, userID, accept); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("유효하지 않은 ID입니다.", name+": "+raw)
	}
	return id, nil
}
