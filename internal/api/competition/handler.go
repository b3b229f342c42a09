// internal/api/competition/handler.go
package competition

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"matchpoint/internal/api/middleware"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

// Handler exposes the competition endpoints.
type Handler struct {
	service *Service
	log     logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// List handles GET /competitions/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Gender: r.URL.Query().Get("gender"),
		Type:   r.URL.Query().Get("match_type"),
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("tier"); raw != "" {
		tierID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apperrors.WriteError(w, apperrors.NewValidationError("유효하지 않은 부 필터입니다.", "tier: "+raw))
			return
		}
		filters.TierID = tierID
	}

	viewerID, _ := middleware.UserIDFrom(r.Context())
	summaries, err := h.service.List(r.Context(), filters, viewerID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, summaries)
}

// Detail handles GET /competitions/{id}/details/.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	viewerID, _ := middleware.UserIDFrom(r.Context())
	detail, err := h.service.Get(r.Context(), id, viewerID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, detail)
}

// Apply handles POST /competitions/{id}/apply/. Authentication is checked
// inside the service so the competition-code check runs first.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	userID, _ := middleware.UserIDFrom(r.Context())
	resp, err := h.service.Apply(r.Context(), id, userID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, resp)
}

// Application handles GET /competitions/{id}/application/.
func (h *Handler) Application(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	resp, err := h.service.Application(r.Context(), id, userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, resp)
}

// PartnerSearch handles GET /competitions/{id}/partnersearch/.
func (h *Handler) PartnerSearch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.NewUnauthorizedError())
		return
	}

	candidates, err := h.service.PartnerSearch(r.Context(), id, userID, r.URL.Query().Get("q"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, candidates)
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("유효하지 않은 대회 ID입니다.", "id: "+raw)
	}
	return id, nil
}
