// internal/api/classification/handler.go
package classification

import (
	"net/http"
	"strconv"

	apperrors "matchpoint/internal/common/errors"
)

// Handler exposes the classification catalogs.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MatchTypes handles GET /matchtypes/.
func (h *Handler) MatchTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.MatchTypes(r.Context())
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, types)
}

// Tiers handles GET /tiers/.
func (h *Handler) Tiers(w http.ResponseWriter, r *http.Request) {
	var matchTypeID int64
	if raw := r.URL.Query().Get("matchtype"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apperrors.WriteError(w, apperrors.NewValidationError("유효하지 않은 경기 종류입니다.", "matchtype: "+raw))
			return
		}
		matchTypeID = id
	}

	tiers, err := h.service.Tiers(r.Context(), matchTypeID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, tiers)
}
