// internal/api/payments/handler.go
package payments

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

// Handler exposes the payment endpoints. All of them are staff-only.
type Handler struct {
	service *Service
	log     logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Create handles POST /payments/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	view, err := h.service.Create(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, view)
}

// Confirm handles POST /payments/applications/{id}/confirm/.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	if err := h.service.Confirm(r.Context(), id); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refund handles POST /payments/{id}/refund/.
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	if err := requireStaff(r); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.NewValidationError("요청 본문이 올바르지 않습니다.", err.Error()))
		return
	}

	view, err := h.service.Refund(r.Context(), id, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, view)
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

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("유효하지 않은 ID입니다.", "id: "+raw)
	}
	return id, nil
}
