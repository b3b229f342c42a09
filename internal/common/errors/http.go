// internal/common/errors/http.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// errorEnvelope is the public error body: {"error": "<Korean message>"}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeCompetitionNotFound, ErrCodeUserNotFound, ErrCodePartnerNotFound,
		ErrCodeApplicationNotFound, ErrCodeClubNotFound, ErrCodeClubApplicationNotFound,
		ErrCodePaymentNotFound, ErrCodeMatchNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodePaymentAlreadyExists, ErrCodeRefundAlreadyExists:
		return http.StatusConflict
	case ErrCodeDatabaseFailed, ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// WriteError normalizes err to a StandardError and writes the public envelope.
func WriteError(w http.ResponseWriter, err error) {
	stdErr := Normalize(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: stdErr.Message})
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "서버 오류가 발생했습니다.",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// WriteJSON writes a success payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
