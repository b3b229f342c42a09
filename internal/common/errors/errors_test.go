// internal/common/errors/errors_test.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_Mapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeCompetitionNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeUserNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrCodeInvalidToken))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeDuplicateRegistration))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCodePaymentAlreadyExists))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidCode))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeSelfPartner))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeDatabaseFailed))
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewInvalidCodeError())

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "제출된 코드가 유효하지 않습니다.", body["error"])
}

func TestWriteError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "서버 오류가 발생했습니다.", body["error"])
}

func TestNormalize_PassesThroughStandardError(t *testing.T) {
	orig := NewSelfPartnerError()
	assert.Same(t, orig, Normalize(orig))

	norm := Normalize(errors.New("plain"))
	assert.Equal(t, ErrCodeInternal, norm.Code)
	assert.Equal(t, "plain", norm.Details)
}

func TestNewDatabaseError_Retryable(t *testing.T) {
	e := NewDatabaseError("insert applicant", errors.New("connection reset"))
	assert.True(t, e.Retryable)
	assert.Contains(t, e.Details, "insert applicant")
	assert.Contains(t, e.Error(), "DATABASE_FAILED")
}
