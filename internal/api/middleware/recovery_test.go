// internal/api/middleware/recovery_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"matchpoint/internal/common/logger"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	handler := Recovery(logger.NewNoOpLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/competitions/", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "서버 오류가 발생했습니다."}`, rec.Body.String())
}

func TestRecovery_PassesThrough(t *testing.T) {
	handler := Recovery(logger.NewNoOpLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
