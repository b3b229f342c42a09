// internal/api/middleware/recovery.go
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

// Recovery converts handler panics into a 500 response instead of
// killing the connection.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					traceID := TraceIDFrom(r.Context())
					log.Error("panic recovered", map[string]interface{}{
						"trace_id": traceID,
						"method":   r.Method,
						"path":     r.URL.Path,
						"panic":    fmt.Sprintf("%v", rec),
						"stack":    string(debug.Stack()),
					})
					apperrors.WriteError(w, apperrors.NewInternalError(fmt.Errorf("panic: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
