// internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"matchpoint/internal/common/auth"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

// Authenticator verifies bearer tokens and exposes middleware variants.
type Authenticator struct {
	tokens    *auth.TokenManager
	blacklist *auth.Blacklist
	log       logger.Logger
}

func NewAuthenticator(tokens *auth.TokenManager, blacklist *auth.Blacklist, log logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, blacklist: blacklist, log: log}
}

// Require rejects requests without a valid access token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.verify(r)
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// Optional attaches claims when a valid token is present and proceeds
// anonymously otherwise. Listing endpoints use this to personalize
// eligibility without forcing a login.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := a.verify(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (a *Authenticator) verify(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.NewUnauthorizedError()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewInvalidTokenError("malformed authorization header")
	}

	claims, err := a.tokens.Verify(parts[1], auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	if a.blacklist != nil {
		revoked, err := a.blacklist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			a.log.Warn("blacklist lookup failed", map[string]interface{}{
				"jti":   claims.ID,
				"error": err.Error(),
			})
		} else if revoked {
			return nil, apperrors.NewInvalidTokenError("token revoked")
		}
	}

	return claims, nil
}
