// internal/common/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"matchpoint/internal/common/config"
	apperrors "matchpoint/internal/common/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents JWT claims issued by the identity module.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager from auth config.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWT.Secret),
		issuer:     cfg.JWT.Issuer,
		accessTTL:  cfg.AccessTTL(),
		refreshTTL: cfg.RefreshTTL(),
	}
}

// IssuePair issues an access and a refresh token for the user.
func (m *TokenManager) IssuePair(userID int64, role string) (*TokenPair, error) {
	access, err := m.issue(userID, role, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(userID, role, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) issue(userID int64, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token of the expected type.
func (m *TokenManager) Verify(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewInvalidTokenError(err.Error())
	}
	if !token.Valid {
		return nil, apperrors.NewInvalidTokenError("token invalid")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.NewInvalidTokenError("invalid claims type")
	}
	if claims.TokenType != expectedType {
		return nil, apperrors.NewInvalidTokenError(fmt.Sprintf("expected %s token, got %s", expectedType, claims.TokenType))
	}

	return claims, nil
}

// RefreshTTL exposes the refresh lifetime so the blacklist can expire entries
// together with the tokens they block.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}
