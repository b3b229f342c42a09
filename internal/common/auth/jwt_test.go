// internal/common/auth/jwt_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"matchpoint/internal/common/config"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func testAuthConfig() config.AuthConfig {
	var cfg config.AuthConfig
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "matchpoint-test"
	cfg.JWT.AccessLifetime = 30
	cfg.JWT.RefreshLifetime = 24
	return cfg
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	pair, err := tm.IssuePair(42, "user")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := tm.Verify(pair.AccessToken, TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Verify_WrongType(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	pair, err := tm.IssuePair(7, "")
	assert.NoError(t, err)

	// An access token must not pass as a refresh token
	_, err = tm.Verify(pair.AccessToken, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	other := testAuthConfig()
	other.JWT.Secret = "other-secret"
	tmOther := NewTokenManager(other)

	pair, err := tm.IssuePair(7, "")
	assert.NoError(t, err)

	_, err = tmOther.Verify(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	_, err := tm.Verify("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}

func TestBlacklist_RevokeAndCheck(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bl := NewBlacklist(db)

	mock.ExpectSet("auth:blacklist:jti-1", "1", time.Hour).SetVal("OK")
	err := bl.Revoke(context.Background(), "jti-1", time.Hour)
	assert.NoError(t, err)

	mock.ExpectExists("auth:blacklist:jti-1").SetVal(1)
	revoked, err := bl.IsRevoked(context.Background(), "jti-1")
	assert.NoError(t, err)
	assert.True(t, revoked)

	mock.ExpectExists("auth:blacklist:jti-2").SetVal(0)
	revoked, err = bl.IsRevoked(context.Background(), "jti-2")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklist_Revoke_NonPositiveTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bl := NewBlacklist(db)

	// Expired tokens still get a short hold so concurrent refreshes miss
	mock.ExpectSet("auth:blacklist:jti-3", "1", time.Minute).SetVal("OK")
	err := bl.Revoke(context.Background(), "jti-3", -time.Second)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
