// internal/api/users/service_test.go
package users

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"matchpoint/internal/common/auth"
	"matchpoint/internal/common/config"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

func testTokenManager() *auth.TokenManager {
	var cfg config.AuthConfig
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.Issuer = "matchpoint-test"
	cfg.JWT.AccessLifetime = 30
	cfg.JWT.RefreshLifetime = 168
	return auth.NewTokenManager(cfg)
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	svc := NewService(db, testTokenManager(), nil, logger.NewNoOpLogger())
	return svc, mock, func() { db.Close() }
}

// ==========================
// Signup
// ==========================

func TestSignup_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("010-1234-5678").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("김선수", "010-1234-5678", sqlmock.AnyArg(), models.GenderMale, 1995).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := svc.Signup(context.Background(), SignupRequest{
		Username: "김선수",
		Phone:    "010-1234-5678",
		Password: "secret-password",
		Gender:   models.GenderMale,
		Birth:    1995,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_PhoneAlreadyUsed(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("010-1234-5678").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "김선수",
		Phone:    "010-1234-5678",
		Password: "secret-password",
		Gender:   models.GenderMale,
		Birth:    1995,
	})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodePhoneAlreadyUsed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "김선수",
		Phone:    "010-1234-5678",
		Password: "short",
		Gender:   models.GenderMale,
	})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_RejectsBirthOutOfRange(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	for _, birth := range []int{0, 1899, 2051} {
		_, err := svc.Signup(context.Background(), SignupRequest{
			Username: "김선수",
			Phone:    "010-1234-5678",
			Password: "secret-password",
			Gender:   models.GenderMale,
			Birth:    birth,
		})

		stdErr := apperrors.Normalize(err)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
		assert.Equal(t, "출생연도는 1900년부터 2050년 사이여야 합니다.", stdErr.Message)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Signin
// ==========================

func TestSignin_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users`).
		WithArgs("010-1234-5678").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "role"}).
			AddRow(42, string(hash), models.RoleUser))

	pair, err := svc.Signin(context.Background(), SigninRequest{
		Phone:    "010-1234-5678",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignin_WrongPassword(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users`).
		WithArgs("010-1234-5678").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "role"}).
			AddRow(42, string(hash), models.RoleUser))

	_, err := svc.Signin(context.Background(), SigninRequest{
		Phone:    "010-1234-5678",
		Password: "wrong-password",
	})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignin_UnknownPhone(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM users`).
		WithArgs("010-0000-0000").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Signin(context.Background(), SigninRequest{
		Phone:    "010-0000-0000",
		Password: "whatever",
	})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Token lifecycle
// ==========================

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	pair, err := testTokenManager().IssuePair(42, models.RoleUser)
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, stdErr.Code)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	pair, err := testTokenManager().IssuePair(42, models.RoleUser)
	assert.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestLogout_RejectsGarbageToken(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	err := svc.Logout(context.Background(), "not-a-token")

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, stdErr.Code)
}

// ==========================
// Profile
// ==========================

func TestProfile_NotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM users u`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Profile(context.Background(), 42)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMainRanking_RejectsForeignRanking(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := svc.SetMainRanking(context.Background(), 42, 7)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeForbidden, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMainRanking_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE ranking SET is_main = false`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE ranking SET is_main = true`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET main_ranking_id`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.SetMainRanking(context.Background(), 42, 7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
