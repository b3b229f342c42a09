// internal/api/club/service_test.go
package club

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewService(db, logger.NewNoOpLogger()), mock, func() { db.Close() }
}

// ==========================
// Club creation
// ==========================

func TestCreate_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO club`).
		WithArgs("서초 테니스", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO coach`).
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE users SET club_id`).
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := svc.Create(context.Background(), 10, CreateClubRequest{Name: "서초 테니스"})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SecondClubRejected(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Create(context.Background(), 10, CreateClubRequest{Name: "서초 테니스"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeClubAlreadyOwned, stdErr.Code)
	assert.Equal(t, "이미 관리하는 클럽이 존재합니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Admissions
// ==========================

func TestDecide_AcceptJoinsClub(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM club_applicant`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "user_id", "status"}).
			AddRow(7, 3, 20, models.ClubApplicantPending))
	mock.ExpectQuery(`FROM coach`).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE club_applicant`).
		WithArgs(models.ClubApplicantAccepted, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET club_id`).
		WithArgs(int64(3), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Decide(context.Background(), 7, 10, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_RejectDoesNotJoinClub(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM club_applicant`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "user_id", "status"}).
			AddRow(7, 3, 20, models.ClubApplicantPending))
	mock.ExpectQuery(`FROM coach`).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE club_applicant`).
		WithArgs(models.ClubApplicantRejected, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Decide(context.Background(), 7, 10, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_NonCoachForbidden(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM club_applicant`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "user_id", "status"}).
			AddRow(7, 3, 20, models.ClubApplicantPending))
	mock.ExpectQuery(`FROM coach`).
		WithArgs(int64(3), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := svc.Decide(context.Background(), 7, 99, true)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeForbidden, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_AlreadyProcessed(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM club_applicant`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "user_id", "status"}).
			AddRow(7, 3, 20, models.ClubApplicantAccepted))
	mock.ExpectQuery(`FROM coach`).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := svc.Decide(context.Background(), 7, 10, true)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
