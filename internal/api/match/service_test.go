// internal/api/match/service_test.go
package match

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

func matchRows(id, competitionID int64, aSide, bSide int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "competition_id", "match_round", "match_number", "court_number",
		"a_side_id", "b_side_id", "winner_id", "status",
	}).AddRow(id, competitionID, 1, 1, nil, aSide, bSide, nil, status)
}

func TestCreateMatch_RequiresRunningCompetition(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM competition`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.CompetitionBefore))

	_, err := svc.CreateMatch(context.Background(), 1, CreateMatchRequest{Round: 1, Number: 1})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeCompetitionNotRunning, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMatch_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM competition`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.CompetitionDuring))
	mock.ExpectQuery(`INSERT INTO match`).
		WithArgs(int64(1), 1, 1, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))

	id, err := svc.CreateMatch(context.Background(), 1, CreateMatchRequest{Round: 1, Number: 1})

	assert.NoError(t, err)
	assert.Equal(t, int64(50), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSet_RejectedWhenCompetitionEnded(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM match m`).
		WithArgs(int64(50)).
		WillReturnRows(matchRows(50, 1, 100, 101, models.CompetitionAfter))

	_, err := svc.RecordSet(context.Background(), 50, RecordSetRequest{SetNumber: 1, AGames: 6, BGames: 4})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeCompetitionNotRunning, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSet_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM match m`).
		WithArgs(int64(50)).
		WillReturnRows(matchRows(50, 1, 100, 101, models.CompetitionDuring))
	mock.ExpectQuery(`INSERT INTO sets`).
		WithArgs(int64(50), 1, 6, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	id, err := svc.RecordSet(context.Background(), 50, RecordSetRequest{SetNumber: 1, AGames: 6, BGames: 4})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete_RejectsOutsiderWinner(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM match m`).
		WithArgs(int64(50)).
		WillReturnRows(matchRows(50, 1, 100, 101, models.CompetitionDuring))

	err := svc.Complete(context.Background(), 50, CompleteRequest{WinnerID: 999})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete_Success(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM match m`).
		WithArgs(int64(50)).
		WillReturnRows(matchRows(50, 1, 100, 101, models.CompetitionDuring))
	mock.ExpectExec(`UPDATE match SET winner_id`).
		WithArgs(int64(100), int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Complete(context.Background(), 50, CompleteRequest{WinnerID: 100})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchNotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM match m`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.RecordSet(context.Background(), 99, RecordSetRequest{SetNumber: 1})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeMatchNotFound, stdErr.Code)
	assert.Equal(t, "경기를 찾을 수 없습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
