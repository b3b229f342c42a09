// internal/api/competition/service_test.go
package competition

import (
	"context"
	"testing"
	"time"

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
	svc := NewService(db, nil, nil, "", 30*time.Second, logger.NewNoOpLogger())
	return svc, mock, func() { db.Close() }
}

func lockRows(name, status, code string, max, fee int, depositDays int, tierID int64, gender, matchType string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "status", "code", "max_participants", "fee",
		"bank_name", "bank_account_number", "bank_account_name",
		"deposit_days", "tier_id", "gender", "type",
	}).AddRow(1, name, status, code, max, fee, "테니스은행", "110-234-567890", "홍길동", depositDays, tierID, gender, matchType)
}

func userRows(id int64, username, phone, gender string, tierID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "phone", "gender", "tier_id"}).
		AddRow(id, username, phone, gender, tierID)
}

func expectDuplicateCheck(mock sqlmock.Sqlmock, competitionID, userID int64, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(competitionID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

// ==========================
// Apply: singles happy path
// ==========================

func TestApply_SinglesSuccess(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("봄 대회", models.CompetitionBefore, "OPEN2026", 16, 30000, 3, 5, models.GenderMale, models.MatchTypeSingle))
	expectDuplicateCheck(mock, 1, 10, false)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, 5))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO applicant_info`).
		WithArgs(int64(1), false, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(`INSERT INTO applicant `).
		WithArgs(int64(10), int64(100)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "OPEN2026"})

	assert.NoError(t, err)
	assert.Equal(t, "김선수", resp.ApplicantName)
	assert.Equal(t, "010-1234-5678", resp.ApplicantPhone)
	assert.Equal(t, "봄 대회", resp.CompetitionName)
	assert.Equal(t, 30000, resp.Fee)
	assert.False(t, resp.IsWaiting)
	assert.Nil(t, resp.WaitingNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Apply: waitlist placement
// ==========================

func TestApply_ZeroCapacityAlwaysWaits(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("테스트 대회", models.CompetitionBefore, "CODE", 0, 10000, 3, 5, models.GenderMale, models.MatchTypeSingle))
	expectDuplicateCheck(mock, 1, 10, false)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, 5))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO applicant_info`).
		WithArgs(int64(1), true, 1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(`INSERT INTO applicant `).
		WithArgs(int64(10), int64(100)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE"})

	assert.NoError(t, err)
	assert.True(t, resp.IsWaiting)
	if assert.NotNil(t, resp.WaitingNumber) {
		assert.Equal(t, 1, *resp.WaitingNumber)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_FullCompetitionGoesToWaitlist(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("테스트 대회", models.CompetitionBefore, "CODE", 16, 10000, 3, 5, models.GenderMale, models.MatchTypeSingle))
	expectDuplicateCheck(mock, 1, 10, false)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, 5))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(18))
	mock.ExpectQuery(`INSERT INTO applicant_info`).
		WithArgs(int64(1), true, 3, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(`INSERT INTO applicant `).
		WithArgs(int64(10), int64(100)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE"})

	assert.NoError(t, err)
	assert.True(t, resp.IsWaiting)
	if assert.NotNil(t, resp.WaitingNumber) {
		assert.Equal(t, 3, *resp.WaitingNumber)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Apply: precondition order
// ==========================

func TestApply_CompetitionNotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 99, 10, ApplyRequest{Code: "CODE"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeCompetitionNotFound, stdErr.Code)
	assert.Equal(t, "대회를 찾을 수 없습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_WrongCodeRejectedBeforeAnythingElse(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("테스트 대회", models.CompetitionBefore, "REAL", 16, 10000, 3, 5, models.GenderMale, models.MatchTypeDuo))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "WRONG"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidCode, stdErr.Code)
	assert.Equal(t, "제출된 코드가 유효하지 않습니다.", stdErr.Message)
	// no duplicate check, no user load, no insert
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_AnonymousRejectedAfterCodeCheck(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("테스트 대회", models.CompetitionBefore, "CODE", 16, 10000, 3, 5, models.GenderMale, models.MatchTypeSingle))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 1, 0, ApplyRequest{Code: "CODE"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, stdErr.Code)
	assert.Equal(t, "로그인되어 있지 않습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_DuplicateRegistration(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("테스트 대회", models.CompetitionBefore, "CODE", 16, 10000, 3, 5, models.GenderMale, models.MatchTypeSingle))
	expectDuplicateCheck(mock, 1, 10, true)
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeDuplicateRegistration, stdErr.Code)
	assert.Equal(t, "해당 대회에 이미 신청하셨습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Apply: doubles branch
// ==========================

func duoApplyPrologue(mock sqlmock.Sqlmock, gender string, tierID int64) {
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("복식 대회", models.CompetitionBefore, "CODE", 16, 10000, 3, tierID, gender, models.MatchTypeDuo))
	expectDuplicateCheck(mock, 1, 10, false)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, tierID))
}

func TestApply_DoublesSuccessInsertsBothMembers(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(20)).
		WillReturnRows(userRows(20, "박파트너", "010-8765-4321", models.GenderMale, 5))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO applicant_info`).
		WithArgs(int64(1), false, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(200))
	mock.ExpectExec(`INSERT INTO applicant `).
		WithArgs(int64(10), int64(200)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO applicant `).
		WithArgs(int64(20), int64(200)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	partnerID := int64(20)
	resp, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	assert.NoError(t, err)
	assert.False(t, resp.IsWaiting)
	assert.Equal(t, "박파트너", resp.PartnerName)
	assert.Equal(t, "010-8765-4321", resp.PartnerPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_DoublesWithoutPartnerIsMalformed(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeMalformedApplication, stdErr.Code)
	assert.Equal(t, "대회신청 정상적으로 되지 않았습니다. 신청정보를 확인해주세요.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_DoublesPartnerNotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	partnerID := int64(20)
	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodePartnerNotFound, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_MixedDoublesSameGenderRejectedWithoutPersisting(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMix, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(20)).
		WillReturnRows(userRows(20, "박파트너", "010-8765-4321", models.GenderMale, 5))
	mock.ExpectRollback()

	partnerID := int64(20)
	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeMixedGenderRequired, stdErr.Code)
	assert.Equal(t, "혼성 경기는 서로 다른 성별의 파트너가 필요합니다.", stdErr.Message)
	// rollback, no applicant_info or applicant rows
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_DoublesPartnerGenderMismatch(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(20)).
		WillReturnRows(userRows(20, "박파트너", "010-8765-4321", models.GenderFemale, 5))
	mock.ExpectRollback()

	partnerID := int64(20)
	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodePartnerGenderMismatch, stdErr.Code)
	assert.Equal(t, "파트너 성별이 해당 대회에는 신청 불가능합니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_SelfPartnerRejected(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, 5))
	mock.ExpectRollback()

	partnerID := int64(10)
	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeSelfPartner, stdErr.Code)
	assert.Equal(t, "신청자 본인을 파트너로 선택할 수 없습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_DoublesPartnerTierMismatch(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	duoApplyPrologue(mock, models.GenderMale, 5)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(20)).
		WillReturnRows(userRows(20, "박파트너", "010-8765-4321", models.GenderMale, 7))
	mock.ExpectRollback()

	partnerID := int64(20)
	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE", PartnerID: &partnerID})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodePartnerTierMismatch, stdErr.Code)
	assert.Equal(t, "파트너 부가 달라 신청 불가능합니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_UnrecognizedMatchTypeIsMalformed(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF c`).
		WithArgs(int64(1)).
		WillReturnRows(lockRows("단체전", models.CompetitionBefore, "CODE", 16, 10000, 3, 5, models.GenderMale, models.MatchTypeTeam))
	expectDuplicateCheck(mock, 1, 10, false)
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(userRows(10, "김선수", "010-1234-5678", models.GenderMale, 5))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), 1, 10, ApplyRequest{Code: "CODE"})

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeMalformedApplication, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Application lookup
// ==========================

func TestApplication_NotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM applicant a`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Application(context.Background(), 1, 10)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeApplicationNotFound, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplication_WithPartner(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	expired := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery(`FROM applicant a`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "competition_id", "status", "is_waiting", "waiting_number", "expired_date"}).
			AddRow(100, 1, models.StatusUnpaid, false, nil, expired))
	mock.ExpectQuery(`FROM applicant a`).
		WithArgs(int64(100), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("박파트너"))

	resp, err := svc.Application(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), resp.ApplicantInfoID)
	assert.Equal(t, models.StatusUnpaid, resp.Status)
	assert.Equal(t, "박파트너", resp.PartnerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Listing
// ==========================

func TestList_AnonymousViewerSeesNotEligible(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`FROM competition c`).
		WithArgs("", "", int64(0), "").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "start_date", "end_date", "status", "location", "fee",
			"gender", "type", "name", "tier_id", "max_participants",
		}).AddRow(1, "봄 대회", now, now.Add(48*time.Hour), models.CompetitionBefore, "서울", 30000,
			models.GenderMale, models.MatchTypeSingle, "1부", 5, 16))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "waiting"}).AddRow(5, 0))

	summaries, err := svc.List(context.Background(), ListFilters{}, 0)

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 5, summaries[0].ApplicantCount)
	assert.Equal(t, "신청 불가능", summaries[0].ApplicationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EligibleViewerSeesOpen(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gender", "tier_id", "is_deleted"}).
			AddRow(10, models.GenderMale, 5, false))
	mock.ExpectQuery(`FROM competition c`).
		WithArgs("", "", int64(0), "").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "start_date", "end_date", "status", "location", "fee",
			"gender", "type", "name", "tier_id", "max_participants",
		}).AddRow(1, "봄 대회", now, now.Add(48*time.Hour), models.CompetitionBefore, "서울", 30000,
			models.GenderMale, models.MatchTypeSingle, "1부", 5, 16))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "waiting"}).AddRow(5, 0))

	summaries, err := svc.List(context.Background(), ListFilters{}, 10)

	assert.NoError(t, err)
	assert.Equal(t, "신청 가능", summaries[0].ApplicationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_EligibleViewerSeesOpen(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`FROM users`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gender", "tier_id", "is_deleted"}).
			AddRow(10, models.GenderMale, 5, false))
	mock.ExpectQuery(`FROM competition c`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "start_date", "end_date", "status",
			"location", "address", "phone", "fee", "total_rounds", "total_sets",
			"rule", "bank_name", "bank_account_number", "bank_account_name",
			"deposit_refund_policy", "site_link",
			"gender", "type", "name", "tier_id", "max_participants",
		}).AddRow(1, "봄 대회", "설명", now, now.Add(48*time.Hour), models.CompetitionBefore,
			"서울", "서울시 강남구", "02-123-4567", 30000, 4, 3,
			"6게임", "국민은행", "123-456", "홍길동",
			"환불 규정", "",
			models.GenderMale, models.MatchTypeSingle, "1부", 5, 16))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "waiting"}).AddRow(5, 0))

	detail, err := svc.Get(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, "신청 가능", detail.ApplicationStatus)
	assert.Equal(t, "국민은행", detail.BankName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM competition c`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(context.Background(), 42, 0)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeCompetitionNotFound, stdErr.Code)
	assert.Equal(t, "대회를 찾을 수 없습니다.", stdErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
