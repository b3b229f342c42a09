// internal/api/payments/service.go
package payments

import (
	"context"
	"database/sql"
	"time"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
	"matchpoint/internal/notification"
)

const slotQuery = `
	SELECT ai.id, ai.competition_id, ai.status, c.name, c.deposit_days
	FROM applicant_info ai
	JOIN competition c ON c.id = ai.competition_id
	WHERE ai.id = $1 AND ai.is_deleted = false`

const paymentExistsQuery = `
	SELECT EXISTS (SELECT 1 FROM payment WHERE applicant_info_id = $1 AND is_deleted = false)`

const insertPaymentQuery = `
	INSERT INTO payment (applicant_info_id, amount, payment_date, created_at, updated_at)
	VALUES ($1, $2, now(), now(), now())
	RETURNING id, payment_date`

const updateSlotStatusQuery = `
	UPDATE applicant_info SET status = $1, updated_at = now() WHERE id = $2`

const paymentQuery = `
	SELECT p.id, p.applicant_info_id, p.amount, p.payment_date, ai.competition_id, c.name, c.deposit_days
	FROM payment p
	JOIN applicant_info ai ON ai.id = p.applicant_info_id
	JOIN competition c ON c.id = ai.competition_id
	WHERE p.id = $1 AND p.is_deleted = false`

const refundExistsQuery = `
	SELECT EXISTS (SELECT 1 FROM refund WHERE payment_id = $1 AND is_deleted = false)`

const insertRefundQuery = `
	INSERT INTO refund (payment_id, amount, refund_date, created_at, updated_at)
	VALUES ($1, $2, now(), now(), now())
	RETURNING id, refund_date`

const slotContactQuery = `
	SELECT u.username, u.phone
	FROM applicant a
	JOIN users u ON u.id = a.user_id
	WHERE a.applicant_info_id = $1 AND a.is_deleted = false`

// nextWaitingQuery picks the earliest waiting slot for a competition. The
// caller holds the competition row lock, so the pick cannot race with a
// concurrent registration.
const nextWaitingQuery = `
	SELECT id FROM applicant_info
	WHERE competition_id = $1 AND is_waiting = true
	  AND status IN ('unpaid', 'pending_participation', 'confirmed_participation')
	  AND is_deleted = false
	ORDER BY created_at
	LIMIT 1`

const promoteQuery = `
	UPDATE applicant_info
	SET is_waiting = false, waiting_number = NULL, expired_date = $1, updated_at = now()
	WHERE id = $2`

const lockCompetitionQuery = `
	SELECT deposit_days, name FROM competition WHERE id = $1 FOR UPDATE`

// Service records payments and refunds and keeps slot statuses in step.
type Service struct {
	db       *sql.DB
	notifier notification.Notifier
	log      logger.Logger
}

func NewService(db *sql.DB, notifier notification.Notifier, log logger.Logger) *Service {
	if notifier == nil {
		notifier = notification.NewNoOp()
	}
	return &Service{db: db, notifier: notifier, log: log}
}

// Create records a deposit for a registration slot and moves it from
// unpaid to pending participation.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error) {
	var slotID, competitionID int64
	var status, competitionName string
	var depositDays int
	err := s.db.QueryRowContext(ctx, slotQuery, req.ApplicantInfoID).Scan(
		&slotID, &competitionID, &status, &competitionName, &depositDays)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewApplicationNotFoundError(0, 0)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load slot", err)
	}

	if status == models.StatusUserCanceled || status == models.StatusAdminCanceled {
		return nil, apperrors.NewValidationError("취소된 신청에는 결제를 등록할 수 없습니다.", "status: "+status)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, paymentExistsQuery, req.ApplicantInfoID).Scan(&exists); err != nil {
		return nil, apperrors.NewDatabaseError("check payment", err)
	}
	if exists {
		return nil, apperrors.NewPaymentAlreadyExistsError(req.ApplicantInfoID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("begin payment", err)
	}
	defer tx.Rollback()

	view := &PaymentView{ApplicantInfoID: req.ApplicantInfoID, Amount: req.Amount}
	if err := tx.QueryRowContext(ctx, insertPaymentQuery, req.ApplicantInfoID, req.Amount).
		Scan(&view.ID, &view.PaymentDate); err != nil {
		return nil, apperrors.NewDatabaseError("create payment", err)
	}
	if _, err := tx.ExecContext(ctx, updateSlotStatusQuery, models.StatusPendingParticipation, req.ApplicantInfoID); err != nil {
		return nil, apperrors.NewDatabaseError("update slot status", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseError("commit payment", err)
	}
	view.Status = models.StatusPendingParticipation

	s.notifySlot(ctx, req.ApplicantInfoID, competitionName, s.notifier.PaymentConfirmed)
	s.log.Info("payment recorded", map[string]interface{}{
		"payment_id":        view.ID,
		"applicant_info_id": req.ApplicantInfoID,
		"amount":            req.Amount,
	})
	return view, nil
}

// Confirm moves a paid slot to confirmed participation.
func (s *Service) Confirm(ctx context.Context, applicantInfoID int64) error {
	var slotID, competitionID int64
	var status, competitionName string
	var depositDays int
	err := s.db.QueryRowContext(ctx, slotQuery, applicantInfoID).Scan(
		&slotID, &competitionID, &status, &competitionName, &depositDays)
	if err == sql.ErrNoRows {
		return apperrors.NewApplicationNotFoundError(0, 0)
	}
	if err != nil {
		return apperrors.NewDatabaseError("load slot", err)
	}

	if status != models.StatusPendingParticipation {
		return apperrors.NewValidationError("결제 확인 상태에서만 참가 확정이 가능합니다.", "status: "+status)
	}

	if _, err := s.db.ExecContext(ctx, updateSlotStatusQuery, models.StatusConfirmedParticipation, applicantInfoID); err != nil {
		return apperrors.NewDatabaseError("update slot status", err)
	}
	return nil
}

// Refund reverses a payment, cancels the slot, and promotes the earliest
// waiting registration into the freed seat.
func (s *Service) Refund(ctx context.Context, paymentID int64, req RefundRequest) (*RefundView, error) {
	var view RefundView
	var applicantInfoID, competitionID int64
	var amount, depositDays int
	var paymentDate time.Time
	var competitionName string
	err := s.db.QueryRowContext(ctx, paymentQuery, paymentID).Scan(
		&view.PaymentID, &applicantInfoID, &amount, &paymentDate,
		&competitionID, &competitionName, &depositDays)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewPaymentNotFoundError(paymentID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load payment", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, refundExistsQuery, paymentID).Scan(&exists); err != nil {
		return nil, apperrors.NewDatabaseError("check refund", err)
	}
	if exists {
		return nil, apperrors.NewRefundAlreadyExistsError(paymentID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("begin refund", err)
	}
	defer tx.Rollback()

	// lock so the promotion pick is serialized against registrations
	var lockedDays int
	var lockedName string
	if err := tx.QueryRowContext(ctx, lockCompetitionQuery, competitionID).Scan(&lockedDays, &lockedName); err != nil {
		return nil, apperrors.NewDatabaseError("lock competition", err)
	}

	view.Amount = req.Amount
	if err := tx.QueryRowContext(ctx, insertRefundQuery, paymentID, req.Amount).
		Scan(&view.ID, &view.RefundDate); err != nil {
		return nil, apperrors.NewDatabaseError("create refund", err)
	}
	if _, err := tx.ExecContext(ctx, updateSlotStatusQuery, models.StatusAdminCanceled, applicantInfoID); err != nil {
		return nil, apperrors.NewDatabaseError("cancel slot", err)
	}

	promotedID, err := s.promoteNext(ctx, tx, competitionID, lockedDays)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseError("commit refund", err)
	}

	s.notifySlot(ctx, applicantInfoID, competitionName, s.notifier.RegistrationCanceled)
	if promotedID != 0 {
		s.notifySlot(ctx, promotedID, competitionName, s.notifier.PromotedFromWaitlist)
	}

	s.log.Info("refund recorded", map[string]interface{}{
		"refund_id":  view.ID,
		"payment_id": paymentID,
		"promoted":   promotedID,
	})
	return &view, nil
}

// promoteNext moves the earliest waiting slot off the waitlist with a
// fresh payment deadline. Returns 0 when nobody is waiting.
func (s *Service) promoteNext(ctx context.Context, tx *sql.Tx, competitionID int64, depositDays int) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, nextWaitingQuery, competitionID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.NewDatabaseError("pick waiting slot", err)
	}

	deadline := time.Now().UTC().Add(time.Duration(depositDays) * 24 * time.Hour)
	if _, err := tx.ExecContext(ctx, promoteQuery, deadline, id); err != nil {
		return 0, apperrors.NewDatabaseError("promote waiting slot", err)
	}
	return id, nil
}

// notifySlot sends one message per member of the slot.
func (s *Service) notifySlot(ctx context.Context, applicantInfoID int64, competitionName string, send func(context.Context, string, string, string)) {
	rows, err := s.db.QueryContext(ctx, slotContactQuery, applicantInfoID)
	if err != nil {
		s.log.Warn("failed to load slot contacts", map[string]interface{}{
			"applicant_info_id": applicantInfoID,
			"error":             err.Error(),
		})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var name, phone string
		if err := rows.Scan(&name, &phone); err != nil {
			continue
		}
		send(ctx, phone, name, competitionName)
	}
}
