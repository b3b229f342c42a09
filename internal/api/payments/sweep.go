// internal/api/payments/sweep.go
package payments

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/common/metrics"
	"matchpoint/internal/models"
	"matchpoint/internal/notification"
)

const expiredSlotsQuery = `
	SELECT ai.id, ai.competition_id, c.name
	FROM applicant_info ai
	JOIN competition c ON c.id = ai.competition_id
	WHERE ai.status = 'unpaid' AND ai.is_waiting = false
	  AND ai.expired_date < $1 AND ai.is_deleted = false
	ORDER BY ai.competition_id, ai.created_at`

// Sweeper cancels unpaid registrations past their deposit deadline and
// promotes waitlisted applicants into the freed seats.
type Sweeper struct {
	db       *sql.DB
	payments *Service
	notifier notification.Notifier
	log      logger.Logger
	cron     *cron.Cron
}

func NewSweeper(db *sql.DB, payments *Service, notifier notification.Notifier, log logger.Logger) *Sweeper {
	if notifier == nil {
		notifier = notification.NewNoOp()
	}
	return &Sweeper{db: db, payments: payments, notifier: notifier, log: log}
}

// Start schedules the sweep. The schedule accepts standard cron specs and
// descriptors like "@every 10m".
func (s *Sweeper) Start(schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			s.log.Error("payment expiry sweep failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run executes one sweep pass and returns how many slots were canceled.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	rows, err := s.db.QueryContext(ctx, expiredSlotsQuery, now)
	if err != nil {
		return 0, apperrors.NewDatabaseError("list expired slots", err)
	}

	type expired struct {
		slotID        int64
		competitionID int64
		name          string
	}
	var slots []expired
	for rows.Next() {
		var e expired
		if err := rows.Scan(&e.slotID, &e.competitionID, &e.name); err != nil {
			rows.Close()
			return 0, apperrors.NewDatabaseError("scan expired slot", err)
		}
		slots = append(slots, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.NewDatabaseError("iterate expired slots", err)
	}

	canceled := 0
	for _, e := range slots {
		if err := s.cancelExpired(ctx, e.slotID, e.competitionID, e.name); err != nil {
			s.log.Error("failed to cancel expired slot", map[string]interface{}{
				"applicant_info_id": e.slotID,
				"error":             err.Error(),
			})
			continue
		}
		canceled++
		metrics.ExpirySweepCanceled.Inc()
	}

	if canceled > 0 {
		s.log.Info("payment expiry sweep finished", map[string]interface{}{
			"canceled": canceled,
		})
	}
	return canceled, nil
}

func (s *Sweeper) cancelExpired(ctx context.Context, slotID, competitionID int64, competitionName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("begin expiry cancel", err)
	}
	defer tx.Rollback()

	var lockedDays int
	var lockedName string
	if err := tx.QueryRowContext(ctx, lockCompetitionQuery, competitionID).Scan(&lockedDays, &lockedName); err != nil {
		return apperrors.NewDatabaseError("lock competition", err)
	}

	if _, err := tx.ExecContext(ctx, updateSlotStatusQuery, models.StatusAdminCanceled, slotID); err != nil {
		return apperrors.NewDatabaseError("cancel slot", err)
	}

	promotedID, err := s.payments.promoteNext(ctx, tx, competitionID, lockedDays)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("commit expiry cancel", err)
	}

	s.payments.notifySlot(ctx, slotID, competitionName, s.notifier.RegistrationCanceled)
	if promotedID != 0 {
		s.payments.notifySlot(ctx, promotedID, competitionName, s.notifier.PromotedFromWaitlist)
	}
	return nil
}
