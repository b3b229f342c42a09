// internal/api/club/service.go
package club

import (
	"context"
	"database/sql"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

const ownsClubQuery = `
	SELECT EXISTS (SELECT 1 FROM coach WHERE user_id = $1)`

const insertClubQuery = `
	INSERT INTO club (name, description, address, phone, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id`

const insertCoachQuery = `
	INSERT INTO coach (club_id, user_id, created_at)
	VALUES ($1, $2, now())`

const listClubsQuery = `
	SELECT c.id, c.name, c.description, c.address, c.phone,
	       (SELECT COUNT(*) FROM users u WHERE u.club_id = c.id AND u.is_deleted = false)
	FROM club c
	WHERE c.is_deleted = false
	ORDER BY c.name`

const clubQuery = `
	SELECT c.id, c.name, c.description, c.address, c.phone,
	       (SELECT COUNT(*) FROM users u WHERE u.club_id = c.id AND u.is_deleted = false)
	FROM club c
	WHERE c.id = $1 AND c.is_deleted = false`

const clubTeamsQuery = `
	SELECT id, name, description, club_id
	FROM team
	WHERE club_id = $1 AND is_deleted = false
	ORDER BY name`

const insertTeamQuery = `
	INSERT INTO team (name, description, club_id, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id`

const coachOfClubQuery = `
	SELECT EXISTS (SELECT 1 FROM coach WHERE club_id = $1 AND user_id = $2)`

const pendingAdmissionQuery = `
	SELECT EXISTS (
		SELECT 1 FROM club_applicant
		WHERE club_id = $1 AND user_id = $2 AND status = 'pending' AND is_deleted = false
	)`

const insertAdmissionQuery = `
	INSERT INTO club_applicant (club_id, user_id, status, created_at, updated_at)
	VALUES ($1, $2, 'pending', now(), now())
	RETURNING id`

const listAdmissionsQuery = `
	SELECT ca.id, ca.club_id, ca.user_id, u.username, ca.status
	FROM club_applicant ca
	JOIN users u ON u.id = ca.user_id
	WHERE ca.club_id = $1 AND ca.status = 'pending' AND ca.is_deleted = false
	ORDER BY ca.created_at`

const admissionQuery = `
	SELECT id, club_id, user_id, status
	FROM club_applicant
	WHERE id = $1 AND is_deleted = false`

const updateAdmissionQuery = `
	UPDATE club_applicant SET status = $1, updated_at = now() WHERE id = $2`

const joinClubQuery = `
	UPDATE users SET club_id = $1, updated_at = now() WHERE id = $2`

// Service serves club and team management plus the admission workflow.
type Service struct {
	db  *sql.DB
	log logger.Logger
}

func NewService(db *sql.DB, log logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// Create registers a club with the caller as its coach. A user may manage
// at most one club.
func (s *Service) Create(ctx context.Context, userID int64, req CreateClubRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var owns bool
	if err := s.db.QueryRowContext(ctx, ownsClubQuery, userID).Scan(&owns); err != nil {
		return 0, apperrors.NewDatabaseError("check club ownership", err)
	}
	if owns {
		return 0, apperrors.NewClubAlreadyOwnedError(userID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewDatabaseError("begin club create", err)
	}
	defer tx.Rollback()

	var clubID int64
	if err := tx.QueryRowContext(ctx, insertClubQuery, req.Name, req.Description, req.Address, req.Phone).Scan(&clubID); err != nil {
		return 0, apperrors.NewDatabaseError("create club", err)
	}
	if _, err := tx.ExecContext(ctx, insertCoachQuery, clubID, userID); err != nil {
		return 0, apperrors.NewDatabaseError("assign coach", err)
	}
	if _, err := tx.ExecContext(ctx, joinClubQuery, clubID, userID); err != nil {
		return 0, apperrors.NewDatabaseError("join own club", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewDatabaseError("commit club create", err)
	}

	s.log.Info("club created", map[string]interface{}{"club_id": clubID, "user_id": userID})
	return clubID, nil
}

// List returns all clubs with member counts.
func (s *Service) List(ctx context.Context) ([]ClubView, error) {
	rows, err := s.db.QueryContext(ctx, listClubsQuery)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list clubs", err)
	}
	defer rows.Close()

	views := []ClubView{}
	for rows.Next() {
		var v ClubView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Address, &v.Phone, &v.MemberCount); err != nil {
			return nil, apperrors.NewDatabaseError("scan club", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate clubs", err)
	}
	return views, nil
}

// Get returns one club with its teams.
func (s *Service) Get(ctx context.Context, clubID int64) (*ClubView, error) {
	var v ClubView
	err := s.db.QueryRowContext(ctx, clubQuery, clubID).Scan(
		&v.ID, &v.Name, &v.Description, &v.Address, &v.Phone, &v.MemberCount)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewClubNotFoundError(clubID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get club", err)
	}

	rows, err := s.db.QueryContext(ctx, clubTeamsQuery, clubID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list teams", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ClubID); err != nil {
			return nil, apperrors.NewDatabaseError("scan team", err)
		}
		v.Teams = append(v.Teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate teams", err)
	}
	return &v, nil
}

// CreateTeam adds a team under a club the caller coaches.
func (s *Service) CreateTeam(ctx context.Context, clubID, userID int64, req CreateTeamRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	if err := s.requireCoach(ctx, clubID, userID); err != nil {
		return 0, err
	}

	var teamID int64
	if err := s.db.QueryRowContext(ctx, insertTeamQuery, req.Name, req.Description, clubID).Scan(&teamID); err != nil {
		return 0, apperrors.NewDatabaseError("create team", err)
	}
	return teamID, nil
}

// Apply files an admission request. Re-applying while one is pending is a
// no-op error.
func (s *Service) Apply(ctx context.Context, clubID, userID int64) (int64, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, clubQuery, clubID).
		Scan(new(int64), new(string), new(string), new(string), new(string), new(int))
	if err == sql.ErrNoRows {
		return 0, apperrors.NewClubNotFoundError(clubID)
	}
	if err != nil {
		return 0, apperrors.NewDatabaseError("get club", err)
	}

	if err := s.db.QueryRowContext(ctx, pendingAdmissionQuery, clubID, userID).Scan(&exists); err != nil {
		return 0, apperrors.NewDatabaseError("check pending admission", err)
	}
	if exists {
		return 0, apperrors.NewValidationError("이미 가입 신청이 접수되었습니다.", "pending admission exists")
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, insertAdmissionQuery, clubID, userID).Scan(&id); err != nil {
		return 0, apperrors.NewDatabaseError("create admission", err)
	}
	return id, nil
}

// Admissions lists pending requests for a club the caller coaches.
func (s *Service) Admissions(ctx context.Context, clubID, userID int64) ([]AdmissionView, error) {
	if err := s.requireCoach(ctx, clubID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, listAdmissionsQuery, clubID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list admissions", err)
	}
	defer rows.Close()

	views := []AdmissionView{}
	for rows.Next() {
		var v AdmissionView
		if err := rows.Scan(&v.ID, &v.ClubID, &v.UserID, &v.Username, &v.Status); err != nil {
			return nil, apperrors.NewDatabaseError("scan admission", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate admissions", err)
	}
	return views, nil
}

// Decide accepts or rejects one admission request. Accepting also sets the
// member's club.
func (s *Service) Decide(ctx context.Context, admissionID, userID int64, accept bool) error {
	var adm models.ClubApplicant
	err := s.db.QueryRowContext(ctx, admissionQuery, admissionID).Scan(
		&adm.ID, &adm.ClubID, &adm.UserID, &adm.Status)
	if err == sql.ErrNoRows {
		return apperrors.NewClubApplicationNotFoundError(admissionID)
	}
	if err != nil {
		return apperrors.NewDatabaseError("get admission", err)
	}

	if err := s.requireCoach(ctx, adm.ClubID, userID); err != nil {
		return err
	}

	if adm.Status != models.ClubApplicantPending {
		return apperrors.NewValidationError("이미 처리된 가입 신청입니다.", "status: "+adm.Status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("begin admission decision", err)
	}
	defer tx.Rollback()

	status := models.ClubApplicantRejected
	if accept {
		status = models.ClubApplicantAccepted
	}
	if _, err := tx.ExecContext(ctx, updateAdmissionQuery, status, admissionID); err != nil {
		return apperrors.NewDatabaseError("update admission", err)
	}
	if accept {
		if _, err := tx.ExecContext(ctx, joinClubQuery, adm.ClubID, adm.UserID); err != nil {
			return apperrors.NewDatabaseError("join club", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("commit admission decision", err)
	}

	s.log.Info("admission decided", map[string]interface{}{
		"admission_id": admissionID,
		"club_id":      adm.ClubID,
		"accepted":     accept,
	})
	return nil
}

func (s *Service) requireCoach(ctx context.Context, clubID, userID int64) error {
	var isCoach bool
	if err := s.db.QueryRowContext(ctx, coachOfClubQuery, clubID, userID).Scan(&isCoach); err != nil {
		return apperrors.NewDatabaseError("check coach", err)
	}
	if !isCoach {
		return apperrors.NewForbiddenError("not a coach of this club")
	}
	return nil
}
