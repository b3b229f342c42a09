// internal/api/match/service.go
package match

import (
	"context"
	"database/sql"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

const competitionStatusQuery = `
	SELECT status FROM competition WHERE id = $1 AND is_deleted = false`

const insertMatchQuery = `
	INSERT INTO match (competition_id, match_round, match_number, court_number, a_side_id, b_side_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	RETURNING id`

const listMatchesQuery = `
	SELECT id, competition_id, match_round, match_number, court_number, a_side_id, b_side_id, winner_id
	FROM match
	WHERE competition_id = $1 AND is_deleted = false
	ORDER BY match_round, match_number`

const matchQuery = `
	SELECT m.id, m.competition_id, m.match_round, m.match_number, m.court_number,
	       m.a_side_id, m.b_side_id, m.winner_id, c.status
	FROM match m
	JOIN competition c ON c.id = m.competition_id
	WHERE m.id = $1 AND m.is_deleted = false`

const listSetsQuery = `
	SELECT id, match_id, set_number, a_score, b_score
	FROM sets
	WHERE match_id = $1 AND is_deleted = false
	ORDER BY set_number`

const upsertSetQuery = `
	INSERT INTO sets (match_id, set_number, a_score, b_score, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	ON CONFLICT (match_id, set_number)
	DO UPDATE SET a_score = EXCLUDED.a_score, b_score = EXCLUDED.b_score, updated_at = now()
	RETURNING id`

const setWinnerQuery = `
	UPDATE match SET winner_id = $1, updated_at = now() WHERE id = $2`

// Service records bracket matches and set scores. Score writes are only
// allowed while the competition is running.
type Service struct {
	db  *sql.DB
	log logger.Logger
}

func NewService(db *sql.DB, log logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// CreateMatch schedules a match inside a running competition.
func (s *Service) CreateMatch(ctx context.Context, competitionID int64, req CreateMatchRequest) (int64, error) {
	if err := s.requireRunning(ctx, competitionID); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, insertMatchQuery,
		competitionID, req.Round, req.Number, req.Court, req.ASideID, req.BSideID).Scan(&id)
	if err != nil {
		return 0, apperrors.NewDatabaseError("create match", err)
	}
	return id, nil
}

// List returns the bracket with recorded sets.
func (s *Service) List(ctx context.Context, competitionID int64) ([]MatchView, error) {
	var status string
	err := s.db.QueryRowContext(ctx, competitionStatusQuery, competitionID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCompetitionNotFoundError(competitionID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load competition", err)
	}

	rows, err := s.db.QueryContext(ctx, listMatchesQuery, competitionID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list matches", err)
	}
	defer rows.Close()

	views := []MatchView{}
	for rows.Next() {
		var v MatchView
		if err := rows.Scan(&v.ID, &v.CompetitionID, &v.Round, &v.Number, &v.Court,
			&v.ASideID, &v.BSideID, &v.WinnerID); err != nil {
			return nil, apperrors.NewDatabaseError("scan match", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate matches", err)
	}

	for i := range views {
		sets, err := s.sets(ctx, views[i].ID)
		if err != nil {
			return nil, err
		}
		views[i].Sets = sets
	}
	return views, nil
}

// RecordSet stores or overwrites one set score.
func (s *Service) RecordSet(ctx context.Context, matchID int64, req RecordSetRequest) (int64, error) {
	m, status, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if status != models.CompetitionDuring {
		return 0, apperrors.NewCompetitionNotRunningError(m.CompetitionID)
	}

	if req.SetNumber <= 0 || req.AGames < 0 || req.BGames < 0 {
		return 0, apperrors.NewValidationError("세트 점수가 올바르지 않습니다.", "negative or zero values")
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, upsertSetQuery, matchID, req.SetNumber, req.AGames, req.BGames).Scan(&id); err != nil {
		return 0, apperrors.NewDatabaseError("record set", err)
	}
	return id, nil
}

// Complete declares a winner. The winner must be one of the two sides.
func (s *Service) Complete(ctx context.Context, matchID int64, req CompleteRequest) error {
	m, status, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if status != models.CompetitionDuring {
		return apperrors.NewCompetitionNotRunningError(m.CompetitionID)
	}

	valid := (m.ASideID != nil && *m.ASideID == req.WinnerID) ||
		(m.BSideID != nil && *m.BSideID == req.WinnerID)
	if !valid {
		return apperrors.NewValidationError("승자는 해당 경기의 참가자여야 합니다.", "winner not in match")
	}

	if _, err := s.db.ExecContext(ctx, setWinnerQuery, req.WinnerID, matchID); err != nil {
		return apperrors.NewDatabaseError("set winner", err)
	}

	s.log.Info("match completed", map[string]interface{}{
		"match_id":  matchID,
		"winner_id": req.WinnerID,
	})
	return nil
}

func (s *Service) loadMatch(ctx context.Context, matchID int64) (*models.Match, string, error) {
	var m models.Match
	var status string
	err := s.db.QueryRowContext(ctx, matchQuery, matchID).Scan(
		&m.ID, &m.CompetitionID, &m.Round, &m.Number, &m.Court,
		&m.ASideID, &m.BSideID, &m.WinnerID, &status)
	if err == sql.ErrNoRows {
		return nil, "", apperrors.NewMatchNotFoundError(matchID)
	}
	if err != nil {
		return nil, "", apperrors.NewDatabaseError("load match", err)
	}
	return &m, status, nil
}

func (s *Service) sets(ctx context.Context, matchID int64) ([]models.Set, error) {
	rows, err := s.db.QueryContext(ctx, listSetsQuery, matchID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list sets", err)
	}
	defer rows.Close()

	sets := []models.Set{}
	for rows.Next() {
		var set models.Set
		if err := rows.Scan(&set.ID, &set.MatchID, &set.SetNumber, &set.AGames, &set.BGames); err != nil {
			return nil, apperrors.NewDatabaseError("scan set", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate sets", err)
	}
	return sets, nil
}

func (s *Service) requireRunning(ctx context.Context, competitionID int64) error {
	var status string
	err := s.db.QueryRowContext(ctx, competitionStatusQuery, competitionID).Scan(&status)
	if err == sql.ErrNoRows {
		return apperrors.NewCompetitionNotFoundError(competitionID)
	}
	if err != nil {
		return apperrors.NewDatabaseError("load competition", err)
	}
	if status != models.CompetitionDuring {
		return apperrors.NewCompetitionNotRunningError(competitionID)
	}
	return nil
}
