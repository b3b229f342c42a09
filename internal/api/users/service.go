// internal/api/users/service.go
package users

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"matchpoint/internal/common/auth"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
)

const phoneExistsQuery = `
	SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND is_deleted = false)`

const insertUserQuery = `
	INSERT INTO users (username, phone, password_hash, gender, birth, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, 'user', now(), now())
	RETURNING id`

const credentialsQuery = `
	SELECT id, password_hash, role FROM users WHERE phone = $1 AND is_deleted = false`

const profileQuery = `
	SELECT u.id, u.username, u.phone, u.gender, u.birth, u.role,
	       COALESCE(t.name, ''), COALESCE(cl.name, ''), u.main_ranking_id
	FROM users u
	LEFT JOIN tier t ON t.id = u.tier_id
	LEFT JOIN club cl ON cl.id = u.club_id
	WHERE u.id = $1 AND u.is_deleted = false`

const publicProfileQuery = `
	SELECT u.id, u.username, u.gender, u.birth,
	       COALESCE(t.name, ''), COALESCE(cl.name, '')
	FROM users u
	LEFT JOIN tier t ON t.id = u.tier_id
	LEFT JOIN club cl ON cl.id = u.club_id
	WHERE u.id = $1 AND u.is_deleted = false`

const rankingsQuery = `
	SELECT r.id, r.match_type_id, mt.gender, mt.type, COALESCE(t.name, ''),
	       r.rank, r.points, r.is_main
	FROM ranking r
	JOIN match_type mt ON mt.id = r.match_type_id
	LEFT JOIN tier t ON t.id = r.tier_id
	WHERE r.user_id = $1
	ORDER BY r.match_type_id`

const rankingOwnedQuery = `
	SELECT EXISTS (SELECT 1 FROM ranking WHERE id = $1 AND user_id = $2)`

const clearMainRankingQuery = `
	UPDATE ranking SET is_main = false WHERE user_id = $1`

const setMainRankingQuery = `
	UPDATE ranking SET is_main = true WHERE id = $1`

const updateUserMainRankingQuery = `
	UPDATE users SET main_ranking_id = $1, updated_at = now() WHERE id = $2`

// Service implements signup, signin, token lifecycle, and profile reads.
type Service struct {
	db        *sql.DB
	tokens    *auth.TokenManager
	blacklist *auth.Blacklist
	log       logger.Logger
}

// NewService wires the identity service. blacklist may be nil when Redis is
// unavailable; logout and refresh then skip revocation.
func NewService(db *sql.DB, tokens *auth.TokenManager, blacklist *auth.Blacklist, log logger.Logger) *Service {
	return &Service{db: db, tokens: tokens, blacklist: blacklist, log: log}
}

// Signup creates an account after a phone uniqueness check.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, phoneExistsQuery, req.Phone).Scan(&exists); err != nil {
		return 0, apperrors.NewDatabaseError("check phone", err)
	}
	if exists {
		return 0, apperrors.NewPhoneAlreadyUsedError(req.Phone)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, insertUserQuery,
		req.Username, req.Phone, string(hash), req.Gender, req.Birth).Scan(&id)
	if err != nil {
		return 0, apperrors.NewDatabaseError("create user", err)
	}

	s.log.Info("user created", map[string]interface{}{"user_id": id})
	return id, nil
}

// CheckPhone reports whether a phone number is still available.
func (s *Service) CheckPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, phoneExistsQuery, phone).Scan(&exists); err != nil {
		return false, apperrors.NewDatabaseError("check phone", err)
	}
	return !exists, nil
}

// Signin verifies credentials and issues a token pair.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (*auth.TokenPair, error) {
	var userID int64
	var hash, role string
	err := s.db.QueryRowContext(ctx, credentialsQuery, req.Phone).Scan(&userID, &hash, &role)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load credentials", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	pair, err := s.tokens.IssuePair(userID, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// Refresh rotates a refresh token: the old token is revoked and a fresh
// pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("blacklist lookup", err)
		}
		if revoked {
			return nil, apperrors.NewInvalidTokenError("refresh token revoked")
		}
		if err := s.blacklist.Revoke(ctx, claims.ID, s.tokens.RefreshTTL()); err != nil {
			return nil, apperrors.NewDatabaseError("blacklist write", err)
		}
	}

	pair, err := s.tokens.IssuePair(claims.UserID, claims.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// Logout revokes a refresh token so it cannot be rotated again.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return err
	}
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, s.tokens.RefreshTTL()); err != nil {
		return apperrors.NewDatabaseError("blacklist write", err)
	}
	return nil
}

// Profile returns the caller's own profile.
func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, profileQuery, userID).Scan(
		&p.ID, &p.Username, &p.Phone, &p.Gender, &p.Birth, &p.Role,
		&p.TierName, &p.ClubName, &p.MainRankingID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load profile", err)
	}
	return &p, nil
}

// PublicProfile returns the reduced view of another user.
func (s *Service) PublicProfile(ctx context.Context, userID int64) (*PublicProfile, error) {
	var p PublicProfile
	err := s.db.QueryRowContext(ctx, publicProfileQuery, userID).Scan(
		&p.ID, &p.Username, &p.Gender, &p.Birth, &p.TierName, &p.ClubName)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load user", err)
	}
	return &p, nil
}

// Rankings lists the caller's standings per match type.
func (s *Service) Rankings(ctx context.Context, userID int64) ([]RankingView, error) {
	rows, err := s.db.QueryContext(ctx, rankingsQuery, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list rankings", err)
	}
	defer rows.Close()

	views := []RankingView{}
	for rows.Next() {
		var v RankingView
		if err := rows.Scan(&v.ID, &v.MatchTypeID, &v.Gender, &v.Type, &v.TierName,
			&v.Rank, &v.Points, &v.IsMain); err != nil {
			return nil, apperrors.NewDatabaseError("scan ranking", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate rankings", err)
	}
	return views, nil
}

// SetMainRanking marks one of the caller's rankings as the profile default.
func (s *Service) SetMainRanking(ctx context.Context, userID, rankingID int64) error {
	var owned bool
	if err := s.db.QueryRowContext(ctx, rankingOwnedQuery, rankingID, userID).Scan(&owned); err != nil {
		return apperrors.NewDatabaseError("check ranking owner", err)
	}
	if !owned {
		return apperrors.NewForbiddenError("ranking does not belong to user")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("begin main ranking update", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, clearMainRankingQuery, userID); err != nil {
		return apperrors.NewDatabaseError("clear main ranking", err)
	}
	if _, err := tx.ExecContext(ctx, setMainRankingQuery, rankingID); err != nil {
		return apperrors.NewDatabaseError("set main ranking", err)
	}
	if _, err := tx.ExecContext(ctx, updateUserMainRankingQuery, rankingID, userID); err != nil {
		return apperrors.NewDatabaseError("update user main ranking", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("commit main ranking update", err)
	}
	return nil
}
