// internal/api/classification/service.go
package classification

import (
	"context"
	"database/sql"

	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/models"
)

const matchTypesQuery = `
	SELECT id, gender, type FROM match_type ORDER BY id`

const tiersQuery = `
	SELECT id, name, level, match_type_id
	FROM tier
	WHERE ($1 = 0 OR match_type_id = $1)
	ORDER BY match_type_id, level`

// Service serves the static gender/type and tier catalogs.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// MatchTypes lists every gender/type combination.
func (s *Service) MatchTypes(ctx context.Context) ([]models.MatchType, error) {
	rows, err := s.db.QueryContext(ctx, matchTypesQuery)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list match types", err)
	}
	defer rows.Close()

	types := []models.MatchType{}
	for rows.Next() {
		var mt models.MatchType
		if err := rows.Scan(&mt.ID, &mt.Gender, &mt.Type); err != nil {
			return nil, apperrors.NewDatabaseError("scan match type", err)
		}
		types = append(types, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate match types", err)
	}
	return types, nil
}

// Tiers lists skill brackets, optionally narrowed to one match type.
func (s *Service) Tiers(ctx context.Context, matchTypeID int64) ([]models.Tier, error) {
	rows, err := s.db.QueryContext(ctx, tiersQuery, matchTypeID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list tiers", err)
	}
	defer rows.Close()

	tiers := []models.Tier{}
	for rows.Next() {
		var t models.Tier
		if err := rows.Scan(&t.ID, &t.Name, &t.Level, &t.MatchTypeID); err != nil {
			return nil, apperrors.NewDatabaseError("scan tier", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate tiers", err)
	}
	return tiers, nil
}
