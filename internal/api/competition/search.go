// internal/api/competition/search.go
package competition

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"matchpoint/internal/common/database"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/models"
)

const partnerSearchLimit = 20

// PartnerSearcher finds users who could partner the viewer in a
// competition.
type PartnerSearcher interface {
	Search(ctx context.Context, comp models.Competition, viewer *models.User, query string) ([]PartnerCandidate, error)
}

// partnerSearcher queries Elasticsearch when available and falls back to
// SQL otherwise. Results are always constrained to the competition's tier
// and to genders the match type admits.
type partnerSearcher struct {
	db    *sql.DB
	es    *database.ElasticsearchClient
	index string
	log   logger.Logger
}

func newPartnerSearcher(db *sql.DB, es *database.ElasticsearchClient, index string, log logger.Logger) PartnerSearcher {
	if index == "" {
		index = "users"
	}
	return &partnerSearcher{db: db, es: es, index: index, log: log}
}

func (p *partnerSearcher) Search(ctx context.Context, comp models.Competition, viewer *models.User, query string) ([]PartnerCandidate, error) {
	if p.es != nil {
		candidates, err := p.searchElasticsearch(ctx, comp, viewer, query)
		if err == nil {
			return candidates, nil
		}
		p.log.Warn("elasticsearch partner search failed, falling back to sql", map[string]interface{}{
			"competition_id": comp.ID,
			"error":          err.Error(),
		})
	}
	return p.searchSQL(ctx, comp, viewer, query)
}

// requiredGender returns the gender a partner must have, empty when the
// match type is mixed (the partner then just needs the opposite gender of
// the viewer).
func requiredGender(comp models.Competition, viewer *models.User) string {
	if comp.MatchTypeGender == models.GenderMix {
		if viewer.Gender == models.GenderMale {
			return models.GenderFemale
		}
		return models.GenderMale
	}
	return comp.MatchTypeGender
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				ID       int64  `json:"id"`
				Username string `json:"username"`
				Gender   string `json:"gender"`
				Birth    int    `json:"birth"`
				TierID   int64  `json:"tier_id"`
				ClubName string `json:"club_name"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *partnerSearcher) searchElasticsearch(ctx context.Context, comp models.Competition, viewer *models.User, query string) ([]PartnerCandidate, error) {
	body := map[string]interface{}{
		"size": partnerSearchLimit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{"match_phrase_prefix": map[string]interface{}{"username": query}},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"tier_id": comp.TierID}},
					{"term": map[string]interface{}{"gender": requiredGender(comp, viewer)}},
				},
				"must_not": []map[string]interface{}{
					{"term": map[string]interface{}{"id": viewer.ID}},
				},
			},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to build search body: %w", err)
	}

	respBody, err := p.es.Search(ctx, p.index, string(raw))
	if err != nil {
		return nil, err
	}

	var parsed esSearchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	candidates := []PartnerCandidate{}
	for _, hit := range parsed.Hits.Hits {
		candidates = append(candidates, PartnerCandidate{
			ID:       hit.Source.ID,
			Username: hit.Source.Username,
			Gender:   hit.Source.Gender,
			Birth:    hit.Source.Birth,
			ClubName: hit.Source.ClubName,
		})
	}
	return candidates, nil
}

const partnerSearchQuery = `
	SELECT u.id, u.username, u.gender, u.birth, COALESCE(cl.name, '')
	FROM users u
	LEFT JOIN club cl ON cl.id = u.club_id
	WHERE u.is_deleted = false
	  AND u.id <> $1
	  AND u.tier_id = $2
	  AND u.gender = $3
	  AND u.username ILIKE $4
	ORDER BY u.username
	LIMIT $5`

func (p *partnerSearcher) searchSQL(ctx context.Context, comp models.Competition, viewer *models.User, query string) ([]PartnerCandidate, error) {
	rows, err := p.db.QueryContext(ctx, partnerSearchQuery,
		viewer.ID, comp.TierID, requiredGender(comp, viewer), query+"%", partnerSearchLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("partner search", err)
	}
	defer rows.Close()

	candidates := []PartnerCandidate{}
	for rows.Next() {
		var c PartnerCandidate
		if err := rows.Scan(&c.ID, &c.Username, &c.Gender, &c.Birth, &c.ClubName); err != nil {
			return nil, apperrors.NewDatabaseError("scan partner candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate partner candidates", err)
	}
	return candidates, nil
}
