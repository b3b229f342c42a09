// internal/api/competition/service.go
package competition

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"matchpoint/internal/common/database"
	apperrors "matchpoint/internal/common/errors"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/common/metrics"
	"matchpoint/internal/eligibility"
	"matchpoint/internal/models"
)

const activeStatuses = `('unpaid', 'pending_participation', 'confirmed_participation')`

const listQuery = `
	SELECT c.id, c.name, c.start_date, c.end_date, c.status, c.location, c.fee,
	       mt.gender, mt.type, t.name, c.tier_id, c.max_participants
	FROM competition c
	JOIN match_type mt ON mt.id = c.match_type_id
	JOIN tier t ON t.id = c.tier_id
	WHERE c.is_deleted = false
	  AND ($1 = '' OR mt.gender = $1)
	  AND ($2 = '' OR mt.type = $2)
	  AND ($3 = 0 OR c.tier_id = $3)
	  AND ($4 = '' OR c.status = $4)
	ORDER BY c.start_date, c.id`

const detailQuery = `
	SELECT c.id, c.name, c.description, c.start_date, c.end_date, c.status,
	       c.location, c.address, c.phone, c.fee, c.total_rounds, c.total_sets,
	       c.rule, c.bank_name, c.bank_account_number, c.bank_account_name,
	       c.deposit_refund_policy, c.site_link,
	       mt.gender, mt.type, t.name, c.tier_id, c.max_participants
	FROM competition c
	JOIN match_type mt ON mt.id = c.match_type_id
	JOIN tier t ON t.id = c.tier_id
	WHERE c.id = $1 AND c.is_deleted = false`

const occupancyQuery = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE is_waiting)
	FROM applicant_info
	WHERE competition_id = $1 AND status IN ` + activeStatuses + ` AND is_deleted = false`

// applyLockQuery locks the competition row so the capacity check and the
// slot insert are serialized across concurrent registrations.
const applyLockQuery = `
	SELECT c.id, c.name, c.status, c.code, c.max_participants, c.fee,
	       c.bank_name, c.bank_account_number, c.bank_account_name,
	       c.deposit_days, c.tier_id, mt.gender, mt.type
	FROM competition c
	JOIN match_type mt ON mt.id = c.match_type_id
	WHERE c.id = $1 AND c.is_deleted = false
	FOR UPDATE OF c`

const duplicateQuery = `
	SELECT EXISTS (
		SELECT 1 FROM applicant a
		JOIN applicant_info ai ON ai.id = a.applicant_info_id
		WHERE ai.competition_id = $1 AND a.user_id = $2
		  AND ai.status IN ` + activeStatuses + `
		  AND a.is_deleted = false AND ai.is_deleted = false
	)`

const applyUserQuery = `
	SELECT id, username, phone, gender, tier_id
	FROM users WHERE id = $1 AND is_deleted = false`

const activeCountQuery = `
	SELECT COUNT(*) FROM applicant_info
	WHERE competition_id = $1 AND status IN ` + activeStatuses + ` AND is_deleted = false`

const insertInfoQuery = `
	INSERT INTO applicant_info (competition_id, status, is_waiting, waiting_number, expired_date, created_at, updated_at)
	VALUES ($1, 'unpaid', $2, $3, $4, now(), now())
	RETURNING id`

const insertApplicantQuery = `
	INSERT INTO applicant (user_id, applicant_info_id, created_at)
	VALUES ($1, $2, now())`

const applicationQuery = `
	SELECT ai.id, ai.competition_id, ai.status, ai.is_waiting, ai.waiting_number, ai.expired_date
	FROM applicant a
	JOIN applicant_info ai ON ai.id = a.applicant_info_id
	WHERE ai.competition_id = $1 AND a.user_id = $2
	  AND ai.status IN ` + activeStatuses + `
	  AND a.is_deleted = false AND ai.is_deleted = false
	ORDER BY ai.created_at DESC
	LIMIT 1`

const applicationPartnerQuery = `
	SELECT u.username
	FROM applicant a
	JOIN users u ON u.id = a.user_id
	WHERE a.applicant_info_id = $1 AND a.user_id <> $2 AND a.is_deleted = false`

const viewerQuery = `
	SELECT id, gender, tier_id, is_deleted FROM users WHERE id = $1`

// Service serves competition listing, detail, and registration.
type Service struct {
	db     *sql.DB
	cache  *countCache
	search PartnerSearcher
	log    logger.Logger
}

// NewService wires the competition service. redisClient and es may be nil;
// the service then skips caching and falls back to SQL partner search.
func NewService(db *sql.DB, redisClient *redis.Client, es *database.ElasticsearchClient, esIndex string, countTTL time.Duration, log logger.Logger) *Service {
	var cache *countCache
	if redisClient != nil {
		cache = newCountCache(redisClient, countTTL)
	}
	return &Service{
		db:     db,
		cache:  cache,
		search: newPartnerSearcher(db, es, esIndex, log),
		log:    log,
	}
}

// List returns all competitions matching filters with the viewer-specific
// application status label. viewerID <= 0 means anonymous.
func (s *Service) List(ctx context.Context, filters ListFilters, viewerID int64) ([]Summary, error) {
	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, listQuery, filters.Gender, filters.Type, filters.TierID, filters.Status)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list competitions", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	comps := []models.Competition{}
	for rows.Next() {
		var c models.Competition
		var sum Summary
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.Location, &c.Fee,
			&c.MatchTypeGender, &c.MatchTypeType, &c.TierName, &c.TierID, &c.MaxParticipants); err != nil {
			return nil, apperrors.NewDatabaseError("scan competition", err)
		}
		sum = summarize(c)
		summaries = append(summaries, sum)
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate competitions", err)
	}

	for i := range summaries {
		occ, err := s.occupancy(ctx, comps[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].ApplicantCount = occ.Total
		summaries[i].WaitingCount = occ.Waiting
		summaries[i].ApplicationStatus = eligibility.Evaluate(comps[i], viewer, occ.Total).String()
	}
	return summaries, nil
}

// Get returns the full detail view for one competition.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*Detail, error) {
	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	var c models.Competition
	var d Detail
	err = s.db.QueryRowContext(ctx, detailQuery, id).Scan(
		&c.ID, &c.Name, &d.Description, &c.StartDate, &c.EndDate, &c.Status,
		&c.Location, &d.Address, &d.Phone, &c.Fee, &d.TotalRounds, &d.TotalSets,
		&d.Rule, &d.BankName, &d.BankAccountNumber, &d.BankAccountName,
		&d.DepositRefundPolicy, &d.SiteLink,
		&c.MatchTypeGender, &c.MatchTypeType, &c.TierName, &c.TierID, &c.MaxParticipants)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCompetitionNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get competition", err)
	}

	occ, err := s.occupancy(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	d.Summary = summarize(c)
	d.Summary.ApplicantCount = occ.Total
	d.Summary.WaitingCount = occ.Waiting
	d.Summary.ApplicationStatus = eligibility.Evaluate(c, viewer, occ.Total).String()
	return &d, nil
}

// Apply registers the caller (and partner, for doubles) in one transaction.
// Preconditions are checked in a fixed order, each with its own failure:
// existence, code, authentication, duplicate, then the match-type branch.
// The competition row is locked so the capacity check and the insert cannot
// interleave with a concurrent registration.
func (s *Service) Apply(ctx context.Context, competitionID, userID int64, req ApplyRequest) (*ApplyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("begin registration", err)
	}
	defer tx.Rollback()

	var comp models.Competition
	err = tx.QueryRowContext(ctx, applyLockQuery, competitionID).Scan(
		&comp.ID, &comp.Name, &comp.Status, &comp.Code, &comp.MaxParticipants, &comp.Fee,
		&comp.BankName, &comp.BankAccountNumber, &comp.BankAccountName,
		&comp.DepositDays, &comp.TierID, &comp.MatchTypeGender, &comp.MatchTypeType)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCompetitionNotFoundError(competitionID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("lock competition", err)
	}

	if req.Code != comp.Code {
		return nil, apperrors.NewInvalidCodeError()
	}

	if userID <= 0 {
		return nil, apperrors.NewUnauthorizedError()
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, duplicateQuery, competitionID, userID).Scan(&exists); err != nil {
		return nil, apperrors.NewDatabaseError("check duplicate registration", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateRegistrationError(competitionID, userID)
	}

	var applicant models.User
	err = tx.QueryRowContext(ctx, applyUserQuery, userID).Scan(
		&applicant.ID, &applicant.Username, &applicant.Phone, &applicant.Gender, &applicant.TierID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load applicant", err)
	}

	memberIDs := []int64{userID}
	var partner *models.User
	switch comp.MatchTypeType {
	case models.MatchTypeSingle:
		// no partner checks
	case models.MatchTypeDuo:
		partner, err = s.checkPartner(ctx, tx, comp, &applicant, req.PartnerID)
		if err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, partner.ID)
	default:
		return nil, apperrors.NewMalformedApplicationError("unsupported match type: " + comp.MatchTypeType)
	}

	var count int
	if err := tx.QueryRowContext(ctx, activeCountQuery, competitionID).Scan(&count); err != nil {
		return nil, apperrors.NewDatabaseError("count applicants", err)
	}

	isWaiting := count >= comp.MaxParticipants
	var waitingNumber *int
	if isWaiting {
		n := count - comp.MaxParticipants + 1
		waitingNumber = &n
	}

	expiredDate := comp.PaymentDeadline(time.Now().UTC())

	var infoID int64
	if err := tx.QueryRowContext(ctx, insertInfoQuery, competitionID, isWaiting, waitingNumber, expiredDate).Scan(&infoID); err != nil {
		return nil, apperrors.NewDatabaseError("create registration slot", err)
	}

	for _, memberID := range memberIDs {
		if _, err := tx.ExecContext(ctx, insertApplicantQuery, memberID, infoID); err != nil {
			return nil, apperrors.NewDatabaseError("link applicant", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseError("commit registration", err)
	}

	s.cache.Invalidate(ctx, competitionID)
	metrics.RegistrationsTotal.WithLabelValues(comp.MatchTypeType, strconv.FormatBool(isWaiting)).Inc()

	s.log.Info("registration created", map[string]interface{}{
		"competition_id":    competitionID,
		"applicant_info_id": infoID,
		"user_id":           userID,
		"match_type":        comp.MatchTypeType,
		"is_waiting":        isWaiting,
	})

	resp := &ApplyResponse{
		ApplicantName:     applicant.Username,
		ApplicantPhone:    applicant.Phone,
		CompetitionName:   comp.Name,
		Fee:               comp.Fee,
		BankName:          comp.BankName,
		BankAccountNumber: comp.BankAccountNumber,
		BankAccountName:   comp.BankAccountName,
		ExpiredDate:       expiredDate,
		IsWaiting:         isWaiting,
		WaitingNumber:     waitingNumber,
	}
	if partner != nil {
		resp.PartnerName = partner.Username
		resp.PartnerPhone = partner.Phone
	}
	return resp, nil
}

// checkPartner validates the doubles partner and returns the partner row.
func (s *Service) checkPartner(ctx context.Context, tx *sql.Tx, comp models.Competition, applicant *models.User, partnerID *int64) (*models.User, error) {
	if partnerID == nil {
		return nil, apperrors.NewMalformedApplicationError("partner_id is required for doubles")
	}

	var partner models.User
	err := tx.QueryRowContext(ctx, applyUserQuery, *partnerID).Scan(
		&partner.ID, &partner.Username, &partner.Phone, &partner.Gender, &partner.TierID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewPartnerNotFoundError(*partnerID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load partner", err)
	}

	if comp.MatchTypeGender == models.GenderMix {
		if partner.Gender == applicant.Gender {
			return nil, apperrors.NewMixedGenderRequiredError()
		}
	} else if partner.Gender != comp.MatchTypeGender {
		return nil, apperrors.NewPartnerGenderMismatchError()
	}

	if partner.ID == applicant.ID {
		return nil, apperrors.NewSelfPartnerError()
	}

	if !partner.InTier(comp.TierID) {
		return nil, apperrors.NewPartnerTierMismatchError()
	}

	return &partner, nil
}

// Application returns the caller's own registration for a competition.
func (s *Service) Application(ctx context.Context, competitionID, userID int64) (*ApplicationResponse, error) {
	var resp ApplicationResponse
	err := s.db.QueryRowContext(ctx, applicationQuery, competitionID, userID).Scan(
		&resp.ApplicantInfoID, &resp.CompetitionID, &resp.Status,
		&resp.IsWaiting, &resp.WaitingNumber, &resp.ExpiredDate)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewApplicationNotFoundError(competitionID, userID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("lookup application", err)
	}

	var partnerName string
	err = s.db.QueryRowContext(ctx, applicationPartnerQuery, resp.ApplicantInfoID, userID).Scan(&partnerName)
	if err == nil {
		resp.PartnerName = partnerName
	} else if err != sql.ErrNoRows {
		return nil, apperrors.NewDatabaseError("lookup partner", err)
	}

	return &resp, nil
}

// PartnerSearch finds club members eligible as a doubles partner for the
// competition.
func (s *Service) PartnerSearch(ctx context.Context, competitionID, viewerID int64, query string) ([]PartnerCandidate, error) {
	var comp models.Competition
	var d Detail
	err := s.db.QueryRowContext(ctx, detailQuery, competitionID).Scan(
		&comp.ID, &comp.Name, &d.Description, &comp.StartDate, &comp.EndDate, &comp.Status,
		&comp.Location, &d.Address, &d.Phone, &comp.Fee, &d.TotalRounds, &d.TotalSets,
		&d.Rule, &d.BankName, &d.BankAccountNumber, &d.BankAccountName,
		&d.DepositRefundPolicy, &d.SiteLink,
		&comp.MatchTypeGender, &comp.MatchTypeType, &comp.TierName, &comp.TierID, &comp.MaxParticipants)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCompetitionNotFoundError(competitionID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get competition", err)
	}

	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, apperrors.NewUnauthorizedError()
	}

	return s.search.Search(ctx, comp, viewer, query)
}

// occupancy returns the active and waiting tallies, via cache when possible.
func (s *Service) occupancy(ctx context.Context, competitionID int64) (occupancy, error) {
	if occ, ok := s.cache.Get(ctx, competitionID); ok {
		return occ, nil
	}

	var occ occupancy
	if err := s.db.QueryRowContext(ctx, occupancyQuery, competitionID).Scan(&occ.Total, &occ.Waiting); err != nil {
		return occ, apperrors.NewDatabaseError("count applicants", err)
	}
	s.cache.Put(ctx, competitionID, occ)
	return occ, nil
}

// loadViewer fetches the minimal viewer row for eligibility evaluation.
// Returns nil for anonymous or unknown viewers.
func (s *Service) loadViewer(ctx context.Context, viewerID int64) (*models.User, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	var v models.User
	err := s.db.QueryRowContext(ctx, viewerQuery, viewerID).Scan(&v.ID, &v.Gender, &v.TierID, &v.IsDeleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load viewer", err)
	}
	if v.IsDeleted {
		return nil, nil
	}
	return &v, nil
}

func summarize(c models.Competition) Summary {
	return Summary{
		ID:              c.ID,
		Name:            c.Name,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		Status:          c.Status,
		Location:        c.Location,
		Fee:             c.Fee,
		MatchTypeGender: c.MatchTypeGender,
		MatchTypeType:   c.MatchTypeType,
		TierName:        c.TierName,
		MaxParticipants: c.MaxParticipants,
	}
}
