package repository

import (
	"context"

	"subtrack/internal/models"
	"subtrack/internal/scoring"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RecommendationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, logger *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a single (user, partner) row, replacing the previous score,
// reasons and explanation. Each call is its own statement.
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	reasons := rec.Reasons
	if reasons == nil {
		reasons = []scoring.Reason{}
	}

	query := squirrel.Insert("recommendations").
		Columns("user_id", "partner_id", "score", "reasons", "explanation", "created_at", "updated_at").
		Values(rec.UserID, rec.PartnerID, rec.Score, reasons, rec.Explanation, rec.CreatedAt, rec.UpdatedAt).
		Suffix("ON CONFLICT (user_id, partner_id) DO UPDATE SET " +
			"score = EXCLUDED.score, " +
			"reasons = EXCLUDED.reasons, " +
			"explanation = EXCLUDED.explanation, " +
			"updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecommendationRepository) UpdateExplanation(ctx context.Context, userID, partnerID uuid.UUID, explanation string) error {
	query := squirrel.Update("recommendations").
		Set("explanation", explanation).
		Where(squirrel.Eq{"user_id": userID, "partner_id": partnerID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecommendationRepository) Get(ctx context.Context, userID, partnerID uuid.UUID) (*models.Recommendation, error) {
	recs, err := r.list(ctx, squirrel.Eq{"r.user_id": userID, "r.partner_id": partnerID}, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

// ListByUserID returns the user's recommendations, best first, with the
// partner attached.
func (r *RecommendationRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recommendation, error) {
	return r.list(ctx, squirrel.Eq{"r.user_id": userID}, limit)
}

func (r *RecommendationRepository) list(ctx context.Context, where squirrel.Eq, limit int) ([]*models.Recommendation, error) {
	query := squirrel.Select(
		"r.user_id", "r.partner_id", "r.score", "r.reasons", "r.explanation", "r.created_at", "r.updated_at",
		"p.id", "p.name", "p.base_price", "p.category", "p.tags", "p.premium_discount",
		"p.api_integration", "p.popularity", "p.created_at",
	).
		From("recommendations r").
		Join("partner_services p ON p.id = r.partner_id").
		Where(where).
		OrderBy("r.score DESC", "p.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		var p models.PartnerService
		if err := rows.Scan(
			&rec.UserID, &rec.PartnerID, &rec.Score, &rec.Reasons, &rec.Explanation, &rec.CreatedAt, &rec.UpdatedAt,
			&p.ID, &p.Name, &p.BasePrice, &p.Category, &p.Tags, &p.PremiumDiscount,
			&p.APIIntegration, &p.Popularity, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Partner = &p
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
