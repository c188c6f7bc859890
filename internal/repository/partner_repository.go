package repository

import (
	"context"
	"strings"

	"subtrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var partnerColumns = []string{
	"id", "name", "base_price", "category", "tags", "premium_discount",
	"api_integration", "popularity", "created_at",
}

type PartnerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPartnerRepository(db *pgxpool.Pool, logger *zap.Logger) *PartnerRepository {
	return &PartnerRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a catalog entry or refreshes the entry with the same name.
func (r *PartnerRepository) Upsert(ctx context.Context, p *models.PartnerService) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	query := squirrel.Insert("partner_services").
		Columns(partnerColumns...).
		Values(p.ID, p.Name, p.BasePrice, p.Category, tags, p.PremiumDiscount,
			p.APIIntegration, p.Popularity, p.CreatedAt).
		Suffix("ON CONFLICT (name) DO UPDATE SET " +
			"base_price = EXCLUDED.base_price, " +
			"category = EXCLUDED.category, " +
			"tags = EXCLUDED.tags, " +
			"premium_discount = EXCLUDED.premium_discount, " +
			"api_integration = EXCLUDED.api_integration, " +
			"popularity = EXCLUDED.popularity").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PartnerRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM partner_services")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PartnerRepository) List(ctx context.Context) ([]*models.PartnerService, error) {
	query := squirrel.Select(partnerColumns...).
		From("partner_services").
		OrderBy("popularity DESC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PartnerService, error) {
	query := squirrel.Select(partnerColumns...).
		From("partner_services").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPartner(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Search matches name or category case-insensitively. The text is matched
// literally, so % and _ are not wildcards.
func (r *PartnerRepository) Search(ctx context.Context, text string, limit int) ([]*models.PartnerService, error) {
	return r.list(ctx, searchQuery(text, limit))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func searchQuery(text string, limit int) squirrel.SelectBuilder {
	pattern := containsPattern(text)
	return squirrel.Select(partnerColumns...).
		From("partner_services").
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"category": pattern},
		}).
		OrderBy("popularity DESC", "name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *PartnerRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.PartnerService, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.PartnerService
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, rows.Err()
}

func scanPartner(row pgx.Row) (*models.PartnerService, error) {
	var p models.PartnerService
	if err := row.Scan(
		&p.ID, &p.Name, &p.BasePrice, &p.Category, &p.Tags, &p.PremiumDiscount,
		&p.APIIntegration, &p.Popularity, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
