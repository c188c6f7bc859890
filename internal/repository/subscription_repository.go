package repository

import (
	"context"
	"time"

	"subtrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var subscriptionColumns = []string{
	"id", "user_id", "name", "cost", "billing_cycle", "category", "next_billing_date",
	"notes", "remind_48h", "remind_24h", "created_at", "updated_at",
}

type SubscriptionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSubscriptionRepository(db *pgxpool.Pool, logger *zap.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *models.Subscription) error {
	query := squirrel.Insert("subscriptions").
		Columns(subscriptionColumns...).
		Values(s.ID, s.UserID, s.Name, s.Cost, s.BillingCycle, s.Category, s.NextBillingDate,
			s.Notes, s.Remind48h, s.Remind24h, s.CreatedAt, s.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *models.Subscription) error {
	query := squirrel.Update("subscriptions").
		SetMap(map[string]interface{}{
			"name":              s.Name,
			"cost":              s.Cost,
			"billing_cycle":     s.BillingCycle,
			"category":          s.Category,
			"next_billing_date": s.NextBillingDate,
			"notes":             s.Notes,
			"remind_48h":        s.Remind48h,
			"remind_24h":        s.Remind24h,
			"updated_at":        s.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": s.ID, "user_id": s.UserID}).
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

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("subscriptions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
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

func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	query := squirrel.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanSubscription(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *SubscriptionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	query := squirrel.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("next_billing_date ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

// ListDueBetween returns subscriptions of all users billed in (from, to].
func (r *SubscriptionRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Subscription, error) {
	query := squirrel.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Gt{"next_billing_date": from}).
		Where(squirrel.LtOrEq{"next_billing_date": to}).
		Where(squirrel.Or{squirrel.Eq{"remind_48h": true}, squirrel.Eq{"remind_24h": true}}).
		OrderBy("next_billing_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *SubscriptionRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Subscription, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var s models.Subscription
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Cost, &s.BillingCycle, &s.Category, &s.NextBillingDate,
		&s.Notes, &s.Remind48h, &s.Remind24h, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
