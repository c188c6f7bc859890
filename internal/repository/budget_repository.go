package repository

import (
	"context"

	"subtrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert replaces the user's budget row wholesale.
func (r *BudgetRepository) Upsert(ctx context.Context, b *models.Budget) error {
	limits := b.CategoryLimits
	if limits == nil {
		limits = map[string]decimal.Decimal{}
	}

	query := squirrel.Insert("budgets").
		Columns("user_id", "monthly_limit", "category_limits", "updated_at").
		Values(b.UserID, b.MonthlyLimit, limits, b.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"monthly_limit = EXCLUDED.monthly_limit, " +
			"category_limits = EXCLUDED.category_limits, " +
			"updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Budget, error) {
	query := squirrel.Select("user_id", "monthly_limit", "category_limits", "updated_at").
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(&b.UserID, &b.MonthlyLimit, &b.CategoryLimits, &b.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}
