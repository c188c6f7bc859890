package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migrations are idempotent and run in order on every start.
var Migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		cost NUMERIC(12, 2) NOT NULL CHECK (cost >= 0),
		billing_cycle VARCHAR(16) NOT NULL CHECK (billing_cycle IN ('monthly', 'yearly')),
		category VARCHAR(255) NOT NULL,
		next_billing_date DATE NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		remind_48h BOOLEAN NOT NULL DEFAULT FALSE,
		remind_24h BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		monthly_limit NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (monthly_limit >= 0),
		category_limits JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS partner_services (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) UNIQUE NOT NULL,
		base_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		category VARCHAR(255) NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		premium_discount DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (premium_discount BETWEEN 0 AND 100),
		api_integration BOOLEAN NOT NULL DEFAULT FALSE,
		popularity DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (popularity >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS recommendations (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		partner_id UUID NOT NULL REFERENCES partner_services(id) ON DELETE CASCADE,
		score DOUBLE PRECISION NOT NULL,
		reasons JSONB NOT NULL DEFAULT '[]',
		explanation TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, partner_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subscriptions_user_id ON subscriptions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_next_billing_date ON subscriptions(next_billing_date)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_user_score ON recommendations(user_id, score DESC)`,
}

func Migrate(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	for i, migration := range Migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i, err)
		}
	}
	logger.Info("Database migrations applied", zap.Int("count", len(Migrations)))
	return nil
}
