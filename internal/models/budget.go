package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is stored one row per user. Categories missing from CategoryLimits
// have no limit.
type Budget struct {
	UserID         uuid.UUID                  `db:"user_id"`
	MonthlyLimit   decimal.Decimal            `db:"monthly_limit"`
	CategoryLimits map[string]decimal.Decimal `db:"category_limits"`
	UpdatedAt      time.Time                  `db:"updated_at"`
}
