package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// CategoryOther is assigned when no category was given and none could be detected.
const CategoryOther = "Other"

type Subscription struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	Name            string          `db:"name"`
	Cost            decimal.Decimal `db:"cost"`
	BillingCycle    BillingCycle    `db:"billing_cycle"`
	Category        string          `db:"category"`
	NextBillingDate time.Time       `db:"next_billing_date"`
	Notes           string          `db:"notes"`
	Remind48h       bool            `db:"remind_48h"`
	Remind24h       bool            `db:"remind_24h"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
