package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartnerService struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	BasePrice       decimal.Decimal `db:"base_price" json:"base_price"`
	Category        string          `db:"category" json:"category"`
	Tags            []string        `db:"tags" json:"tags"`
	PremiumDiscount float64         `db:"premium_discount" json:"premium_discount"` // percent, 0..100
	APIIntegration  bool            `db:"api_integration" json:"api_integration"`
	Popularity      float64         `db:"popularity" json:"popularity"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
