package models

import (
	"time"

	"subtrack/internal/scoring"

	"github.com/google/uuid"
)

// Recommendation is keyed by (UserID, PartnerID). Regenerating replaces the row.
type Recommendation struct {
	UserID      uuid.UUID        `db:"user_id"`
	PartnerID   uuid.UUID        `db:"partner_id"`
	Score       float64          `db:"score"`
	Reasons     []scoring.Reason `db:"reasons"`
	Explanation string           `db:"explanation"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`

	// Partner is populated by list queries that join partner_services.
	Partner *PartnerService `db:"-"`
}
