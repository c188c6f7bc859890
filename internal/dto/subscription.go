package dto

import (
	"time"

	"subtrack/internal/models"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// SubscriptionRequest is used for both create and update. Category may be
// left empty to let the service detect one from the name.
type SubscriptionRequest struct {
	Name            string          `json:"name"`
	Cost            decimal.Decimal `json:"cost"`
	BillingCycle    string          `json:"billing_cycle"`
	Category        string          `json:"category"`
	NextBillingDate string          `json:"next_billing_date"`
	Notes           string          `json:"notes"`
	Remind48h       bool            `json:"remind_48h"`
	Remind24h       bool            `json:"remind_24h"`
}

type SubscriptionResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Cost              decimal.Decimal `json:"cost"`
	BillingCycle      string          `json:"billing_cycle"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
	Category          string          `json:"category"`
	NextBillingDate   string          `json:"next_billing_date"`
	Notes             string          `json:"notes,omitempty"`
	Remind48h         bool            `json:"remind_48h"`
	Remind24h         bool            `json:"remind_24h"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func NewSubscriptionResponse(s *models.Subscription, monthly decimal.Decimal) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                s.ID.String(),
		Name:              s.Name,
		Cost:              s.Cost,
		BillingCycle:      string(s.BillingCycle),
		MonthlyEquivalent: monthly,
		Category:          s.Category,
		NextBillingDate:   s.NextBillingDate.Format(DateLayout),
		Notes:             s.Notes,
		Remind48h:         s.Remind48h,
		Remind24h:         s.Remind24h,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
}
