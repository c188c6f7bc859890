package dto

import "github.com/shopspring/decimal"

type BudgetRequest struct {
	MonthlyLimit   decimal.Decimal            `json:"monthly_limit"`
	CategoryLimits map[string]decimal.Decimal `json:"category_limits"`
}

type BudgetResponse struct {
	MonthlyLimit   decimal.Decimal            `json:"monthly_limit"`
	CategoryLimits map[string]decimal.Decimal `json:"category_limits"`
	UpdatedAt      string                     `json:"updated_at,omitempty"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type CategoryUsage struct {
	Category    string          `json:"category"`
	Spent       decimal.Decimal `json:"spent"`
	Limit       decimal.Decimal `json:"limit"`
	Utilization decimal.Decimal `json:"utilization"`
}

// AnalyticsResponse amounts are rounded to two decimals.
type AnalyticsResponse struct {
	SubscriptionCount   int              `json:"subscription_count"`
	TotalMonthly        decimal.Decimal  `json:"total_monthly"`
	YearlyProjection    decimal.Decimal  `json:"yearly_projection"`
	CategoryBreakdown   []CategoryAmount `json:"category_breakdown"`
	MonthlyLimit        decimal.Decimal  `json:"monthly_limit"`
	BudgetUtilization   decimal.Decimal  `json:"budget_utilization"`
	CategoryUtilization []CategoryUsage  `json:"category_utilization"`
}
