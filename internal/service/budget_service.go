package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subtrack/internal/billing"
	"subtrack/internal/dto"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetService struct {
	budgets       BudgetStore
	subscriptions SubscriptionStore
	logger        *zap.Logger
}

func NewBudgetService(budgets BudgetStore, subscriptions SubscriptionStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:       budgets,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// Get returns the user's budget. A user who never saved one has a zero budget.
func (s *BudgetService) Get(ctx context.Context, userID uuid.UUID) (*dto.BudgetResponse, error) {
	b, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return budgetResponse(b), nil
}

// Save replaces the budget wholesale.
func (s *BudgetService) Save(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	if req.MonthlyLimit.IsNegative() {
		return nil, fmt.Errorf("%w: monthly_limit must be non-negative", ErrInvalidInput)
	}

	limits := make(map[string]decimal.Decimal, len(req.CategoryLimits))
	for category, limit := range req.CategoryLimits {
		if strings.TrimSpace(category) == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
		}
		if limit.IsNegative() {
			return nil, fmt.Errorf("%w: limit for %q must be non-negative", ErrInvalidInput, category)
		}
		limits[category] = billing.Round2(limit)
	}

	b := &models.Budget{
		UserID:         userID,
		MonthlyLimit:   billing.Round2(req.MonthlyLimit),
		CategoryLimits: limits,
		UpdatedAt:      time.Now(),
	}
	if err := s.budgets.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.logger.Info("Budget saved",
		zap.String("user_id", userID.String()),
		zap.String("monthly_limit", b.MonthlyLimit.String()),
		zap.Int("category_limits", len(limits)),
	)
	return budgetResponse(b), nil
}

// Analytics aggregates the user's subscriptions against their budget.
func (s *BudgetService) Analytics(ctx context.Context, userID uuid.UUID) (*dto.AnalyticsResponse, error) {
	subs, err := s.subscriptions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	b, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return BuildAnalytics(values(subs), b), nil
}

// BuildAnalytics rounds only at the edge; all sums use exact figures.
func BuildAnalytics(subs []models.Subscription, b *models.Budget) *dto.AnalyticsResponse {
	total := billing.TotalMonthly(subs)
	breakdown := billing.CategoryBreakdown(subs)

	resp := &dto.AnalyticsResponse{
		SubscriptionCount:   len(subs),
		TotalMonthly:        billing.Round2(total),
		YearlyProjection:    billing.Round2(billing.YearlyProjection(subs)),
		CategoryBreakdown:   make([]dto.CategoryAmount, 0, len(breakdown)),
		MonthlyLimit:        b.MonthlyLimit,
		BudgetUtilization:   billing.Round2(billing.BudgetUtilization(total, b.MonthlyLimit)),
		CategoryUtilization: make([]dto.CategoryUsage, 0, len(b.CategoryLimits)),
	}

	for _, ct := range billing.SortedBreakdown(breakdown) {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, dto.CategoryAmount{
			Category: ct.Category,
			Amount:   billing.Round2(ct.Amount),
		})
	}

	usage := billing.CategoryUtilization(breakdown, b.CategoryLimits)
	for _, ct := range billing.SortedBreakdown(usage) {
		resp.CategoryUtilization = append(resp.CategoryUtilization, dto.CategoryUsage{
			Category:    ct.Category,
			Spent:       billing.Round2(breakdown[ct.Category]),
			Limit:       b.CategoryLimits[ct.Category],
			Utilization: billing.Round2(ct.Amount),
		})
	}
	return resp
}

func (s *BudgetService) load(ctx context.Context, userID uuid.UUID) (*models.Budget, error) {
	b, err := s.budgets.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &models.Budget{UserID: userID, CategoryLimits: map[string]decimal.Decimal{}}, nil
		}
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if b.CategoryLimits == nil {
		b.CategoryLimits = map[string]decimal.Decimal{}
	}
	return b, nil
}

func budgetResponse(b *models.Budget) *dto.BudgetResponse {
	resp := &dto.BudgetResponse{
		MonthlyLimit:   b.MonthlyLimit,
		CategoryLimits: b.CategoryLimits,
	}
	if !b.UpdatedAt.IsZero() {
		resp.UpdatedAt = b.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func values(subs []*models.Subscription) []models.Subscription {
	out := make([]models.Subscription, len(subs))
	for i, s := range subs {
		out[i] = *s
	}
	return out
}
