package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"subtrack/internal/billing"
	"subtrack/internal/dto"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCategories seeds category detection alongside the user's own labels.
var DefaultCategories = []string{
	"Video", "Music", "Gaming", "News", "Cloud", "Productivity", "Fitness", "Education", models.CategoryOther,
}

type SubscriptionService struct {
	repo      SubscriptionStore
	assistant Assistant
	now       func() time.Time
	logger    *zap.Logger
}

func NewSubscriptionService(repo SubscriptionStore, assistant Assistant, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		assistant: assistant,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *SubscriptionService) Create(ctx context.Context, userID uuid.UUID, req *dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub.ID = uuid.New()
	sub.UserID = userID
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if sub.Category == "" {
		sub.Category = s.detectCategory(ctx, userID, sub.Name)
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.logger.Info("Subscription created",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", sub.ID.String()),
		zap.String("category", sub.Category),
	)
	return toResponse(sub), nil
}

func (s *SubscriptionService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	sub, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

func (s *SubscriptionService) List(ctx context.Context, userID uuid.UUID) ([]*dto.SubscriptionResponse, error) {
	subs, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	responses := make([]*dto.SubscriptionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = toResponse(sub)
	}
	return responses, nil
}

func (s *SubscriptionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	existing, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sub, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	sub.ID = existing.ID
	sub.UserID = existing.UserID
	sub.CreatedAt = existing.CreatedAt
	if sub.Category == "" {
		sub.Category = existing.Category
	}

	return s.save(ctx, sub, "updated")
}

// Delete cancels the subscription.
func (s *SubscriptionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	s.logger.Info("Subscription cancelled",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", id.String()),
	)
	return nil
}

func (s *SubscriptionService) Upgrade(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, userID, id, "upgraded", billing.Upgrade)
}

func (s *SubscriptionService) Downgrade(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, userID, id, "downgraded", billing.Downgrade)
}

func (s *SubscriptionService) Renew(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, userID, id, "renewed", func(sub models.Subscription) (models.Subscription, error) {
		return billing.Renew(sub), nil
	})
}

func (s *SubscriptionService) transition(
	ctx context.Context,
	userID, id uuid.UUID,
	action string,
	apply func(models.Subscription) (models.Subscription, error),
) (*dto.SubscriptionResponse, error) {
	sub, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next, err := apply(*sub)
	if err != nil {
		return nil, err
	}
	// Stored costs are whole cents.
	next.Cost = billing.Round2(next.Cost)

	return s.save(ctx, &next, action)
}

func (s *SubscriptionService) save(ctx context.Context, sub *models.Subscription, action string) (*dto.SubscriptionResponse, error) {
	sub.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sub); err != nil {
		if isNotFound(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("Subscription "+action,
		zap.String("subscription_id", sub.ID.String()),
		zap.String("billing_cycle", string(sub.BillingCycle)),
		zap.String("cost", sub.Cost.String()),
	)
	return toResponse(sub), nil
}

func (s *SubscriptionService) load(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionService) fromRequest(req *dto.SubscriptionRequest) (*models.Subscription, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	next, err := time.Parse(dto.DateLayout, req.NextBillingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: next_billing_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	sub := &models.Subscription{
		Name:            name,
		Cost:            billing.Round2(req.Cost),
		BillingCycle:    cycle,
		Category:        req.Category,
		NextBillingDate: next,
		Notes:           req.Notes,
		Remind48h:       req.Remind48h,
		Remind24h:       req.Remind24h,
	}
	if err := billing.Validate(*sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(sub.Category) == "" {
		sub.Category = ""
	}
	return sub, nil
}

// detectCategory asks the assistant to pick a label and falls back to Other.
func (s *SubscriptionService) detectCategory(ctx context.Context, userID uuid.UUID, name string) string {
	if s.assistant == nil {
		return models.CategoryOther
	}

	known := append([]string{}, DefaultCategories...)
	if subs, err := s.repo.ListByUserID(ctx, userID); err == nil {
		known = mergeCategories(known, subs)
	}

	category, err := s.assistant.DetectCategory(ctx, name, known)
	if err != nil || category == "" {
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Category detection failed", zap.String("name", name), zap.Error(err))
		}
		return models.CategoryOther
	}
	return category
}

func mergeCategories(known []string, subs []*models.Subscription) []string {
	seen := make(map[string]struct{}, len(known))
	for _, c := range known {
		seen[c] = struct{}{}
	}
	var extra []string
	for _, sub := range subs {
		if _, ok := seen[sub.Category]; ok {
			continue
		}
		seen[sub.Category] = struct{}{}
		extra = append(extra, sub.Category)
	}
	sort.Strings(extra)
	return append(known, extra...)
}

func toResponse(sub *models.Subscription) *dto.SubscriptionResponse {
	resp := dto.NewSubscriptionResponse(sub, billing.Round2(billing.MonthlyEquivalent(*sub)))
	return &resp
}
