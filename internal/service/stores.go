package service

import (
	"context"
	"errors"

	"subtrack/internal/models"
	"subtrack/internal/repository"
	"subtrack/internal/scoring"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserExists             = errors.New("user already exists")
	ErrInvalidInput           = errors.New("invalid input")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrLLMUnavailable         = errors.New("llm assistant is not configured")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type SubscriptionStore interface {
	Create(ctx context.Context, s *models.Subscription) error
	Update(ctx context.Context, s *models.Subscription) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error)
}

type BudgetStore interface {
	Upsert(ctx context.Context, b *models.Budget) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Budget, error)
}

type RecommendationStore interface {
	Upsert(ctx context.Context, rec *models.Recommendation) error
	UpdateExplanation(ctx context.Context, userID, partnerID uuid.UUID, explanation string) error
	Get(ctx context.Context, userID, partnerID uuid.UUID) (*models.Recommendation, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recommendation, error)
}

type CatalogSource interface {
	Catalog(ctx context.Context) ([]*models.PartnerService, error)
}

type PartnerSearcher interface {
	Search(ctx context.Context, text string, limit int) ([]*models.PartnerService, error)
}

// Assistant is the LLM-backed helper. It is optional: services accept nil.
type Assistant interface {
	DetectCategory(ctx context.Context, name string, known []string) (string, error)
	ExplainRecommendation(ctx context.Context, in ExplainInput) (string, error)
}

type ExplainInput struct {
	Partner        *models.PartnerService
	Score          float64
	Reasons        []scoring.Reason
	UserCategories []string
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
