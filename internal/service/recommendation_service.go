package service

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"subtrack/internal/dto"
	"subtrack/internal/models"
	"subtrack/internal/scoring"
	"subtrack/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	maxListedRecommendations = 100
	maxExplanationLength     = 2000
)

type RecommendationService struct {
	subscriptions   SubscriptionStore
	catalog         CatalogSource
	recommendations RecommendationStore
	assistant       Assistant
	workers         int
	limiter         *rate.Limiter
	explainTimeout  time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

func NewRecommendationService(
	subscriptions SubscriptionStore,
	catalog CatalogSource,
	recommendations RecommendationStore,
	assistant Assistant,
	cfg *config.RecommendationConfig,
	logger *zap.Logger,
) *RecommendationService {
	limit := rate.Inf
	if cfg.WritesPerSec > 0 {
		limit = rate.Limit(cfg.WritesPerSec)
	}
	burst := cfg.WriteBurst
	if burst <= 0 {
		burst = 1
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &RecommendationService{
		subscriptions:   subscriptions,
		catalog:         catalog,
		recommendations: recommendations,
		assistant:       assistant,
		workers:         workers,
		limiter:         rate.NewLimiter(limit, burst),
		explainTimeout:  cfg.ExplainTimeout,
		now:             time.Now,
		logger:          logger,
	}
}

// Generate scores the whole catalog for the user and persists every pair.
// Writes are independent: a failed write is counted and the rest continue.
func (s *RecommendationService) Generate(ctx context.Context, userID uuid.UUID) (*dto.GenerateRecommendationsResponse, error) {
	subs, err := s.subscriptions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load partner catalog: %w", err)
	}

	categories := userCategories(subs)
	partners := make(map[uuid.UUID]*models.PartnerService, len(catalog))
	candidates := make([]scoring.Candidate, len(catalog))
	for i, p := range catalog {
		partners[p.ID] = p
		candidates[i] = scoring.Candidate{
			ID:              p.ID,
			Category:        p.Category,
			PremiumDiscount: p.PremiumDiscount,
			APIIntegration:  p.APIIntegration,
			Popularity:      p.Popularity,
		}
	}

	results := scoring.ScoreCatalog(scoring.NewCategorySet(categories...), candidates)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return partners[results[i].CandidateID].Name < partners[results[j].CandidateID].Name
	})

	written, failed := s.persist(ctx, userID, results)

	resp := &dto.GenerateRecommendationsResponse{
		Recommendations: make([]dto.RecommendationResponse, len(results)),
		Written:         written,
		Failed:          failed,
	}
	for i, r := range results {
		resp.Recommendations[i] = dto.RecommendationResponse{
			PartnerID: r.CandidateID.String(),
			Partner:   dto.NewPartnerResponse(partners[r.CandidateID]),
			Score:     r.Score,
			Reasons:   r.Reasons,
		}
	}

	s.logger.Info("Recommendations generated",
		zap.String("user_id", userID.String()),
		zap.Int("candidates", len(results)),
		zap.Int("written", written),
		zap.Int("failed", failed),
	)
	return resp, nil
}

func (s *RecommendationService) persist(ctx context.Context, userID uuid.UUID, results []scoring.Result) (int, int) {
	var written, failed atomic.Int64
	now := s.now()

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, r := range results {
		g.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				failed.Add(1)
				return nil
			}
			rec := &models.Recommendation{
				UserID:    userID,
				PartnerID: r.CandidateID,
				Score:     r.Score,
				Reasons:   r.Reasons,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.recommendations.Upsert(ctx, rec); err != nil {
				failed.Add(1)
				s.logger.Warn("Failed to save recommendation",
					zap.String("user_id", userID.String()),
					zap.String("partner_id", r.CandidateID.String()),
					zap.Error(err),
				)
				return nil
			}
			written.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(written.Load()), int(failed.Load())
}

func (s *RecommendationService) List(ctx context.Context, userID uuid.UUID) ([]dto.RecommendationResponse, error) {
	recs, err := s.recommendations.ListByUserID(ctx, userID, maxListedRecommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}

	out := make([]dto.RecommendationResponse, len(recs))
	for i, rec := range recs {
		out[i] = recommendationResponse(rec)
	}
	return out, nil
}

// Explain asks the assistant to describe a stored recommendation and saves
// the text alongside it.
func (s *RecommendationService) Explain(ctx context.Context, userID, partnerID uuid.UUID) (*dto.RecommendationResponse, error) {
	if s.assistant == nil {
		return nil, ErrLLMUnavailable
	}

	rec, err := s.recommendations.Get(ctx, userID, partnerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("failed to load recommendation: %w", err)
	}

	subs, err := s.subscriptions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	explainCtx := ctx
	if s.explainTimeout > 0 {
		var cancel context.CancelFunc
		explainCtx, cancel = context.WithTimeout(ctx, s.explainTimeout)
		defer cancel()
	}

	text, err := s.assistant.ExplainRecommendation(explainCtx, ExplainInput{
		Partner:        rec.Partner,
		Score:          rec.Score,
		Reasons:        rec.Reasons,
		UserCategories: userCategories(subs),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to explain recommendation: %w", err)
	}

	rec.Explanation = truncate(sanitizeUTF8(text), maxExplanationLength)
	if err := s.recommendations.UpdateExplanation(ctx, userID, partnerID, rec.Explanation); err != nil {
		if isNotFound(err) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("failed to save explanation: %w", err)
	}

	resp := recommendationResponse(rec)
	return &resp, nil
}

// userCategories returns the distinct categories in first-seen order.
func userCategories(subs []*models.Subscription) []string {
	seen := make(map[string]struct{}, len(subs))
	var out []string
	for _, sub := range subs {
		if _, ok := seen[sub.Category]; ok {
			continue
		}
		seen[sub.Category] = struct{}{}
		out = append(out, sub.Category)
	}
	return out
}

func recommendationResponse(rec *models.Recommendation) dto.RecommendationResponse {
	reasons := rec.Reasons
	if reasons == nil {
		reasons = []scoring.Reason{}
	}
	resp := dto.RecommendationResponse{
		PartnerID:   rec.PartnerID.String(),
		Score:       rec.Score,
		Reasons:     reasons,
		Explanation: rec.Explanation,
	}
	if rec.Partner != nil {
		resp.Partner = dto.NewPartnerResponse(rec.Partner)
	}
	if !rec.UpdatedAt.IsZero() {
		resp.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
