package service

import (
	"context"
	"errors"
	"testing"

	"subtrack/internal/models"
	"subtrack/internal/scoring"
	"subtrack/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var recConfig = &config.RecommendationConfig{Workers: 4, WritesPerSec: 0, WriteBurst: 1}

func partner(name, category string, discount float64, api bool, popularity float64) *models.PartnerService {
	return &models.PartnerService{
		ID:              uuid.New(),
		Name:            name,
		Category:        category,
		PremiumDiscount: discount,
		APIIntegration:  api,
		Popularity:      popularity,
	}
}

func recFixture(t *testing.T) (uuid.UUID, *fakeSubscriptions, []*models.PartnerService) {
	t.Helper()
	userID := uuid.New()
	subs := newFakeSubscriptions(
		&models.Subscription{ID: uuid.New(), UserID: userID, Name: "a", Category: "Music", BillingCycle: models.CycleMonthly},
		&models.Subscription{ID: uuid.New(), UserID: userID, Name: "b", Category: "Music", BillingCycle: models.CycleMonthly},
	)
	catalog := []*models.PartnerService{
		partner("Low", "Books", 0, false, 10),
		partner("Match", "Music", 20, true, 500),
		partner("Plain", "Video", 0, false, 0),
	}
	return userID, subs, catalog
}

func TestGenerateRecommendations(t *testing.T) {
	userID, subs, catalog := recFixture(t)
	recs := newFakeRecommendations(catalog)
	svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, nil, recConfig, zap.NewNop())

	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Written)
	assert.Zero(t, resp.Failed)
	require.Len(t, resp.Recommendations, 3)

	top := resp.Recommendations[0]
	assert.Equal(t, "Match", top.Partner.Name)
	// 30 + 10 + 20 + 20
	assert.InDelta(t, 80.0, top.Score, 1e-9)
	assert.Equal(t, []scoring.Reason{
		{Type: scoring.ReasonCategoryMatch, Weight: 30},
		{Type: scoring.ReasonPremiumDiscount, Weight: 10},
		{Type: scoring.ReasonAPIIntegration, Weight: 20},
		{Type: scoring.ReasonPopularity, Weight: 20},
	}, top.Reasons)

	last := resp.Recommendations[2]
	assert.Equal(t, "Plain", last.Partner.Name)
	assert.Zero(t, last.Score)
	assert.NotNil(t, last.Reasons)
	assert.Empty(t, last.Reasons)

	assert.Len(t, recs.recs, 3)
}

func TestGenerateIsIdempotent(t *testing.T) {
	userID, subs, catalog := recFixture(t)
	recs := newFakeRecommendations(catalog)
	svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, nil, recConfig, zap.NewNop())

	_, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, recs.recs, 3)
}

func TestGenerateCountsFailedWrites(t *testing.T) {
	userID, subs, catalog := recFixture(t)
	recs := newFakeRecommendations(catalog)
	recs.failFor[catalog[1].ID] = true
	svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, nil, recConfig, zap.NewNop())

	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Written)
	assert.Equal(t, 1, resp.Failed)
	assert.Len(t, resp.Recommendations, 3)
	assert.Len(t, recs.recs, 2)
}

func TestGenerateEmptyCatalog(t *testing.T) {
	userID, subs, _ := recFixture(t)
	svc := NewRecommendationService(subs, &fakeCatalog{}, newFakeRecommendations(nil), nil, recConfig, zap.NewNop())

	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
}

func TestGenerateCatalogError(t *testing.T) {
	userID, subs, _ := recFixture(t)
	svc := NewRecommendationService(subs, &fakeCatalog{err: errors.New("db down")}, newFakeRecommendations(nil), nil, recConfig, zap.NewNop())

	_, err := svc.Generate(context.Background(), userID)
	assert.Error(t, err)
}

func TestListRecommendations(t *testing.T) {
	userID, subs, catalog := recFixture(t)
	recs := newFakeRecommendations(catalog)
	svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, nil, recConfig, zap.NewNop())

	_, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, catalog[1].ID.String(), list[0].PartnerID)
	assert.NotEmpty(t, list[0].UpdatedAt)
}

func TestExplainRecommendation(t *testing.T) {
	userID, subs, catalog := recFixture(t)
	recs := newFakeRecommendations(catalog)
	ctx := context.Background()

	t.Run("no assistant", func(t *testing.T) {
		svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, nil, recConfig, zap.NewNop())
		_, err := svc.Explain(ctx, userID, catalog[1].ID)
		assert.ErrorIs(t, err, ErrLLMUnavailable)
	})

	assistant := &fakeAssistant{explanation: "  Fits your music habit.  "}
	svc := NewRecommendationService(subs, &fakeCatalog{partners: catalog}, recs, assistant, recConfig, zap.NewNop())

	t.Run("not generated yet", func(t *testing.T) {
		_, err := svc.Explain(ctx, userID, catalog[1].ID)
		assert.ErrorIs(t, err, ErrRecommendationNotFound)
	})

	_, err := svc.Generate(ctx, userID)
	require.NoError(t, err)

	resp, err := svc.Explain(ctx, userID, catalog[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Fits your music habit.", resp.Explanation)
	assert.Equal(t, []string{"Music"}, assistant.explained.UserCategories)
	assert.Equal(t, "Match", assistant.explained.Partner.Name)

	stored, err := recs.Get(ctx, userID, catalog[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Fits your music habit.", stored.Explanation)
}
