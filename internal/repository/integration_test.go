//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"subtrack/internal/models"
	"subtrack/internal/scoring"
	"subtrack/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zap.NewNop()))
	return pool
}

func createUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New(),
		Username:     "it",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(pool, zap.NewNop()).Create(context.Background(), u))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

func createPartner(t *testing.T, pool *pgxpool.Pool, name, category string) *models.PartnerService {
	t.Helper()
	p := &models.PartnerService{
		ID:              uuid.New(),
		Name:            name,
		BasePrice:       decimal.RequireFromString("9.99"),
		Category:        category,
		Tags:            []string{"a", "b"},
		PremiumDiscount: 20,
		APIIntegration:  true,
		Popularity:      50,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, NewPartnerRepository(pool, zap.NewNop()).Upsert(context.Background(), p))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM partner_services WHERE id = $1", p.ID)
	})
	return p
}

func TestBudgetCategoryLimitsRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	user := createUser(t, pool)
	repo := NewBudgetRepository(pool, zap.NewNop())

	_, err := repo.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	b := &models.Budget{
		UserID:       user.ID,
		MonthlyLimit: decimal.RequireFromString("150.00"),
		CategoryLimits: map[string]decimal.Decimal{
			"Video": decimal.RequireFromString("30.50"),
			"Music": decimal.RequireFromString("9.99"),
		},
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, b))

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.MonthlyLimit.Equal(b.MonthlyLimit))
	require.Len(t, got.CategoryLimits, 2)
	assert.True(t, got.CategoryLimits["Video"].Equal(decimal.RequireFromString("30.5")))
	assert.True(t, got.CategoryLimits["Music"].Equal(decimal.RequireFromString("9.99")))

	b.CategoryLimits = nil
	require.NoError(t, repo.Upsert(ctx, b))
	got, err = repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryLimits)
}

func TestRecommendationReasonsRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	user := createUser(t, pool)
	partner := createPartner(t, pool, "it-"+uuid.NewString(), "Video")
	repo := NewRecommendationRepository(pool, zap.NewNop())

	now := time.Now().UTC()
	rec := &models.Recommendation{
		UserID:    user.ID,
		PartnerID: partner.ID,
		Score:     65,
		Reasons: []scoring.Reason{
			{Type: scoring.ReasonCategoryMatch, Weight: 30},
			{Type: scoring.ReasonPremiumDiscount, Weight: 10},
			{Type: scoring.ReasonAPIIntegration, Weight: 20},
			{Type: scoring.ReasonPopularity, Weight: 5},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Upsert(ctx, rec))
	require.NoError(t, repo.UpdateExplanation(ctx, user.ID, partner.ID, "fits your video subscriptions"))

	got, err := repo.Get(ctx, user.ID, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Reasons, got.Reasons)
	assert.Equal(t, "fits your video subscriptions", got.Explanation)
	require.NotNil(t, got.Partner)
	assert.Equal(t, partner.Name, got.Partner.Name)
	assert.Equal(t, []string{"a", "b"}, got.Partner.Tags)

	rec.Score = 0
	rec.Reasons = nil
	require.NoError(t, repo.Upsert(ctx, rec))
	list, err := repo.ListByUserID(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []scoring.Reason{}, list[0].Reasons)

	err = repo.UpdateExplanation(ctx, user.ID, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	tag := uuid.NewString()[:8]
	createPartner(t, pool, "it-"+tag+"-100% off", "Video")
	createPartner(t, pool, "it-"+tag+"-1000 off", "Video")
	repo := NewPartnerRepository(pool, zap.NewNop())

	found, err := repo.Search(ctx, tag+"-100%", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "it-"+tag+"-100% off", found[0].Name)
}

func TestSubscriptionDueWindow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	user := createUser(t, pool)
	repo := NewSubscriptionRepository(pool, zap.NewNop())

	day := time.Date(2031, 5, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	sub := &models.Subscription{
		ID:              uuid.New(),
		UserID:          user.ID,
		Name:            "Music",
		Cost:            decimal.RequireFromString("9.99"),
		BillingCycle:    models.CycleMonthly,
		Category:        "Music",
		NextBillingDate: day,
		Remind48h:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.Create(ctx, sub))

	got, err := repo.GetByID(ctx, user.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, got.Cost.Equal(sub.Cost))
	assert.Equal(t, models.CycleMonthly, got.BillingCycle)
	assert.True(t, got.NextBillingDate.Equal(day))

	due, err := repo.ListDueBetween(ctx, day.Add(-48*time.Hour), day.Add(24*time.Hour))
	require.NoError(t, err)
	var ids []uuid.UUID
	for _, d := range due {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, sub.ID)

	_, err = repo.GetByID(ctx, uuid.New(), sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
