package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"subtrack/internal/models"
	"subtrack/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type fakeSubscriptions struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*models.Subscription
	err  error
}

func newFakeSubscriptions(subs ...*models.Subscription) *fakeSubscriptions {
	f := &fakeSubscriptions{subs: map[uuid.UUID]*models.Subscription{}}
	for _, s := range subs {
		f.subs[s.ID] = s
	}
	return f
}

func (f *fakeSubscriptions) Create(_ context.Context, s *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeSubscriptions) Update(_ context.Context, s *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.subs[s.ID]
	if !ok || existing.UserID != s.UserID {
		return repository.ErrNotFound
	}
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeSubscriptions) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.subs[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.subs, id)
	return nil
}

func (f *fakeSubscriptions) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.subs[id]
	if !ok || existing.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (f *fakeSubscriptions) ListByUserID(_ context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Subscription
	for _, s := range f.subs {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeBudgets struct {
	budgets map[uuid.UUID]*models.Budget
}

func newFakeBudgets() *fakeBudgets {
	return &fakeBudgets{budgets: map[uuid.UUID]*models.Budget{}}
}

func (f *fakeBudgets) Upsert(_ context.Context, b *models.Budget) error {
	f.budgets[b.UserID] = b
	return nil
}

func (f *fakeBudgets) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Budget, error) {
	if b, ok := f.budgets[userID]; ok {
		return b, nil
	}
	return nil, repository.ErrNotFound
}

type fakeRecommendations struct {
	mu       sync.Mutex
	recs     map[[2]uuid.UUID]*models.Recommendation
	partners map[uuid.UUID]*models.PartnerService
	failFor  map[uuid.UUID]bool
}

func newFakeRecommendations(partners []*models.PartnerService) *fakeRecommendations {
	f := &fakeRecommendations{
		recs:     map[[2]uuid.UUID]*models.Recommendation{},
		partners: map[uuid.UUID]*models.PartnerService{},
		failFor:  map[uuid.UUID]bool{},
	}
	for _, p := range partners {
		f.partners[p.ID] = p
	}
	return f
}

func (f *fakeRecommendations) Upsert(_ context.Context, rec *models.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[rec.PartnerID] {
		return errors.New("write failed")
	}
	cp := *rec
	if existing, ok := f.recs[[2]uuid.UUID{rec.UserID, rec.PartnerID}]; ok {
		cp.CreatedAt = existing.CreatedAt
	}
	f.recs[[2]uuid.UUID{rec.UserID, rec.PartnerID}] = &cp
	return nil
}

func (f *fakeRecommendations) UpdateExplanation(_ context.Context, userID, partnerID uuid.UUID, explanation string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[[2]uuid.UUID{userID, partnerID}]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Explanation = explanation
	return nil
}

func (f *fakeRecommendations) Get(_ context.Context, userID, partnerID uuid.UUID) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[[2]uuid.UUID{userID, partnerID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	cp.Partner = f.partners[partnerID]
	return &cp, nil
}

func (f *fakeRecommendations) ListByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Recommendation
	for key, rec := range f.recs {
		if key[0] != userID {
			continue
		}
		cp := *rec
		cp.Partner = f.partners[rec.PartnerID]
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCatalog struct {
	partners []*models.PartnerService
	err      error
}

func (f *fakeCatalog) Catalog(context.Context) ([]*models.PartnerService, error) {
	return f.partners, f.err
}

func (f *fakeCatalog) Search(_ context.Context, text string, limit int) ([]*models.PartnerService, error) {
	var out []*models.PartnerService
	q := strings.ToLower(text)
	for _, p := range f.partners {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, f.err
}

type fakeAssistant struct {
	category    string
	explanation string
	err         error
	known       []string
	explained   ExplainInput
}

func (f *fakeAssistant) DetectCategory(_ context.Context, _ string, known []string) (string, error) {
	f.known = known
	return f.category, f.err
}

func (f *fakeAssistant) ExplainRecommendation(_ context.Context, in ExplainInput) (string, error) {
	f.explained = in
	return f.explanation, f.err
}
