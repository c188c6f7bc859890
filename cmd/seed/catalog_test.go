package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	upserted []*models.PartnerService
	deleted  int
	failOn   string
}

func (f *fakeWriter) Upsert(_ context.Context, p *models.PartnerService) error {
	if p.Name == f.failOn {
		return errors.New("boom")
	}
	f.upserted = append(f.upserted, p)
	return nil
}

func (f *fakeWriter) DeleteAll(context.Context) (int64, error) {
	f.deleted++
	return int64(len(f.upserted)), nil
}

func TestParseCatalog(t *testing.T) {
	partners, err := parseCatalog(strings.NewReader(`[
		{"name": " Alpha ", "base_price": "9.999", "category": "Video", "premium_discount": 20, "popularity": 5},
		{"name": "Beta", "base_price": 5, "category": ""}
	]`))
	require.NoError(t, err)
	require.Len(t, partners, 2)

	assert.Equal(t, "Alpha", partners[0].Name)
	assert.Equal(t, "10", partners[0].BasePrice.String())
	assert.Equal(t, models.CategoryOther, partners[1].Category)
	assert.NotEqual(t, partners[0].ID, partners[1].ID)
}

func TestParseCatalogRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing name":   `[{"name": ""}]`,
		"negative price": `[{"name": "a", "base_price": "-1"}]`,
		"discount range": `[{"name": "a", "premium_discount": 120}]`,
		"popularity":     `[{"name": "a", "popularity": -3}]`,
		"duplicate":      `[{"name": "a"}, {"name": "a"}]`,
		"not json":       `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func writeCatalog(t *testing.T, body string) seedOptions {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "partners.json")
	require.NoError(t, os.WriteFile(file, []byte(body), 0644))
	return seedOptions{File: file, StateFile: filepath.Join(dir, ".seed_state.json")}
}

func TestSeedPartnersSkipsUnchangedFile(t *testing.T) {
	opts := writeCatalog(t, `[{"name": "Alpha"}, {"name": "Beta"}]`)
	repo := &fakeWriter{}

	n, err := seedPartners(context.Background(), repo, opts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = seedPartners(context.Background(), repo, opts, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)

	opts.Force = true
	n, err = seedPartners(context.Background(), repo, opts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.upserted, 4)
}

func TestSeedPartnersTruncate(t *testing.T) {
	opts := writeCatalog(t, `[{"name": "Alpha"}]`)
	opts.Truncate = true
	repo := &fakeWriter{}

	_, err := seedPartners(context.Background(), repo, opts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleted)
}

func TestSeedPartnersContinuesAfterFailure(t *testing.T) {
	opts := writeCatalog(t, `[{"name": "Alpha"}, {"name": "Beta"}, {"name": "Gamma"}]`)
	repo := &fakeWriter{failOn: "Beta"}

	n, err := seedPartners(context.Background(), repo, opts, zap.NewNop())
	assert.Error(t, err)
	assert.Equal(t, 2, n)

	// a failed run is not remembered
	_, statErr := os.Stat(opts.StateFile)
	assert.True(t, os.IsNotExist(statErr))
}
