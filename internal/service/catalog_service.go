package service

import (
	"context"
	"fmt"
	"strings"

	"subtrack/internal/dto"
	"subtrack/internal/models"

	"go.uber.org/zap"
)

const maxSearchResults = 50

type CatalogService struct {
	catalog  CatalogSource
	searcher PartnerSearcher
	logger   *zap.Logger
}

func NewCatalogService(catalog CatalogSource, searcher PartnerSearcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		searcher: searcher,
		logger:   logger,
	}
}

// Search returns partners whose name or category contains q. An empty query
// returns the whole catalog.
func (s *CatalogService) Search(ctx context.Context, q string) ([]*dto.PartnerResponse, error) {
	q = strings.TrimSpace(q)

	var (
		partners []*models.PartnerService
		err      error
	)
	if q == "" {
		partners, err = s.catalog.Catalog(ctx)
	} else {
		partners, err = s.searcher.Search(ctx, q, maxSearchResults)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search partners: %w", err)
	}

	s.logger.Debug("Partner search", zap.String("query", q), zap.Int("results", len(partners)))

	out := make([]*dto.PartnerResponse, len(partners))
	for i, p := range partners {
		out[i] = dto.NewPartnerResponse(p)
	}
	return out, nil
}
