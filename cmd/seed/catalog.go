package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type partnerEntry struct {
	Name            string          `json:"name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	Category        string          `json:"category"`
	Tags            []string        `json:"tags"`
	PremiumDiscount float64         `json:"premium_discount"`
	APIIntegration  bool            `json:"api_integration"`
	Popularity      float64         `json:"popularity"`
}

type partnerWriter interface {
	Upsert(ctx context.Context, p *models.PartnerService) error
	DeleteAll(ctx context.Context) (int64, error)
}

type seedOptions struct {
	File      string
	StateFile string
	Truncate  bool
	Force     bool
}

// seedState remembers the hash of the last loaded catalog file.
type seedState struct {
	FileHash string    `json:"file_hash"`
	LoadedAt time.Time `json:"loaded_at"`
}

// parseCatalog decodes and validates a catalog file. Names must be unique.
func parseCatalog(r io.Reader) ([]*models.PartnerService, error) {
	var entries []partnerEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	now := time.Now()
	seen := make(map[string]struct{}, len(entries))
	partners := make([]*models.PartnerService, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("entry %d: name is required", i)
		case e.BasePrice.IsNegative():
			return nil, fmt.Errorf("entry %q: base_price must be non-negative", name)
		case e.PremiumDiscount < 0 || e.PremiumDiscount > 100:
			return nil, fmt.Errorf("entry %q: premium_discount must be within 0..100", name)
		case e.Popularity < 0:
			return nil, fmt.Errorf("entry %q: popularity must be non-negative", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("entry %q: duplicate name", name)
		}
		seen[name] = struct{}{}

		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = models.CategoryOther
		}

		partners = append(partners, &models.PartnerService{
			ID:              uuid.New(),
			Name:            name,
			BasePrice:       e.BasePrice.Round(2),
			Category:        category,
			Tags:            e.Tags,
			PremiumDiscount: e.PremiumDiscount,
			APIIntegration:  e.APIIntegration,
			Popularity:      e.Popularity,
			CreatedAt:       now,
		})
	}
	return partners, nil
}

// seedPartners loads opts.File into repo and returns how many entries were
// written. An unchanged file is skipped unless opts.Force is set.
func seedPartners(ctx context.Context, repo partnerWriter, opts seedOptions, logger *zap.Logger) (int, error) {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog file: %w", err)
	}
	hash := fmt.Sprintf("%x", md5.Sum(data))

	state, err := loadState(opts.StateFile)
	if err != nil {
		logger.Warn("Ignoring unreadable seed state", zap.Error(err))
		state = &seedState{}
	}
	if !opts.Force && !opts.Truncate && state.FileHash == hash {
		logger.Info("Catalog unchanged, skipping", zap.String("file", opts.File))
		return 0, nil
	}

	partners, err := parseCatalog(strings.NewReader(string(data)))
	if err != nil {
		return 0, err
	}

	if opts.Truncate {
		removed, err := repo.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate catalog: %w", err)
		}
		logger.Info("Catalog truncated", zap.Int64("removed", removed))
	}

	var errs []error
	loaded := 0
	for _, p := range partners {
		if err := repo.Upsert(ctx, p); err != nil {
			logger.Error("Failed to upsert partner", zap.String("name", p.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		loaded++
	}

	logger.Info("Partner catalog loaded",
		zap.String("file", opts.File),
		zap.Int("loaded", loaded),
		zap.Int("failed", len(errs)),
	)

	if len(errs) > 0 {
		return loaded, errors.Join(errs...)
	}

	state = &seedState{FileHash: hash, LoadedAt: time.Now()}
	if err := saveState(opts.StateFile, state); err != nil {
		logger.Warn("Failed to save seed state", zap.Error(err))
	}
	return loaded, nil
}

func loadState(path string) (*seedState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || len(data) == 0 {
		return &seedState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seed state: %w", err)
	}

	var state seedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse seed state: %w", err)
	}
	return &state, nil
}

func saveState(path string, state *seedState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
