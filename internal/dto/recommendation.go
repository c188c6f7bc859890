package dto

import (
	"subtrack/internal/models"
	"subtrack/internal/scoring"
)

type RecommendationResponse struct {
	PartnerID   string           `json:"partner_id"`
	Partner     *PartnerResponse `json:"partner,omitempty"`
	Score       float64          `json:"score"`
	Reasons     []scoring.Reason `json:"reasons"`
	Explanation string           `json:"explanation,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

type GenerateRecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	Written         int                      `json:"written"`
	Failed          int                      `json:"failed"`
}

type PartnerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	BasePrice       string   `json:"base_price"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	PremiumDiscount float64  `json:"premium_discount"`
	APIIntegration  bool     `json:"api_integration"`
	Popularity      float64  `json:"popularity"`
}

func NewPartnerResponse(p *models.PartnerService) *PartnerResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &PartnerResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		BasePrice:       p.BasePrice.StringFixed(2),
		Category:        p.Category,
		Tags:            tags,
		PremiumDiscount: p.PremiumDiscount,
		APIIntegration:  p.APIIntegration,
		Popularity:      p.Popularity,
	}
}
