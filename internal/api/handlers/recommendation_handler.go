package handlers

import (
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService     *service.RecommendationService
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewRecommendationHandler(
	recService *service.RecommendationService,
	catalogService *service.CatalogService,
	logger *zap.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recService:     recService,
		catalogService: catalogService,
		logger:         logger,
	}
}

// SearchPartners godoc
// @Summary Search partner services
// @Description Case-insensitive match on name or category. Empty q returns the whole catalog.
// @Tags recommendations
// @Produce json
// @Param q query string false "Search text"
// @Security Bearer
// @Success 200 {array} dto.PartnerResponse
// @Router /api/v1/partners [get]
func (h *RecommendationHandler) SearchPartners(c *fiber.Ctx) error {
	partners, err := h.catalogService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search partners")
	}

	return c.JSON(partners)
}

// GenerateRecommendations godoc
// @Summary Generate recommendations
// @Description Scores every partner service against the user's subscription categories and stores the results
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.GenerateRecommendationsResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/recommendations/generate [post]
func (h *RecommendationHandler) GenerateRecommendations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	result, err := h.recService.Generate(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate recommendations")
	}

	return c.JSON(result)
}

// ListRecommendations godoc
// @Summary List recommendations
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.RecommendationResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/recommendations [get]
func (h *RecommendationHandler) ListRecommendations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recs, err := h.recService.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list recommendations")
	}

	return c.JSON(recs)
}

// ExplainRecommendation godoc
// @Summary Explain a recommendation
// @Description Asks GigaChat to explain why the partner was recommended
// @Tags recommendations
// @Produce json
// @Param partnerId path string true "Partner ID"
// @Security Bearer
// @Success 200 {object} dto.RecommendationResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/recommendations/{partnerId}/explain [post]
func (h *RecommendationHandler) ExplainRecommendation(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	partnerID, err := uuid.Parse(c.Params("partnerId"))
	if err != nil {
		return badRequest(c, "Invalid partner ID")
	}

	rec, err := h.recService.Explain(c.Context(), userID, partnerID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to explain recommendation")
	}

	return c.JSON(rec)
}
