package handlers

import (
	"subtrack/internal/dto"
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// GetBudget godoc
// @Summary Get budget
// @Description Monthly limit and per-category limits. Zero when never set.
// @Tags budget
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/budget [get]
func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	budget, err := h.budgetService.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get budget")
	}

	return c.JSON(budget)
}

// SaveBudget godoc
// @Summary Save budget
// @Description Replaces the monthly limit and all category limits
// @Tags budget
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/budget [put]
func (h *BudgetHandler) SaveBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	budget, err := h.budgetService.Save(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save budget")
	}

	return c.JSON(budget)
}

// GetAnalytics godoc
// @Summary Spending analytics
// @Description Monthly total, yearly projection, category breakdown and budget utilization
// @Tags budget
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analytics [get]
func (h *BudgetHandler) GetAnalytics(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	analytics, err := h.budgetService.Analytics(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build analytics")
	}

	return c.JSON(analytics)
}
