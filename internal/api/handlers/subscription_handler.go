package handlers

import (
	"context"

	"subtrack/internal/dto"
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
	logger     *zap.Logger
}

func NewSubscriptionHandler(subService *service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
		logger:     logger,
	}
}

// ListSubscriptions godoc
// @Summary List subscriptions
// @Description Get all subscriptions of the current user with their monthly equivalent
// @Tags subscriptions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	subs, err := h.subService.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list subscriptions")
	}

	return c.JSON(subs)
}

// CreateSubscription godoc
// @Summary Create a subscription
// @Description Add a recurring subscription. An empty category is detected from the name.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.SubscriptionRequest true "Subscription"
// @Security Bearer
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sub, err := h.subService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create subscription")
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetSubscription godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Security Bearer
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	return h.withSubscription(c, "Failed to get subscription", h.subService.Get)
}

// UpdateSubscription godoc
// @Summary Update a subscription
// @Description Replace all fields of a subscription. An empty category keeps the current one.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.SubscriptionRequest true "Subscription"
// @Security Bearer
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [put]
func (h *SubscriptionHandler) UpdateSubscription(c *fiber.Ctx) error {
	var req dto.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return h.withSubscription(c, "Failed to update subscription", func(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
		return h.subService.Update(ctx, userID, id, &req)
	})
}

// DeleteSubscription godoc
// @Summary Cancel a subscription
// @Tags subscriptions
// @Param id path string true "Subscription ID"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	if err := h.subService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete subscription")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpgradeSubscription godoc
// @Summary Switch to yearly billing
// @Description Yearly cost becomes ten times the monthly cost
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Security Bearer
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/subscriptions/{id}/upgrade [post]
func (h *SubscriptionHandler) UpgradeSubscription(c *fiber.Ctx) error {
	return h.withSubscription(c, "Failed to upgrade subscription", h.subService.Upgrade)
}

// DowngradeSubscription godoc
// @Summary Switch to monthly billing
// @Description Monthly cost becomes a twelfth of the yearly cost
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Security Bearer
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/subscriptions/{id}/downgrade [post]
func (h *SubscriptionHandler) DowngradeSubscription(c *fiber.Ctx) error {
	return h.withSubscription(c, "Failed to downgrade subscription", h.subService.Downgrade)
}

// RenewSubscription godoc
// @Summary Advance the next billing date by one cycle
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Security Bearer
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) RenewSubscription(c *fiber.Ctx) error {
	return h.withSubscription(c, "Failed to renew subscription", h.subService.Renew)
}

func (h *SubscriptionHandler) withSubscription(
	c *fiber.Ctx,
	fallback string,
	fn func(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error),
) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	sub, err := fn(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err, fallback)
	}

	return c.JSON(sub)
}
