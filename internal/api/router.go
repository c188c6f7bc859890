package api

import (
	"context"
	"time"

	"subtrack/docs"
	"subtrack/internal/api/handlers"
	"subtrack/pkg/auth"
	"subtrack/pkg/config"
	"subtrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Subscription   *handlers.SubscriptionHandler
	Budget         *handlers.BudgetHandler
	Recommendation *handlers.RecommendationHandler
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	health HealthCheck,
	server *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  server.ReadTimeout,
		WriteTimeout: server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the spec with swag
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				appLogger.Warn("Health check failed", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	subs := protected.Group("/subscriptions")
	subs.Get("", h.Subscription.ListSubscriptions)
	subs.Post("", h.Subscription.CreateSubscription)
	subs.Get("/:id", h.Subscription.GetSubscription)
	subs.Put("/:id", h.Subscription.UpdateSubscription)
	subs.Delete("/:id", h.Subscription.DeleteSubscription)
	subs.Post("/:id/upgrade", h.Subscription.UpgradeSubscription)
	subs.Post("/:id/downgrade", h.Subscription.DowngradeSubscription)
	subs.Post("/:id/renew", h.Subscription.RenewSubscription)

	protected.Get("/budget", h.Budget.GetBudget)
	protected.Put("/budget", h.Budget.SaveBudget)
	protected.Get("/analytics", h.Budget.GetAnalytics)

	protected.Get("/partners", h.Recommendation.SearchPartners)

	recs := protected.Group("/recommendations")
	recs.Post("/generate", h.Recommendation.GenerateRecommendations)
	recs.Get("", h.Recommendation.ListRecommendations)
	recs.Post("/:partnerId/explain", h.Recommendation.ExplainRecommendation)

	return app
}
