package api

import (
	"time"

	"expense-tracker/docs"
	"expense-tracker/internal/api/handlers"
	"expense-tracker/pkg/auth"
	"expense-tracker/pkg/config"
	"expense-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	statsHandler *handlers.StatsHandler,
	receiptHandler *handlers.ReceiptHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    (cfg.Upload.MaxSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the spec through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded receipt files
	app.Static("/uploads", cfg.Upload.Dir)

	api := app.Group("/api", rateLimiter(cfg.RateLimit.General, 15*time.Minute))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public, tighter rate limit)
	authGroup := api.Group("/v1/auth", rateLimiter(cfg.RateLimit.Auth, 15*time.Minute))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := api.Group("/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/auth/me", authHandler.Me)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.List)
	categories.Post("", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	expenses := protected.Group("/expenses")
	expenses.Get("", expenseHandler.List)
	expenses.Post("", expenseHandler.Create)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	budgets := protected.Group("/budgets")
	budgets.Get("", budgetHandler.List)
	budgets.Post("", budgetHandler.Create)
	budgets.Get("/comparison", budgetHandler.Comparison)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Delete("/:id", budgetHandler.Delete)

	stats := protected.Group("/stats")
	stats.Get("/monthly", statsHandler.Monthly)
	stats.Get("/category", statsHandler.ByCategory)
	stats.Get("/insights", statsHandler.Insights)
	stats.Get("/budget-vs-actual", statsHandler.BudgetVsActual)

	receipts := protected.Group("/receipts")
	receipts.Get("", receiptHandler.List)
	receipts.Post("/scan", rateLimiter(cfg.RateLimit.OCR, time.Minute), receiptHandler.Scan)
	receipts.Post("/upload", rateLimiter(cfg.RateLimit.Upload, time.Minute), receiptHandler.Upload)

	return app
}

// rateLimiter caps requests per client IP over the window.
func rateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		},
	})
}
