package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expense-tracker/internal/api"
	"expense-tracker/internal/api/handlers"
	"expense-tracker/internal/ocr"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/service"
	"expense-tracker/pkg/auth"
	"expense-tracker/pkg/config"
	"expense-tracker/pkg/logger"
	"expense-tracker/pkg/postgres"

	"go.uber.org/zap"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal expense tracking service with budgets, statistics and OCR receipt scanning

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting expense tracker service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize OCR engine
	ocrEngine := ocr.New(cfg.OCR.Languages, appLogger)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, expenseRepo, budgetRepo, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, appLogger)
	statsService := service.NewStatsService(expenseRepo, categoryRepo, budgetRepo, appLogger)
	receiptService := service.NewReceiptService(receiptRepo, ocrEngine, cfg.Upload.Dir, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	statsHandler := handlers.NewStatsHandler(statsService, appLogger)
	receiptHandler := handlers.NewReceiptHandler(receiptService, cfg.Upload.MaxSizeMB, appLogger)

	// Setup router
	app := api.SetupRouter(
		cfg,
		authHandler,
		categoryHandler,
		expenseHandler,
		budgetHandler,
		statsHandler,
		receiptHandler,
		jwtManager,
		appLogger,
	)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
