package main

import (
	"context"
	"log"
	"time"

	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"
	"expense-tracker/pkg/config"
	"expense-tracker/pkg/logger"
	"expense-tracker/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultCategories is the stock catalog inserted on first run. Existing
// categories with the same name are left untouched.
var defaultCategories = []models.Category{
	{Name: "식비", Color: "#FF6B6B", Icon: "🍽️"},
	{Name: "교통비", Color: "#4ECDC4", Icon: "🚗"},
	{Name: "쇼핑", Color: "#45B7D1", Icon: "🛍️"},
	{Name: "문화/여가", Color: "#96CEB4", Icon: "🎬"},
	{Name: "의료/건강", Color: "#DDA0DD", Icon: "🏥"},
	{Name: "교육", Color: "#98D8C8", Icon: "📚"},
	{Name: "통신비", Color: "#F7DC6F", Icon: "📱"},
	{Name: "주거비", Color: "#BB8FCE", Icon: "🏠"},
	{Name: "보험/금융", Color: "#85C1E2", Icon: "💰"},
	{Name: "기타", Color: "#F8C471", Icon: "📌"},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	categoryRepo := repository.NewCategoryRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	seeded := 0
	for _, c := range defaultCategories {
		existing, err := categoryRepo.GetByName(ctx, c.Name)
		if err != nil {
			appLogger.Fatal("Failed to look up category", zap.String("name", c.Name), zap.Error(err))
		}
		if existing != nil {
			appLogger.Info("Category already exists, skipping", zap.String("name", c.Name))
			continue
		}

		now := time.Now()
		category := &models.Category{
			ID:        uuid.New(),
			Name:      c.Name,
			Color:     c.Color,
			Icon:      c.Icon,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categoryRepo.Create(ctx, category); err != nil {
			appLogger.Fatal("Failed to create category", zap.String("name", c.Name), zap.Error(err))
		}
		appLogger.Info("Category created", zap.String("name", c.Name))
		seeded++
	}

	appLogger.Info("Database seeding completed", zap.Int("created", seeded))
}
