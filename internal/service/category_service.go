package service

import (
	"context"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	expenseRepo  *repository.ExpenseRepository
	budgetRepo   *repository.BudgetRepository
	logger       *zap.Logger
}

func NewCategoryService(
	categoryRepo *repository.CategoryRepository,
	expenseRepo *repository.ExpenseRepository,
	budgetRepo *repository.BudgetRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		budgetRepo:   budgetRepo,
		logger:       logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *categoryToResponse(c)
	}

	return responses, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	category := &models.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return categoryToResponse(category), nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Icon = req.Icon
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return categoryToResponse(category), nil
}

// Delete removes a category unless expenses or budgets still reference it.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	expenseCount, err := s.expenseRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}

	budgetCount, err := s.budgetRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}

	if expenseCount > 0 || budgetCount > 0 {
		return &CategoryInUseError{ExpenseCount: expenseCount, BudgetCount: budgetCount}
	}

	return s.categoryRepo.Delete(ctx, id)
}
