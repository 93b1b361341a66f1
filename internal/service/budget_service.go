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

type BudgetService struct {
	budgetRepo  *repository.BudgetRepository
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewBudgetService(
	budgetRepo *repository.BudgetRepository,
	expenseRepo *repository.ExpenseRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID, month string) ([]dto.BudgetResponse, error) {
	start, end, err := monthWindow(month)
	if err != nil {
		return nil, ErrInvalidInput
	}

	budgets, err := s.budgetRepo.ListByMonth(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = budgetToResponse(b)
	}

	return responses, nil
}

// Create adds a budget for a category+month pair; only one budget per pair
// is allowed. An empty category means an overall budget for the month.
func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		categoryID = &id
	}

	existing, err := s.budgetRepo.FindByCategoryMonth(ctx, userID, categoryID, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBudgetExists
	}

	now := time.Now()
	budget := &models.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     req.Amount,
		Month:      month,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	resp := budgetToResponse(budget)
	return &resp, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateBudgetRequest) (*dto.BudgetResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	budget, err := s.budgetRepo.GetByID(ctx, id, userID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	budget.Amount = req.Amount
	budget.UpdatedAt = time.Now()

	if err := s.budgetRepo.UpdateAmount(ctx, budget.ID, budget.Amount, budget.UpdatedAt); err != nil {
		return nil, err
	}

	resp := budgetToResponse(budget)
	return &resp, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.budgetRepo.GetByID(ctx, id, userID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	return s.budgetRepo.Delete(ctx, id, userID)
}

// Comparison reports budget vs actual spending for the month: per budget the
// actual amount, what remains and the usage percentage, plus overall totals.
func (s *BudgetService) Comparison(ctx context.Context, userID uuid.UUID, month string) (*dto.BudgetComparisonResponse, error) {
	start, end, err := monthWindow(month)
	if err != nil {
		return nil, ErrInvalidInput
	}

	budgets, err := s.budgetRepo.ListByMonth(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.expenseRepo.SumByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	resp := buildBudgetComparison(budgets, aggregates)
	return &resp, nil
}

// buildBudgetComparison is the pure half of Comparison. Total actual covers
// all spending in the month, including categories with no budget; a budget
// with no category (overall) never matches an expense row directly, so its
// per-category actual stays zero, as the comparison page expects.
func buildBudgetComparison(budgets []*models.Budget, aggregates []repository.CategoryAggregate) dto.BudgetComparisonResponse {
	actualByCategory := make(map[uuid.UUID]int64, len(aggregates))
	var totalActual int64
	for _, a := range aggregates {
		actualByCategory[a.CategoryID] = a.TotalAmount
		totalActual += a.TotalAmount
	}

	var totalBudget int64
	comparisons := make([]dto.CategoryComparison, len(budgets))
	for i, b := range budgets {
		totalBudget += b.Amount

		var actual int64
		categoryName := "Overall"
		categoryID := ""
		if b.CategoryID != nil {
			actual = actualByCategory[*b.CategoryID]
			categoryID = b.CategoryID.String()
			if b.Category != nil {
				categoryName = b.Category.Name
			}
		}

		usage := 0
		if b.Amount > 0 {
			usage = int(float64(actual)/float64(b.Amount)*100 + 0.5)
		}

		comparisons[i] = dto.CategoryComparison{
			CategoryID:      categoryID,
			CategoryName:    categoryName,
			BudgetAmount:    b.Amount,
			ActualAmount:    actual,
			RemainingAmount: b.Amount - actual,
			UsagePercentage: usage,
			IsOverBudget:    actual > b.Amount,
		}
	}

	totalUsage := 0
	if totalBudget > 0 {
		totalUsage = int(float64(totalActual)/float64(totalBudget)*100 + 0.5)
	}

	return dto.BudgetComparisonResponse{
		TotalBudget:          totalBudget,
		TotalActual:          totalActual,
		TotalRemaining:       totalBudget - totalActual,
		TotalUsagePercentage: totalUsage,
		Categories:           comparisons,
	}
}

func budgetToResponse(b *models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:        b.ID.String(),
		Amount:    b.Amount,
		Month:     b.Month.Format("2006-01"),
		Category:  categoryToResponse(b.Category),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
