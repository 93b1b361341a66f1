package service

import (
	"context"
	"fmt"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatsService struct {
	expenseRepo  *repository.ExpenseRepository
	categoryRepo *repository.CategoryRepository
	budgetRepo   *repository.BudgetRepository
	logger       *zap.Logger
}

func NewStatsService(
	expenseRepo *repository.ExpenseRepository,
	categoryRepo *repository.CategoryRepository,
	budgetRepo *repository.BudgetRepository,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		logger:       logger,
	}
}

// Monthly breaks one calendar month's spending down by category.
func (s *StatsService) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (*dto.MonthlyStatsResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidInput
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	aggregates, err := s.expenseRepo.SumByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	var totalAmount int64
	breakdown := make([]dto.CategoryStat, len(aggregates))
	for i, a := range aggregates {
		totalAmount += a.TotalAmount
		breakdown[i] = dto.CategoryStat{
			Category:         categoryToResponse(categories[a.CategoryID]),
			TotalAmount:      a.TotalAmount,
			TransactionCount: a.TransactionCount,
		}
	}

	return &dto.MonthlyStatsResponse{
		Month:             fmt.Sprintf("%04d-%02d", year, month),
		TotalAmount:       totalAmount,
		CategoryBreakdown: breakdown,
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
	}, nil
}

// ByCategory aggregates spending per category over an optional date range,
// with each category's share of the total. Results are sorted by amount
// descending.
func (s *StatsService) ByCategory(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (*dto.CategoryStatsResponse, error) {
	start := time.Time{}
	if startDate != nil {
		start = *startDate
	}
	end := time.Now().AddDate(100, 0, 0)
	if endDate != nil {
		end = *endDate
	}

	aggregates, err := s.expenseRepo.SumByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	var totalAmount int64
	for _, a := range aggregates {
		totalAmount += a.TotalAmount
	}

	stats := make([]dto.CategoryStat, len(aggregates))
	for i, a := range aggregates {
		stats[i] = dto.CategoryStat{
			Category:         categoryToResponse(categories[a.CategoryID]),
			TotalAmount:      a.TotalAmount,
			TransactionCount: a.TransactionCount,
			Percentage:       percentage(a.TotalAmount, totalAmount),
		}
	}

	return &dto.CategoryStatsResponse{
		TotalAmount: totalAmount,
		Categories:  stats,
	}, nil
}

// Insights compares the current month against the previous one and sketches
// the last week's spending.
func (s *StatsService) Insights(ctx context.Context, userID uuid.UUID) (*dto.InsightsResponse, error) {
	now := time.Now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	currentEnd := currentStart.AddDate(0, 1, 0).Add(-time.Second)
	lastStart := currentStart.AddDate(0, -1, 0)
	lastEnd := currentStart.Add(-time.Second)

	currentTotal, currentCount, err := s.expenseRepo.AggregateRange(ctx, userID, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}

	lastTotal, lastCount, err := s.expenseRepo.AggregateRange(ctx, userID, lastStart, lastEnd)
	if err != nil {
		return nil, err
	}

	changeAmount := currentTotal - lastTotal
	changePercentage := 0.0
	if lastTotal > 0 {
		changePercentage = float64(changeAmount) / float64(lastTotal) * 100
	}

	// Top spending category this month: aggregates come back sorted by
	// amount descending.
	var topCategory *dto.TopCategory
	aggregates, err := s.expenseRepo.SumByCategory(ctx, userID, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}
	if len(aggregates) > 0 {
		category, err := s.categoryRepo.GetByID(ctx, aggregates[0].CategoryID)
		if err == nil {
			topCategory = &dto.TopCategory{
				Category: categoryToResponse(category),
				Amount:   aggregates[0].TotalAmount,
			}
		}
	}

	dailyTotals, err := s.expenseRepo.DailyTotals(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	weeklyTrend := make([]dto.DailySpending, len(dailyTotals))
	for i, t := range dailyTotals {
		weeklyTrend[i] = dto.DailySpending{
			Date:   t.Date.Format("2006-01-02"),
			Amount: t.Amount,
		}
	}

	return &dto.InsightsResponse{
		CurrentMonth: dto.MonthSnapshot{Total: currentTotal, TransactionCount: currentCount},
		LastMonth:    dto.MonthSnapshot{Total: lastTotal, TransactionCount: lastCount},
		MonthlyChange: dto.MonthlyChange{
			Amount:     changeAmount,
			Percentage: changePercentage,
			Trend:      trendLabel(changeAmount),
		},
		TopSpendingCategory: topCategory,
		WeeklyTrend:         weeklyTrend,
	}, nil
}

// BudgetVsActual grades each budgeted category for the month: over budget,
// warning above 80% usage, good otherwise.
func (s *StatsService) BudgetVsActual(ctx context.Context, userID uuid.UUID, month string) (*dto.BudgetVsActualResponse, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}

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

	resp := buildBudgetVsActual(month, budgets, aggregates)
	return &resp, nil
}

// buildBudgetVsActual is the pure half of BudgetVsActual. Unlike the budget
// comparison, overall totals only cover budgeted categories here.
func buildBudgetVsActual(month string, budgets []*models.Budget, aggregates []repository.CategoryAggregate) dto.BudgetVsActualResponse {
	actualByCategory := make(map[uuid.UUID]int64, len(aggregates))
	for _, a := range aggregates {
		actualByCategory[a.CategoryID] = a.TotalAmount
	}

	var totalBudget, totalActual int64
	comparisons := make([]dto.BudgetVsActualCategory, len(budgets))
	for i, b := range budgets {
		var actual int64
		if b.CategoryID != nil {
			actual = actualByCategory[*b.CategoryID]
		}

		totalBudget += b.Amount
		totalActual += actual

		comparisons[i] = dto.BudgetVsActualCategory{
			Category:       categoryToResponse(b.Category),
			BudgetAmount:   b.Amount,
			ActualAmount:   actual,
			Variance:       actual - b.Amount,
			PercentageUsed: percentage(actual, b.Amount),
			Status:         budgetStatus(actual, b.Amount),
		}
	}

	return dto.BudgetVsActualResponse{
		Month: month,
		Overall: dto.BudgetVsActualOverall{
			TotalBudget:    totalBudget,
			TotalActual:    totalActual,
			Variance:       totalActual - totalBudget,
			PercentageUsed: percentage(totalActual, totalBudget),
		},
		Categories: comparisons,
	}
}

func (s *StatsService) categoryMap(ctx context.Context) (map[uuid.UUID]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]*models.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}

	return m, nil
}

func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func budgetStatus(actual, budget int64) string {
	switch {
	case actual > budget:
		return "over"
	case float64(actual) > float64(budget)*0.8:
		return "warning"
	default:
		return "good"
	}
}

func trendLabel(change int64) string {
	switch {
	case change > 0:
		return "increase"
	case change < 0:
		return "decrease"
	default:
		return "stable"
	}
}
