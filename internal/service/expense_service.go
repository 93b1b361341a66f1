package service

import (
	"context"
	"math"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ExpenseListParams bundles the filter and pagination for one listing call.
type ExpenseListParams struct {
	Filter repository.ExpenseFilter
	Page   int
	Limit  int
}

type ExpenseService struct {
	expenseRepo  *repository.ExpenseRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewExpenseService(
	expenseRepo *repository.ExpenseRepository,
	categoryRepo *repository.CategoryRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns one page of the user's expenses together with pagination info
// and a summary over the whole filtered set.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, params *ExpenseListParams) (*dto.ExpenseListResponse, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	offset := (params.Page - 1) * params.Limit

	expenses, err := s.expenseRepo.List(ctx, userID, &params.Filter, params.Limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Count(ctx, userID, &params.Filter)
	if err != nil {
		return nil, err
	}

	summary, err := s.expenseRepo.Summary(ctx, userID, &params.Filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = expenseToResponse(e)
	}

	dateRange := dto.DateRange{}
	if summary.MinDate != nil {
		dateRange.From = summary.MinDate.Format("2006-01-02")
	}
	if summary.MaxDate != nil {
		dateRange.To = summary.MaxDate.Format("2006-01-02")
	}

	return &dto.ExpenseListResponse{
		Expenses: responses,
		Pagination: dto.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(params.Limit))),
		},
		Summary: dto.ExpenseListSummary{
			TotalAmount:   summary.TotalAmount,
			AverageAmount: summary.AverageAmount,
			DateRange:     dateRange,
			HasFilters:    params.Filter.HasFilters(),
		},
	}, nil
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &models.Expense{
		ID:              uuid.New(),
		UserID:          userID,
		CategoryID:      categoryID,
		Amount:          req.Amount,
		Description:     req.Description,
		Date:            date,
		ReceiptImageURL: req.ReceiptImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
		Category:        category,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	resp := expenseToResponse(expense)
	return &resp, nil
}

// Update applies only the fields present in the request.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id, userID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		expense.CategoryID = categoryID
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, ErrInvalidInput
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidInput
		}
		expense.Date = date
	}
	if req.ReceiptImageURL != nil {
		expense.ReceiptImageURL = *req.ReceiptImageURL
	}
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, expense.CategoryID)
	if err == nil {
		expense.Category = category
	}

	resp := expenseToResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.expenseRepo.GetByID(ctx, id, userID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	return s.expenseRepo.Delete(ctx, id, userID)
}

func expenseToResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:              e.ID.String(),
		Amount:          e.Amount,
		Description:     e.Description,
		Date:            e.Date.Format("2006-01-02"),
		ReceiptImageURL: e.ReceiptImageURL,
		Category:        categoryToResponse(e.Category),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}

// parseDate accepts a plain calendar date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", s); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, s)
}
