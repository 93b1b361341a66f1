package repository

import (
	"context"
	"time"

	"expense-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ExpenseFilter narrows expense listings. Nil pointers mean "no constraint".
type ExpenseFilter struct {
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *int64
	MaxAmount  *int64
	Search     string
	SortBy     string // date, amount or category
	SortOrder  string // asc or desc
}

// HasFilters reports whether any narrowing constraint is set.
func (f *ExpenseFilter) HasFilters() bool {
	return f.CategoryID != nil || f.StartDate != nil || f.EndDate != nil ||
		f.MinAmount != nil || f.MaxAmount != nil || f.Search != ""
}

// ExpenseSummary aggregates the filtered result set.
type ExpenseSummary struct {
	TotalAmount   int64
	AverageAmount float64
	MinDate       *time.Time
	MaxDate       *time.Time
}

// CategoryAggregate is one GROUP BY category row.
type CategoryAggregate struct {
	CategoryID       uuid.UUID
	TotalAmount      int64
	TransactionCount int64
}

// DailyTotal is one day's spending sum.
type DailyTotal struct {
	Date   time.Time
	Amount int64
}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "user_id", "category_id", "amount", "description", "date", "receipt_image_url", "created_at", "updated_at").
		Values(expense.ID, expense.UserID, expense.CategoryID, expense.Amount, expense.Description, expense.Date, expense.ReceiptImageURL, expense.CreatedAt, expense.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select("id", "user_id", "category_id", "amount", "description", "date", "receipt_image_url", "created_at", "updated_at").
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date, &e.ReceiptImageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// List returns one page of expenses with their categories joined.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filter *ExpenseFilter, limit, offset int) ([]*models.Expense, error) {
	query := r.applyFilter(squirrel.Select(
		"e.id", "e.user_id", "e.category_id", "e.amount", "e.description", "e.date", "e.receipt_image_url", "e.created_at", "e.updated_at",
		"c.id", "c.name", "c.color", "c.icon", "c.created_at", "c.updated_at",
	).
		From("expenses e").
		Join("categories c ON c.id = e.category_id"), userID, filter).
		OrderBy(sortClause(filter)).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		var c models.Category
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date, &e.ReceiptImageURL, &e.CreatedAt, &e.UpdatedAt,
			&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Category = &c
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) Count(ctx context.Context, userID uuid.UUID, filter *ExpenseFilter) (int64, error) {
	query := r.applyFilter(squirrel.Select("COUNT(*)").
		From("expenses e").
		Join("categories c ON c.id = e.category_id"), userID, filter).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// Summary aggregates the same filtered set the listing shows.
func (r *ExpenseRepository) Summary(ctx context.Context, userID uuid.UUID, filter *ExpenseFilter) (*ExpenseSummary, error) {
	query := r.applyFilter(squirrel.Select(
		"COALESCE(SUM(e.amount), 0)",
		"COALESCE(AVG(e.amount), 0)::float8",
		"MIN(e.date)",
		"MAX(e.date)",
	).
		From("expenses e").
		Join("categories c ON c.id = e.category_id"), userID, filter).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s ExpenseSummary
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.TotalAmount, &s.AverageAmount, &s.MinDate, &s.MaxDate)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Update("expenses").
		Set("category_id", expense.CategoryID).
		Set("amount", expense.Amount).
		Set("description", expense.Description).
		Set("date", expense.Date).
		Set("receipt_image_url", expense.ReceiptImageURL).
		Set("updated_at", expense.UpdatedAt).
		Where(squirrel.Eq{"id": expense.ID, "user_id": expense.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"category_id": categoryID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// SumByCategory groups the user's spending per category over [start, end].
func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryAggregate, error) {
	query := squirrel.Select("category_id", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		GroupBy("category_id").
		OrderBy("COALESCE(SUM(amount), 0) DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []CategoryAggregate
	for rows.Next() {
		var a CategoryAggregate
		if err := rows.Scan(&a.CategoryID, &a.TotalAmount, &a.TransactionCount); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}

	return aggregates, rows.Err()
}

// AggregateRange sums the user's spending and counts transactions over [start, end].
func (r *ExpenseRepository) AggregateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (int64, int64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, err
	}

	var total, count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &count); err != nil {
		return 0, 0, err
	}

	return total, count, nil
}

// DailyTotals returns per-day spending sums since the given time, oldest first.
func (r *ExpenseRepository) DailyTotals(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyTotal, error) {
	query := squirrel.Select("date::date", "COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": since}).
		GroupBy("date::date").
		OrderBy("date::date ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Date, &t.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *ExpenseRepository) applyFilter(query squirrel.SelectBuilder, userID uuid.UUID, filter *ExpenseFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"e.user_id": userID})

	if filter == nil {
		return query
	}
	if filter.CategoryID != nil {
		query = query.Where(squirrel.Eq{"e.category_id": *filter.CategoryID})
	}
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"e.date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"e.date": *filter.EndDate})
	}
	if filter.MinAmount != nil {
		query = query.Where(squirrel.GtOrEq{"e.amount": *filter.MinAmount})
	}
	if filter.MaxAmount != nil {
		query = query.Where(squirrel.LtOrEq{"e.amount": *filter.MaxAmount})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"e.description": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}

	return query
}

func sortClause(filter *ExpenseFilter) string {
	field := "e.date"
	if filter != nil {
		switch filter.SortBy {
		case "amount":
			field = "e.amount"
		case "category":
			field = "c.name"
		}
	}

	order := "DESC"
	if filter != nil && filter.SortOrder == "asc" {
		order = "ASC"
	}

	return field + " " + order
}
