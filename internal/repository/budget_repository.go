package repository

import (
	"context"
	"time"

	"expense-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	query := squirrel.Insert("budgets").
		Columns("id", "user_id", "category_id", "amount", "month", "created_at", "updated_at").
		Values(budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Month, budget.CreatedAt, budget.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Budget, error) {
	query := squirrel.Select("id", "user_id", "category_id", "amount", "month", "created_at", "updated_at").
		From("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// ListByMonth returns the user's budgets whose month falls in [start, end],
// with categories joined where present. Newest first, as the budget page
// shows the most recently added budget on top.
func (r *BudgetRepository) ListByMonth(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Budget, error) {
	query := squirrel.Select(
		"b.id", "b.user_id", "b.category_id", "b.amount", "b.month", "b.created_at", "b.updated_at",
		"c.id", "c.name", "c.color", "c.icon", "c.created_at", "c.updated_at",
	).
		From("budgets b").
		LeftJoin("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		Where(squirrel.GtOrEq{"b.month": start}).
		Where(squirrel.LtOrEq{"b.month": end}).
		OrderBy("b.created_at DESC").
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

	var budgets []*models.Budget
	for rows.Next() {
		var b models.Budget
		var (
			cID        *uuid.UUID
			cName      *string
			cColor     *string
			cIcon      *string
			cCreatedAt *time.Time
			cUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.CreatedAt, &b.UpdatedAt,
			&cID, &cName, &cColor, &cIcon, &cCreatedAt, &cUpdatedAt,
		); err != nil {
			return nil, err
		}
		if cID != nil {
			b.Category = &models.Category{
				ID:        *cID,
				Name:      *cName,
				Color:     *cColor,
				Icon:      *cIcon,
				CreatedAt: *cCreatedAt,
				UpdatedAt: *cUpdatedAt,
			}
		}
		budgets = append(budgets, &b)
	}

	return budgets, rows.Err()
}

// FindByCategoryMonth looks up an existing budget for the category+month
// pair; nil categoryID matches the overall budget. Returns nil when absent.
func (r *BudgetRepository) FindByCategoryMonth(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, month time.Time) (*models.Budget, error) {
	query := squirrel.Select("id", "user_id", "category_id", "amount", "month", "created_at", "updated_at").
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "category_id": categoryID, "month": month}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BudgetRepository) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64, updatedAt time.Time) error {
	query := squirrel.Update("budgets").
		Set("amount", amount).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("budgets").
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
