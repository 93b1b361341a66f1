package repository

import (
	"context"

	"expense-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var categoryColumns = []string{"id", "name", "color", "icon", "created_at", "updated_at"}

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := squirrel.Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.Name, category.Color, category.Icon, category.CreatedAt, category.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		OrderBy("name ASC").
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

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// GetByName returns nil without error when the name is unknown; the seeder
// uses this to skip categories that already exist.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := squirrel.Update("categories").
		Set("name", category.Name).
		Set("color", category.Color).
		Set("icon", category.Icon).
		Set("updated_at", category.UpdatedAt).
		Where(squirrel.Eq{"id": category.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
