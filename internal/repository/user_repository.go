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

var userColumns = []string{"id", "username", "email", "password", "created_at", "updated_at"}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.Password, user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// ExistsByEmail reports whether any user is registered under the email
// without loading the row.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := squirrel.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
