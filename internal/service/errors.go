package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrBudgetExists       = errors.New("budget already exists for this category and month")
	ErrInvalidInput       = errors.New("invalid input")
)

// CategoryInUseError is returned when a category delete is rejected because
// expenses or budgets still reference it.
type CategoryInUseError struct {
	ExpenseCount int64
	BudgetCount  int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category in use by %d expenses and %d budgets", e.ExpenseCount, e.BudgetCount)
}
