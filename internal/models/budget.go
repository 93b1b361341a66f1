package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a monthly spending ceiling. A nil CategoryID means an overall
// budget for the month. Month is stored as the first day of the month.
type Budget struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	CategoryID *uuid.UUID `db:"category_id"`
	Amount     int64      `db:"amount"`
	Month      time.Time  `db:"month"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`

	Category *Category `db:"-"`
}
