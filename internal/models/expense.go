package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense amounts are integer won. The currency has no decimal subunit in
// practice, so BIGINT avoids the float rounding the category sums would
// otherwise accumulate.
type Expense struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	CategoryID      uuid.UUID `db:"category_id"`
	Amount          int64     `db:"amount"`
	Description     string    `db:"description"`
	Date            time.Time `db:"date"`
	ReceiptImageURL string    `db:"receipt_image_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	// Category is populated by list queries that join the catalog.
	Category *Category `db:"-"`
}
