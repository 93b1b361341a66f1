package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-visible spending label. The catalog is editable, which
// is why expense and budget rows reference categories by ID while the receipt
// parser suggests them by display name.
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	Icon      string    `db:"icon"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
