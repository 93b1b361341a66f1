package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is an uploaded receipt image and the OCR text extracted from it.
type Receipt struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	FileName      string    `db:"file_name"`
	FileSize      int64     `db:"file_size"`
	FileURL       string    `db:"file_url"`
	ExtractedText string    `db:"extracted_text"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
