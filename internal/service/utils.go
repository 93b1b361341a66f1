package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
)

// sanitizeUTF8 removes invalid UTF-8 sequences from string
// This prevents PostgreSQL encoding errors when saving OCR text
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

func categoryToResponse(c *models.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// monthWindow expands a YYYY-MM string into the first day of the month and
// the last second of its final day.
func monthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}
