package dto

type CreateExpenseRequest struct {
	CategoryID      string `json:"category_id" validate:"required,uuid"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Description     string `json:"description"`
	Date            string `json:"date" validate:"required"`
	ReceiptImageURL string `json:"receipt_image_url"`
}

// UpdateExpenseRequest uses pointers so absent fields are left untouched.
type UpdateExpenseRequest struct {
	CategoryID      *string `json:"category_id"`
	Amount          *int64  `json:"amount"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	ReceiptImageURL *string `json:"receipt_image_url"`
}

type ExpenseResponse struct {
	ID              string            `json:"id"`
	Amount          int64             `json:"amount"`
	Description     string            `json:"description"`
	Date            string            `json:"date"`
	ReceiptImageURL string            `json:"receipt_image_url,omitempty"`
	Category        *CategoryResponse `json:"category,omitempty"`
	CreatedAt       string            `json:"created_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type ExpenseListSummary struct {
	TotalAmount   int64     `json:"total_amount"`
	AverageAmount float64   `json:"average_amount"`
	DateRange     DateRange `json:"date_range"`
	HasFilters    bool      `json:"has_filters"`
}

type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination Pagination         `json:"pagination"`
	Summary    ExpenseListSummary `json:"summary"`
}
