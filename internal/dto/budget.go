package dto

type CreateBudgetRequest struct {
	// CategoryID empty means an overall budget for the month.
	CategoryID string `json:"category_id"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Month      string `json:"month" validate:"required"` // YYYY-MM
}

type UpdateBudgetRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type BudgetResponse struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Month     string            `json:"month"`
	Category  *CategoryResponse `json:"category,omitempty"`
	CreatedAt string            `json:"created_at"`
}

type CategoryComparison struct {
	CategoryID      string `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name"`
	BudgetAmount    int64  `json:"budget_amount"`
	ActualAmount    int64  `json:"actual_amount"`
	RemainingAmount int64  `json:"remaining_amount"`
	UsagePercentage int    `json:"usage_percentage"`
	IsOverBudget    bool   `json:"is_over_budget"`
}

type BudgetComparisonResponse struct {
	TotalBudget          int64                `json:"total_budget"`
	TotalActual          int64                `json:"total_actual"`
	TotalRemaining       int64                `json:"total_remaining"`
	TotalUsagePercentage int                  `json:"total_usage_percentage"`
	Categories           []CategoryComparison `json:"categories"`
}
