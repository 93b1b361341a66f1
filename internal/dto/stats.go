package dto

type CategoryStat struct {
	Category         *CategoryResponse `json:"category,omitempty"`
	TotalAmount      int64             `json:"total_amount"`
	TransactionCount int64             `json:"transaction_count"`
	Percentage       float64           `json:"percentage,omitempty"`
}

type MonthlyStatsResponse struct {
	Month             string         `json:"month"`
	TotalAmount       int64          `json:"total_amount"`
	CategoryBreakdown []CategoryStat `json:"category_breakdown"`
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date"`
}

type CategoryStatsResponse struct {
	TotalAmount int64          `json:"total_amount"`
	Categories  []CategoryStat `json:"categories"`
}

type MonthSnapshot struct {
	Total            int64 `json:"total"`
	TransactionCount int64 `json:"transaction_count"`
}

type MonthlyChange struct {
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
	Trend      string  `json:"trend"` // increase, decrease or stable
}

type TopCategory struct {
	Category *CategoryResponse `json:"category"`
	Amount   int64             `json:"amount"`
}

type DailySpending struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

type InsightsResponse struct {
	CurrentMonth        MonthSnapshot   `json:"current_month"`
	LastMonth           MonthSnapshot   `json:"last_month"`
	MonthlyChange       MonthlyChange   `json:"monthly_change"`
	TopSpendingCategory *TopCategory    `json:"top_spending_category"`
	WeeklyTrend         []DailySpending `json:"weekly_trend"`
}

type BudgetVsActualCategory struct {
	Category       *CategoryResponse `json:"category,omitempty"`
	BudgetAmount   int64             `json:"budget_amount"`
	ActualAmount   int64             `json:"actual_amount"`
	Variance       int64             `json:"variance"`
	PercentageUsed float64           `json:"percentage_used"`
	Status         string            `json:"status"` // over, warning or good
}

type BudgetVsActualOverall struct {
	TotalBudget    int64   `json:"total_budget"`
	TotalActual    int64   `json:"total_actual"`
	Variance       int64   `json:"variance"`
	PercentageUsed float64 `json:"percentage_used"`
}

type BudgetVsActualResponse struct {
	Month      string                   `json:"month"`
	Overall    BudgetVsActualOverall    `json:"overall"`
	Categories []BudgetVsActualCategory `json:"categories"`
}
