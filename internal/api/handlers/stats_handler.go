package handlers

import (
	"time"

	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Monthly godoc
// @Summary Monthly spending statistics
// @Description One calendar month's spending broken down by category
// @Tags stats
// @Produce json
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month 1-12, defaults to current"
// @Security Bearer
// @Success 200 {object} dto.MonthlyStatsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/stats/monthly [get]
func (h *StatsHandler) Monthly(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	resp, err := h.statsService.Monthly(c.Context(), userID, year, month)
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Month must be between 1 and 12",
			})
		}
		h.logger.Error("Failed to build monthly stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build monthly stats",
		})
	}

	return c.JSON(resp)
}

// ByCategory godoc
// @Summary Spending by category
// @Description Per-category totals and percentage shares over an optional date range
// @Tags stats
// @Produce json
// @Param start_date query string false "From date (YYYY-MM-DD)"
// @Param end_date query string false "To date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.CategoryStatsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/stats/category [get]
func (h *StatsHandler) ByCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var startDate, endDate *time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Dates must be in YYYY-MM-DD format",
			})
		}
		startDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Dates must be in YYYY-MM-DD format",
			})
		}
		endDate = &t
	}

	resp, err := h.statsService.ByCategory(c.Context(), userID, startDate, endDate)
	if err != nil {
		h.logger.Error("Failed to build category stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build category stats",
		})
	}

	return c.JSON(resp)
}

// Insights godoc
// @Summary Spending insights
// @Description Current month vs last month, top spending category and the last week's daily totals
// @Tags stats
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.InsightsResponse
// @Router /api/v1/stats/insights [get]
func (h *StatsHandler) Insights(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.statsService.Insights(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build insights", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build insights",
		})
	}

	return c.JSON(resp)
}

// BudgetVsActual godoc
// @Summary Budget vs actual spending
// @Description Grades each budgeted category for the month: over, warning above 80% usage, good otherwise
// @Tags stats
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {object} dto.BudgetVsActualResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/stats/budget-vs-actual [get]
func (h *StatsHandler) BudgetVsActual(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.statsService.BudgetVsActual(c.Context(), userID, c.Query("month"))
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Month must be in YYYY-MM format",
			})
		}
		h.logger.Error("Failed to build budget vs actual", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build budget vs actual",
		})
	}

	return c.JSON(resp)
}
