package handlers

import (
	"strconv"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// List godoc
// @Summary List expenses
// @Description List the user's expenses with filters, pagination and a summary over the filtered set
// @Tags expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param category_id query string false "Filter by category"
// @Param start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param end_date query string false "Filter to date (YYYY-MM-DD)"
// @Param min_amount query int false "Minimum amount"
// @Param max_amount query int false "Maximum amount"
// @Param search query string false "Search in description"
// @Param sort_by query string false "Sort field: date, amount or category" default(date)
// @Param sort_order query string false "Sort order: asc or desc" default(desc)
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	params := &service.ExpenseListParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filter parameters",
		})
	}
	params.Filter = *filter

	resp, err := h.expenseService.List(c.Context(), userID, params)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list expenses",
		})
	}

	return c.JSON(resp)
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Security Bearer
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.expenseService.Create(c.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category, positive amount and date are required",
			})
		case service.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to create expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update an expense
// @Description Updates only the fields present in the request body
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.expenseService.Update(c.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		case service.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense fields",
			})
		}
		h.logger.Error("Failed to update expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update expense",
		})
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	if err := h.expenseService.Delete(c.Context(), userID, id); err != nil {
		if err == service.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		}
		h.logger.Error("Failed to delete expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete expense",
		})
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

func parseExpenseFilter(c *fiber.Ctx) (*repository.ExpenseFilter, error) {
	filter := &repository.ExpenseFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by", "date"),
		SortOrder: c.Query("sort_order", "desc"),
	}

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &id
	}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &t
	}

	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		t = endOfDay(t)
		filter.EndDate = &t
	}

	if v := c.Query("min_amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		filter.MinAmount = &n
	}

	if v := c.Query("max_amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		filter.MaxAmount = &n
	}

	return filter, nil
}

// endOfDay extends a calendar date to its last instant so the end_date
// filter is inclusive through the whole day, timestamps included.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
