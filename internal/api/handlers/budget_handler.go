package handlers

import (
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// List godoc
// @Summary List budgets for a month
// @Tags budgets
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {array} dto.BudgetResponse
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	month := c.Query("month", time.Now().Format("2006-01"))

	budgets, err := h.budgetService.List(c.Context(), userID, month)
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Month must be in YYYY-MM format",
			})
		}
		h.logger.Error("Failed to list budgets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list budgets",
		})
	}

	return c.JSON(budgets)
}

// Create godoc
// @Summary Create a budget
// @Description Creates a budget for a category and month; one budget per pair. An empty category means an overall budget.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget"
// @Security Bearer
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.Create(c.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Positive amount and month in YYYY-MM format are required",
			})
		case service.ErrBudgetExists:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Budget already exists for this category and month",
			})
		}
		h.logger.Error("Failed to create budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create budget",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update a budget amount
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "New amount"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget ID",
		})
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.Update(c.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		case service.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Amount must be positive",
			})
		}
		h.logger.Error("Failed to update budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update budget",
		})
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget ID",
		})
	}

	if err := h.budgetService.Delete(c.Context(), userID, id); err != nil {
		if err == service.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		}
		h.logger.Error("Failed to delete budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete budget",
		})
	}

	return c.JSON(fiber.Map{"message": "Budget deleted successfully"})
}

// Comparison godoc
// @Summary Compare budgets against actual spending
// @Description Per-budget actual amount, remainder and usage for the month, plus overall totals
// @Tags budgets
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {object} dto.BudgetComparisonResponse
// @Router /api/v1/budgets/comparison [get]
func (h *BudgetHandler) Comparison(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	month := c.Query("month", time.Now().Format("2006-01"))

	resp, err := h.budgetService.Comparison(c.Context(), userID, month)
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Month must be in YYYY-MM format",
			})
		}
		h.logger.Error("Failed to build budget comparison", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build budget comparison",
		})
	}

	return c.JSON(resp)
}
