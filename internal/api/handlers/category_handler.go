package handlers

import (
	"errors"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List godoc
// @Summary List categories
// @Description List all spending categories, sorted by name
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}

	return c.JSON(categories)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category"
// @Security Bearer
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" || req.Color == "" || req.Icon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, color and icon are required",
		})
	}

	resp, err := h.categoryService.Create(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Security Bearer
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID",
		})
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" || req.Color == "" || req.Icon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, color and icon are required",
		})
	}

	resp, err := h.categoryService.Update(c.Context(), id, &req)
	if err != nil {
		if err == service.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to update category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a category
// @Description Deletes a category; rejected while expenses or budgets use it
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID",
		})
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		if err == service.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}

		var inUse *service.CategoryInUseError
		if errors.As(err, &inUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot delete category that is being used by expenses or budgets",
				"details": fiber.Map{
					"expense_count": inUse.ExpenseCount,
					"budget_count":  inUse.BudgetCount,
				},
			})
		}

		h.logger.Error("Failed to delete category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
