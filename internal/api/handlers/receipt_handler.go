package handlers

import (
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	receiptService *service.ReceiptService
	maxSizeMB      int
	logger         *zap.Logger
}

func NewReceiptHandler(receiptService *service.ReceiptService, maxSizeMB int, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		maxSizeMB:      maxSizeMB,
		logger:         logger,
	}
}

// Scan godoc
// @Summary Scan a receipt
// @Description Runs OCR over an uploaded receipt image or PDF and parses merchant, amount, date, items and a suggested category. The parsed fields are suggestions for the user to review.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "Receipt image (jpg, jpeg, png) or PDF"
// @Security Bearer
// @Success 200 {object} dto.ReceiptScanResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/receipts/scan [post]
func (h *ReceiptHandler) Scan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Receipt file is required",
		})
	}

	if fileHeader.Size > int64(h.maxSizeMB)*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	resp, err := h.receiptService.Scan(c.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only jpg, jpeg, png and pdf files are supported",
			})
		}
		h.logger.Error("Receipt scan failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Failed to process receipt",
		})
	}

	return c.JSON(resp)
}

// Upload godoc
// @Summary Upload a receipt image
// @Description Stores a receipt file without running OCR, for attaching to an expense
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "Receipt image (jpg, jpeg, png) or PDF"
// @Security Bearer
// @Success 200 {object} dto.ReceiptUploadResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/receipts/upload [post]
func (h *ReceiptHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Receipt file is required",
		})
	}

	if fileHeader.Size > int64(h.maxSizeMB)*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	resp, err := h.receiptService.Upload(c.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		if err == service.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only jpg, jpeg, png and pdf files are supported",
			})
		}
		h.logger.Error("Receipt upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload receipt",
		})
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List uploaded receipts
// @Tags receipts
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ReceiptResponse
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	receipts, err := h.receiptService.List(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	return c.JSON(receipts)
}
