package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/ocr"
	"expense-tracker/internal/receipt"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedReceiptExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type ReceiptService struct {
	receiptRepo *repository.ReceiptRepository
	ocrEngine   *ocr.Engine
	uploadDir   string
	logger      *zap.Logger
}

func NewReceiptService(
	receiptRepo *repository.ReceiptRepository,
	ocrEngine *ocr.Engine,
	uploadDir string,
	logger *zap.Logger,
) *ReceiptService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &ReceiptService{
		receiptRepo: receiptRepo,
		ocrEngine:   ocrEngine,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// Scan stores the uploaded receipt, runs OCR over it and parses the text
// into a suggested expense. The parsed fields are suggestions for the user
// to review, not a committed expense.
func (s *ReceiptService) Scan(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ReceiptScanResponse, error) {
	rec, filePath, err := s.save(ctx, userID, file, fileName)
	if err != nil {
		return nil, err
	}

	extractedText, err := s.ocrEngine.ExtractText(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("OCR processing failed: %w", err)
	}
	extractedText = sanitizeUTF8(extractedText)

	if err := s.receiptRepo.UpdateExtractedText(ctx, rec.ID, extractedText); err != nil {
		s.logger.Warn("Failed to update extracted text", zap.Error(err))
	}

	parsed := receipt.Parse(extractedText)

	s.logger.Info("Receipt scanned",
		zap.String("receipt_id", rec.ID.String()),
		zap.String("merchant", parsed.MerchantName),
		zap.Int64("amount", parsed.TotalAmount),
		zap.String("category", parsed.SuggestedCategory),
	)

	return &dto.ReceiptScanResponse{
		Success:       true,
		ExtractedText: extractedText,
		ParsedData:    parsed,
		ImageURL:      rec.FileURL,
	}, nil
}

// Upload stores a receipt image without running OCR, for attaching to an
// expense record directly.
func (s *ReceiptService) Upload(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ReceiptUploadResponse, error) {
	rec, _, err := s.save(ctx, userID, file, fileName)
	if err != nil {
		return nil, err
	}

	return &dto.ReceiptUploadResponse{
		Success:  true,
		ImageURL: rec.FileURL,
		FileName: rec.FileName,
	}, nil
}

func (s *ReceiptService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.ReceiptResponse, error) {
	receipts, err := s.receiptRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReceiptResponse, len(receipts))
	for i, r := range receipts {
		responses[i] = dto.ReceiptResponse{
			ID:            r.ID.String(),
			FileName:      r.FileName,
			FileSize:      r.FileSize,
			FileURL:       r.FileURL,
			ExtractedText: r.ExtractedText,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		}
	}

	return responses, nil
}

func (s *ReceiptService) save(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*models.Receipt, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedReceiptExtensions[ext] {
		return nil, "", ErrInvalidInput
	}

	fileID := uuid.New()
	newFileName := fileID.String() + ext
	filePath := filepath.Join(s.uploadDir, newFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	fileSize, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(filePath)
		return nil, "", fmt.Errorf("failed to save file: %w", err)
	}

	now := time.Now()
	rec := &models.Receipt{
		ID:        fileID,
		UserID:    userID,
		FileName:  fileName,
		FileSize:  fileSize,
		FileURL:   "/uploads/" + newFileName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.receiptRepo.Create(ctx, rec); err != nil {
		os.Remove(filePath)
		return nil, "", fmt.Errorf("failed to create receipt record: %w", err)
	}

	return rec, filePath, nil
}
