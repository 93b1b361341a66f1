// Package ocr extracts raw text from uploaded receipt files. Images go
// through a local Tesseract instance; PDFs are read directly with go-fitz.
// Output quality is whatever the engine produces; the receipt parser is
// responsible for degrading gracefully on noisy text.
package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

type Engine struct {
	languages []string
	logger    *zap.Logger
}

// New creates an OCR engine. languages is a tesseract language list such as
// "kor+eng".
func New(languages string, logger *zap.Logger) *Engine {
	return &Engine{
		languages: strings.Split(languages, "+"),
		logger:    logger,
	}
}

// ExtractText extracts text from an image or PDF file.
// Supported formats: .jpg, .jpeg, .png, .pdf
func (e *Engine) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = e.extractTextFromPDF(filePath)
	case ".jpg", ".jpeg", ".png":
		text, err = e.extractTextFromImage(filePath)
	default:
		return "", fmt.Errorf("unsupported file format: %s (supported: jpg, jpeg, png, pdf)", ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)

	e.logger.Info("OCR extraction completed",
		zap.String("file", filePath),
		zap.String("format", ext),
		zap.Int("text_length", len(text)),
	)

	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", filePath)
	}

	return text, nil
}

func (e *Engine) extractTextFromImage(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("failed to set tesseract languages: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}

	return text, nil
}

func (e *Engine) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder

	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}

	return text, nil
}
