package dto

import "expense-tracker/internal/receipt"

type ReceiptScanResponse struct {
	Success       bool                  `json:"success"`
	ExtractedText string                `json:"extracted_text"`
	ParsedData    receipt.ParsedReceipt `json:"parsed_data"`
	ImageURL      string                `json:"image_url"`
}

type ReceiptUploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url"`
	FileName string `json:"file_name"`
}

type ReceiptResponse struct {
	ID            string `json:"id"`
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	FileURL       string `json:"file_url"`
	ExtractedText string `json:"extracted_text,omitempty"`
	CreatedAt     string `json:"created_at"`
}
