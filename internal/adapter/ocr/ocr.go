// Package ocr holds the bitmap text recognizers used for pages without embedded text.
package ocr

import (
	"fmt"

	"cert-study/internal/config"
	"cert-study/internal/domain"
)

// NewRecognizer builds the recognizer selected by cfg.Engine.
// The "none" engine returns a nil recognizer, which disables the OCR fallback.
func NewRecognizer(cfg config.OCRConfig) (domain.Recognizer, error) {
	switch cfg.Engine {
	case "tesseract", "":
		return NewTesseractRecognizer(cfg.Binary, cfg.Language, cfg.DPI), nil
	case "http":
		return NewHTTPRecognizer(cfg.ServerURL, cfg.Language, cfg.Timeout), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", cfg.Engine)
	}
}
