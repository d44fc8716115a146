// Package pdftext resolves the text of every PDF page, preferring the embedded
// text layer and falling back to OCR of the rendered page.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cert-study/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const DefaultDPI = 200

// ResolverConfig tunes the OCR fallback.
type ResolverConfig struct {
	DPI float64
	// MinTextLength is the rune count below which embedded text is treated as missing.
	// Zero means only empty text triggers OCR.
	MinTextLength int
	// ImageDir, when set, receives page_<n>.png for every OCR'd page, under a
	// directory named after the PDF.
	ImageDir string
}

// Resolver implements domain.PageResolver.
type Resolver struct {
	open       Opener
	recognizer domain.Recognizer
	cfg        ResolverConfig
	logger     *zap.Logger
}

// NewResolver creates a resolver. A nil recognizer disables the OCR fallback;
// a nil opener uses OpenDocument.
func NewResolver(open Opener, recognizer domain.Recognizer, cfg ResolverConfig, logger *zap.Logger) *Resolver {
	if open == nil {
		open = OpenDocument
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{open: open, recognizer: recognizer, cfg: cfg, logger: logger}
}

// Resolve returns one entry per page in ascending page order. A page whose
// extraction or recognition fails is kept with empty text.
func (r *Resolver) Resolve(ctx context.Context, pdfPath string) ([]domain.PageText, error) {
	doc, err := r.open(pdfPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]domain.PageText, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		pages = append(pages, r.resolvePage(ctx, doc, pdfPath, i))
	}

	r.logger.Info("Resolved PDF pages",
		zap.String("path", pdfPath),
		zap.Int("pages", len(pages)),
	)
	return pages, nil
}

func (r *Resolver) resolvePage(ctx context.Context, doc Document, pdfPath string, page int) domain.PageText {
	text, err := doc.EmbeddedText(page)
	if err != nil {
		r.logger.Warn("Embedded text extraction failed", zap.Int("page", page), zap.Error(err))
		text = ""
	}
	text = norm.NFC.String(text)

	if r.hasEnoughText(text) || r.recognizer == nil {
		return domain.PageText{Index: page, Source: domain.PageSourceEmbedded, Text: text}
	}

	ocrText, err := r.recognize(ctx, doc, pdfPath, page)
	if err != nil {
		r.logger.Warn("OCR failed, keeping page empty", zap.Int("page", page), zap.Error(err))
		ocrText = ""
	}
	return domain.PageText{Index: page, Source: domain.PageSourceOCR, Text: norm.NFC.String(ocrText)}
}

func (r *Resolver) hasEnoughText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return utf8.RuneCountInString(trimmed) >= r.cfg.MinTextLength
}

func (r *Resolver) recognize(ctx context.Context, doc Document, pdfPath string, page int) (string, error) {
	img, err := doc.RenderPNG(page, r.cfg.DPI)
	if err != nil {
		return "", fmt.Errorf("render page %d: %w", page, err)
	}
	if r.cfg.ImageDir != "" {
		if err := r.saveImage(pdfPath, page, img); err != nil {
			r.logger.Warn("Failed to save page image", zap.Int("page", page), zap.Error(err))
		}
	}
	return r.recognizer.Recognize(ctx, img)
}

// ImagePath is where the rendered image of page is stored for pdfPath.
func ImagePath(imageDir, pdfPath string, page int) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(imageDir, base, fmt.Sprintf("page_%d.png", page))
}

func (r *Resolver) saveImage(pdfPath string, page int, img []byte) error {
	path := ImagePath(r.cfg.ImageDir, pdfPath, page)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}

// JoinPages concatenates page texts with a newline between pages.
func JoinPages(pages []domain.PageText) string {
	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}
