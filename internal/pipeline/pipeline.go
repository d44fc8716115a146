// Package pipeline builds the ingestion components selected by configuration.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"cert-study/internal/adapter"
	"cert-study/internal/adapter/ocr"
	"cert-study/internal/adapter/structurer"
	"cert-study/internal/config"
	"cert-study/internal/domain"
	"cert-study/internal/parser"
	"cert-study/internal/pdftext"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewResolver builds the page resolver with the configured OCR engine. A remote
// OCR service is checked once; an unreachable one is logged, not fatal.
func NewResolver(cfg *config.Config, logger *zap.Logger) (domain.PageResolver, error) {
	recognizer, err := ocr.NewRecognizer(cfg.OCR)
	if err != nil {
		return nil, err
	}
	if recognizer == nil {
		logger.Warn("OCR disabled; pages without embedded text will be empty")
	}
	if hc, ok := recognizer.(healthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hc.HealthCheck(ctx); err != nil {
			logger.Warn("OCR service is not reachable; OCR fallback will fail until it is",
				zap.String("server_url", cfg.OCR.ServerURL), zap.Error(err))
		} else {
			logger.Info("OCR service reachable", zap.String("server_url", cfg.OCR.ServerURL))
		}
	}
	return pdftext.NewResolver(pdftext.OpenDocument, recognizer, pdftext.ResolverConfig{
		DPI:           cfg.OCR.DPI,
		MinTextLength: cfg.Ingest.MinTextLength,
		ImageDir:      cfg.Ingest.ImageDir,
	}, logger), nil
}

// NewStructurer builds the regex or llm structurer. c may be nil.
func NewStructurer(cfg *config.Config, c domain.Cache, logger *zap.Logger) (domain.Structurer, error) {
	switch cfg.Ingest.Structurer {
	case "regex", "":
		return parser.NewRegexStructurer(), nil
	case "llm":
		ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Structurer, 168*time.Hour)
		return structurer.NewLLMStructurer(structurer.NewModelFactory(cfg.LLM), cfg.LLM.Model, c, ttl, logger), nil
	default:
		return nil, fmt.Errorf("unsupported structurer: %s", cfg.Ingest.Structurer)
	}
}

// NewCache wraps client as a domain.Cache, or returns nil when caching is disabled.
func NewCache(client *redis.Client) domain.Cache {
	if client == nil {
		return nil
	}
	return adapter.NewRedisCacheAdapter(client)
}
