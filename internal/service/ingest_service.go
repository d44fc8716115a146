package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cert-study/internal/classify"
	"cert-study/internal/config"
	"cert-study/internal/domain"
	"cert-study/internal/parser"
	"cert-study/internal/pdftext"

	"go.uber.org/zap"
)

// IngestOptions controls what an ingestion run does with its items.
type IngestOptions struct {
	// Persist stores the items; otherwise the run only returns them.
	Persist bool
	// ArtifactPath, when set, receives the items as a JSON array.
	ArtifactPath string
}

// IngestService turns one PDF into stored questions.
type IngestService interface {
	Ingest(ctx context.Context, pdfPath, source string, opts IngestOptions) (*domain.IngestResult, error)
}

// ingestService implements IngestService
type ingestService struct {
	resolver   domain.PageResolver
	structurer domain.Structurer
	questions  domain.QuestionRepository
	tm         domain.TransactionManager
	chunked    bool
	chunkSize  int
	logger     *zap.Logger
}

// NewIngestService creates the ingestion pipeline. With the llm structurer the
// text is structured page by page and chunk by chunk, otherwise as one document.
func NewIngestService(
	resolver domain.PageResolver,
	structurer domain.Structurer,
	questions domain.QuestionRepository,
	tm domain.TransactionManager,
	cfg *config.Config,
	logger *zap.Logger,
) IngestService {
	chunkSize := parser.DefaultChunkSize
	chunked := false
	if cfg != nil {
		if cfg.Ingest.ChunkSize > 0 {
			chunkSize = cfg.Ingest.ChunkSize
		}
		chunked = cfg.Ingest.Structurer == "llm"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ingestService{
		resolver:   resolver,
		structurer: structurer,
		questions:  questions,
		tm:         tm,
		chunked:    chunked,
		chunkSize:  chunkSize,
		logger:     logger,
	}
}

func (s *ingestService) Ingest(ctx context.Context, pdfPath, source string, opts IngestOptions) (*domain.IngestResult, error) {
	if source == "" {
		source = filepath.Base(pdfPath)
	}
	start := time.Now()
	log := s.logger.With(zap.String("source", source))

	pages, err := s.resolver.Resolve(ctx, pdfPath)
	if err != nil {
		return nil, domain.NewIngestError(err)
	}
	log.Info("Pages resolved", zap.Int("pages", len(pages)))

	result := &domain.IngestResult{Source: source, Pages: len(pages), Items: []*domain.Question{}}
	if s.chunked {
		err = s.structureChunks(ctx, pages, source, opts.Persist, result, log)
	} else {
		err = s.structureDocument(ctx, pages, source, opts.Persist, result)
	}
	if err != nil {
		return nil, err
	}

	if opts.ArtifactPath != "" {
		if err := WriteArtifact(opts.ArtifactPath, result.Items); err != nil {
			return nil, domain.NewIngestError(err)
		}
		result.ArtifactPath = opts.ArtifactPath
	}

	log.Info("Ingestion finished",
		zap.Int("items", len(result.Items)),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped_chunks", result.SkippedChunks),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *ingestService) structureDocument(ctx context.Context, pages []domain.PageText, source string, persist bool, result *domain.IngestResult) error {
	items, err := s.structurer.Structure(ctx, pdftext.JoinPages(pages))
	if err != nil {
		return domain.NewIngestError(err)
	}
	classify.Apply(items)
	result.Items = append(result.Items, items...)

	if !persist || len(items) == 0 {
		return nil
	}
	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		n, err := s.questions.InsertMany(txCtx, items, source)
		if err != nil {
			return domain.NewIngestError(err)
		}
		result.Inserted += n
		return nil
	})
}

// structureChunks persists after every chunk so earlier chunks survive a later failure.
func (s *ingestService) structureChunks(ctx context.Context, pages []domain.PageText, source string, persist bool, result *domain.IngestResult, log *zap.Logger) error {
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		chunkNo := 0
		for chunk := range parser.Chunks(page.Text, s.chunkSize) {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunkNo++
			items, err := s.structurer.Structure(ctx, chunk)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				result.SkippedChunks++
				log.Warn("Skipping chunk that could not be structured",
					zap.Int("page", page.Index),
					zap.Int("chunk", chunkNo),
					zap.Error(err),
				)
				continue
			}
			if len(items) == 0 {
				continue
			}
			classify.Apply(items)
			result.Items = append(result.Items, items...)

			if !persist {
				continue
			}
			err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
				n, err := s.questions.InsertMany(txCtx, items, source)
				if err != nil {
					return err
				}
				result.Inserted += n
				return nil
			})
			if err != nil {
				return domain.NewIngestError(fmt.Errorf("page %d chunk %d: %w", page.Index, chunkNo, err))
			}
		}
	}
	return nil
}

type artifactItem struct {
	Stem        string         `json:"stem"`
	Options     domain.Options `json:"options"`
	Answer      string         `json:"answer"`
	Explanation string         `json:"explanation"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
}

// WriteArtifact writes the items as an indented JSON array, creating parent directories.
func WriteArtifact(path string, items []*domain.Question) error {
	out := make([]artifactItem, 0, len(items))
	for _, q := range items {
		out = append(out, artifactItem{
			Stem:        q.Stem,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Category:    q.Category,
			Subcategory: q.Subcategory,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return nil
}

// ArtifactPathFor names the JSON artifact for pdfPath inside outputDir, or "" when outputDir is empty.
func ArtifactPathFor(outputDir, pdfPath string) string {
	if outputDir == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outputDir, base+".json")
}
