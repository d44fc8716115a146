package structurer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cert-study/internal/cache"
	"cert-study/internal/domain"
	"cert-study/internal/validation"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = 168 * time.Hour

const promptTemplate = `You extract multiple-choice exam questions from OCR text.
Respond with ONLY a JSON object in the following format:
{
  "items": [
    {
      "stem": "question text",
      "options": {"A": "first option", "B": "second option", "C": "third option", "D": "fourth option"},
      "answer": "B",
      "explanation": "why B is correct"
    }
  ]
}

Rules:
1. Option keys must be from A, B, C, D, E.
2. "answer" must be one of the option keys.
3. Copy the stem and option texts as written; do not translate.
4. Skip questions that are cut off and have fewer than two options.
5. If the text holds no question, return {"items": []}.

Text:
%s`

// ModelFactory builds the model client on first use.
type ModelFactory func() (llms.Model, error)

type llmItem struct {
	Stem        string         `json:"stem" validate:"required"`
	Options     domain.Options `json:"options" validate:"min=2,dive,keys,option_label,endkeys,required"`
	Answer      string         `json:"answer" validate:"required,option_label"`
	Explanation string         `json:"explanation"`
}

type llmResponse struct {
	Items []llmItem `json:"items"`
}

// LLMStructurer implements domain.Structurer with one model call per chunk.
type LLMStructurer struct {
	newModel ModelFactory
	once     sync.Once
	model    llms.Model
	modelErr error

	modelName string
	cache     domain.Cache
	cacheTTL  time.Duration
	sfGroup   singleflight.Group
	validator *validation.Validator
	logger    *zap.Logger
}

// NewLLMStructurer creates a structurer whose model is built lazily by newModel.
// cache may be nil; modelName only scopes cache keys.
func NewLLMStructurer(newModel ModelFactory, modelName string, c domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *LLMStructurer {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMStructurer{
		newModel:  newModel,
		modelName: modelName,
		cache:     c,
		cacheTTL:  cacheTTL,
		validator: validation.NewValidator(),
		logger:    logger,
	}
}

func (s *LLMStructurer) getModel() (llms.Model, error) {
	s.once.Do(func() {
		if s.newModel == nil {
			s.modelErr = errors.New("no model factory configured")
			return
		}
		s.model, s.modelErr = s.newModel()
		if s.modelErr == nil {
			s.logger.Info("LLM client initialized", zap.String("model", s.modelName))
		}
	})
	return s.model, s.modelErr
}

// Structure implements domain.Structurer. A failed call or an invalid response is
// returned as an LLM service error; the caller decides whether to skip the chunk.
func (s *LLMStructurer) Structure(ctx context.Context, chunk string) ([]*domain.Question, error) {
	if strings.TrimSpace(chunk) == "" {
		return nil, nil
	}
	cacheKey := cache.GenerateCacheKey("structurer", "chunk", cache.HashText(chunk), s.modelName)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var items []llmItem
			if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
				s.logger.Debug("Structurer cache hit", zap.String("key", cacheKey))
				return toQuestions(items), nil
			}
			s.logger.Warn("Discarding unreadable cached structurer result", zap.String("key", cacheKey))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Structurer cache read failed", zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		items, err := s.callAndParse(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if payload, mErr := json.Marshal(items); mErr == nil {
				if setErr := s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL); setErr != nil {
					s.logger.Warn("Structurer cache write failed", zap.Error(setErr))
				}
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	return toQuestions(res.([]llmItem)), nil
}

func (s *LLMStructurer) callAndParse(ctx context.Context, chunk string) ([]llmItem, error) {
	model, err := s.getModel()
	if err != nil {
		return nil, fmt.Errorf("model unavailable: %w", err)
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, model, fmt.Sprintf(promptTemplate, chunk),
		llms.WithTemperature(0.1),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("LLM request timed out: %w", err)
		}
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	s.logger.Debug("Raw LLM response received", zap.Int("length", len(raw)))

	jsonStr, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var resp llmResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}
	for i := range resp.Items {
		if err := s.validateItem(&resp.Items[i]); err != nil {
			return nil, fmt.Errorf("item %d failed validation: %w", i, err)
		}
	}
	return resp.Items, nil
}

func (s *LLMStructurer) validateItem(item *llmItem) error {
	item.Stem = strings.TrimSpace(item.Stem)
	item.Answer = strings.TrimSpace(item.Answer)
	if err := s.validator.ValidateStruct(item); err != nil {
		return err
	}
	if _, ok := item.Options[item.Answer]; !ok {
		return domain.ValidationErrors{domain.NewInvalidFormatError("answer", item.Answer)}
	}
	return nil
}

// extractJSONObject drops <think> blocks and returns the text between the first '{' and the last '}'.
func extractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in LLM response")
	}
	return cleaned[start : end+1], nil
}

func toQuestions(items []llmItem) []*domain.Question {
	out := make([]*domain.Question, 0, len(items))
	for _, it := range items {
		out = append(out, &domain.Question{
			Stem:        it.Stem,
			Options:     it.Options,
			Answer:      it.Answer,
			Explanation: strings.TrimSpace(it.Explanation),
		})
	}
	return out
}

var _ domain.Structurer = (*LLMStructurer)(nil)
