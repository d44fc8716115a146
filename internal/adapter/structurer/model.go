package structurer

import (
	"fmt"
	"net/http"
	"time"

	"cert-study/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModelFactory returns a factory for the provider named in cfg.
// Nothing is dialled until the factory runs.
func NewModelFactory(cfg config.LLMConfig) ModelFactory {
	return func() (llms.Model, error) {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient := &http.Client{Timeout: timeout}

		switch cfg.Provider {
		case "ollama", "":
			opts := []ollama.Option{
				ollama.WithModel(cfg.Model),
				ollama.WithHTTPClient(httpClient),
				ollama.WithFormat("json"),
			}
			if cfg.ServerURL != "" {
				opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
			}
			return ollama.New(opts...)
		case "openai":
			if cfg.APIKey == "" {
				return nil, fmt.Errorf("openai API key cannot be empty")
			}
			opts := []openai.Option{
				openai.WithToken(cfg.APIKey),
				openai.WithModel(cfg.Model),
				openai.WithHTTPClient(httpClient),
			}
			if cfg.ServerURL != "" {
				opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
			}
			return openai.New(opts...)
		default:
			return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
		}
	}
}
