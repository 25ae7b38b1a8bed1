package advice

import (
	"context"
	"net/http"

	"github.com/sadopc/waterflow/internal/config"
	"github.com/sadopc/waterflow/internal/log"
)

// NewFromConfig builds a Gateway backed by the configured provider. A
// provider without credentials yields a gateway over Disabled, which always
// answers with the fallback text.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Gateway, error) {
	var (
		gen   Generator = Disabled{}
		model string
	)

	switch {
	case !cfg.AdviceEnabled():
		logger.Info("advice disabled", "provider", cfg.AdviceProvider)
	case cfg.AdviceProvider == config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, err
		}
		gen, model = c, cfg.GeminiModel
	case cfg.AdviceProvider == config.ProviderOpenAI:
		gen = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, &http.Client{Timeout: cfg.AdviceTimeout})
		model = cfg.OpenAIModel
	}

	return NewGateway(gen,
		WithModel(model),
		WithLanguage(cfg.AdviceLanguage),
		WithTimeout(cfg.AdviceTimeout),
		WithLogger(logger),
	), nil
}
