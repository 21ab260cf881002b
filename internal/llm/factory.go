package llm

import (
	"fmt"
	"os"

	"github.com/bormex/bormex/internal/model"
)

// NewProvider builds the configured provider. An empty provider name
// means summarization is disabled and both return values are nil.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg, os.Getenv("OPENAI_API_KEY"))
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
