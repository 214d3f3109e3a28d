package verdict

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/engine"
)

// NewChecker creates a verdict checker from configuration. The engine is
// used for the "gemini" provider; OpenAI-compatible providers run over
// their own HTTP clients.
func NewChecker(config Config, eng engine.Engine) (Checker, error) {
	switch strings.ToLower(config.Provider) {
	case "", "gemini":
		if eng == nil {
			return nil, fmt.Errorf("gemini verdict provider requires a configured engine")
		}
		return NewGeminiChecker(eng, config.Model), nil

	case "openai", "perplexity":
		return NewOpenAIChecker(config)

	default:
		return nil, fmt.Errorf("unknown verdict provider: %s (supported: gemini, openai, perplexity)", config.Provider)
	}
}
