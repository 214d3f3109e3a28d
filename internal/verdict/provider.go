package verdict

import (
	"context"
	"regexp"
	"strings"
)

// Checker generates a verdict for a single claim. Implementations wrap one
// remote service; the pipeline issues exactly one Check per invocation.
type Checker interface {
	// Name returns the provider name
	Name() string

	// Check fact-checks the claim and returns the verdict
	Check(ctx context.Context, claimText string) (*Verdict, error)
}

// Verdict is the provider's analysis of a claim
type Verdict struct {
	// Text is the natural-language verdict
	Text string

	// Sources are citation URLs referenced by the verdict, in order
	Sources []string

	// Model is the model that generated the verdict
	Model string
}

// Config holds verdict provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "perplexity"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible providers
	APIKey string

	// BaseURL for custom endpoints (e.g., the Perplexity API)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens limits the response length
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

const checkPrompt = `Fact check this claim: %s`

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

// ExtractSources pulls cited URLs out of a verdict text, deduplicated in
// order of first appearance.
func ExtractSources(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, u := range matches {
		u = strings.TrimRight(u, ".,;:!?")
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}

	return unique
}
