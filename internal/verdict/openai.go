package verdict

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/claimlens/claimlens/internal/util"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// OpenAIChecker implements Checker against any OpenAI-compatible chat
// completions API. With the Perplexity base URL this is the professional
// deep-search fact-check path: the model searches the web and cites its
// sources inline.
type OpenAIChecker struct {
	client *openai.Client
	config Config
}

// NewOpenAIChecker creates an OpenAI-compatible checker
func NewOpenAIChecker(config Config) (*OpenAIChecker, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", config.Provider)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	} else if strings.EqualFold(config.Provider, "perplexity") {
		clientConfig.BaseURL = perplexityBaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
		},
	}

	return &OpenAIChecker{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (c *OpenAIChecker) Name() string {
	if c.config.Provider != "" {
		return c.config.Provider
	}
	return "openai"
}

// Check fact-checks the claim via the chat completions API
func (c *OpenAIChecker) Check(ctx context.Context, claimText string) (*Verdict, error) {
	model := c.config.Model
	if model == "" {
		if strings.EqualFold(c.config.Provider, "perplexity") {
			model = "sonar-pro"
		} else {
			model = openai.GPT4oMini
		}
	}

	maxTokens := c.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1500
	}

	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a professional fact-checker. Assess the claim against " +
					"reliable, current sources. State a clear verdict, explain the " +
					"evidence, and cite source URLs for every assertion you make.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(checkPrompt, claimText),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", c.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", c.Name())
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)

	return &Verdict{
		Text:    text,
		Sources: ExtractSources(text),
		Model:   model,
	}, nil
}
