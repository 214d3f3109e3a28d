package verdict

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/engine"
)

// GeminiChecker implements Checker on the verdict engine itself. Each
// check opens a fresh session; the engine owns the conversation state.
type GeminiChecker struct {
	engine engine.Engine
	model  string
}

// NewGeminiChecker creates an engine-backed checker
func NewGeminiChecker(eng engine.Engine, model string) *GeminiChecker {
	return &GeminiChecker{engine: eng, model: model}
}

// Name returns the provider name
func (c *GeminiChecker) Name() string {
	return "gemini"
}

// Check fact-checks the claim through an engine session
func (c *GeminiChecker) Check(ctx context.Context, claimText string) (*Verdict, error) {
	session, err := c.engine.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	text, err := session.Send(ctx, engine.TextPart(fmt.Sprintf(checkPrompt, claimText)))
	if err != nil {
		return nil, fmt.Errorf("gemini check: %w", err)
	}

	text = strings.TrimSpace(text)

	return &Verdict{
		Text:    text,
		Sources: ExtractSources(text),
		Model:   c.model,
	}, nil
}
