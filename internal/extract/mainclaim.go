package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/engine"
)

const claimHeader = "MAIN CLAIM:"

const claimPromptTemplate = `You are analyzing a news article or web content to identify the main factual claim(s) that should be fact-checked.

TITLE: %s

ARTICLE CONTENT:
%s

Task: Extract and summarize the PRIMARY factual claim(s) made in this article. Focus on:
1. Specific statements that can be verified or disproven
2. Key facts, statistics, or assertions
3. Main thesis or conclusion if factual in nature

Guidelines:
- Combine related claims into a coherent statement
- Avoid opinions or subjective statements
- Focus on what can be fact-checked
- Be concise but complete (1-3 sentences)
- If multiple important claims exist, list them clearly

Format your response as:
MAIN CLAIM: [the primary factual claim(s) to fact-check]`

// MainClaim asks the engine for the article's primary verifiable claim.
// Once article text exists this never hard-fails: an engine error degrades
// to title plus first paragraph.
func MainClaim(ctx context.Context, eng engine.Engine, articleText, title string, maxChars int) string {
	truncated := articleText
	if maxChars > 0 && len(truncated) > maxChars {
		truncated = truncated[:maxChars]
	}

	claim, err := askEngine(ctx, eng, truncated, title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: main claim extraction failed (%v), using title fallback\n", err)
		return fallbackClaim(articleText, title)
	}
	return claim
}

func askEngine(ctx context.Context, eng engine.Engine, truncated, title string) (string, error) {
	session, err := eng.NewSession(ctx)
	if err != nil {
		return "", err
	}

	reply, err := session.Send(ctx, engine.TextPart(fmt.Sprintf(claimPromptTemplate, title, truncated)))
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if idx := strings.Index(reply, claimHeader); idx >= 0 {
		return strings.TrimSpace(reply[idx+len(claimHeader):]), nil
	}
	return reply, nil
}

// fallbackClaim builds a claim from the title and first paragraph
func fallbackClaim(articleText, title string) string {
	first := articleText
	if idx := strings.Index(articleText, "\n\n"); idx >= 0 {
		first = articleText[:idx]
	} else if len(first) > 500 {
		first = first[:500]
	}
	if len(first) > 300 {
		first = first[:300]
	}
	return fmt.Sprintf("%s. %s", title, first)
}
