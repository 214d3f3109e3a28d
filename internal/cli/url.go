package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	urlExtractOnly bool
	urlNoCache     bool
	urlTimeout     time.Duration
	urlJSON        bool
)

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Fact-check the main claim of a web page",
	Long: `URL fetches a web page, isolates the article body, summarizes it into
its primary factual claim, and fact-checks that claim.

Example:
  claimlens url https://example.com/news/story
  claimlens url --extract-only https://example.com/news/story`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().BoolVar(&urlExtractOnly, "extract-only", false, "extract the article and main claim without checking")
	urlCmd.Flags().BoolVar(&urlNoCache, "no-cache", false, "disable extraction cache (force fresh fetch)")
	urlCmd.Flags().DurationVar(&urlTimeout, "timeout", 3*time.Minute, "overall check timeout")
	urlCmd.Flags().BoolVar(&urlJSON, "json", false, "print the result as JSON")
}

func runURL(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), urlTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if urlNoCache {
		cfg.Cache.Enabled = false
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	if urlExtractOnly {
		extraction := p.ExtractURL(ctx, rawURL)
		if urlJSON {
			data, err := json.MarshalIndent(extraction, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		if extraction.Failed() {
			fmt.Printf("✗ Error: %s\n", extraction.Error)
			return nil
		}
		fmt.Printf("Title: %s\n", extraction.Title)
		fmt.Printf("Source: %s\n", extraction.SourceDomain)
		fmt.Printf("\nMain claim: %s\n", extraction.MainClaim)
		fmt.Printf("\nArticle (%d chars):\n%s\n", len(extraction.ArticleText), extraction.ArticleText)
		return nil
	}

	result := p.CheckURLClaim(ctx, rawURL)
	return printResult(result, urlJSON)
}
