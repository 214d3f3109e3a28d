package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/engine"
	"github.com/claimlens/claimlens/internal/model"
)

// URLExtractor converts a web URL into article text plus a derived main
// claim. Every failure is classified into UrlExtraction.Error; nothing
// raises past this boundary.
type URLExtractor struct {
	fetcher *Fetcher
	engine  engine.Engine
	cache   cache.Cache
	opts    model.ExtractConfig
	verbose bool
}

// NewURLExtractor creates a URL extraction pipeline. cache may be nil to
// disable caching.
func NewURLExtractor(fetcher *Fetcher, eng engine.Engine, c cache.Cache, opts model.ExtractConfig, verbose bool) *URLExtractor {
	if opts.MinArticleChars <= 0 {
		opts.MinArticleChars = 100
	}
	if opts.CandidateChars <= 0 {
		opts.CandidateChars = 200
	}
	if opts.ClaimPromptChars <= 0 {
		opts.ClaimPromptChars = 5000
	}
	return &URLExtractor{
		fetcher: fetcher,
		engine:  eng,
		cache:   c,
		opts:    opts,
		verbose: verbose,
	}
}

// Extract runs the full URL pipeline: validate, fetch, isolate article
// text, derive the main claim.
func (x *URLExtractor) Extract(ctx context.Context, rawURL string) *model.UrlExtraction {
	if cached := x.fromCache(rawURL); cached != nil {
		if x.verbose {
			fmt.Fprintf(os.Stderr, "Cache hit for %s\n", rawURL)
		}
		return cached
	}

	domain := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		domain = parsed.Host
	}

	page, ferr := x.fetcher.Fetch(ctx, rawURL)
	if ferr != nil {
		return &model.UrlExtraction{SourceDomain: domain, Error: ferr.Message()}
	}

	article, err := ParseArticle(page.Body, x.opts.CandidateChars)
	if err != nil {
		return &model.UrlExtraction{
			SourceDomain: page.Domain,
			Error:        fmt.Sprintf("Error extracting content from URL: %v", err),
		}
	}

	if len(article.Text) < x.opts.MinArticleChars {
		return &model.UrlExtraction{
			Title:        article.Title,
			SourceDomain: page.Domain,
			Error:        (&FetchError{Kind: FailInsufficient}).Message(),
		}
	}

	if x.verbose {
		fmt.Fprintf(os.Stderr, "Article text extracted (%d characters) from %s\n", len(article.Text), page.Domain)
	}

	mainClaim := MainClaim(ctx, x.engine, article.Text, article.Title, x.opts.ClaimPromptChars)

	result := &model.UrlExtraction{
		ArticleText:  article.Text,
		Title:        article.Title,
		SourceDomain: page.Domain,
		MainClaim:    mainClaim,
	}
	x.toCache(rawURL, result)
	return result
}

func (x *URLExtractor) fromCache(rawURL string) *model.UrlExtraction {
	if x.cache == nil {
		return nil
	}
	data, found := x.cache.Get(cache.Key(rawURL))
	if !found {
		return nil
	}
	var result model.UrlExtraction
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (x *URLExtractor) toCache(rawURL string, result *model.UrlExtraction) {
	if x.cache == nil || result.Failed() {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := x.cache.Set(cache.Key(rawURL), data, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
	}
}
