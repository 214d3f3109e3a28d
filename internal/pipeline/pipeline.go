package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/engine"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/media"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/store"
	"github.com/claimlens/claimlens/internal/verdict"
)

// Repository persists checked claims
type Repository interface {
	Save(ctx context.Context, claimText, verdictText string) error
}

// Pipeline orchestrates claim verification: classify the input, extract
// verifiable text, obtain a verdict, and assemble the result envelope.
// Distinct invocations share no mutable state; callers may run them
// concurrently.
type Pipeline struct {
	engine       engine.Engine
	extractor    *media.Extractor
	urlExtractor *extract.URLExtractor
	checker      verdict.Checker
	repo         Repository
	verbose      bool
}

// New wires a pipeline from configuration
func New(ctx context.Context, cfg *model.Config) (*Pipeline, error) {
	eng, err := engine.NewGeminiEngine(ctx, cfg.Engine.APIKey, cfg.Engine.Model)
	if err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}

	assets := media.NewAssetManager(eng, cfg.Asset.PollInterval, cfg.Asset.MaxWait)
	normalizer := media.NewNormalizer(cfg.Asset.FFmpegPath)
	extractor := media.NewExtractor(eng, assets, normalizer, cfg.Output.Verbose)

	fetcher := extract.NewFetcher(extract.FetcherOptions{
		Timeout:       cfg.HTTP.Timeout,
		UserAgent:     cfg.HTTP.UserAgent,
		MaxBodyBytes:  cfg.HTTP.MaxBodyBytes,
		RespectRobots: cfg.HTTP.RespectRobots,
		RatePerSecond: cfg.HTTP.RatePerSecond,
		RateBurst:     cfg.HTTP.RateBurst,
	})

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	urlExtractor := extract.NewURLExtractor(fetcher, eng, c, cfg.Extract, cfg.Output.Verbose)

	checker, err := verdict.NewChecker(verdict.Config{
		Provider:   cfg.Verdict.Provider,
		Model:      cfg.Verdict.Model,
		APIKey:     cfg.Verdict.APIKey,
		BaseURL:    cfg.Verdict.BaseURL,
		Timeout:    cfg.Verdict.Timeout,
		MaxTokens:  cfg.Verdict.MaxTokens,
		HTTPProxy:  cfg.Verdict.HTTPProxy,
		HTTPSProxy: cfg.Verdict.HTTPSProxy,
	}, eng)
	if err != nil {
		return nil, fmt.Errorf("initialize verdict provider: %w", err)
	}

	var repo Repository
	if cfg.Store.DSN != "" {
		r, err := store.Open(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("open claim store: %w", err)
		}
		repo = r
	}

	return &Pipeline{
		engine:       eng,
		extractor:    extractor,
		urlExtractor: urlExtractor,
		checker:      checker,
		repo:         repo,
		verbose:      cfg.Output.Verbose,
	}, nil
}

// Store returns the claim repository, or nil when persistence is disabled
func (p *Pipeline) Store() *store.Repository {
	if r, ok := p.repo.(*store.Repository); ok {
		return r
	}
	return nil
}

// CheckTextClaim fact-checks a plain text claim
func (p *Pipeline) CheckTextClaim(ctx context.Context, claimText string) (result *model.VerdictResult) {
	defer envelopeGuard(claimText, &result)

	v, err := p.checker.Check(ctx, claimText)
	if err != nil {
		return model.ErrorResult(claimText, err.Error())
	}

	p.save(ctx, claimText, v.Text)

	return &model.VerdictResult{
		ClaimText:   claimText,
		Status:      model.StatusOK,
		VerdictText: v.Text,
		Sources:     v.Sources,
	}
}

// CheckMediaClaim fact-checks a media file, optionally with user-supplied
// claim text as the primary claim. Unsupported content types short-circuit
// before any upload or engine call.
func (p *Pipeline) CheckMediaClaim(ctx context.Context, claimText string, content []byte, contentType, filename string) (result *model.VerdictResult) {
	defer envelopeGuard(claimText, &result)

	mediaType := media.Classify(contentType)
	if mediaType == model.MediaUnsupported {
		result := model.ErrorResult(
			orDefault(claimText, "Unknown media type"),
			fmt.Sprintf("Unsupported file type: %s", contentType),
		)
		result.MediaType = contentType
		return result
	}

	extraction := p.extractor.Extract(ctx, &model.MediaInput{
		Content:     content,
		ContentType: contentType,
		Filename:    filename,
	})
	if extraction.Failed() {
		result := model.ErrorResult(
			orDefault(claimText, fmt.Sprintf("Media file: %s", filename)),
			extraction.Error,
		)
		result.MediaType = contentType
		return result
	}

	combined := CombineClaim(claimText, extraction.Text, string(extraction.MediaType))
	if p.verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d characters from %s, checking combined claim\n", len(extraction.Text), mediaType)
	}

	v, err := p.checker.Check(ctx, combined)
	if err != nil {
		result := model.ErrorResult(combined, err.Error())
		result.MediaType = contentType
		result.MediaFilename = filename
		result.ExtractedText = extraction.Text
		return result
	}

	p.save(ctx, combined, v.Text)

	return &model.VerdictResult{
		ClaimText:     combined,
		Status:        model.StatusOK,
		VerdictText:   v.Text,
		Sources:       v.Sources,
		MediaType:     contentType,
		MediaFilename: filename,
		ExtractedText: extraction.Text,
	}
}

// ExtractURL runs the URL content extraction pipeline without generating a
// verdict
func (p *Pipeline) ExtractURL(ctx context.Context, rawURL string) *model.UrlExtraction {
	return p.urlExtractor.Extract(ctx, rawURL)
}

// CheckURLClaim extracts the main claim from a web page and fact-checks it
func (p *Pipeline) CheckURLClaim(ctx context.Context, rawURL string) (result *model.VerdictResult) {
	defer envelopeGuard(rawURL, &result)

	extraction := p.urlExtractor.Extract(ctx, rawURL)
	if extraction.Failed() {
		result := model.ErrorResult(rawURL, extraction.Error)
		result.SourceURL = rawURL
		result.Title = extraction.Title
		return result
	}

	claim := extraction.MainClaim

	v, err := p.checker.Check(ctx, claim)
	if err != nil {
		result := model.ErrorResult(claim, err.Error())
		result.SourceURL = rawURL
		result.Title = extraction.Title
		result.ExtractedText = extraction.ArticleText
		return result
	}

	p.save(ctx, claim, v.Text)

	return &model.VerdictResult{
		ClaimText:     claim,
		Status:        model.StatusOK,
		VerdictText:   v.Text,
		Sources:       v.Sources,
		SourceURL:     rawURL,
		Title:         extraction.Title,
		ExtractedText: extraction.ArticleText,
	}
}

// CombineClaim merges user text with extracted media text. User text is
// primary; extracted text becomes labeled context. Without user text the
// extracted text itself is the claim, labeled by source type.
func CombineClaim(userText, extractedText, mediaType string) string {
	if userText != "" {
		return fmt.Sprintf("%s\n\nContext from %s: %s", userText, mediaType, extractedText)
	}
	return fmt.Sprintf("Claims from %s: %s", mediaType, extractedText)
}

// save persists the claim best-effort; storage failures never fail the
// request
func (p *Pipeline) save(ctx context.Context, claimText, verdictText string) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Save(ctx, claimText, verdictText); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save claim: %v\n", err)
	}
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// envelopeGuard converts a panic from a downstream SDK into an error
// envelope so no fault ever crosses the pipeline boundary
func envelopeGuard(claim string, result **model.VerdictResult) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "Error: pipeline panic while checking %q: %v\n", claim, r)
		*result = model.ErrorResult(claim, fmt.Sprintf("internal error: %v", r))
	}
}
