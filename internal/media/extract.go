package media

import (
	"context"
	"fmt"
	"os"

	"github.com/claimlens/claimlens/internal/engine"
	"github.com/claimlens/claimlens/internal/model"
)

const (
	imagePrompt = `Extract all visible text and factual claims from this image.
Include any text overlays, captions, signs, headlines, or statistics shown.
Describe factual assertions the image makes. Respond with the extracted
content only, no commentary.`

	audioPrompt = `Transcribe the speech in this audio recording and identify the
factual claims being made. Respond with the transcript and the key claims,
no commentary.`

	videoPrompt = `Analyze this video and extract both the spoken claims
(transcribe the speech) and any on-screen text such as captions, headlines,
or statistics. Respond with the extracted claims only, no commentary.`
)

// Extractor produces plain verifiable text from image, video, or audio
// input. Every failure is mapped into ExtractionResult.Error; nothing
// raises past this boundary.
type Extractor struct {
	engine     engine.Engine
	assets     *AssetManager
	normalizer *Normalizer
	verbose    bool
}

// NewExtractor creates a media extractor
func NewExtractor(eng engine.Engine, assets *AssetManager, normalizer *Normalizer, verbose bool) *Extractor {
	return &Extractor{
		engine:     eng,
		assets:     assets,
		normalizer: normalizer,
		verbose:    verbose,
	}
}

// Extract routes the input by declared content type. Unsupported types
// short-circuit before any upload or engine call.
func (e *Extractor) Extract(ctx context.Context, in *model.MediaInput) *model.ExtractionResult {
	mediaType := Classify(in.ContentType)

	switch mediaType {
	case model.MediaImage:
		return e.extractImage(ctx, in)
	case model.MediaVideo:
		return e.extractUploaded(ctx, in, model.MediaVideo, videoPrompt)
	case model.MediaAudio:
		return e.extractAudio(ctx, in)
	default:
		return &model.ExtractionResult{
			MediaType: model.MediaUnsupported,
			Error:     fmt.Sprintf("Unsupported file type: %s", in.ContentType),
		}
	}
}

// extractImage sends the image bytes inline, no upload round trip needed
func (e *Extractor) extractImage(ctx context.Context, in *model.MediaInput) *model.ExtractionResult {
	if e.verbose {
		fmt.Fprintf(os.Stderr, "Extracting text from image %s...\n", in.Filename)
	}

	session, err := e.engine.NewSession(ctx)
	if err != nil {
		return extractionError(model.MediaImage, err)
	}

	text, err := session.Send(ctx,
		engine.TextPart(imagePrompt),
		engine.InlinePart(in.Content, in.ContentType),
	)
	if err != nil {
		return extractionError(model.MediaImage, err)
	}

	return &model.ExtractionResult{Text: text, MediaType: model.MediaImage}
}

// extractAudio normalizes first, then follows the upload path
func (e *Extractor) extractAudio(ctx context.Context, in *model.MediaInput) *model.ExtractionResult {
	data, mimeType, ok := e.normalizer.Normalize(ctx, in.Content, in.ContentType)
	if e.verbose && ok {
		fmt.Fprintf(os.Stderr, "Normalized audio %s to %s (%d bytes)\n", in.Filename, mimeType, len(data))
	}

	normalized := &model.MediaInput{Content: data, ContentType: mimeType, Filename: in.Filename}
	return e.extractUploaded(ctx, normalized, model.MediaAudio, audioPrompt)
}

// extractUploaded uploads the bytes, waits for the asset to become ACTIVE,
// then prompts the engine with a reference to it. The remote asset is
// discarded unconditionally once this function returns.
func (e *Extractor) extractUploaded(ctx context.Context, in *model.MediaInput, mediaType model.MediaType, prompt string) *model.ExtractionResult {
	if e.verbose {
		fmt.Fprintf(os.Stderr, "Uploading %s %s (%d bytes)...\n", mediaType, in.Filename, len(in.Content))
	}

	handle, err := e.assets.Upload(ctx, in.Content, in.ContentType)
	if err != nil {
		return extractionError(mediaType, err)
	}
	defer e.assets.Discard(ctx, handle)

	ready, err := e.assets.AwaitReady(ctx, handle)
	if err != nil {
		return extractionError(mediaType, err)
	}

	session, err := e.engine.NewSession(ctx)
	if err != nil {
		return extractionError(mediaType, err)
	}

	text, err := session.Send(ctx,
		engine.TextPart(prompt),
		engine.AssetPart(ready.URI, ready.MIMEType),
	)
	if err != nil {
		return extractionError(mediaType, err)
	}

	return &model.ExtractionResult{Text: text, MediaType: mediaType}
}

func extractionError(mediaType model.MediaType, err error) *model.ExtractionResult {
	return &model.ExtractionResult{
		MediaType: mediaType,
		Error:     fmt.Sprintf("Error extracting text from %s: %v", mediaType, err),
	}
}
