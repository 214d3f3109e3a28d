package media

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/engine"
	"github.com/claimlens/claimlens/internal/model"
)

// fakeEngine records sessions and replies with a fixed response
type fakeEngine struct {
	response string
	err      error
	sessions int
	sent     [][]engine.Part
}

func (f *fakeEngine) NewSession(ctx context.Context) (engine.Session, error) {
	f.sessions++
	return &fakeSession{engine: f}, nil
}

type fakeSession struct {
	engine *fakeEngine
}

func (s *fakeSession) Send(ctx context.Context, parts ...engine.Part) (string, error) {
	s.engine.sent = append(s.engine.sent, parts)
	if s.engine.err != nil {
		return "", s.engine.err
	}
	return s.engine.response, nil
}

func newTestExtractor(eng *fakeEngine, store *fakeAssetStore) *Extractor {
	assets := NewAssetManager(store, time.Millisecond, 500*time.Millisecond)
	normalizer := NewNormalizer("/nonexistent/ffmpeg-binary")
	return NewExtractor(eng, assets, normalizer, false)
}

func TestExtract_UnsupportedShortCircuits(t *testing.T) {
	eng := &fakeEngine{response: "should never be called"}
	store := &fakeAssetStore{}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte("data"),
		ContentType: "application/pdf",
		Filename:    "doc.pdf",
	})

	if !result.Failed() {
		t.Fatal("Expected an error result for unsupported content type")
	}
	if !strings.Contains(result.Error, "Unsupported file type") {
		t.Errorf("Unexpected error message: %s", result.Error)
	}
	if store.uploads != 0 {
		t.Errorf("Expected no upload attempt, got %d", store.uploads)
	}
	if eng.sessions != 0 {
		t.Errorf("Expected no engine call, got %d sessions", eng.sessions)
	}
}

func TestExtract_ImageInline(t *testing.T) {
	eng := &fakeEngine{response: "Sign reads: free entry after 6pm"}
	store := &fakeAssetStore{}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte{0x89, 0x50, 0x4e, 0x47},
		ContentType: "image/png",
		Filename:    "sign.png",
	})

	if result.Failed() {
		t.Fatalf("Unexpected error: %s", result.Error)
	}
	if result.MediaType != model.MediaImage {
		t.Errorf("Expected image media type, got %s", result.MediaType)
	}
	if result.Text != "Sign reads: free entry after 6pm" {
		t.Errorf("Unexpected extraction text: %q", result.Text)
	}
	if store.uploads != 0 {
		t.Errorf("Images must be sent inline, got %d uploads", store.uploads)
	}

	// Prompt part plus inline bytes part
	if len(eng.sent) != 1 || len(eng.sent[0]) != 2 {
		t.Fatalf("Expected one send with two parts, got %v", eng.sent)
	}
	if eng.sent[0][1].Inline == nil {
		t.Error("Expected second part to carry inline image bytes")
	}
}

func TestExtract_VideoUploadsAndAwaits(t *testing.T) {
	eng := &fakeEngine{response: "Speaker claims inflation fell to 2%"}
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetProcessing, engine.AssetActive},
	}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte("video-bytes"),
		ContentType: "video/mp4",
		Filename:    "clip.mp4",
	})

	if result.Failed() {
		t.Fatalf("Unexpected error: %s", result.Error)
	}
	if store.uploads != 1 {
		t.Errorf("Expected one upload, got %d", store.uploads)
	}
	if store.deletes != 1 {
		t.Errorf("Expected the remote asset to be discarded, got %d deletes", store.deletes)
	}
	if len(eng.sent) != 1 || len(eng.sent[0]) != 2 {
		t.Fatalf("Expected one send with two parts, got %v", eng.sent)
	}
	if eng.sent[0][1].FileURI == "" {
		t.Error("Expected second part to reference the uploaded asset")
	}
}

func TestExtract_AudioNormalizationFailureProceeds(t *testing.T) {
	// The normalizer points at a nonexistent ffmpeg, so transcoding fails
	// and the original bytes must flow through
	eng := &fakeEngine{response: "Transcript: the bridge opened in 1932"}
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetActive},
	}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte("opus-encoded-audio"),
		ContentType: "audio/webm",
		Filename:    "voice.webm",
	})

	if result.Failed() {
		t.Fatalf("Normalization failure must not abort the pipeline: %s", result.Error)
	}
	if result.MediaType != model.MediaAudio {
		t.Errorf("Expected audio media type, got %s", result.MediaType)
	}
	if store.uploads != 1 {
		t.Errorf("Expected upload of original bytes, got %d uploads", store.uploads)
	}
}

func TestExtract_UploadFailureBecomesErrorResult(t *testing.T) {
	eng := &fakeEngine{response: "unused"}
	store := &fakeAssetStore{uploadErr: fmt.Errorf("quota exceeded")}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte("video-bytes"),
		ContentType: "video/mp4",
		Filename:    "clip.mp4",
	})

	if !result.Failed() {
		t.Fatal("Expected an error result")
	}
	if !strings.Contains(result.Error, "quota exceeded") {
		t.Errorf("Expected upload error in message, got %q", result.Error)
	}
	if eng.sessions != 0 {
		t.Errorf("Expected no engine call after upload failure, got %d", eng.sessions)
	}
}

func TestExtract_TimeoutBecomesErrorResult(t *testing.T) {
	eng := &fakeEngine{response: "unused"}
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetProcessing},
	}
	assets := NewAssetManager(store, time.Millisecond, 15*time.Millisecond)
	extractor := NewExtractor(eng, assets, NewNormalizer("/nonexistent/ffmpeg-binary"), false)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte("video-bytes"),
		ContentType: "video/mp4",
		Filename:    "clip.mp4",
	})

	if !result.Failed() {
		t.Fatal("Expected an error result on readiness timeout")
	}
	if store.deletes != 1 {
		t.Errorf("Expected asset cleanup on the failure path, got %d deletes", store.deletes)
	}
}

func TestExtract_EngineErrorBecomesErrorResult(t *testing.T) {
	eng := &fakeEngine{err: fmt.Errorf("model overloaded")}
	store := &fakeAssetStore{}
	extractor := newTestExtractor(eng, store)

	result := extractor.Extract(context.Background(), &model.MediaInput{
		Content:     []byte{0xff, 0xd8},
		ContentType: "image/jpeg",
		Filename:    "photo.jpg",
	})

	if !result.Failed() {
		t.Fatal("Expected an error result")
	}
	if !strings.Contains(result.Error, "model overloaded") {
		t.Errorf("Expected engine error in message, got %q", result.Error)
	}
}
