package engine

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"
)

// GeminiEngine implements Engine and AssetStore on top of the Gemini API
type GeminiEngine struct {
	client *genai.Client
	model  string
}

// NewGeminiEngine creates a Gemini-backed engine
func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiEngine{client: client, model: model}, nil
}

// NewSession opens a fresh chat with no prior history
func (e *GeminiEngine) NewSession(ctx context.Context) (Session, error) {
	chat, err := e.client.Chats.Create(ctx, e.model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, parts ...Part) (string, error) {
	converted := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		switch {
		case p.Inline != nil:
			converted = append(converted, *genai.NewPartFromBytes(p.Inline, p.MIMEType))
		case p.FileURI != "":
			converted = append(converted, *genai.NewPartFromURI(p.FileURI, p.MIMEType))
		default:
			converted = append(converted, *genai.NewPartFromText(p.Text))
		}
	}

	resp, err := s.chat.SendMessage(ctx, converted...)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from engine")
	}
	return text, nil
}

// Upload pushes media bytes into the Gemini file store
func (e *GeminiEngine) Upload(ctx context.Context, r io.Reader, mimeType string) (*AssetHandle, error) {
	file, err := e.client.Files.Upload(ctx, r, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	return fileToHandle(file), nil
}

// GetState fetches the current processing state of an uploaded file
func (e *GeminiEngine) GetState(ctx context.Context, name string) (*AssetHandle, error) {
	file, err := e.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", name, err)
	}
	return fileToHandle(file), nil
}

// Delete removes an uploaded file from the store
func (e *GeminiEngine) Delete(ctx context.Context, name string) error {
	if _, err := e.client.Files.Delete(ctx, name, nil); err != nil {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

func fileToHandle(f *genai.File) *AssetHandle {
	h := &AssetHandle{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
	}
	switch f.State {
	case genai.FileStateActive:
		h.State = AssetActive
	case genai.FileStateFailed:
		h.State = AssetFailed
	default:
		h.State = AssetProcessing
	}
	return h
}
