package engine

import (
	"context"
	"io"
)

// Part is one element of a prompt sent to the verdict engine: plain text,
// inline media bytes, or a reference to an uploaded asset.
type Part struct {
	Text     string
	Inline   []byte
	MIMEType string
	FileURI  string
}

// TextPart builds a text prompt part
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds a prompt part from raw media bytes
func InlinePart(data []byte, mimeType string) Part {
	return Part{Inline: data, MIMEType: mimeType}
}

// AssetPart builds a prompt part referencing an uploaded asset
func AssetPart(uri, mimeType string) Part {
	return Part{FileURI: uri, MIMEType: mimeType}
}

// Session is an opaque conversation handle. The engine manages its own
// multi-turn context internally; a Session must not be shared across
// concurrent callers.
type Session interface {
	Send(ctx context.Context, parts ...Part) (string, error)
}

// Engine produces natural-language text from text/media prompts
type Engine interface {
	NewSession(ctx context.Context) (Session, error)
}

// AssetState is the remote processing state of an uploaded file
type AssetState string

const (
	AssetUploading  AssetState = "UPLOADING"
	AssetProcessing AssetState = "PROCESSING"
	AssetActive     AssetState = "ACTIVE"
	AssetFailed     AssetState = "FAILED"
)

// AssetHandle identifies a file in the engine's asset store
type AssetHandle struct {
	Name     string
	URI      string
	MIMEType string
	State    AssetState
}

// AssetStore moves media into the engine's execution context. Uploaded
// assets require server-side processing before they are usable as prompt
// inputs; callers poll GetState until the asset reaches a terminal state.
type AssetStore interface {
	Upload(ctx context.Context, r io.Reader, mimeType string) (*AssetHandle, error)
	GetState(ctx context.Context, name string) (*AssetHandle, error)
	Delete(ctx context.Context, name string) error
}
