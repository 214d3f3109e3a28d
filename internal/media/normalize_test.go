package media

import (
	"bytes"
	"context"
	"testing"
)

func TestNormalizer_MissingBinaryReturnsOriginal(t *testing.T) {
	n := NewNormalizer("/nonexistent/ffmpeg-binary")

	original := []byte("not really audio")
	data, mimeType, ok := n.Normalize(context.Background(), original, "audio/webm")

	if ok {
		t.Error("Expected normalization to report failure")
	}
	if !bytes.Equal(data, original) {
		t.Error("Expected original bytes back on failure")
	}
	if mimeType != "audio/webm" {
		t.Errorf("Expected original MIME type back, got %q", mimeType)
	}
}

func TestNormalizer_CorruptInputReturnsOriginal(t *testing.T) {
	// "true" exists everywhere and exits 0 producing no output, which the
	// normalizer must treat as a failed transcode
	n := NewNormalizer("true")

	original := []byte{0x00, 0x01, 0x02}
	data, mimeType, ok := n.Normalize(context.Background(), original, "audio/ogg")

	if ok {
		t.Error("Expected empty transcode output to report failure")
	}
	if !bytes.Equal(data, original) {
		t.Error("Expected original bytes back on empty output")
	}
	if mimeType != "audio/ogg" {
		t.Errorf("Expected original MIME type back, got %q", mimeType)
	}
}
