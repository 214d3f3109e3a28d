package media

import (
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		want        model.MediaType
	}{
		{"image/png", model.MediaImage},
		{"image/jpeg", model.MediaImage},
		{"IMAGE/PNG", model.MediaImage},
		{"video/mp4", model.MediaVideo},
		{"video/webm", model.MediaVideo},
		{"audio/mpeg", model.MediaAudio},
		{"audio/webm", model.MediaAudio},
		{"application/pdf", model.MediaUnsupported},
		{"text/html", model.MediaUnsupported},
		{"", model.MediaUnsupported},
		{"imagepng", model.MediaUnsupported},
		{"  audio/wav  ", model.MediaAudio},
	}

	for _, tt := range tests {
		if got := Classify(tt.contentType); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
