package media

import (
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Classify maps a declared MIME type to a media category. The result is
// advisory only: it does not validate that the bytes match the declared
// type, so a mismatch surfaces later as an upload or extraction failure.
func Classify(contentType string) model.MediaType {
	ct := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(ct, "image/"):
		return model.MediaImage
	case strings.HasPrefix(ct, "video/"):
		return model.MediaVideo
	case strings.HasPrefix(ct, "audio/"):
		return model.MediaAudio
	default:
		return model.MediaUnsupported
	}
}
