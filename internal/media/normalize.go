package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Normalizer transcodes arbitrary audio into a canonical WAV stream before
// upload. Normalization is an optimization, not a precondition: on any
// failure (missing ffmpeg, unsupported codec, corrupt data) the caller gets
// the original bytes back and the pipeline continues best-effort.
type Normalizer struct {
	ffmpegPath string
}

// NewNormalizer creates an audio normalizer using the given ffmpeg binary
func NewNormalizer(ffmpegPath string) *Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{ffmpegPath: ffmpegPath}
}

// Normalize transcodes audio bytes to 16kHz mono PCM WAV. It returns the
// transcoded bytes, the resulting MIME type, and whether transcoding
// succeeded. On failure the original bytes and MIME type are returned
// unchanged.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, mimeType string) ([]byte, string, bool) {
	if _, err := exec.LookPath(n.ffmpegPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio normalization skipped (%s not found), using original bytes\n", n.ffmpegPath)
		return data, mimeType, false
	}

	cmd := exec.CommandContext(ctx, n.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "wav",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio normalization failed (%v), using original bytes\n", err)
		return data, mimeType, false
	}

	if out.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Warning: audio normalization produced no output, using original bytes\n")
		return data, mimeType, false
	}

	return out.Bytes(), "audio/wav", true
}
