package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	mediaClaim       string
	mediaContentType string
	mediaTimeout     time.Duration
	mediaJSON        bool
)

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:   "media <file>",
	Short: "Fact-check an image, video, or audio file",
	Long: `Media extracts verifiable text from a local file (OCR for images,
speech-to-text for audio, speech plus on-screen text for video) and
fact-checks the extracted claims. An optional --claim becomes the primary
claim with the extracted text as context.

Example:
  claimlens media screenshot.png
  claimlens media interview.mp3 --claim "The senator said taxes fell 10%"`,
	Args: cobra.ExactArgs(1),
	RunE: runMedia,
}

func init() {
	rootCmd.AddCommand(mediaCmd)

	mediaCmd.Flags().StringVar(&mediaClaim, "claim", "", "claim text to check against the media (optional)")
	mediaCmd.Flags().StringVar(&mediaContentType, "content-type", "", "override the detected content type")
	mediaCmd.Flags().DurationVar(&mediaTimeout, "timeout", 10*time.Minute, "overall check timeout (covers upload and processing)")
	mediaCmd.Flags().BoolVar(&mediaJSON, "json", false, "print the result as JSON")
}

func runMedia(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	contentType := mediaContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}

	ctx, cancel := context.WithTimeout(context.Background(), mediaTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	result := p.CheckMediaClaim(ctx, mediaClaim, content, contentType, filepath.Base(path))
	return printResult(result, mediaJSON)
}
