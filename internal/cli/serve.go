package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/api"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the pipeline over HTTP:

  POST /api/claims/           {"claim_text": "..."}
  POST /api/claims/multimodal multipart form with claim_text and file
  POST /api/claims/url        {"url": "https://..."}
  GET  /api/claims/recent     recently checked claims (requires storage)

Example:
  claimlens serve
  claimlens serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	p, err := pipeline.New(context.Background(), cfg)
	if err != nil {
		return err
	}

	server := api.NewServer(p, p.Store(), cfg.Server)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return server.Run()
}
