package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchJSON        bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check the main claims of many web pages",
	Long: `Batch reads URLs from a file (one per line, # comments allowed) and
fact-checks each page's main claim concurrently.

Example:
  claimlens batch urls.txt
  claimlens batch --concurrency 8 --json urls.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent checks")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print results as a JSON array")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	results, err := worker.NewBatchChecker(p, batchConcurrency).CheckFile(ctx, args[0])
	if err != nil {
		return err
	}

	if batchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	failures := 0
	for i, result := range results {
		if i > 0 {
			fmt.Println("---")
		}
		fmt.Printf("[%d/%d] %s\n", i+1, len(results), result.SourceURL)
		if err := printResult(result, false); err != nil {
			return err
		}
		if result.Status == model.StatusError {
			failures++
		}
	}
	fmt.Printf("\nChecked %d URLs, %d failed\n", len(results), failures)
	return nil
}
