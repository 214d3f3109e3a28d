package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	checkTimeout time.Duration
	checkJSON    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim text>",
	Short: "Fact-check a plain text claim",
	Long: `Check sends a text claim to the configured verdict provider and prints
the verdict with any cited sources.

Example:
  claimlens check "The Great Wall of China is visible from space"
  claimlens check --json "Coffee was first cultivated in Ethiopia"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	result := p.CheckTextClaim(ctx, claim)
	return printResult(result, checkJSON)
}
