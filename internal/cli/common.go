package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/claimlens/claimlens/internal/model"
)

// loadConfig merges defaults, the config file, environment variables, and
// global flags into one Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	cfg.Output.Verbose = verbose

	// API keys come from the environment by convention
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Engine.APIKey = key
	}
	if cfg.Verdict.APIKey == "" {
		switch strings.ToLower(cfg.Verdict.Provider) {
		case "openai":
			cfg.Verdict.APIKey = os.Getenv("OPENAI_API_KEY")
		case "perplexity":
			cfg.Verdict.APIKey = os.Getenv("PERPLEXITY_API_KEY")
		}
	}
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" && cfg.Store.DSN == "" {
		cfg.Store.DSN = dsn
	}

	return cfg, nil
}

// printResult renders a verdict envelope to stdout
func printResult(result *model.VerdictResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if result.Status == model.StatusError {
		fmt.Printf("✗ Error: %s\n", result.Error)
		fmt.Printf("  Claim: %s\n", result.ClaimText)
		return nil
	}

	fmt.Printf("Claim: %s\n\n", result.ClaimText)
	fmt.Printf("Verdict:\n%s\n", result.VerdictText)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range result.Sources {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}
