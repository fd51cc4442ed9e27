package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/service"
	"github.com/probatio/probatio/internal/store"
)

var (
	extractTier          string
	extractMinConfidence float64
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <document>",
	Short: "Extract typed atomic facts from a document",
	Long: `Extract runs the pattern-based fact extractor over a document and prints
the typed atomic facts as JSON: amounts, dates, persons, locations,
factual statements, and tier-specific identifiers.

Example:
  probatio extract statement.txt
  probatio extract statement.txt --tier FINANCIAL_INSTITUTION --min-confidence 0.7`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractTier, "tier", string(model.TierBusinessRecords), "evidence tier (drives specialized extractors)")
	extractCmd.Flags().Float64Var(&extractMinConfidence, "min-confidence", 0, "drop facts below this confidence (0 = configured default)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractMinConfidence > 0 {
		cfg.Extraction.MinimumConfidence = extractMinConfidence
	}

	st := store.NewMemoryStoreFromConfig(cfg.Store)
	svc := service.New(st, cfg, nil)

	ev, err := svc.Intake(service.IntakeRequest{
		CaseID:      "adhoc",
		Tier:        model.EvidenceTier(extractTier),
		Description: args[0],
		UploadedBy:  "cli",
		Content:     text,
	})
	if err != nil {
		return err
	}

	facts, err := svc.ExtractFacts(ev, string(text), nil)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d facts\n", len(facts))
	}
	return printJSON(facts)
}
