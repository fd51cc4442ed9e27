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
	detectTierA string
	detectTierB string
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <documentA> <documentB>",
	Short: "Cross-check two documents for contradictions",
	Long: `Detect extracts facts from two documents and runs the pairwise
contradiction detectors over them. This is the advisory form of detection:
nothing is persisted and no conflict counters move.

Example:
  probatio detect witness-a.txt witness-b.txt
  probatio detect ledger.txt invoice.txt --tier-a FINANCIAL_INSTITUTION --tier-b BUSINESS_RECORDS`,
	Args: cobra.ExactArgs(2),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectTierA, "tier-a", string(model.TierBusinessRecords), "tier of the first document")
	detectCmd.Flags().StringVar(&detectTierB, "tier-b", string(model.TierBusinessRecords), "tier of the second document")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.NewMemoryStoreFromConfig(cfg.Store)
	svc := service.New(st, cfg, nil)

	type side struct {
		path string
		tier string
	}
	sides := []side{{args[0], detectTierA}, {args[1], detectTierB}}

	evidence := make([]*model.Evidence, 2)
	facts := make([][]model.AtomicFact, 2)
	for i, sd := range sides {
		text, err := os.ReadFile(sd.path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		ev, err := svc.Intake(service.IntakeRequest{
			CaseID:      "adhoc",
			Tier:        model.EvidenceTier(sd.tier),
			Description: sd.path,
			UploadedBy:  "cli",
			Content:     text,
		})
		if err != nil {
			return err
		}

		f, err := svc.ExtractFacts(ev, string(text), nil)
		if err != nil {
			return err
		}
		evidence[i] = ev
		facts[i] = f
	}

	contradictions := svc.DetectContradictions(evidence[0], evidence[1], facts[0], facts[1])
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Compared %d vs %d facts, %d contradictions\n",
			len(facts[0]), len(facts[1]), len(contradictions))
	}
	return printJSON(contradictions)
}
