package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probatio/probatio/internal/service"
	"github.com/probatio/probatio/internal/store"
)

var mintCheckScientific bool

// mintCheckCmd represents the mint-check command
var mintCheckCmd = &cobra.Command{
	Use:   "mint-check <case.yaml> <artifact-code>",
	Short: "Evaluate minting eligibility for one artifact in a case",
	Long: `Mint-check replays a case bundle and evaluates the six-axis minting
eligibility of one artifact: source reliability, time, chain of custody,
corroboration network, verification outcomes, and conflict exposure.

The composite score must reach 0.70 for the artifact to be eligible.

Example:
  probatio mint-check case.yaml ART-00001
  probatio mint-check case.yaml ART-00001 --scientific`,
	Args: cobra.ExactArgs(2),
	RunE: runMintCheck,
}

func init() {
	rootCmd.AddCommand(mintCheckCmd)

	mintCheckCmd.Flags().BoolVar(&mintCheckScientific, "scientific", false, "also print the Bayesian trust assessment")
}

func runMintCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cf, err := loadCaseFile(args[0])
	if err != nil {
		return err
	}

	st := store.NewMemoryStoreFromConfig(cfg.Store)
	svc := service.New(st, cfg, nil)

	items, err := buildCase(svc, st, cf)
	if err != nil {
		return err
	}

	ev, err := findByArtifactCode(items, args[1])
	if err != nil {
		return err
	}

	result, err := svc.CalculateMintingEligibility(ev.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Artifact %s (%s)\n", ev.ArtifactCode, ev.Tier)
	fmt.Printf("Eligibility score: %s (threshold 0.70)\n", result.Score)
	if result.Eligible {
		fmt.Println("Eligible for minting: yes")
	} else {
		fmt.Println("Eligible for minting: no")
	}
	fmt.Println()
	for _, reason := range result.Reasons {
		fmt.Println(reason)
	}

	if mintCheckScientific {
		chain, err := st.GetChainOfCustody(ev.ID)
		if err != nil {
			return err
		}
		stored, err := st.GetEvidence(ev.ID)
		if err != nil {
			return err
		}

		assessment, err := svc.GenerateScientificTrustScore(stored, chain, nil)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Scientific trust score: %s (confidence %s, 95%% band %s-%s)\n",
			assessment.FinalScore, assessment.Confidence,
			assessment.ErrorBounds["lower"], assessment.ErrorBounds["upper"])
		if assessment.ExpertReviewRequired {
			fmt.Println("Expert review required.")
		}
		for _, l := range assessment.Limitations {
			fmt.Fprintf(os.Stderr, "note: %s\n", l)
		}
	}

	return nil
}
