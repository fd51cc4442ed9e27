package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/service"
	"github.com/probatio/probatio/internal/store"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <tier>",
	Short: "Print the base trust score for an evidence tier",
	Long: `Score prints the creation-time trust score a new artifact of the given
tier receives. Tiers, from most to least reliable:

  SELF_AUTHENTICATING, GOVERNMENT, FINANCIAL_INSTITUTION,
  INDEPENDENT_THIRD_PARTY, BUSINESS_RECORDS, FIRST_PARTY_ADVERSE,
  FIRST_PARTY_FRIENDLY, UNCORROBORATED_PERSON

Example:
  probatio score GOVERNMENT`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc := service.New(store.NewMemoryStoreFromConfig(cfg.Store), cfg, nil)
		score, err := svc.CalculateTrustScore(model.EvidenceTier(args[0]))
		if err != nil {
			return err
		}

		fmt.Println(score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
