package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/probatio/probatio/internal/contradiction"
	"github.com/probatio/probatio/internal/llm"
	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/service"
	"github.com/probatio/probatio/internal/store"
	"github.com/probatio/probatio/internal/sweep"
)

var (
	sweepJSON     string
	sweepMD       string
	sweepTimeout  time.Duration
	sweepWorkers  int
	sweepMaxPairs int
	llmEnabled    bool
	llmModel      string
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep <case.yaml>",
	Short: "Cross-check every evidence pair in a case for contradictions",
	Long: `Sweep replays a case bundle into the in-memory store, extracts typed
atomic facts from each document, and cross-checks every evidence pair for
temporal, factual, numerical, location, and metadata conflicts.

Detected contradictions update each item's conflict counter, which feeds
the minting eligibility and scientific trust scores.

Example:
  probatio sweep case.yaml
  probatio sweep case.yaml --json sweep.json --md sweep.md
  probatio sweep case.yaml --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	// Output flags
	sweepCmd.Flags().StringVar(&sweepJSON, "json", "report.json", "output JSON path")
	sweepCmd.Flags().StringVar(&sweepMD, "md", "", "output Markdown path (optional)")

	// Sweep flags
	sweepCmd.Flags().DurationVar(&sweepTimeout, "timeout", 2*time.Minute, "overall sweep timeout")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "detection workers (0 = configured default)")
	sweepCmd.Flags().IntVar(&sweepMaxPairs, "max-pairs", 0, "cap on examined pairs (0 = unlimited)")

	// LLM flags
	sweepCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach an LLM narrative summary (never affects results)")
	sweepCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sweepWorkers > 0 {
		cfg.Sweep.Workers = sweepWorkers
	}
	if sweepMaxPairs > 0 {
		cfg.Sweep.MaxPairs = sweepMaxPairs
	}
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	cf, err := loadCaseFile(args[0])
	if err != nil {
		return err
	}

	var forward *slog.Logger
	if cfg.Logging.Forward || cfg.Output.Verbose {
		forward = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	sink := logging.NewRing(cfg.Logging.RingSize, forward)

	st := store.NewMemoryStoreFromConfig(cfg.Store)
	svc := service.New(st, cfg, sink)

	items, err := buildCase(svc, st, cf)
	if err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d evidence items for %s\n", len(items), cf.CaseID)
	}

	detector := contradiction.NewDetector(cfg.Detection.MinimumConfidence)
	sweeper := sweep.NewSweeper(st, detector, cfg.Sweep, sink)

	report, err := sweeper.SweepCase(ctx, cf.CaseID)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if llmEnabled {
		provider, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			return err
		}
		codes := make([]string, len(items))
		for i := range items {
			codes[i] = items[i].ArtifactCode
		}
		report.LLM = llm.Narrate(ctx, provider, cfg.LLM, report, codes)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Examined %d of %d pairs\n", report.PairsExamined, report.PairsTotal)
		fmt.Fprintf(os.Stderr, "✓ Found %d contradictions\n", len(report.Contradictions))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
	}

	if err := writeJSON(report, sweepJSON); err != nil {
		return err
	}
	if sweepMD != "" {
		if err := os.WriteFile(sweepMD, []byte(renderMarkdown(report)), 0644); err != nil {
			return fmt.Errorf("write %s: %w", sweepMD, err)
		}
	}

	fmt.Printf("Sweep of %s: %d contradictions across %d pairs (report: %s)\n",
		cf.CaseID, len(report.Contradictions), report.PairsExamined, sweepJSON)
	return nil
}
