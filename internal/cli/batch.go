package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/absa/internal/numfmt"
	"github.com/ppiankov/absa/internal/pipeline"
	"github.com/ppiankov/absa/internal/worker"
)

const defaultBatchDir = "./absa-reports"

var (
	concurrency  int
	ratePerSec   float64
	burst        int
	batchTimeout time.Duration
	// outDir, noCache, noFooter, writeJSON, writeMD, locale and llm* are
	// defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Analyze several review files in parallel",
	Long: `Batch reads a YAML manifest and analyzes every listed file concurrently.
Each job writes its own hasil_absa_<label>.* files into the output directory.
A failing job is reported and does not stop the others.

Manifest:
  jobs:
    - file: simply_guitar.csv     # relative to the manifest
      label: Simply Guitar        # default: file name
      start: 2024-01-01           # optional, YYYY-MM-DD
      end: 2024-03-31             # optional
      aspects: [Lagu, Harga]      # optional table selection
      sentiments: [Negatif]

Example:
  absa batch apps.yaml
  absa batch apps.yaml --concurrency 8 --out-dir ./absa-reports
  absa batch apps.yaml --rate 2 --burst 1 --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config: 4)")
	batchCmd.Flags().Float64Var(&ratePerSec, "rate", 0, "max job starts per second per input directory (0 = unlimited)")
	batchCmd.Flags().IntVar(&burst, "burst", 0, "job start burst size (default from config: 1)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Output flags
	batchCmd.Flags().StringVar(&outDir, "out-dir", "", "output directory for reports (default: "+defaultBatchDir+")")
	batchCmd.Flags().BoolVar(&writeJSON, "json", true, "write hasil_absa_<label>.json")
	batchCmd.Flags().BoolVar(&writeMD, "md", false, "write hasil_absa_<label>.md")
	batchCmd.Flags().StringVar(&locale, "locale", "", "display names: id or en (default from config: id)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory dataset cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOutputFlags(cmd, cfg)
	if !cmd.Flags().Changed("out-dir") && cfg.Output.Dir == "." {
		cfg.Output.Dir = defaultBatchDir
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("rate") {
		cfg.Concurrency.RatePerSecond = ratePerSec
	}
	if cmd.Flags().Changed("burst") {
		cfg.Concurrency.Burst = burst
	}
	if llmEnabled {
		if err := applyLLMFlags(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	log := newLogger(cfg)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  absa Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "⚙️  Processing with %d workers...\n\n", cfg.Concurrency.Workers)

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(log))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.Concurrency.RatePerSecond, cfg.Concurrency.Burst)
	results, err := processor.ProcessManifest(ctx, file)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", file, err)
	}

	successCount := 0
	failureCount := 0

	for _, res := range results {
		if res.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Request.Path, res.Error)
			continue
		}

		if _, err := p.RenderReport(res.Result, cfg.Output.Dir); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Request.Path, err)
			continue
		}

		successCount++
		t := res.Result.Report.Totals
		fmt.Fprintf(os.Stderr, "✓ %s (%s in range, %s tagged)\n",
			res.Result.Report.Label, numfmt.Count(t.InRange), numfmt.Count(t.Tagged))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d jobs failed", failureCount, len(results))
	}
	return nil
}
