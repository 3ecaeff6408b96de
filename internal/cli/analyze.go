package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/pipeline"
	"github.com/ppiankov/absa/internal/worker"
)

var (
	label       string
	startDate   string
	endDate     string
	aspectSel   []string
	sentSel     []string
	outDir      string
	writeJSON   bool
	writeMD     bool
	showTable   bool
	locale      string
	noCache     bool
	noFooter    bool
	timeout     time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Tag reviews with aspects and count sentiment per aspect",
	Long: `Analyze reads a review export and:
- Tags each review with at most one aspect by keyword
- Keeps reviews whose predicted_sentiment is Positive or Negative
- Restricts them to an inclusive date range (default: the whole file)
- Counts reviews per aspect and sentiment
- Writes hasil_absa_<label>.csv with the aspect and sentiment columns

Input columns: name, star_rating, date, review, predicted_sentiment.
Other columns are carried through to the export. Use "-" to read stdin.

Example:
  absa analyze reviews.csv --label "Simply Guitar"
  absa analyze reviews.csv --start 2024-01-01 --end 2024-03-31 --md
  absa analyze reviews.csv --table --aspect Login --sentiment Negatif
  absa analyze reviews.csv --llm --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Selection flags
	analyzeCmd.Flags().StringVar(&label, "label", "", "display label (default: input file name)")
	analyzeCmd.Flags().StringVar(&startDate, "start", "", "first day to include (YYYY-MM-DD, default: earliest review)")
	analyzeCmd.Flags().StringVar(&endDate, "end", "", "last day to include (YYYY-MM-DD, default: latest review)")
	analyzeCmd.Flags().StringSliceVar(&aspectSel, "aspect", nil, "aspects shown in the table view (default: all present)")
	analyzeCmd.Flags().StringSliceVar(&sentSel, "sentiment", nil, "sentiments shown in the table view (default: all present)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default from config: .)")
	analyzeCmd.Flags().BoolVar(&writeJSON, "json", true, "write hasil_absa_<label>.json")
	analyzeCmd.Flags().BoolVar(&writeMD, "md", false, "write hasil_absa_<label>.md")
	analyzeCmd.Flags().BoolVar(&showTable, "table", false, "print the review table view")
	analyzeCmd.Flags().StringVar(&locale, "locale", "", "display names: id or en (default from config: id)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory dataset cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout (mostly spent on the LLM summary)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOutputFlags(cmd, cfg)

	if llmEnabled {
		if err := applyLLMFlags(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	req, err := buildRequest(path)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	log.Debug().
		Str("file", path).
		Str("label", req.Label).
		Str("locale", cfg.Locale).
		Bool("cache", cfg.Cache.Enabled).
		Str("llm", cfg.LLM.Provider).
		Msg("analyze")

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(log))

	result, err := p.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	outputs, err := p.RenderReport(result, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	r := p.Renderer()
	r.RenderSummary(os.Stdout, result.Report)
	if cfg.Output.Table {
		fmt.Println()
		if err := r.RenderTable(os.Stdout, result.Table); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	if result.Report.LLM != nil {
		for _, w := range result.Report.LLM.Warnings {
			log.Warn().Str("provider", result.Report.LLM.Provider).Msg(w)
		}
	}

	fmt.Fprintln(os.Stderr)
	for _, f := range outputs.Paths() {
		fmt.Fprintf(os.Stderr, "✓ %s\n", f)
	}

	return nil
}

// applyOutputFlags lets explicitly set flags override config values
func applyOutputFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.Output.Dir = outDir
	}
	if flags.Changed("json") {
		cfg.Output.JSON = writeJSON
	}
	if flags.Changed("md") {
		cfg.Output.Markdown = writeMD
	}
	if flags.Changed("table") {
		cfg.Output.Table = showTable
	}
	if flags.Changed("locale") {
		cfg.Locale = locale
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
}

func buildRequest(path string) (pipeline.Request, error) {
	req := pipeline.Request{Path: path, Label: label}
	if req.Label == "" {
		req.Label = labelFromPath(path)
	}

	var err error
	if req.Start, err = worker.ParseDay(startDate); err != nil {
		return req, fmt.Errorf("--start: %w", err)
	}
	if req.End, err = worker.ParseDay(endDate); err != nil {
		return req, fmt.Errorf("--end: %w", err)
	}

	for _, s := range aspectSel {
		a, err := model.ParseAspect(s)
		if err != nil {
			return req, fmt.Errorf("--aspect: %w", err)
		}
		req.Aspects = append(req.Aspects, a)
	}
	for _, s := range sentSel {
		v, err := model.ParseSentiment(s)
		if err != nil {
			return req, fmt.Errorf("--sentiment: %w", err)
		}
		req.Sentiments = append(req.Sentiments, v)
	}

	return req, nil
}

func labelFromPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
