package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ppiankov/absa/internal/aggregate"
	"github.com/ppiankov/absa/internal/cache"
	"github.com/ppiankov/absa/internal/dataset"
	"github.com/ppiankov/absa/internal/export"
	"github.com/ppiankov/absa/internal/filter"
	"github.com/ppiankov/absa/internal/llm"
	"github.com/ppiankov/absa/internal/model"
)

// Pipeline orchestrates load, classification, filtering and aggregation
type Pipeline struct {
	fetcher    *Fetcher
	aggregator *aggregate.Aggregator
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	cache      cache.Cache     // nil if disabled
	clock      clockwork.Clock
	log        zerolog.Logger
	config     *model.Config
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithClock sets the clock used for report timestamps
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithSummarizer overrides the summarizer built from config
func WithSummarizer(s *llm.Summarizer) Option {
	return func(p *Pipeline) { p.summarizer = s }
}

// WithCache overrides the dataset cache built from config
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:    NewFetcher(cfg.Input.MaxBytes),
		aggregator: aggregate.New(),
		renderer:   NewRenderer(model.ParseLocale(cfg.Locale), cfg.Output.IncludeFooter),
		clock:      clockwork.NewRealClock(),
		log:        zerolog.Nop(),
		config:     cfg,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.summarizer == nil && cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			p.log.Warn().Err(err).Msg("failed to initialize LLM provider")
		} else {
			p.summarizer = s
		}
	}

	return p
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Request describes one analysis
type Request struct {
	Path  string
	Label string

	// Start and End bound the inclusive date filter. Zero values default to
	// the dataset's min/max date; other values are clamped to them.
	Start time.Time
	End   time.Time

	// Aspects and Sentiments select the table view; empty means all present.
	Aspects    []model.Aspect
	Sentiments []model.Sentiment
}

// Result contains the complete analysis result
type Result struct {
	Report  *model.Report
	Dataset *model.Dataset

	// Records are the valid, in-range records; this is what gets exported.
	Records []model.ClassifiedReview

	// Table is the Aspects/Sentiments selection of Records.
	Table []model.ClassifiedReview
}

// Load reads and classifies a review file. Identical file content is served
// from the cache.
func (p *Pipeline) Load(ctx context.Context, path string) (*model.Dataset, error) {
	fetched, err := p.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	key := cache.Key(fetched.Content)
	if p.cache != nil {
		if ds, ok := p.cache.Get(key); ok {
			p.log.Debug().Str("file", path).Str("key", key).Msg("dataset cache hit")
			hit := *ds
			hit.Source = path
			return &hit, nil
		}
	}

	table, err := dataset.Read(bytes.NewReader(fetched.Content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ds := &model.Dataset{
		Source:       path,
		Hash:         key,
		ExtraColumns: table.ExtraColumns,
		Records:      Classify(table.Reviews),
	}
	p.log.Debug().Str("file", path).Int("rows", len(ds.Records)).Msg("dataset classified")

	if p.cache != nil {
		p.cache.Set(key, ds, 0)
	}

	return ds, nil
}

// Analyze runs the full pipeline for one request
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*Result, error) {
	// 1. Load + classify
	ds, err := p.Load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	// 2. Validity filter
	valid := filter.Valid(ds.Records)

	// 3. Date filter, defaulting to the observed bounds
	bounds, hasDates := filter.Bounds(valid)
	if !hasDates {
		p.log.Warn().Str("file", req.Path).Msg("no parseable dates among valid records")
	}
	rng := filter.Range{Start: req.Start, End: req.End}.Clamp(bounds)
	inRange := filter.ByDate(valid, rng)

	// 4. Aggregate
	cells := p.aggregator.GroupedCounts(inRange)
	breakdown := p.aggregator.Proportions(inRange)

	report := &model.Report{
		ID:          uuid.NewString(),
		Label:       req.Label,
		Source:      req.Path,
		GeneratedAt: p.clock.Now().UTC(),
		Locale:      p.renderer.Locale(),
		Range:       rng.ToModel(),
		Bounds:      bounds.ToModel(),
		Totals: model.Totals{
			Loaded:  len(ds.Records),
			Valid:   len(valid),
			InRange: len(inRange),
			Tagged:  aggregate.Total(cells),
		},
		Cells:      cells,
		Breakdown:  breakdown,
		ExportFile: export.FileName(req.Label),
		ExportType: export.MIMEType,
	}

	p.log.Debug().
		Str("file", req.Path).
		Int("rows", report.Totals.Loaded).
		Int("valid", report.Totals.Valid).
		Int("in_range", report.Totals.InRange).
		Int("tagged", report.Totals.Tagged).
		Msg("aggregated")

	// 5. Optional LLM narrative (after aggregation, never affects counts)
	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			p.log.Warn().Err(err).Str("provider", p.summarizer.ProviderName()).Msg("LLM summary generation failed")
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return &Result{
		Report:  report,
		Dataset: ds,
		Records: inRange,
		Table:   aggregate.Select(inRange, req.Aspects, req.Sentiments),
	}, nil
}

// Export writes the result's records as CSV into dir
func (p *Pipeline) Export(result *Result, dir string) (string, error) {
	path, err := export.WriteFile(dir, result.Report.Label, result.Dataset.ExtraColumns, result.Records, p.renderer.Locale())
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}
