package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/numfmt"
)

// Summarizer produces an optional narrative for a report. It never changes
// the report's counts.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer; an empty provider disables it
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// NewSummarizerWithProvider wraps an existing provider
func NewSummarizerWithProvider(provider Provider, config Config) *Summarizer {
	return &Summarizer{provider: provider, config: config}
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or ""
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary asks the provider for a narrative. It returns nil, nil
// when disabled. Figures in the answer that do not appear in the report are
// reported as warnings.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}
	for _, n := range UnknownFigures(resp.Summary, report) {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("figure %q does not appear in the report", n))
	}

	return summary, nil
}

var (
	figurePattern  = regexp.MustCompile(`\d[\d.,]*%?`)
	isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// UnknownFigures lists numbers in text that match no count or percentage of
// the report. Dates, years and single digits are ignored.
func UnknownFigures(text string, report model.Report) []string {
	known := make(map[string]bool)
	add := func(n int) {
		known[numfmt.Count(n)] = true
		known[fmt.Sprintf("%d", n)] = true
	}
	add(report.Totals.Loaded)
	add(report.Totals.Valid)
	add(report.Totals.InRange)
	add(report.Totals.Tagged)
	for _, c := range report.Cells {
		add(c.Count)
	}
	for _, b := range report.Breakdown {
		add(b.Total)
		for _, sl := range b.Slices {
			p := numfmt.Percent(sl.Percent)
			known[p] = true
			known[strings.Replace(p, ".", ",", 1)] = true
			known[fmt.Sprintf("%.0f%%", sl.Percent*100)] = true
		}
	}

	var unknown []string
	seen := make(map[string]bool)
	text = isoDatePattern.ReplaceAllString(text, "")
	for _, m := range figurePattern.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".,")
		if len(m) < 2 || seen[m] || known[m] || isYear(m) {
			continue
		}
		seen[m] = true
		unknown = append(unknown, m)
	}
	return unknown
}

func isYear(s string) bool {
	return len(s) == 4 && (strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20")) && !strings.ContainsAny(s, ".,%")
}
