package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/numfmt"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for an aggregated report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the aggregated analysis to describe
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom OpenAI-compatible endpoints
	BaseURL string

	// HTTPProxy and HTTPSProxy override HTTP_PROXY / HTTPS_PROXY
	HTTPProxy  string
	HTTPSProxy string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 600,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
	}
}

// BuildPrompt constructs the default prompt. The model only sees the
// aggregated numbers, never the review text.
func BuildPrompt(report model.Report) string {
	locale := report.Locale
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing an aspect-based sentiment report for the app %q.
Reviews were tagged with one aspect by keyword matching and joined with an existing sentiment label.

RULES:
1. Only use the figures listed below. Do not estimate or invent numbers.
2. Do not speculate about causes that are not visible in the figures.
3. If an aspect has no reviews, say so instead of describing it.

Period: %s to %s
Reviews loaded: %s, with sentiment: %s, in period: %s, tagged with an aspect: %s

Counts per aspect:
`, report.Label,
		formatDay(report.Range.Start), formatDay(report.Range.End),
		numfmt.Count(report.Totals.Loaded), numfmt.Count(report.Totals.Valid),
		numfmt.Count(report.Totals.InRange), numfmt.Count(report.Totals.Tagged))

	for _, br := range report.Breakdown {
		if br.Empty {
			fmt.Fprintf(&b, "- %s: no reviews\n", br.Aspect.Label(locale))
			continue
		}
		parts := make([]string, 0, len(br.Slices))
		for _, s := range br.Slices {
			parts = append(parts, fmt.Sprintf("%s %s (%s)", s.Sentiment.Label(locale), numfmt.Count(s.Count), numfmt.Percent(s.Percent)))
		}
		fmt.Fprintf(&b, "- %s: %s total, %s\n", br.Aspect.Label(locale), numfmt.Count(br.Total), strings.Join(parts, ", "))
	}

	b.WriteString("\nProvide a 3-4 sentence summary of where users are most and least satisfied.")
	if locale == model.LocaleID {
		b.WriteString(" Answer in Indonesian.")
	}

	return b.String()
}

func formatDay(d time.Time) string {
	if d.IsZero() {
		return "n/a"
	}
	return d.Format("2006-01-02")
}
