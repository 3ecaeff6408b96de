package model

import "time"

// Report is the aggregated result of one analysis run
type Report struct {
	ID          string    `json:"id"`           // Run identifier
	Label       string    `json:"label"`        // Display label (app name), titles and file names only
	Source      string    `json:"source"`       // Input file
	GeneratedAt time.Time `json:"generated_at"` // When the analysis ran
	Locale      Locale    `json:"locale"`

	Range  DateRange `json:"range"`  // Active inclusive date filter
	Bounds DateRange `json:"bounds"` // Observed min/max date among valid records

	Totals Totals `json:"totals"`

	Cells     []Cell            `json:"cells"`     // Grouped counts, aspect-major
	Breakdown []AspectBreakdown `json:"breakdown"` // Per-aspect sentiment proportions

	ExportFile string `json:"export_file,omitempty"`
	ExportType string `json:"export_type,omitempty"` // Content type of ExportFile

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative, never affects counts
}

// DateRange is an inclusive calendar-day range
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Totals tracks how many records survived each stage
type Totals struct {
	Loaded  int `json:"loaded"`   // Rows read from the file
	Valid   int `json:"valid"`    // Rows with a canonical sentiment
	InRange int `json:"in_range"` // Valid rows inside the date range
	Tagged  int `json:"tagged"`   // In-range rows with an aspect (sum of all cells)
}

// Cell is the count of records sharing one aspect and one sentiment
type Cell struct {
	Aspect    Aspect    `json:"aspect"`
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
}

// AspectBreakdown is the sentiment split for a single aspect
type AspectBreakdown struct {
	Aspect Aspect  `json:"aspect"`
	Total  int     `json:"total"`
	Slices []Slice `json:"slices"`
	Empty  bool    `json:"empty"` // No records for this aspect, nothing to chart
}

// Slice is one sentiment's share within an aspect
type Slice struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
	Percent   float64   `json:"percent"` // Fraction in [0,1]; 0 when the aspect is empty
}

// LLMSummary contains an optional LLM-generated narrative
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
