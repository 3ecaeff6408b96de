package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/absa/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
	calls     int
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func sampleReport() model.Report {
	return model.Report{
		Label:  "Simply Guitar",
		Locale: model.LocaleID,
		Range: model.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Totals: model.Totals{Loaded: 1500, Valid: 1400, InRange: 1300, Tagged: 1200},
		Cells: []model.Cell{
			{Aspect: model.AspectSong, Sentiment: model.SentimentNegative, Count: 300},
			{Aspect: model.AspectSong, Sentiment: model.SentimentPositive, Count: 900},
		},
		Breakdown: []model.AspectBreakdown{
			{
				Aspect: model.AspectSong,
				Total:  1200,
				Slices: []model.Slice{
					{Sentiment: model.SentimentNegative, Count: 300, Percent: 0.25},
					{Sentiment: model.SentimentPositive, Count: 900, Percent: 0.75},
				},
			},
			{
				Aspect: model.AspectPrice,
				Empty:  true,
				Slices: []model.Slice{
					{Sentiment: model.SentimentNegative},
					{Sentiment: model.SentimentPositive},
				},
			},
		},
	}
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	summarizer, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summarizer.IsEnabled() {
		t.Error("Expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	summary, err := summarizer.GenerateSummary(context.Background(), sampleReport())
	if err != nil || summary != nil {
		t.Errorf("Expected nil, nil when disabled, got %v, %v", summary, err)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestSummarizer_GenerateSummary_ProviderUnavailable(t *testing.T) {
	mock := &MockProvider{name: "mock", available: false}
	s := NewSummarizerWithProvider(mock, Config{})

	summary, err := s.GenerateSummary(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary == nil || summary.Enabled {
		t.Fatalf("Expected disabled summary, got %+v", summary)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", summary.Warnings)
	}
	if mock.calls != 0 {
		t.Error("Summarize should not be called when provider is unavailable")
	}
}

func TestSummarizer_GenerateSummary_Success(t *testing.T) {
	mock := &MockProvider{
		name:      "mock",
		available: true,
		response: &SummarizeResponse{
			Summary: "Of 1.200 tagged reviews, 75.0% of Song reviews are positive.",
			Model:   "mock-1",
		},
	}
	s := NewSummarizerWithProvider(mock, Config{})

	summary, err := s.GenerateSummary(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if !summary.Enabled || summary.Provider != "mock" || summary.Model != "mock-1" {
		t.Errorf("Unexpected summary metadata: %+v", summary)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", summary.Warnings)
	}
}

func TestSummarizer_GenerateSummary_InventedFigure(t *testing.T) {
	mock := &MockProvider{
		name:      "mock",
		available: true,
		response:  &SummarizeResponse{Summary: "About 80% of users love it, based on 950 reviews."},
	}
	s := NewSummarizerWithProvider(mock, Config{})

	summary, err := s.GenerateSummary(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if len(summary.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %v", summary.Warnings)
	}
}

func TestSummarizer_GenerateSummary_Error(t *testing.T) {
	mock := &MockProvider{name: "mock", available: true, err: errors.New("boom")}
	s := NewSummarizerWithProvider(mock, Config{})

	if _, err := s.GenerateSummary(context.Background(), sampleReport()); err == nil {
		t.Error("Expected error from provider")
	}
}

func TestUnknownFigures_IgnoresDatesAndYears(t *testing.T) {
	got := UnknownFigures("Between 2024-01-01 and 2024-01-31 in 2024, 300 were negative (25.0%).", sampleReport())
	if len(got) != 0 {
		t.Errorf("Expected no unknown figures, got %v", got)
	}
}
