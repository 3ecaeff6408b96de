package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/absa/internal/aggregate"
	"github.com/ppiankov/absa/internal/model"
)

func sampleReport() *model.Report {
	records := []model.ClassifiedReview{
		{Aspect: model.AspectSong, Sentiment: model.SentimentPositive},
		{Aspect: model.AspectSong, Sentiment: model.SentimentPositive},
		{Aspect: model.AspectSong, Sentiment: model.SentimentPositive},
		{Aspect: model.AspectSong, Sentiment: model.SentimentNegative},
		{Aspect: model.AspectPrice, Sentiment: model.SentimentNegative},
	}
	agg := aggregate.New()
	cells := agg.GroupedCounts(records)
	return &model.Report{
		ID:          "report-1",
		Label:       "Simply Guitar",
		GeneratedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Range: model.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Totals:    model.Totals{Loaded: 7, Valid: 6, InRange: 6, Tagged: aggregate.Total(cells)},
		Cells:     cells,
		Breakdown: agg.Proportions(records),
	}
}

func TestMarkdown_Indonesian(t *testing.T) {
	r := NewRenderer(model.LocaleID, false)
	md := r.Markdown(sampleReport())

	assert.True(t, strings.HasPrefix(md, "# Distribusi Sentimen per Aspek (ABSA) – Simply Guitar\n"))
	assert.Contains(t, md, "Periode: 2024-01-01 – 2024-01-31")
	assert.Contains(t, md, "| Aspek | Negatif | Positif | Total |")
	assert.Contains(t, md, "| Lagu | 1 | 3 | 4 |")
	assert.Contains(t, md, "| Lagu | 25.0% | 75.0% |")
	assert.Contains(t, md, "| Harga | 100.0% | 0.0% |")
	assert.Contains(t, md, "| Tutorial | – | – |")
	assert.NotContains(t, md, "report-1")
}

func TestMarkdown_EnglishFooter(t *testing.T) {
	r := NewRenderer(model.LocaleEN, true)
	md := r.Markdown(sampleReport())

	assert.Contains(t, md, "# Sentiment Distribution per Aspect (ABSA) – Simply Guitar")
	assert.Contains(t, md, "| Song | 1 | 3 | 4 |")
	assert.Contains(t, md, "Generated by absa · report-1 · 2024-02-01T00:00:00Z")
}

func TestRenderSummary_ZeroBarsUnannotated(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(model.LocaleEN, false).RenderSummary(&buf, sampleReport())
	out := buf.String()

	lines := strings.Split(out, "\n")
	var songNegative, tutorialNegative string
	for _, l := range lines {
		if strings.HasPrefix(l, "Song") {
			songNegative = l
		}
		if strings.HasPrefix(l, "Tutorial") {
			tutorialNegative = l
		}
	}
	assert.Contains(t, songNegative, "█")
	assert.True(t, strings.HasSuffix(songNegative, " 1"))
	require.NotEmpty(t, tutorialNegative)
	assert.NotContains(t, tutorialNegative, "█")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tutorialNegative), "Negative"))

	assert.Contains(t, out, "Aspect: Song: Negative 25.0% · Positive 75.0%")
	assert.Contains(t, out, "Aspect: Tutorial: no data")
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, NewRenderer(model.LocaleID, true).RenderJSON(sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Simply Guitar", decoded["label"])
}

func TestRenderLLMMarkdown_DisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.md")
	require.NoError(t, NewRenderer(model.LocaleID, true).RenderLLMMarkdown(sampleReport(), path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	report := sampleReport()
	report.LLM = &model.LLMSummary{Enabled: true, Provider: "openai", Model: "gpt-4o-mini", SummaryMD: "Lagu dominan.", Warnings: []string{"w1"}}
	require.NoError(t, NewRenderer(model.LocaleID, true).RenderLLMMarkdown(report, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Ringkasan LLM – Simply Guitar")
	assert.Contains(t, string(data), "Lagu dominan.")
	assert.Contains(t, string(data), "> ⚠ w1")
}

func TestRenderTable(t *testing.T) {
	records := []model.ClassifiedReview{{
		Review: model.Review{
			Name:         "ana",
			Rating:       4.5,
			HasRating:    true,
			Date:         time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Text:         "multi\nline review, lost my password",
			RawSentiment: "positive",
		},
		Aspect:    model.AspectLogin,
		Sentiment: model.SentimentPositive,
	}}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(model.LocaleEN, false).RenderTable(&buf, records))
	out := buf.String()
	assert.Contains(t, out, "predicted_sentiment")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "multi line review, lost my password")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "password"))
	assert.Equal(t, 2, strings.Count(out, "\n"))
}
