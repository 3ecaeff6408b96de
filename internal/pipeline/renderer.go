package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ppiankov/absa/internal/aspect"
	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/numfmt"
)

const barWidth = 32

type labels struct {
	title, counts, shares, aspect, period, total, noData, reviews string
	loaded, valid, inRange, tagged                                string
	summary, generated                                            string
}

var localized = map[model.Locale]labels{
	model.LocaleID: {
		title:     "Distribusi Sentimen per Aspek (ABSA)",
		counts:    "Jumlah Ulasan per Aspek",
		shares:    "Persentase Sentimen per Aspek",
		aspect:    "Aspek",
		period:    "Periode",
		total:     "Total",
		noData:    "tidak ada data",
		reviews:   "Ulasan",
		loaded:    "dimuat",
		valid:     "bersentimen",
		inRange:   "dalam periode",
		tagged:    "beraspek",
		summary:   "Ringkasan LLM",
		generated: "Dibuat oleh absa",
	},
	model.LocaleEN: {
		title:     "Sentiment Distribution per Aspect (ABSA)",
		counts:    "Reviews per Aspect",
		shares:    "Sentiment Share per Aspect",
		aspect:    "Aspect",
		period:    "Period",
		total:     "Total",
		noData:    "no data",
		reviews:   "Reviews",
		loaded:    "loaded",
		valid:     "with sentiment",
		inRange:   "in period",
		tagged:    "with aspect",
		summary:   "LLM Summary",
		generated: "Generated by absa",
	},
}

// Renderer writes reports as JSON, Markdown and terminal text
type Renderer struct {
	locale        model.Locale
	includeFooter bool
}

// NewRenderer creates a renderer for the given locale
func NewRenderer(locale model.Locale, includeFooter bool) *Renderer {
	return &Renderer{locale: locale, includeFooter: includeFooter}
}

// Locale returns the display locale
func (r *Renderer) Locale() model.Locale {
	return r.locale
}

func (r *Renderer) text() labels {
	return localized[r.locale]
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderLLMMarkdown writes the LLM narrative to its own file
func (r *Renderer) RenderLLMMarkdown(report *model.Report, path string) error {
	if report.LLM == nil || !report.LLM.Enabled {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s – %s\n\n", r.text().summary, report.Label)
	fmt.Fprintf(&b, "_%s/%s_\n\n", report.LLM.Provider, report.LLM.Model)
	b.WriteString(report.LLM.SummaryMD)
	b.WriteString("\n")
	for _, w := range report.LLM.Warnings {
		fmt.Fprintf(&b, "\n> ⚠ %s", w)
	}
	if len(report.LLM.Warnings) > 0 {
		b.WriteString("\n")
	}
	return writeFile(path, []byte(b.String()))
}

// Markdown renders the count and share tables
func (r *Renderer) Markdown(report *model.Report) string {
	t := r.text()
	sentiments := sentimentAxis(report)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s – %s\n\n", t.title, report.Label)
	fmt.Fprintf(&b, "%s: %s – %s\n\n", t.period, day(report.Range.Start), day(report.Range.End))
	fmt.Fprintf(&b, "%s: %s %s, %s %s, %s %s, %s %s\n\n", t.reviews,
		numfmt.Count(report.Totals.Loaded), t.loaded,
		numfmt.Count(report.Totals.Valid), t.valid,
		numfmt.Count(report.Totals.InRange), t.inRange,
		numfmt.Count(report.Totals.Tagged), t.tagged)

	// Counts
	fmt.Fprintf(&b, "## %s\n\n", t.counts)
	b.WriteString("| " + t.aspect)
	for _, s := range sentiments {
		b.WriteString(" | " + s.Label(r.locale))
	}
	b.WriteString(" | " + t.total + " |\n|---")
	for range sentiments {
		b.WriteString("|---:")
	}
	b.WriteString("|---:|\n")
	for _, br := range report.Breakdown {
		b.WriteString("| " + br.Aspect.Label(r.locale))
		for _, sl := range br.Slices {
			b.WriteString(" | " + numfmt.Count(sl.Count))
		}
		b.WriteString(" | " + numfmt.Count(br.Total) + " |\n")
	}

	// Shares
	fmt.Fprintf(&b, "\n## %s\n\n", t.shares)
	b.WriteString("| " + t.aspect)
	for _, s := range sentiments {
		b.WriteString(" | " + s.Label(r.locale))
	}
	b.WriteString(" |\n|---")
	for range sentiments {
		b.WriteString("|---:")
	}
	b.WriteString("|\n")
	for _, br := range report.Breakdown {
		b.WriteString("| " + br.Aspect.Label(r.locale))
		for _, sl := range br.Slices {
			if br.Empty {
				b.WriteString(" | –")
				continue
			}
			b.WriteString(" | " + numfmt.Percent(sl.Percent))
		}
		b.WriteString(" |\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n_%s · %s · %s_\n", t.generated, report.ID, report.GeneratedAt.Format(time.RFC3339))
	}

	return b.String()
}

// RenderSummary prints a bar chart of the grouped counts. Zero bars carry
// no annotation.
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	t := r.text()
	fmt.Fprintf(w, "%s – %s\n", t.title, report.Label)
	fmt.Fprintf(w, "%s: %s – %s\n", t.period, day(report.Range.Start), day(report.Range.End))
	fmt.Fprintf(w, "%s: %s %s · %s %s · %s %s · %s %s\n\n", t.reviews,
		numfmt.Count(report.Totals.Loaded), t.loaded,
		numfmt.Count(report.Totals.Valid), t.valid,
		numfmt.Count(report.Totals.InRange), t.inRange,
		numfmt.Count(report.Totals.Tagged), t.tagged)

	peak := 0
	for _, c := range report.Cells {
		if c.Count > peak {
			peak = c.Count
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var last model.Aspect
	for _, c := range report.Cells {
		name := ""
		if c.Aspect != last {
			name = c.Aspect.Label(r.locale)
			last = c.Aspect
		}
		bar, annotation := "", ""
		if c.Count > 0 {
			n := c.Count * barWidth / peak
			if n == 0 {
				n = 1
			}
			bar = strings.Repeat("█", n)
			annotation = numfmt.Count(c.Count)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\n", name, c.Sentiment.Label(r.locale), bar, annotation)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	for _, br := range report.Breakdown {
		if br.Empty {
			fmt.Fprintf(w, "%s: %s: %s\n", t.aspect, br.Aspect.Label(r.locale), t.noData)
			continue
		}
		parts := make([]string, 0, len(br.Slices))
		for _, sl := range br.Slices {
			parts = append(parts, sl.Sentiment.Label(r.locale)+" "+numfmt.Percent(sl.Percent))
		}
		fmt.Fprintf(w, "%s: %s: %s\n", t.aspect, br.Aspect.Label(r.locale), strings.Join(parts, " · "))
	}
}

// RenderTable prints the review table view. The last column is the
// keyword that decided the aspect.
func (r *Renderer) RenderTable(w io.Writer, records []model.ClassifiedReview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tstar_rating\tdate\treview\tpredicted_sentiment\taspect\tsentiment\tkeyword")
	for _, rec := range records {
		rating := ""
		if rec.HasRating {
			rating = fmt.Sprintf("%g", rec.Rating)
		}
		_, keyword := aspect.Explain(rec.Text)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			oneLine(rec.Name), rating, day(rec.Date), truncate(oneLine(rec.Text), 60), rec.RawSentiment,
			rec.Aspect.Label(r.locale), rec.Sentiment.Label(r.locale), keyword)
	}
	return tw.Flush()
}

func sentimentAxis(report *model.Report) []model.Sentiment {
	if len(report.Breakdown) == 0 {
		return model.Sentiments
	}
	out := make([]model.Sentiment, 0, len(report.Breakdown[0].Slices))
	for _, sl := range report.Breakdown[0].Slices {
		out = append(out, sl.Sentiment)
	}
	return out
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
