package aggregate

import (
	"github.com/ppiankov/absa/internal/model"
)

// Aggregator counts classified reviews per (aspect, sentiment)
type Aggregator struct {
	aspects    []model.Aspect
	sentiments []model.Sentiment
}

// New creates an aggregator over all aspects and [Negative, Positive]
func New() *Aggregator {
	return NewWith(model.Aspects, model.Sentiments)
}

// NewWith creates an aggregator with custom ordered axes
func NewWith(aspects []model.Aspect, sentiments []model.Sentiment) *Aggregator {
	return &Aggregator{
		aspects:    append([]model.Aspect(nil), aspects...),
		sentiments: append([]model.Sentiment(nil), sentiments...),
	}
}

type key struct {
	aspect    model.Aspect
	sentiment model.Sentiment
}

func (a *Aggregator) tally(records []model.ClassifiedReview) map[key]int {
	counts := make(map[key]int)
	for _, r := range records {
		if r.Aspect == model.AspectNone || r.Sentiment == model.SentimentNone {
			continue
		}
		counts[key{r.Aspect, r.Sentiment}]++
	}
	return counts
}

// GroupedCounts returns one cell per aspect x sentiment pair, aspect-major,
// including zero cells. Records without an aspect or sentiment are skipped.
func (a *Aggregator) GroupedCounts(records []model.ClassifiedReview) []model.Cell {
	counts := a.tally(records)
	cells := make([]model.Cell, 0, len(a.aspects)*len(a.sentiments))
	for _, asp := range a.aspects {
		for _, s := range a.sentiments {
			cells = append(cells, model.Cell{
				Aspect:    asp,
				Sentiment: s,
				Count:     counts[key{asp, s}],
			})
		}
	}
	return cells
}

// Proportions returns the sentiment split of each aspect. Aspects without
// records are marked Empty and carry zero percentages.
func (a *Aggregator) Proportions(records []model.ClassifiedReview) []model.AspectBreakdown {
	counts := a.tally(records)
	out := make([]model.AspectBreakdown, 0, len(a.aspects))
	for _, asp := range a.aspects {
		b := model.AspectBreakdown{
			Aspect: asp,
			Slices: make([]model.Slice, 0, len(a.sentiments)),
		}
		for _, s := range a.sentiments {
			c := counts[key{asp, s}]
			b.Total += c
			b.Slices = append(b.Slices, model.Slice{Sentiment: s, Count: c})
		}
		if b.Total == 0 {
			b.Empty = true
		} else {
			for i := range b.Slices {
				b.Slices[i].Percent = float64(b.Slices[i].Count) / float64(b.Total)
			}
		}
		out = append(out, b)
	}
	return out
}

// Total sums all cells
func Total(cells []model.Cell) int {
	n := 0
	for _, c := range cells {
		n += c.Count
	}
	return n
}
