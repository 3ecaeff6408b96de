package aggregate

import "github.com/ppiankov/absa/internal/model"

// PresentAspects lists the aspects that occur in records, in priority order
func PresentAspects(records []model.ClassifiedReview) []model.Aspect {
	seen := make(map[model.Aspect]bool)
	for _, r := range records {
		seen[r.Aspect] = true
	}
	var out []model.Aspect
	for _, a := range model.Aspects {
		if seen[a] {
			out = append(out, a)
		}
	}
	return out
}

// PresentSentiments lists the canonical sentiments that occur in records
func PresentSentiments(records []model.ClassifiedReview) []model.Sentiment {
	seen := make(map[model.Sentiment]bool)
	for _, r := range records {
		seen[r.Sentiment] = true
	}
	var out []model.Sentiment
	for _, s := range model.Sentiments {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// Select returns the records whose aspect is in aspects and whose sentiment
// is in sentiments, in input order. An empty selection means every value
// present in records. Untagged records never match.
func Select(records []model.ClassifiedReview, aspects []model.Aspect, sentiments []model.Sentiment) []model.ClassifiedReview {
	if len(aspects) == 0 {
		aspects = PresentAspects(records)
	}
	if len(sentiments) == 0 {
		sentiments = PresentSentiments(records)
	}

	wantAspect := make(map[model.Aspect]bool, len(aspects))
	for _, a := range aspects {
		if a != model.AspectNone {
			wantAspect[a] = true
		}
	}
	wantSentiment := make(map[model.Sentiment]bool, len(sentiments))
	for _, s := range sentiments {
		if s != model.SentimentNone {
			wantSentiment[s] = true
		}
	}

	out := make([]model.ClassifiedReview, 0, len(records))
	for _, r := range records {
		if wantAspect[r.Aspect] && wantSentiment[r.Sentiment] {
			out = append(out, r)
		}
	}
	return out
}
