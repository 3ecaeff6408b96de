package pipeline

import (
	"github.com/ppiankov/absa/internal/aspect"
	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/sentiment"
)

// Classify tags every review with an aspect and a canonical sentiment,
// preserving row order
func Classify(reviews []model.Review) []model.ClassifiedReview {
	out := make([]model.ClassifiedReview, len(reviews))
	for i, r := range reviews {
		out[i] = model.ClassifiedReview{
			Review:    r,
			Aspect:    aspect.Tag(r.Text),
			Sentiment: sentiment.Normalize(r.RawSentiment),
		}
	}
	return out
}
