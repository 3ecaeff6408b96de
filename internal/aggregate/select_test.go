package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/absa/internal/model"
)

func names(records []model.ClassifiedReview) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestPresent(t *testing.T) {
	records := sample()
	assert.Equal(t,
		[]model.Aspect{model.AspectSong, model.AspectPrice, model.AspectLogin, model.AspectTechnical},
		PresentAspects(records))
	assert.Equal(t, []model.Sentiment{model.SentimentNegative, model.SentimentPositive}, PresentSentiments(records))
}

func TestSelect_Defaults(t *testing.T) {
	got := Select(sample(), nil, nil)
	// r5 has no aspect, r6 has no sentiment.
	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r7"}, names(got))
}

func TestSelect_Subsets(t *testing.T) {
	got := Select(sample(), []model.Aspect{model.AspectSong, model.AspectLogin}, []model.Sentiment{model.SentimentNegative})
	assert.Equal(t, []string{"r3", "r4"}, names(got))

	got = Select(sample(), []model.Aspect{model.AspectTutorial}, nil)
	assert.Empty(t, got)

	got = Select(sample(), []model.Aspect{model.AspectNone}, nil)
	assert.Empty(t, got)
}
