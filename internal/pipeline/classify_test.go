package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/absa/internal/model"
)

func TestClassify(t *testing.T) {
	reviews := []model.Review{
		{Row: 1, Text: "Too many ads", RawSentiment: "NEGATIVE"},
		{Row: 2, Text: "Meh.", RawSentiment: "Neutral"},
		{Row: 3, Text: "Great instructor", RawSentiment: "positive"},
	}

	got := Classify(reviews)
	require.Len(t, got, 3)

	assert.Equal(t, model.AspectPrice, got[0].Aspect)
	assert.Equal(t, model.SentimentNegative, got[0].Sentiment)
	assert.Equal(t, model.AspectNone, got[1].Aspect)
	assert.Equal(t, model.SentimentNone, got[1].Sentiment)
	assert.Equal(t, model.AspectTutorial, got[2].Aspect)
	assert.Equal(t, model.SentimentPositive, got[2].Sentiment)

	for i, r := range got {
		assert.Equal(t, i+1, r.Row, "row order preserved")
	}
}
