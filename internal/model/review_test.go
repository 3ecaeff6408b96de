package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAspectLabels(t *testing.T) {
	assert.Equal(t, "Lagu", AspectSong.Label(LocaleID))
	assert.Equal(t, "Song", AspectSong.Label(LocaleEN))
	assert.Equal(t, "Teknis", AspectTechnical.Label(LocaleID))
	assert.Equal(t, "", AspectNone.Label(LocaleID))
	assert.Equal(t, "Technical", AspectTechnical.String())
}

func TestParseAspect(t *testing.T) {
	for _, in := range []string{"Lagu", "song", " SONG "} {
		a, err := ParseAspect(in)
		require.NoError(t, err, in)
		assert.Equal(t, AspectSong, a)
	}
	_, err := ParseAspect("Graphics")
	assert.Error(t, err)
}

func TestParseSentiment(t *testing.T) {
	s, err := ParseSentiment("negatif")
	require.NoError(t, err)
	assert.Equal(t, SentimentNegative, s)

	s, err = ParseSentiment("Positive")
	require.NoError(t, err)
	assert.Equal(t, SentimentPositive, s)

	_, err = ParseSentiment("neutral")
	assert.Error(t, err)
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleEN, ParseLocale("EN"))
	assert.Equal(t, LocaleID, ParseLocale("id"))
	assert.Equal(t, LocaleID, ParseLocale(""))
	assert.Equal(t, LocaleID, ParseLocale("fr"))
}

func TestClassifiedReviewJSON(t *testing.T) {
	r := ClassifiedReview{
		Review:    Review{Name: "a", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		Aspect:    AspectNone,
		Sentiment: SentimentPositive,
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["aspect"])
	assert.Equal(t, "Positive", decoded["sentiment"])

	var back ClassifiedReview
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, AspectNone, back.Aspect)
	assert.Equal(t, SentimentPositive, back.Sentiment)
}

func TestHasDate(t *testing.T) {
	assert.False(t, Review{}.HasDate())
	assert.True(t, Review{Date: time.Now()}.HasDate())
}
