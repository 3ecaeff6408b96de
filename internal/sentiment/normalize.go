// Package sentiment maps upstream sentiment labels to canonical values.
package sentiment

import (
	"strings"

	"github.com/ppiankov/absa/internal/model"
)

// Normalize maps "positive"/"negative" (any casing, whole label) to the
// canonical sentiment. Every other label, including "", is SentimentNone.
func Normalize(label string) model.Sentiment {
	switch strings.ToLower(label) {
	case "positive":
		return model.SentimentPositive
	case "negative":
		return model.SentimentNegative
	default:
		return model.SentimentNone
	}
}
