package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Review is one row of an uploaded review export
type Review struct {
	Row          int       `json:"row"`                   // 1-based data row in the source file
	Name         string    `json:"name"`                  // Reviewer name / identity
	Rating       float64   `json:"star_rating,omitempty"` // Star rating
	HasRating    bool      `json:"-"`                     // False when the rating cell was empty or not numeric
	Date         time.Time `json:"date"`                  // Calendar date (UTC midnight), zero when unparseable
	Text         string    `json:"review"`                // Free-text review body
	RawSentiment string    `json:"predicted_sentiment"`   // Upstream sentiment label, any casing
	Extra        []string  `json:"extra,omitempty"`       // Pass-through column values, aligned with Dataset.ExtraColumns
}

// HasDate reports whether the date cell could be parsed
func (r Review) HasDate() bool {
	return !r.Date.IsZero()
}

// ClassifiedReview is a review with its derived aspect and canonical sentiment
type ClassifiedReview struct {
	Review
	Aspect    Aspect    `json:"aspect"`
	Sentiment Sentiment `json:"sentiment"`
}

// Dataset is a loaded and classified review file
type Dataset struct {
	Source       string             `json:"source"`
	Hash         string             `json:"hash"`
	ExtraColumns []string           `json:"extra_columns,omitempty"`
	Records      []ClassifiedReview `json:"-"`
}

// Locale selects display names for aspects and sentiments
type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

// ParseLocale maps a config value to a Locale, defaulting to Indonesian
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(LocaleEN)) {
		return LocaleEN
	}
	return LocaleID
}

// Aspect is the topical category of a review
type Aspect int

const (
	AspectNone Aspect = iota
	AspectSong
	AspectPrice
	AspectTutorial
	AspectLogin
	AspectTechnical
)

// Aspects lists every aspect in priority order
var Aspects = []Aspect{AspectSong, AspectPrice, AspectTutorial, AspectLogin, AspectTechnical}

var aspectNames = map[Aspect][2]string{
	AspectSong:      {"Song", "Lagu"},
	AspectPrice:     {"Price", "Harga"},
	AspectTutorial:  {"Tutorial", "Tutorial"},
	AspectLogin:     {"Login", "Login"},
	AspectTechnical: {"Technical", "Teknis"},
}

func (a Aspect) String() string {
	if names, ok := aspectNames[a]; ok {
		return names[0]
	}
	return ""
}

// Label returns the display name for the given locale
func (a Aspect) Label(l Locale) string {
	names, ok := aspectNames[a]
	if !ok {
		return ""
	}
	if l == LocaleEN {
		return names[0]
	}
	return names[1]
}

// ParseAspect accepts English or Indonesian names, case-insensitively
func ParseAspect(s string) (Aspect, error) {
	s = strings.TrimSpace(s)
	for _, a := range Aspects {
		names := aspectNames[a]
		if strings.EqualFold(s, names[0]) || strings.EqualFold(s, names[1]) {
			return a, nil
		}
	}
	return AspectNone, fmt.Errorf("unknown aspect: %q", s)
}

// MarshalJSON encodes the aspect by name, null for AspectNone
func (a Aspect) MarshalJSON() ([]byte, error) {
	if a == AspectNone {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an aspect name or null
func (a *Aspect) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*a = AspectNone
		return nil
	}
	v, err := ParseAspect(*s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Sentiment is the canonical binary sentiment of a review
type Sentiment int

const (
	SentimentNone Sentiment = iota
	SentimentNegative
	SentimentPositive
)

// Sentiments lists canonical sentiments in chart order
var Sentiments = []Sentiment{SentimentNegative, SentimentPositive}

var sentimentNames = map[Sentiment][2]string{
	SentimentNegative: {"Negative", "Negatif"},
	SentimentPositive: {"Positive", "Positif"},
}

func (s Sentiment) String() string {
	if names, ok := sentimentNames[s]; ok {
		return names[0]
	}
	return ""
}

// Label returns the display name for the given locale
func (s Sentiment) Label(l Locale) string {
	names, ok := sentimentNames[s]
	if !ok {
		return ""
	}
	if l == LocaleEN {
		return names[0]
	}
	return names[1]
}

// ParseSentiment accepts English or Indonesian names, case-insensitively
func ParseSentiment(v string) (Sentiment, error) {
	v = strings.TrimSpace(v)
	for _, s := range Sentiments {
		names := sentimentNames[s]
		if strings.EqualFold(v, names[0]) || strings.EqualFold(v, names[1]) {
			return s, nil
		}
	}
	return SentimentNone, fmt.Errorf("unknown sentiment: %q", v)
}

// MarshalJSON encodes the sentiment by name, null for SentimentNone
func (s Sentiment) MarshalJSON() ([]byte, error) {
	if s == SentimentNone {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a sentiment name or null
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*s = SentimentNone
		return nil
	}
	parsed, err := ParseSentiment(*v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
