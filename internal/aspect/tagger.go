// Package aspect assigns review text to a single topical aspect.
//
// Matching is a case-insensitive substring test against fixed keyword lists,
// evaluated in priority order: Song, Price, Tutorial, Login, Technical. The
// first aspect with any matching keyword wins, so a review is never tagged
// with more than one aspect.
//
// Keywords are substrings, not whole words: "log" matches "dialogue" and
// "out" matches "without". Callers relying on tighter matching must change
// the keyword table, not the matcher.
package aspect

import (
	"strings"

	"github.com/ppiankov/absa/internal/model"
)

type rule struct {
	aspect   model.Aspect
	keywords []string
}

// rules is ordered by priority; order is part of the tagging contract.
var rules = []rule{
	{model.AspectSong, []string{
		"song", "songs", "play", "cant", "music", "like", "fun", "playing",
		"amazing", "beginner", "beginners", "hard",
	}},
	{model.AspectPrice, []string{
		"premium", "pay", "free", "purchase", "money", "price", "subscribe",
		"subscription", "worth", "ads", "trial", "charged", "payment",
	}},
	{model.AspectTutorial, []string{
		"learn", "learning", "lessons", "helpful", "love", "instructor",
		"tutorial", "teaching", "great", "good", "best", "easy", "amazing",
		"guide", "gamification",
	}},
	{model.AspectLogin, []string{
		"login", "account", "log", "sign", "sign in", "sign up", "cant login",
		"log in", "register", "access", "out", "auth", "reset", "email",
		"password",
	}},
	{model.AspectTechnical, []string{
		"tuning", "tune", "sound", "mode", "time", "try", "get", "frustrating",
		"crash", "bug", "glitch", "slow", "lag", "freeze", "string", "fail",
		"issue", "update", "load", "problem", "error", "close",
	}},
}

// Tag returns the first aspect whose keywords occur in text, or AspectNone
func Tag(text string) model.Aspect {
	a, _ := Explain(text)
	return a
}

// Explain is Tag plus the keyword that decided the match
func Explain(text string) (model.Aspect, string) {
	text = strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.aspect, kw
			}
		}
	}
	return model.AspectNone, ""
}

// Keywords returns a copy of the keyword list for an aspect
func Keywords(a model.Aspect) []string {
	for _, r := range rules {
		if r.aspect == a {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}
