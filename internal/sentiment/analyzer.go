package sentiment

import (
	"context"
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	mentionPattern    = regexp.MustCompile(`@\w+`)
	hashtagPattern    = regexp.MustCompile(`#(\w+)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const (
	intensifierModifier = 1.2
	diminisherModifier  = 0.8
)

// Analyzer scores text on a [-1.0, 1.0] scale. The zero value is not
// usable; construct with New.
type Analyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func New() *Analyzer {
	return &Analyzer{
		positive: toSet(positiveTerms),
		negative: toSet(negativeTerms),
	}
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// Classify returns a sentiment value in [-1.0, 1.0]. It is total: empty or
// malformed text yields neutral (0.0) and the error is always nil. The
// error return exists to satisfy the capability contract, under which a
// remote model may fail.
func (a *Analyzer) Classify(_ context.Context, text string) (float64, error) {
	if text == "" {
		return 0.0, nil
	}

	cleaned := cleanText(text)
	if cleaned == "" {
		return 0.0, nil
	}

	base := a.lexiconScore(cleaned)
	if base == 0 {
		return 0.0, nil
	}

	return clamp(base*modifier(cleaned), -1.0, 1.0), nil
}

// cleanText strips URLs and @mentions, unwraps hashtags to their word, and
// collapses whitespace.
func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "$1")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// lexiconScore returns the balance of positive vs negative term hits,
// normalized to [-1, 1]. No hits means neutral.
func (a *Analyzer) lexiconScore(cleaned string) float64 {
	var pos, neg int
	for _, word := range strings.Fields(cleaned) {
		word = strings.Trim(word, `.,!?:;"'()`)
		if _, ok := a.positive[word]; ok {
			pos++
		}
		if _, ok := a.negative[word]; ok {
			neg++
		}
	}

	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

func modifier(cleaned string) float64 {
	m := 1.0
	for _, word := range intensifiers {
		if strings.Contains(cleaned, word) {
			m *= intensifierModifier
		}
	}
	for _, word := range diminishers {
		if strings.Contains(cleaned, word) {
			m *= diminisherModifier
		}
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
