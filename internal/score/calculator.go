package score

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

// Weights is the score contribution table. All weights must be
// non-negative; that is what guarantees scores never go below zero, since
// the calculator itself applies no clamping.
type Weights struct {
	Mention   float64
	Technical float64
	Resource  float64
	Like      float64
	Retweet   float64
	Follower  float64
}

// DefaultWeights mirrors the production weight table.
func DefaultWeights() Weights {
	return Weights{Mention: 5, Technical: 10, Resource: 7, Like: 1, Retweet: 3, Follower: 0.1}
}

// DecaySchedule maps interaction age to a multiplicative staleness factor.
// Bucket bounds are inclusive and evaluated fresh-to-old, first match wins.
type DecaySchedule struct {
	FreshAge  time.Duration
	RecentAge time.Duration
	StaleAge  time.Duration

	RecentFactor float64
	StaleFactor  float64
	OldFactor    float64
}

// DefaultDecay keeps full weight for a day, then 0.8 up to a week, 0.5 up
// to a month, 0.2 beyond.
func DefaultDecay() DecaySchedule {
	return DecaySchedule{
		FreshAge:     24 * time.Hour,
		RecentAge:    7 * 24 * time.Hour,
		StaleAge:     30 * 24 * time.Hour,
		RecentFactor: 0.8,
		StaleFactor:  0.5,
		OldFactor:    0.2,
	}
}

// FactorAt returns the decay factor for an interaction of the given age.
func (d DecaySchedule) FactorAt(age time.Duration) float64 {
	switch {
	case age <= d.FreshAge:
		return 1.0
	case age <= d.RecentAge:
		return d.RecentFactor
	case age <= d.StaleAge:
		return d.StaleFactor
	default:
		return d.OldFactor
	}
}

// CalculatorConfig bundles the tunables of the score computation.
type CalculatorConfig struct {
	Weights             Weights
	Decay               DecaySchedule
	ProjectKeywords     []string
	TechnicalIndicators []string
	ResourceIndicators  []string
	PositivityThreshold float64
	TechnicalMinLength  int
}

// DefaultCalculatorConfig returns the production keyword sets and
// thresholds.
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Weights:             DefaultWeights(),
		Decay:               DefaultDecay(),
		ProjectKeywords:     []string{"social-fi", "credit", "social-ficredit", "elizaos"},
		TechnicalIndicators: []string{"how to", "problem", "error", "issue", "fix", "solution", "code", "contract"},
		ResourceIndicators:  []string{"guide", "tutorial", "documentation", "learn", "http", "https", "github"},
		PositivityThreshold: 0.2,
		TechnicalMinLength:  100,
	}
}

// Calculator computes an author's community score from their profile and
// interaction batch. Given identical inputs and a fixed now, Compute is
// deterministic; no hidden state influences the result.
type Calculator struct {
	classifier domain.Classifier
	cfg        CalculatorConfig
}

func NewCalculator(classifier domain.Classifier, cfg CalculatorConfig) *Calculator {
	cfg.ProjectKeywords = lowercaseAll(cfg.ProjectKeywords)
	cfg.TechnicalIndicators = lowercaseAll(cfg.TechnicalIndicators)
	cfg.ResourceIndicators = lowercaseAll(cfg.ResourceIndicators)
	return &Calculator{classifier: classifier, cfg: cfg}
}

func lowercaseAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

// Compute sums the follower bonus and each interaction's decayed
// contribution, then truncates toward zero. An empty batch yields the
// follower bonus alone. There is no upper cap: scores grow without limit.
func (c *Calculator) Compute(ctx context.Context, profile *domain.AuthorProfile, interactions []domain.Interaction, now time.Time) int {
	total := c.followerBonus(profile)

	for _, interaction := range interactions {
		raw := c.rawContribution(ctx, interaction)
		total += raw * c.cfg.Decay.FactorAt(now.Sub(interaction.CreatedAt))
	}

	return int(total)
}

// followerBonus contributes once per cycle, independent of the batch.
func (c *Calculator) followerBonus(profile *domain.AuthorProfile) float64 {
	if profile.FollowersCount <= 0 {
		return 0
	}
	return c.cfg.Weights.Follower * math.Log(float64(profile.FollowersCount)+1)
}

func (c *Calculator) rawContribution(ctx context.Context, interaction domain.Interaction) float64 {
	text := strings.ToLower(interaction.Text)

	var raw float64
	if c.isPositiveMention(ctx, interaction.Text, text) {
		raw += c.cfg.Weights.Mention
	}
	if c.isTechnicalAnswer(interaction.Text, text) {
		raw += c.cfg.Weights.Technical
	}
	if c.isResourceSharing(text) {
		raw += c.cfg.Weights.Resource
	}

	raw += float64(interaction.LikeCount) * c.cfg.Weights.Like
	raw += float64(interaction.RetweetCount) * c.cfg.Weights.Retweet

	return raw
}

func (c *Calculator) isPositiveMention(ctx context.Context, original, lowered string) bool {
	if !containsAny(lowered, c.cfg.ProjectKeywords) {
		return false
	}

	sentiment, err := c.classifier.Classify(ctx, original)
	if err != nil {
		// Degraded classification is neutral, never fatal.
		slog.WarnContext(ctx, "Sentiment classification failed, treating as neutral",
			"error", apperrors.DegradedError("sentiment classification failed", err))
		sentiment = 0.0
	}

	return sentiment > c.cfg.PositivityThreshold
}

// isTechnicalAnswer requires a minimum length so short generic positives
// are not double-counted as technical help.
func (c *Calculator) isTechnicalAnswer(original, lowered string) bool {
	return containsAny(lowered, c.cfg.TechnicalIndicators) && len(original) > c.cfg.TechnicalMinLength
}

func (c *Calculator) isResourceSharing(lowered string) bool {
	return containsAny(lowered, c.cfg.ResourceIndicators)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
