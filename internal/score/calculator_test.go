package score

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

// stubClassifier returns a fixed sentiment per text, neutral otherwise.
type stubClassifier struct {
	sentiments map[string]float64
	err        error
	calls      int
}

func (s *stubClassifier) Classify(_ context.Context, text string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.sentiments[text], nil
}

func newCalculator(classifier domain.Classifier) *Calculator {
	return NewCalculator(classifier, DefaultCalculatorConfig())
}

func profileWithFollowers(n int) *domain.AuthorProfile {
	return &domain.AuthorProfile{AuthorID: "1001", Username: "alice", FollowersCount: n}
}

func interactionAt(created time.Time, text string, likes, retweets int) domain.Interaction {
	return domain.Interaction{
		ID:           "t1",
		AuthorID:     "1001",
		Text:         text,
		CreatedAt:    created,
		LikeCount:    likes,
		RetweetCount: retweets,
	}
}

func TestCompute_EngagementOnly(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calc := newCalculator(&stubClassifier{})

	// 10 likes * 1 + 2 retweets * 3 = 16, decay factor 1.0, no followers.
	batch := []domain.Interaction{interactionAt(now, "just shipped something new", 10, 2)}
	assert.Equal(t, 16, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))
}

func TestCompute_EmptyBatchZeroFollowers(t *testing.T) {
	now := time.Now()
	calc := newCalculator(&stubClassifier{})
	assert.Equal(t, 0, calc.Compute(context.Background(), profileWithFollowers(0), nil, now))
}

func TestCompute_EmptyBatchFollowerBonusOnly(t *testing.T) {
	now := time.Now()
	calc := newCalculator(&stubClassifier{})

	// 0.1 * ln(150 + 1) = 0.501..., truncated to 0.
	assert.Equal(t, 0, calc.Compute(context.Background(), profileWithFollowers(150), nil, now))

	// Crank the weight so the bonus is visible on its own.
	cfg := DefaultCalculatorConfig()
	cfg.Weights.Follower = 10
	calc = NewCalculator(&stubClassifier{}, cfg)
	want := int(10 * math.Log(151))
	assert.Equal(t, want, calc.Compute(context.Background(), profileWithFollowers(150), nil, now))
}

func TestCompute_PositiveMention(t *testing.T) {
	now := time.Now()
	text := "Loving the social-fi credit system!"
	classifier := &stubClassifier{sentiments: map[string]float64{text: 0.8}}
	calc := newCalculator(classifier)

	batch := []domain.Interaction{interactionAt(now, text, 0, 0)}
	assert.Equal(t, 5, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))
}

func TestCompute_MentionWithoutPositivityScoresNothing(t *testing.T) {
	now := time.Now()
	text := "social-fi credit exists"
	classifier := &stubClassifier{sentiments: map[string]float64{text: 0.1}}
	calc := newCalculator(classifier)

	batch := []domain.Interaction{interactionAt(now, text, 0, 0)}
	assert.Equal(t, 0, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))
}

func TestCompute_ClassifierErrorDegradesToNeutral(t *testing.T) {
	now := time.Now()
	text := "elizaos is wonderful"
	calc := newCalculator(&stubClassifier{err: errors.New("model offline")})

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(previous)

	batch := []domain.Interaction{interactionAt(now, text, 0, 0)}
	// Neutral sentiment fails the positivity threshold; nothing else matches.
	assert.Equal(t, 0, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))

	// The failure is logged as a degraded-category error, not swallowed.
	assert.Contains(t, buf.String(), "degraded")
	assert.Contains(t, buf.String(), "model offline")
}

func TestCompute_TechnicalAnswerNeedsLength(t *testing.T) {
	now := time.Now()
	short := "quick fix"
	long := "The fix for that issue is to bump the gas limit on the contract call and retry; the default is too low for batch submissions like yours."
	calc := newCalculator(&stubClassifier{})

	batch := []domain.Interaction{interactionAt(now, short, 0, 0)}
	assert.Equal(t, 0, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))

	batch = []domain.Interaction{interactionAt(now, long, 0, 0)}
	assert.Equal(t, 10, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))
}

func TestCompute_ResourceSharingIgnoresSentiment(t *testing.T) {
	now := time.Now()
	text := "wrote a short guide for newcomers"
	calc := newCalculator(&stubClassifier{})

	batch := []domain.Interaction{interactionAt(now, text, 0, 0)}
	assert.Equal(t, 7, calc.Compute(context.Background(), profileWithFollowers(0), batch, now))
}

func TestCompute_DecayBuckets(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calc := newCalculator(&stubClassifier{})
	profile := profileWithFollowers(0)

	cases := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"fresh", 12 * time.Hour, 100},
		{"exactly one day", 24 * time.Hour, 100}, // inclusive upper bound
		{"recent", 3 * 24 * time.Hour, 80},
		{"stale", 20 * 24 * time.Hour, 50},
		{"old", 90 * 24 * time.Hour, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batch := []domain.Interaction{interactionAt(now.Add(-tc.age), "plain update", 100, 0)}
			assert.Equal(t, tc.want, calc.Compute(context.Background(), profile, batch, now))
		})
	}
}

func TestCompute_DecayIsMonotonic(t *testing.T) {
	now := time.Now()
	calc := newCalculator(&stubClassifier{})
	profile := profileWithFollowers(0)

	ages := []time.Duration{
		0, 12 * time.Hour, 36 * time.Hour, 5 * 24 * time.Hour,
		10 * 24 * time.Hour, 29 * 24 * time.Hour, 60 * 24 * time.Hour,
	}

	prev := math.MaxInt
	for _, age := range ages {
		batch := []domain.Interaction{interactionAt(now.Add(-age), "plain update", 50, 5)}
		got := calc.Compute(context.Background(), profile, batch, now)
		assert.LessOrEqual(t, got, prev, "age %s must not contribute more than a younger interaction", age)
		prev = got
	}
}

func TestCompute_Deterministic(t *testing.T) {
	now := time.Now()
	text := "Great guide on how to fix the contract error, loving social-fi credit"
	classifier := &stubClassifier{sentiments: map[string]float64{text: 0.9}}
	calc := newCalculator(classifier)
	profile := profileWithFollowers(2500)
	batch := []domain.Interaction{interactionAt(now.Add(-2*24*time.Hour), text, 12, 4)}

	first := calc.Compute(context.Background(), profile, batch, now)
	for range 10 {
		assert.Equal(t, first, calc.Compute(context.Background(), profile, batch, now))
	}
}

func TestCompute_NonNegative(t *testing.T) {
	now := time.Now()
	text := "terrible broken scam, waste of time"
	classifier := &stubClassifier{sentiments: map[string]float64{text: -1.0}}
	calc := newCalculator(classifier)

	batch := []domain.Interaction{interactionAt(now.Add(-400*24*time.Hour), text, 0, 0)}
	got := calc.Compute(context.Background(), profileWithFollowers(0), batch, now)
	assert.GreaterOrEqual(t, got, 0)
}

func TestCompute_MultipleInteractionsSummedBeforeTruncation(t *testing.T) {
	now := time.Now()
	calc := newCalculator(&stubClassifier{})
	profile := profileWithFollowers(0)

	// Each old interaction contributes 1 like * 0.2 = 0.2; five of them sum
	// to 1.0 before the single final truncation.
	batch := make([]domain.Interaction, 5)
	for i := range batch {
		batch[i] = domain.Interaction{
			ID:        string(rune('a' + i)),
			AuthorID:  "1001",
			Text:      "plain update",
			CreatedAt: now.Add(-60 * 24 * time.Hour),
			LikeCount: 1,
		}
	}
	assert.Equal(t, 1, calc.Compute(context.Background(), profile, batch, now))
}
