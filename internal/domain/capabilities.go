package domain

import (
	"context"
	"time"
)

// SocialFeed fetches interactions tagged with a hashtag, newer than since.
// An empty slice means no results; an error means the feed was unreachable
// and the whole cycle must be aborted (never silently stale data).
type SocialFeed interface {
	FetchRecent(ctx context.Context, hashtag string, since time.Time) ([]Interaction, error)
}

// ProfileLookup resolves an author ID to profile data.
// Returns ErrProfileNotFound when the author does not exist; that skips
// the author, not the cycle.
type ProfileLookup interface {
	GetProfile(ctx context.Context, authorID string) (*AuthorProfile, error)
}

// Classifier maps text to a sentiment value in [-1.0, 1.0].
// Empty text is neutral (0.0). An error degrades that interaction's
// sentiment to neutral; it never aborts scoring.
type Classifier interface {
	Classify(ctx context.Context, text string) (float64, error)
}

// ReputationSink pushes a computed score downstream. Failures are logged
// by the caller and never roll back the local score update.
type ReputationSink interface {
	SubmitScore(ctx context.Context, profile *AuthorProfile, score int) error
}

// NotificationChannel delivers a score-change message to an author.
// At most one attempt per author per cycle; failures are not retried
// within the same cycle.
type NotificationChannel interface {
	Send(ctx context.Context, authorID, message string) error
}
