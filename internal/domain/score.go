package domain

import (
	"context"
	"time"
)

// ScoreRecord holds the last-known community score for an author.
// PreviousScore always carries the value that was current immediately
// before the latest update, so change detection never compares against a
// stale snapshot. Records are never expired during process lifetime;
// pruning inactive authors is a deployment concern.
type ScoreRecord struct {
	AuthorID      string
	Score         int
	PreviousScore int
	ComputedAt    time.Time
}

// NotificationDecision is the outcome of comparing a fresh score against
// the stored one. Delta is signed (new minus previous).
type NotificationDecision struct {
	Significant bool
	Delta       int
}

// ScoreStore persists one ScoreRecord per author. The monitor cycle loop
// is the only writer; Get and List may be called concurrently by the
// read-only API.
type ScoreStore interface {
	// Get returns the record for an author, or ErrScoreNotFound.
	Get(ctx context.Context, authorID string) (*ScoreRecord, error)
	// Upsert stores a new score and returns the score that was current
	// before the update (zero for a first-ever record).
	Upsert(ctx context.Context, authorID string, score int, computedAt time.Time) (int, error)
	// List returns all records, ordered by author ID.
	List(ctx context.Context) ([]ScoreRecord, error)
}
