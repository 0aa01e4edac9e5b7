package domain

import "time"

// Interaction is a single social-media post tagged with the monitored
// hashtag. Immutable once fetched; consumed for one scoring cycle and
// never persisted by the engine.
type Interaction struct {
	ID           string
	AuthorID     string
	Text         string
	CreatedAt    time.Time
	LikeCount    int
	RetweetCount int
	ReplyCount   int
	QuoteCount   int
}
