package score

import (
	"math"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

// Detector decides whether a score change is significant enough to notify.
type Detector struct {
	// SignificanceRatio is the minimum |delta| / previous ratio, e.g. 0.1
	// for a 10% change.
	SignificanceRatio float64
}

// Evaluate compares a fresh score against the previous one. A first-ever
// score (previous of zero) is never significant, so onboarding an author
// cannot trigger a notification.
func (d Detector) Evaluate(previous, next int) domain.NotificationDecision {
	delta := next - previous

	if previous <= 0 {
		return domain.NotificationDecision{Significant: false, Delta: delta}
	}

	ratio := math.Abs(float64(delta)) / float64(previous)
	return domain.NotificationDecision{
		Significant: ratio >= d.SignificanceRatio,
		Delta:       delta,
	}
}
