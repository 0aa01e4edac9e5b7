package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
	"github.com/uederson-ferreira/social-fi-credit/internal/metrics"
	"github.com/uederson-ferreira/social-fi-credit/internal/platform/correlation"
	"github.com/uederson-ferreira/social-fi-credit/internal/score"
)

// Options bundles the collaborators and timing knobs of the Service.
// Sink may be nil when on-chain submission is disabled.
type Options struct {
	Feed       domain.SocialFeed
	Profiles   domain.ProfileLookup
	Calculator *score.Calculator
	Detector   score.Detector
	Store      domain.ScoreStore
	Sink       domain.ReputationSink
	Notifier   domain.NotificationChannel
	Clock      clockwork.Clock

	Hashtag        string
	PollInterval   time.Duration
	LookbackBuffer time.Duration
	CheckInterval  time.Duration
	ErrorBackoff   time.Duration
}

// Service owns the monitor loop. It is the single writer of the score
// store; everything else reads.
type Service struct {
	feed       domain.SocialFeed
	profiles   domain.ProfileLookup
	calculator *score.Calculator
	detector   score.Detector
	store      domain.ScoreStore
	sink       domain.ReputationSink
	notifier   domain.NotificationChannel
	clock      clockwork.Clock

	hashtag        string
	pollInterval   time.Duration
	lookbackBuffer time.Duration
	checkInterval  time.Duration
	errorBackoff   time.Duration

	lastCycle time.Time
}

func NewService(opts Options) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		feed:           opts.Feed,
		profiles:       opts.Profiles,
		calculator:     opts.Calculator,
		detector:       opts.Detector,
		store:          opts.Store,
		sink:           opts.Sink,
		notifier:       opts.Notifier,
		clock:          clock,
		hashtag:        opts.Hashtag,
		pollInterval:   opts.PollInterval,
		lookbackBuffer: opts.LookbackBuffer,
		checkInterval:  opts.CheckInterval,
		errorBackoff:   opts.ErrorBackoff,
	}
}

// Run drives the polling loop until ctx is cancelled. The first cycle
// starts immediately; afterwards cycles are due every poll interval. A
// failed cycle extends the wait to the error backoff and leaves lastCycle
// untouched, so the next attempt re-covers the same window.
func (s *Service) Run(ctx context.Context) error {
	// Backdating the marker makes the first cycle due right away.
	s.lastCycle = s.clock.Now().Add(-s.pollInterval)

	slog.InfoContext(ctx, "Monitor started",
		"hashtag", s.hashtag,
		"poll_interval", s.pollInterval,
		"check_interval", s.checkInterval)

	for {
		wait := s.checkInterval

		if s.clock.Now().Sub(s.lastCycle) >= s.pollInterval {
			if err := s.runCycle(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				metrics.CyclesTotal.WithLabelValues("error").Inc()
				slog.ErrorContext(ctx, "Cycle failed, backing off",
					"error", err,
					"backoff", s.errorBackoff)
				wait = s.errorBackoff
			} else {
				metrics.CyclesTotal.WithLabelValues("success").Inc()
				s.lastCycle = s.clock.Now()
			}
		}

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Monitor stopping")
			return ctx.Err()
		case <-s.clock.After(wait):
		}
	}
}

// runCycle performs one full poll: fetch, aggregate, score, persist,
// submit, notify. Only the fetch aborts the cycle; per-author failures
// skip that author.
func (s *Service) runCycle(ctx context.Context) error {
	ctx = correlation.WithID(ctx, correlation.NewID())
	start := s.clock.Now()

	since := s.lastCycle.Add(-s.lookbackBuffer)

	interactions, err := s.feed.FetchRecent(ctx, s.hashtag, since)
	if err != nil {
		return fmt.Errorf("fetch failed for #%s: %w", s.hashtag, err)
	}
	metrics.InteractionsFetched.Add(float64(len(interactions)))

	byAuthor := score.Aggregate(interactions, since)
	authors := score.SortedAuthors(byAuthor)

	slog.InfoContext(ctx, "Cycle started",
		"interactions", len(interactions),
		"authors", len(authors),
		"since", since)

	now := s.clock.Now()
	var updated, skipped int
	for _, authorID := range authors {
		// Cancellation between authors keeps completed updates intact.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Each author gets a child correlation ID under the cycle's ID.
		authorCtx := correlation.WithID(ctx, correlation.ChildID(ctx))

		if err := s.processAuthor(authorCtx, authorID, byAuthor[authorID], now); err != nil {
			metrics.AuthorsProcessed.WithLabelValues("skipped").Inc()
			slog.WarnContext(authorCtx, "Skipping author",
				"author_id", authorID,
				"error_type", apperrors.AsStructuredError(err).Type,
				"error", err)
			skipped++
			continue
		}
		metrics.AuthorsProcessed.WithLabelValues("updated").Inc()
		updated++
	}

	elapsed := s.clock.Now().Sub(start)
	metrics.CycleDuration.Observe(elapsed.Seconds())
	slog.InfoContext(ctx, "Cycle complete",
		"updated", updated,
		"skipped", skipped,
		"duration", elapsed)
	return nil
}

// processAuthor recomputes and persists one author's score. The store
// update is the commit point: downstream submission and notification
// failures are logged but never roll it back.
func (s *Service) processAuthor(ctx context.Context, authorID string, batch []domain.Interaction, now time.Time) error {
	profile, err := s.profiles.GetProfile(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return apperrors.LookupMissError("author profile not found", err).
				WithContext("author_id", authorID)
		}
		return fmt.Errorf("profile lookup failed: %w", err)
	}

	newScore := s.calculator.Compute(ctx, profile, batch, now)

	previous, err := s.store.Upsert(ctx, authorID, newScore, now)
	if err != nil {
		return fmt.Errorf("store update failed: %w", err)
	}

	slog.DebugContext(ctx, "Score updated",
		"author_id", authorID,
		"username", profile.Username,
		"score", newScore,
		"previous", previous)

	if s.sink != nil {
		if err := s.sink.SubmitScore(ctx, profile, newScore); err != nil {
			metrics.ScoreSubmissions.WithLabelValues("failed").Inc()
			slog.WarnContext(ctx, "Score submission failed",
				"author_id", authorID,
				"error", err)
		} else {
			metrics.ScoreSubmissions.WithLabelValues("submitted").Inc()
		}
	}

	decision := s.detector.Evaluate(previous, newScore)
	if decision.Significant {
		// One attempt per cycle; a failed send is not retried.
		if err := s.notifier.Send(ctx, authorID, scoreChangeMessage(decision.Delta)); err != nil {
			metrics.NotificationsSent.WithLabelValues("failed").Inc()
			slog.WarnContext(ctx, "Notification failed",
				"author_id", authorID,
				"delta", decision.Delta,
				"error", err)
		} else {
			metrics.NotificationsSent.WithLabelValues("sent").Inc()
			slog.InfoContext(ctx, "Notification sent",
				"author_id", authorID,
				"delta", decision.Delta)
		}
	}

	return nil
}
