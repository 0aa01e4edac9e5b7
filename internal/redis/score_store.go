package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	"github.com/uederson-ferreira/social-fi-credit/internal/metrics"
)

const scoreKeyPrefix = "score:"

// upsertScript writes the new score while returning the score that was
// current before the write, in one round trip. HGET on a missing key
// yields false, which Lua treats as "no previous score".
var upsertScript = redis.NewScript(`
local previous = redis.call('HGET', KEYS[1], 'score')
redis.call('HSET', KEYS[1],
    'score', ARGV[1],
    'previous_score', previous or '0',
    'computed_at', ARGV[2])
if previous then
    return tonumber(previous)
end
return 0
`)

// ScoreStore implements domain.ScoreStore on a redis hash per author.
// Records have no TTL: retention is unbounded by design.
type ScoreStore struct {
	client *redis.Client
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client}
}

func scoreKey(authorID string) string {
	return scoreKeyPrefix + authorID
}

func (s *ScoreStore) Get(ctx context.Context, authorID string) (*domain.ScoreRecord, error) {
	values, err := s.client.HGetAll(ctx, scoreKey(authorID)).Result()
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to read score record: %w", err)
	}
	if len(values) == 0 {
		metrics.StoreOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, domain.ErrScoreNotFound
	}

	record, err := recordFromHash(authorID, values)
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("get", "error").Inc()
		return nil, err
	}
	metrics.StoreOpsTotal.WithLabelValues("get", "success").Inc()
	return record, nil
}

func (s *ScoreStore) Upsert(ctx context.Context, authorID string, score int, computedAt time.Time) (int, error) {
	previous, err := upsertScript.Run(ctx, s.client,
		[]string{scoreKey(authorID)},
		score, computedAt.UTC().Unix(),
	).Int()
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("upsert", "error").Inc()
		return 0, fmt.Errorf("failed to upsert score record: %w", err)
	}

	metrics.StoreOpsTotal.WithLabelValues("upsert", "success").Inc()
	return previous, nil
}

func (s *ScoreStore) List(ctx context.Context) ([]domain.ScoreRecord, error) {
	var records []domain.ScoreRecord

	iter := s.client.Scan(ctx, 0, scoreKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		authorID := key[len(scoreKeyPrefix):]

		values, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
			return nil, fmt.Errorf("failed to read score record %q: %w", key, err)
		}
		if len(values) == 0 {
			continue
		}

		record, err := recordFromHash(authorID, values)
		if err != nil {
			metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
			return nil, err
		}
		records = append(records, *record)
	}
	if err := iter.Err(); err != nil {
		metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to scan score records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].AuthorID < records[j].AuthorID })
	metrics.StoreOpsTotal.WithLabelValues("list", "success").Inc()
	return records, nil
}

func recordFromHash(authorID string, values map[string]string) (*domain.ScoreRecord, error) {
	record := &domain.ScoreRecord{AuthorID: authorID}

	if _, err := fmt.Sscanf(values["score"], "%d", &record.Score); err != nil {
		return nil, fmt.Errorf("malformed score for author %s: %w", authorID, err)
	}
	if _, err := fmt.Sscanf(values["previous_score"], "%d", &record.PreviousScore); err != nil {
		return nil, fmt.Errorf("malformed previous score for author %s: %w", authorID, err)
	}

	var unix int64
	if _, err := fmt.Sscanf(values["computed_at"], "%d", &unix); err != nil {
		return nil, fmt.Errorf("malformed timestamp for author %s: %w", authorID, err)
	}
	record.ComputedAt = time.Unix(unix, 0).UTC()

	return record, nil
}
