package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	"github.com/uederson-ferreira/social-fi-credit/internal/metrics"
)

// ScoreRepo implements domain.ScoreStore backed by PostgreSQL. Records are
// never expired; pruning inactive authors is left to operators.
type ScoreRepo struct {
	pool *pgxpool.Pool
}

func NewScoreRepo(pool *pgxpool.Pool) *ScoreRepo {
	return &ScoreRepo{pool: pool}
}

func (r *ScoreRepo) Get(ctx context.Context, authorID string) (*domain.ScoreRecord, error) {
	var record domain.ScoreRecord
	err := r.pool.QueryRow(ctx, `
		SELECT author_id, score, previous_score, computed_at
		FROM score_records
		WHERE author_id = $1
	`, authorID).Scan(&record.AuthorID, &record.Score, &record.PreviousScore, &record.ComputedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		metrics.StoreOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, domain.ErrScoreNotFound
	}
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get score record: %w", err)
	}

	metrics.StoreOpsTotal.WithLabelValues("get", "success").Inc()
	return &record, nil
}

// Upsert captures the prior score atomically: the conflict branch copies
// the current score into previous_score before overwriting it.
func (r *ScoreRepo) Upsert(ctx context.Context, authorID string, score int, computedAt time.Time) (int, error) {
	var previous int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO score_records (author_id, score, previous_score, computed_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (author_id) DO UPDATE SET
			previous_score = score_records.score,
			score = EXCLUDED.score,
			computed_at = EXCLUDED.computed_at
		RETURNING previous_score
	`, authorID, score, computedAt).Scan(&previous)

	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("upsert", "error").Inc()
		return 0, fmt.Errorf("failed to upsert score record: %w", err)
	}

	metrics.StoreOpsTotal.WithLabelValues("upsert", "success").Inc()
	return previous, nil
}

func (r *ScoreRepo) List(ctx context.Context) ([]domain.ScoreRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT author_id, score, previous_score, computed_at
		FROM score_records
		ORDER BY author_id
	`)
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	defer rows.Close()

	var records []domain.ScoreRecord
	for rows.Next() {
		var record domain.ScoreRecord
		if err := rows.Scan(&record.AuthorID, &record.Score, &record.PreviousScore, &record.ComputedAt); err != nil {
			metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		metrics.StoreOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to iterate score records: %w", err)
	}

	metrics.StoreOpsTotal.WithLabelValues("list", "success").Inc()
	return records, nil
}
