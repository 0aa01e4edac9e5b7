// Package store provides the in-memory score store, the default backend
// for single-instance deployments without durability requirements.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	"github.com/uederson-ferreira/social-fi-credit/internal/metrics"
)

// Memory is a map-backed domain.ScoreStore. The monitor cycle loop is the
// only writer; the mutex exists so the read-only API can list scores while
// a cycle is running.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*domain.ScoreRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*domain.ScoreRecord)}
}

func (m *Memory) Get(_ context.Context, authorID string) (*domain.ScoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[authorID]
	if !ok {
		metrics.StoreOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, domain.ErrScoreNotFound
	}

	metrics.StoreOpsTotal.WithLabelValues("get", "success").Inc()
	copied := *record
	return &copied, nil
}

func (m *Memory) Upsert(_ context.Context, authorID string, score int, computedAt time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := 0
	if record, ok := m.records[authorID]; ok {
		previous = record.Score
	}

	m.records[authorID] = &domain.ScoreRecord{
		AuthorID:      authorID,
		Score:         score,
		PreviousScore: previous,
		ComputedAt:    computedAt,
	}

	metrics.StoreOpsTotal.WithLabelValues("upsert", "success").Inc()
	return previous, nil
}

func (m *Memory) List(_ context.Context) ([]domain.ScoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]domain.ScoreRecord, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, *record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].AuthorID < records[j].AuthorID })
	metrics.StoreOpsTotal.WithLabelValues("list", "success").Inc()
	return records, nil
}
