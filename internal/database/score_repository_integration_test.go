package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

var testDatabaseURL string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("scores"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	testDatabaseURL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestRepo(t *testing.T) *ScoreRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, testDatabaseURL)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool))

	_, err = pool.Exec(ctx, "TRUNCATE score_records")
	require.NoError(t, err)

	t.Cleanup(pool.Close)
	return NewScoreRepo(pool)
}

func TestScoreRepo_GetMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrScoreNotFound)
}

func TestScoreRepo_UpsertReturnsPrevious(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	computedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	previous, err := repo.Upsert(ctx, "alice", 100, computedAt)
	require.NoError(t, err)
	assert.Equal(t, 0, previous)

	previous, err = repo.Upsert(ctx, "alice", 120, computedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 100, previous)

	record, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 120, record.Score)
	assert.Equal(t, 100, record.PreviousScore)
	assert.True(t, record.ComputedAt.Equal(computedAt.Add(time.Minute)))
}

func TestScoreRepo_ListOrderedByAuthor(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, author := range []string{"charlie", "alice", "bob"} {
		_, err := repo.Upsert(ctx, author, 10, now)
		require.NoError(t, err)
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "alice", records[0].AuthorID)
	assert.Equal(t, "bob", records[1].AuthorID)
	assert.Equal(t, "charlie", records[2].AuthorID)
}
