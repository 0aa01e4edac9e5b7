package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

func validConfig() *Config {
	return &Config{
		TwitterBearerToken:  "token",
		Hashtag:             "ElizaOS",
		PollInterval:        15 * time.Minute,
		LookbackBuffer:      time.Hour,
		CheckInterval:       time.Minute,
		ErrorBackoff:        5 * time.Minute,
		WeightMention:       5,
		WeightTechnical:     10,
		WeightResource:      7,
		WeightLike:          1,
		WeightRetweet:       3,
		WeightFollower:      0.1,
		DecayFreshDays:      1,
		DecayRecentDays:     7,
		DecayStaleDays:      30,
		DecayRecentFactor:   0.8,
		DecayStaleFactor:    0.5,
		DecayOldFactor:      0.2,
		PositivityThreshold: 0.2,
		SignificanceRatio:   0.1,
		TechnicalMinLength:  100,
		ScoreStore:          StoreMemory,
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidate_MissingBearerToken(t *testing.T) {
	cfg := validConfig()
	cfg.TwitterBearerToken = ""
	assert.ErrorContains(t, validate(cfg), "TWITTER_BEARER_TOKEN")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.WeightRetweet = -3
	assert.ErrorContains(t, validate(cfg), "WEIGHT_RETWEET")
}

func TestValidate_DecayFactorsMustNotIncrease(t *testing.T) {
	cfg := validConfig()
	cfg.DecayStaleFactor = 0.9 // above the recent factor
	assert.ErrorContains(t, validate(cfg), "non-increasing")
}

func TestValidate_DecayThresholdOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.DecayRecentDays = 0
	assert.ErrorContains(t, validate(cfg), "increasing")
}

func TestValidate_StoreBackends(t *testing.T) {
	cfg := validConfig()
	cfg.ScoreStore = StoreRedis
	assert.ErrorContains(t, validate(cfg), "REDIS_URL")

	cfg.RedisURL = "redis://localhost:6379"
	assert.NoError(t, validate(cfg))

	cfg.ScoreStore = StorePostgres
	assert.ErrorContains(t, validate(cfg), "DATABASE_URL")

	cfg.DatabaseURL = "postgres://localhost/scores"
	assert.NoError(t, validate(cfg))

	cfg.ScoreStore = "cassandra"
	assert.ErrorContains(t, validate(cfg), "SCORE_STORE")
}

func TestValidate_ChainContractNeedsOwner(t *testing.T) {
	cfg := validConfig()
	cfg.ReputationScoreContract = "erd1qqqqqqqqqqqqqpgq"
	assert.ErrorContains(t, validate(cfg), "REPUTATION_SCORE_OWNER")

	cfg.ReputationScoreOwnerAddr = "erd1owner"
	assert.NoError(t, validate(cfg))
}

func TestLoad_WrapsStartupFailures(t *testing.T) {
	t.Setenv("TWITTER_BEARER_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeStartup))
	assert.ErrorContains(t, err, "TWITTER_BEARER_TOKEN")
}

func TestKeywordLists(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectKeywords = "Social-Fi, CREDIT ,, elizaos"
	assert.Equal(t, []string{"social-fi", "credit", "elizaos"}, cfg.ProjectKeywordList())
}
