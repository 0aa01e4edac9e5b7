package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

// Store backend selectors for SCORE_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// Twitter API v2 access. The bearer token is the only hard credential
	// requirement; everything else has a workable default.
	TwitterBearerToken string `env:"TWITTER_BEARER_TOKEN"`
	TwitterAPIBaseURL  string `env:"TWITTER_API_BASE_URL" default:"https://api.twitter.com"`

	Hashtag        string        `env:"HASHTAG" default:"ElizaOS"`
	PollInterval   time.Duration `env:"POLL_INTERVAL" default:"15m"`
	LookbackBuffer time.Duration `env:"LOOKBACK_BUFFER" default:"1h"`
	CheckInterval  time.Duration `env:"CHECK_INTERVAL" default:"1m"`
	ErrorBackoff   time.Duration `env:"ERROR_BACKOFF" default:"5m"`

	// Score weight table. All weights must be non-negative: the engine's
	// non-negativity guarantee comes from configuration, not clamping.
	WeightMention   float64 `env:"WEIGHT_MENTION" default:"5"`
	WeightTechnical float64 `env:"WEIGHT_TECHNICAL" default:"10"`
	WeightResource  float64 `env:"WEIGHT_RESOURCE" default:"7"`
	WeightLike      float64 `env:"WEIGHT_LIKE" default:"1"`
	WeightRetweet   float64 `env:"WEIGHT_RETWEET" default:"3"`
	WeightFollower  float64 `env:"WEIGHT_FOLLOWER" default:"0.1"`

	// Decay buckets: interactions up to FreshDays old keep full weight,
	// then RecentFactor up to RecentDays, StaleFactor up to StaleDays,
	// OldFactor beyond that. Factors must be non-increasing.
	DecayFreshDays    int     `env:"DECAY_FRESH_DAYS" default:"1"`
	DecayRecentDays   int     `env:"DECAY_RECENT_DAYS" default:"7"`
	DecayStaleDays    int     `env:"DECAY_STALE_DAYS" default:"30"`
	DecayRecentFactor float64 `env:"DECAY_RECENT_FACTOR" default:"0.8"`
	DecayStaleFactor  float64 `env:"DECAY_STALE_FACTOR" default:"0.5"`
	DecayOldFactor    float64 `env:"DECAY_OLD_FACTOR" default:"0.2"`

	PositivityThreshold float64 `env:"POSITIVITY_THRESHOLD" default:"0.2"`
	SignificanceRatio   float64 `env:"NOTIFY_SIGNIFICANCE_RATIO" default:"0.1"`
	TechnicalMinLength  int     `env:"TECHNICAL_MIN_LENGTH" default:"100"`

	ProjectKeywords     string `env:"PROJECT_KEYWORDS" default:"social-fi,credit,social-ficredit,elizaos"`
	TechnicalIndicators string `env:"TECHNICAL_INDICATORS" default:"how to,problem,error,issue,fix,solution,code,contract"`
	ResourceIndicators  string `env:"RESOURCE_INDICATORS" default:"guide,tutorial,documentation,learn,http,https,github"`

	// Score persistence backend: memory (default), redis, or postgres.
	ScoreStore  string `env:"SCORE_STORE" default:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	// MultiversX gateway for on-chain score submission. Submission is
	// disabled when the contract address is empty.
	ChainID                  string `env:"CHAIN_ID" default:"D"`
	GatewayURL               string `env:"GATEWAY_URL" default:"https://devnet-gateway.multiversx.com"`
	ReputationScoreContract  string `env:"CONTRACTS_REPUTATION_SCORE"`
	ReputationScoreOwnerAddr string `env:"REPUTATION_SCORE_OWNER"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, apperrors.StartupError("failed to load environment variables", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, apperrors.StartupError("invalid configuration", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.TwitterBearerToken == "" {
		return fmt.Errorf("TWITTER_BEARER_TOKEN is required")
	}
	if cfg.Hashtag == "" {
		return fmt.Errorf("HASHTAG is required")
	}

	if cfg.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	if cfg.LookbackBuffer < 0 {
		return fmt.Errorf("LOOKBACK_BUFFER must not be negative, got %s", cfg.LookbackBuffer)
	}
	if cfg.CheckInterval <= 0 {
		return fmt.Errorf("CHECK_INTERVAL must be positive, got %s", cfg.CheckInterval)
	}
	if cfg.ErrorBackoff < cfg.CheckInterval {
		return fmt.Errorf("ERROR_BACKOFF must be at least CHECK_INTERVAL (%s), got %s", cfg.CheckInterval, cfg.ErrorBackoff)
	}

	weights := map[string]float64{
		"WEIGHT_MENTION":   cfg.WeightMention,
		"WEIGHT_TECHNICAL": cfg.WeightTechnical,
		"WEIGHT_RESOURCE":  cfg.WeightResource,
		"WEIGHT_LIKE":      cfg.WeightLike,
		"WEIGHT_RETWEET":   cfg.WeightRetweet,
		"WEIGHT_FOLLOWER":  cfg.WeightFollower,
	}
	for name, value := range weights {
		if value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", name, value)
		}
	}

	if cfg.DecayFreshDays < 0 || cfg.DecayRecentDays < cfg.DecayFreshDays || cfg.DecayStaleDays < cfg.DecayRecentDays {
		return fmt.Errorf("decay bucket thresholds must be non-negative and increasing")
	}
	factors := []float64{1.0, cfg.DecayRecentFactor, cfg.DecayStaleFactor, cfg.DecayOldFactor}
	for i := 1; i < len(factors); i++ {
		if factors[i] < 0 {
			return fmt.Errorf("decay factors must not be negative")
		}
		if factors[i] > factors[i-1] {
			return fmt.Errorf("decay factors must be non-increasing with age")
		}
	}

	if cfg.PositivityThreshold < -1 || cfg.PositivityThreshold > 1 {
		return fmt.Errorf("POSITIVITY_THRESHOLD must be within [-1, 1], got %g", cfg.PositivityThreshold)
	}
	if cfg.SignificanceRatio <= 0 {
		return fmt.Errorf("NOTIFY_SIGNIFICANCE_RATIO must be positive, got %g", cfg.SignificanceRatio)
	}

	switch cfg.ScoreStore {
	case StoreMemory:
	case StoreRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SCORE_STORE=redis")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SCORE_STORE=postgres")
		}
	default:
		return fmt.Errorf("SCORE_STORE must be one of memory, redis, postgres; got %q", cfg.ScoreStore)
	}

	if cfg.ReputationScoreContract != "" && cfg.ReputationScoreOwnerAddr == "" {
		return fmt.Errorf("REPUTATION_SCORE_OWNER is required when CONTRACTS_REPUTATION_SCORE is set")
	}

	return nil
}

// ProjectKeywordList returns the configured project keywords, lowercased.
func (c *Config) ProjectKeywordList() []string {
	return splitList(c.ProjectKeywords)
}

// TechnicalIndicatorList returns the technical-support indicator terms.
func (c *Config) TechnicalIndicatorList() []string {
	return splitList(c.TechnicalIndicators)
}

// ResourceIndicatorList returns the resource/tutorial indicator terms.
func (c *Config) ResourceIndicatorList() []string {
	return splitList(c.ResourceIndicators)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
