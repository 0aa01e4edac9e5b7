package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/uederson-ferreira/social-fi-credit/internal/chain"
	"github.com/uederson-ferreira/social-fi-credit/internal/config"
	"github.com/uederson-ferreira/social-fi-credit/internal/database"
	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	"github.com/uederson-ferreira/social-fi-credit/internal/logging"
	"github.com/uederson-ferreira/social-fi-credit/internal/monitor"
	"github.com/uederson-ferreira/social-fi-credit/internal/redis"
	"github.com/uederson-ferreira/social-fi-credit/internal/score"
	"github.com/uederson-ferreira/social-fi-credit/internal/sentiment"
	"github.com/uederson-ferreira/social-fi-credit/internal/server"
	"github.com/uederson-ferreira/social-fi-credit/internal/store"
	"github.com/uederson-ferreira/social-fi-credit/internal/twitter"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

type storeSetup struct {
	store   domain.ScoreStore
	pinger  server.Pinger
	cleanup func()
}

func setupStore(cfg *config.Config) storeSetup {
	switch cfg.ScoreStore {
	case config.StoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		return storeSetup{
			store:   redis.NewScoreStore(client),
			pinger:  redisPinger{client: client},
			cleanup: func() { _ = client.Close() },
		}

	case config.StorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		return storeSetup{
			store:   database.NewScoreRepo(pool),
			pinger:  pool,
			cleanup: pool.Close,
		}

	default:
		return storeSetup{store: store.NewMemory(), cleanup: func() {}}
	}
}

// redisPinger adapts go-redis's Ping to the server's health check.
type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func calculatorConfig(cfg *config.Config) score.CalculatorConfig {
	return score.CalculatorConfig{
		Weights: score.Weights{
			Mention:   cfg.WeightMention,
			Technical: cfg.WeightTechnical,
			Resource:  cfg.WeightResource,
			Like:      cfg.WeightLike,
			Retweet:   cfg.WeightRetweet,
			Follower:  cfg.WeightFollower,
		},
		Decay: score.DecaySchedule{
			FreshAge:     time.Duration(cfg.DecayFreshDays) * 24 * time.Hour,
			RecentAge:    time.Duration(cfg.DecayRecentDays) * 24 * time.Hour,
			StaleAge:     time.Duration(cfg.DecayStaleDays) * 24 * time.Hour,
			RecentFactor: cfg.DecayRecentFactor,
			StaleFactor:  cfg.DecayStaleFactor,
			OldFactor:    cfg.DecayOldFactor,
		},
		ProjectKeywords:     cfg.ProjectKeywordList(),
		TechnicalIndicators: cfg.TechnicalIndicatorList(),
		ResourceIndicators:  cfg.ResourceIndicatorList(),
		PositivityThreshold: cfg.PositivityThreshold,
		TechnicalMinLength:  cfg.TechnicalMinLength,
	}
}

func runGracefulShutdown(srv *server.Server, cancelMonitor context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		cancelMonitor()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	storage := setupStore(cfg)
	defer storage.cleanup()

	twitterClient := twitter.NewClient(cfg.TwitterBearerToken,
		twitter.WithBaseURL(cfg.TwitterAPIBaseURL))

	// On-chain submission is optional: without a contract address the
	// engine runs off-chain only.
	var (
		sink     domain.ReputationSink
		profiles domain.ProfileLookup = twitterClient
	)
	if cfg.ReputationScoreContract != "" {
		chainClient := chain.NewClient(cfg.GatewayURL, cfg.ChainID)
		sink = chain.NewSink(chainClient, cfg.ReputationScoreContract, cfg.ReputationScoreOwnerAddr)
		profiles = monitor.NewEnrichedLookup(twitterClient, chain.NewWalletResolver(chainClient, cfg.ReputationScoreContract))
	}

	monitorSvc := monitor.NewService(monitor.Options{
		Feed:       twitterClient,
		Profiles:   profiles,
		Calculator: score.NewCalculator(sentiment.New(), calculatorConfig(cfg)),
		Detector:   score.Detector{SignificanceRatio: cfg.SignificanceRatio},
		Store:      storage.store,
		Sink:       sink,
		Notifier:   twitterClient,
		Clock:      clock,

		Hashtag:        cfg.Hashtag,
		PollInterval:   cfg.PollInterval,
		LookbackBuffer: cfg.LookbackBuffer,
		CheckInterval:  cfg.CheckInterval,
		ErrorBackoff:   cfg.ErrorBackoff,
	})

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	defer cancelMonitor()

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		if err := monitorSvc.Run(monitorCtx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Monitor stopped unexpectedly", "error", err)
		}
	}()

	srv := server.NewServer(cfg, storage.store, storage.pinger)

	done := runGracefulShutdown(srv, cancelMonitor)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	<-monitorDone
}
