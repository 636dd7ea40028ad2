package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/auth"
	"github.com/revisitly/revisitly/internal/config"
	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/form"
	"github.com/revisitly/revisitly/internal/httpserver"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/redis"
	"github.com/revisitly/revisitly/internal/scheduler"
	"github.com/revisitly/revisitly/internal/session"
	redisstore "github.com/revisitly/revisitly/internal/store/redis"
	"github.com/revisitly/revisitly/internal/timecodec"
	"github.com/revisitly/revisitly/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	gate         *session.Gate
	view         *dashboard.View
	refresher    *scheduler.ListRefresher
	importRunner *scheduler.ImportRunner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)

	// Wall-clock conversion uses the configured zone, falling back to
	// the process zone when unset.
	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			loggerClient.Errorf("Invalid timezone %q: %v", cfg.Timezone, err)
			os.Exit(1)
		}
	}
	codec := timecodec.New(loc)

	// The provider reports inactive when no refresh token is
	// configured, so it is always safe to construct.
	provider := auth.NewOAuthProvider(auth.OAuthOptions{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		TokenURL:     cfg.OAuthTokenURL,
		RevokeURL:    cfg.OAuthRevokeURL,
		RefreshToken: cfg.OAuthRefreshToken,
		Scopes:       cfg.OAuthScopes,
	}, loggerClient)

	tokens := auth.NewTokenProvider(provider, store, loggerClient)
	client := api.New(cfg.APIBaseURL, cfg.APITimeout, tokens, loggerClient)

	gate := session.New(provider, store, loggerClient)
	gate.Init(context.Background())

	view := dashboard.NewView()

	// Seed the dashboard from the persisted snapshot before the first
	// network refresh lands.
	syncer := scheduler.NewSnapshotSyncer(store, view, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync snapshot on startup, waiting for first refresh",
			logger.Error(err))
	}

	controller := form.NewController(client, codec, loggerClient)

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewListRefresher(
		client,
		view,
		store,
		gate,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	var importRunner *scheduler.ImportRunner
	var importTrigger chan struct{}
	if cfg.ImportFile != "" {
		loggerClient.Info("import file configured, initializing import runner",
			logger.String("file", cfg.ImportFile))
		importTrigger = make(chan struct{}, 1)
		importRunner = scheduler.NewImportRunner(
			cfg.ImportFile,
			controller,
			loggerClient,
			importTrigger,
		)
	} else {
		loggerClient.Info("import file not configured, import disabled")
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Gate:           gate,
		Client:         client,
		Controller:     controller,
		View:           view,
		Snapshots:      store,
		Codec:          codec,
		RedisClient:    redisClient,
		RefreshTrigger: refreshTrigger,
		ImportTrigger:  importTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		gate:         gate,
		view:         view,
		refresher:    refresher,
		importRunner: importRunner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Revisitly v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start list refresher: %w", err)
	}
	a.logger.Info("list refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	if a.importRunner != nil {
		if err := a.importRunner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start import runner: %w", err)
		}
		a.logger.Info("import runner started, waiting for manual triggers")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	if a.importRunner != nil {
		a.importRunner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Revisitly stopped cleanly")
	return nil
}
