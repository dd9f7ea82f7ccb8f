package container

import (
	"fmt"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/config"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/delivery/http"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/delivery/http/handler"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/delivery/http/middleware"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/infrastructure/database"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/infrastructure/logger"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/infrastructure/notify"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/infrastructure/server"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository/postgres"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/feed"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/match"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/profile"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/swipe"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(&cfg.Logging, cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Repositories
	queryTimeout := cfg.Database.QueryTimeout
	profileRepo := postgres.NewProfileRepository(db, queryTimeout)
	prefRepo := postgres.NewPreferenceRepository(db, queryTimeout)
	matchRepo := postgres.NewMatchRepository(db, queryTimeout)
	messageRepo := postgres.NewMessageRepository(db, queryTimeout)

	notifier := notify.NewRedisNotifier(redisClient)

	// Use cases
	profileUseCase := profile.NewProfileUseCase(profileRepo)
	swipeUseCase := swipe.NewSwipeUseCase(
		prefRepo,
		matchRepo,
		profileRepo,
		notifier,
		log,
		cfg.Matching.AllowDecisionOverride,
	)
	feedUseCase := feed.NewFeedUseCase(
		profileRepo,
		prefRepo,
		matchRepo,
		log,
		cfg.Matching.FeedLimit,
	)
	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		profileRepo,
		messageRepo,
		log,
	)

	// Handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	router := http.NewRouter(
		profileHandler,
		swipeHandler,
		feedHandler,
		matchHandler,
		authMiddleware,
		log,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Logger.Sync()
	return nil
}
