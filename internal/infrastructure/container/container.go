package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/config"
	"github.com/swappi-app/swappi-backend/internal/delivery/http"
	"github.com/swappi-app/swappi-backend/internal/delivery/http/handler"
	"github.com/swappi-app/swappi-backend/internal/delivery/http/middleware"
	"github.com/swappi-app/swappi-backend/internal/infrastructure/database"
	"github.com/swappi-app/swappi-backend/internal/infrastructure/gemini"
	"github.com/swappi-app/swappi-backend/internal/infrastructure/server"
	"github.com/swappi-app/swappi-backend/internal/media"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
	"github.com/swappi-app/swappi-backend/internal/repository/blob"
	"github.com/swappi-app/swappi-backend/internal/repository/cache"
	"github.com/swappi-app/swappi-backend/internal/repository/memory"
	"github.com/swappi-app/swappi-backend/internal/repository/mongo"
	"github.com/swappi-app/swappi-backend/internal/repository/postgres"
	"github.com/swappi-app/swappi-backend/internal/usecase/auth"
	"github.com/swappi-app/swappi-backend/internal/usecase/feed"
	"github.com/swappi-app/swappi-backend/internal/usecase/match"
	"github.com/swappi-app/swappi-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	DB       *sqlx.DB
	Mongo    *mongodriver.Client
	Redis    *redis.Client
	Gemini   *gemini.GeminiClient
	Engine   *gin.Engine
	Server   *server.Server
}

type repositories struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	sessions repository.SessionRepository
}

// NewContainer wires the application for cfg. On error every connection opened so far is closed.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (c *Container, err error) {
	c = &Container{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(c.Registry)

	repos, err := c.initRepositories(ctx, m)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		c.Redis, err = database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		repos.profiles = cache.NewProfileCache(repos.profiles, c.Redis, cfg.Redis.CandidateTTL, log)
		repos.sessions = cache.NewSessionStore(c.Redis)
	}

	store, mediaDir, err := newBlobStore(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	var explainer match.Explainer
	if cfg.GeminiAPIKey != "" {
		c.Gemini, err = gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			// match explanations are optional
			log.Warn("gemini disabled", zap.Error(err))
			err = nil
		} else {
			explainer = c.Gemini
		}
	}

	authUseCase := auth.NewAuthUseCase(
		repos.users,
		repos.profiles,
		repos.sessions,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryMin)*time.Minute,
		log,
	)
	profileUseCase := profile.NewProfileUseCase(
		repos.profiles,
		media.NewEncoder(cfg.Media.JPEGQuality, cfg.Media.MaxPixels),
		media.NewUploader(store, log, m),
		log,
		m,
	)
	feedUseCase := feed.NewFeedUseCase(repos.profiles)
	matchUseCase := match.NewMatchUseCase(repos.matches, repos.profiles, explainer, log, m)

	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewFeedHandler(feedUseCase),
		handler.NewMatchHandler(matchUseCase),
		middleware.NewAuthMiddleware(authUseCase),
		http.RouterOptions{
			Gatherer:      c.Registry,
			Logger:        log,
			MediaDir:      mediaDir,
			MaxUploadSize: cfg.Media.MaxUploadSize,
		},
	)
	c.Engine, err = router.Setup()
	if err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	c.Server = server.NewServer(&cfg.Server, c.Engine, log)

	log.Info("application initialized",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("storage", cfg.Storage.Type),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("gemini", explainer != nil),
	)
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context, m *metrics.Metrics) (*repositories, error) {
	cfg := c.Config
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &repositories{
			users:    postgres.NewUserRepository(db),
			profiles: postgres.NewProfileRepository(db, c.Logger, m),
			matches:  postgres.NewMatchRepository(db),
			sessions: memory.NewSessionRepository(),
		}, nil

	case config.DriverMongo:
		client, db, err := database.NewMongoDatabase(ctx, &cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
		}
		c.Mongo = client
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		return &repositories{
			users:    mongo.NewUserRepository(db),
			profiles: mongo.NewProfileRepository(db, c.Logger, m),
			matches:  mongo.NewMatchRepository(db),
			sessions: memory.NewSessionRepository(),
		}, nil

	case config.DriverMemory:
		return &repositories{
			users:    memory.NewUserRepository(),
			profiles: memory.NewProfileRepository(),
			matches:  memory.NewMatchRepository(),
			sessions: memory.NewSessionRepository(),
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

func newBlobStore(ctx context.Context, cfg *config.StorageConfig) (repository.BlobStore, string, error) {
	switch cfg.Type {
	case config.StorageS3:
		store, err := blob.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return store, "", nil
	case config.StorageLocal:
		store, err := blob.NewLocalStore(cfg.Path, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return store, store.BasePath(), nil
	case config.StorageMemory:
		return memory.NewBlobStore(), "", nil
	}
	return nil, "", fmt.Errorf("unknown storage type %q", cfg.Type)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.Logger.Warn("error closing mongodb", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
