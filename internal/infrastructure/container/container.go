package container

import (
	"fmt"

	"github.com/DylanL0ng/student-housing-sub001/internal/config"
	"github.com/DylanL0ng/student-housing-sub001/internal/delivery/http"
	"github.com/DylanL0ng/student-housing-sub001/internal/delivery/http/handler"
	"github.com/DylanL0ng/student-housing-sub001/internal/delivery/http/middleware"
	"github.com/DylanL0ng/student-housing-sub001/internal/infrastructure/database"
	"github.com/DylanL0ng/student-housing-sub001/internal/infrastructure/server"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository/postgres"
	redisrepo "github.com/DylanL0ng/student-housing-sub001/internal/repository/redis"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/connection"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/discovery"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/interaction"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/profile"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/session"
	"github.com/DylanL0ng/student-housing-sub001/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	DB          *sqlx.DB
	Redis       *redis.Client
	Server      *server.Server
	Log         *zap.Logger
	FilterStore repository.FilterStore
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
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
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	filterStore := redisrepo.NewFilterStore(redisClient)

	// Use cases
	verifier := session.NewVerifier(cfg.Session.Secret)
	discoveryUseCase := discovery.NewDiscoveryUseCase(profileRepo)
	interactionUseCase := interaction.NewInteractionUseCase(interactionRepo, profileRepo, log)
	connectionUseCase := connection.NewConnectionUseCase(connectionRepo, profileRepo, conversationRepo)
	profileUseCase := profile.NewProfileUseCase(profileRepo, userRepo, interactionRepo)

	// Handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase, log)
	interactionHandler := handler.NewInteractionHandler(interactionUseCase, log)
	connectionHandler := handler.NewConnectionHandler(connectionUseCase, log)
	profileHandler := handler.NewProfileHandler(profileUseCase, log)

	authMiddleware := middleware.NewAuthMiddleware(verifier)

	router := http.NewRouter(
		discoveryHandler,
		interactionHandler,
		connectionHandler,
		profileHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Server:      srv,
		Log:         log,
		FilterStore: filterStore,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Log.Sync()
	return nil
}
