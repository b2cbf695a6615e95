package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/mentorhub/internal/app/controllers"
	appMigrations "github.com/yigit/mentorhub/internal/app/migrations"
	appRepos "github.com/yigit/mentorhub/internal/app/repositories"
	appRoutes "github.com/yigit/mentorhub/internal/app/routes"
	appServices "github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/config"
	"github.com/yigit/mentorhub/internal/db"
	appMiddleware "github.com/yigit/mentorhub/internal/middleware"
	pkgAuth "github.com/yigit/mentorhub/internal/pkg/auth"
	"github.com/yigit/mentorhub/internal/pkg/cache"
	"github.com/yigit/mentorhub/internal/pkg/filestorage"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
	"github.com/yigit/mentorhub/internal/pkg/logger"
	"github.com/yigit/mentorhub/internal/pkg/websocket"
	"github.com/yigit/mentorhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	FileStorage *filestorage.LocalStorage
	Cache       *cache.Client
	JWTService  *pkgAuth.JWTService
	ForumHub    *websocket.Hub

	UserService       appServices.UserService
	AuthService       appServices.AuthService
	MentorshipService appServices.MentorshipService
	GroupService      appServices.GroupService
	MemberService     appServices.MemberService
	ForumService      appServices.ForumService
	StatsService      appServices.StatsService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the YAML config and the environment, then configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		admin := seed.AdminAccount{
			Email:    cfg.Seed.AdminEmail,
			Username: cfg.Seed.AdminUsername,
			Password: cfg.Seed.AdminPassword,
		}
		if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(dbPool), admin, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// SetupCache creates the Redis client. An unreachable Redis is logged and
// tolerated; the stats cache then always misses.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *cache.Client {
	client := cache.New(cache.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: helpers.ParseDuration(cfg.Redis.DialTimeout, 2*time.Second),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, continuing without cache")
	} else {
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redis *cache.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Cache: redis}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.PublicBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	revocations := cache.NewTokenRevocationStore(redis)

	deps.StatsService = appServices.NewStatsService(
		deps.Repos.UserRepository,
		deps.Repos.MentorshipRepository,
		deps.Repos.StatsRepository,
		redis,
		helpers.ParseDuration(cfg.Redis.StatsTTL, time.Minute),
		lgr.With().Str("component", "stats").Logger(),
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.FileStorage, deps.StatsService, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, revocations, lgr)
	deps.MentorshipService = appServices.NewMentorshipService(
		deps.Repos.MentorshipRepository,
		deps.Repos.UserRepository,
		deps.StatsService,
		lgr,
	)
	deps.GroupService = appServices.NewGroupService(deps.Repos.GroupRepository, deps.StatsService, lgr)
	deps.MemberService = appServices.NewMemberService(deps.Repos.GroupMemberRepository, lgr)
	deps.ForumHub = websocket.NewHub(lgr.With().Str("component", "forum_feed").Logger())
	deps.ForumService = appServices.NewForumService(deps.Repos.ForumRepository, deps.StatsService, deps.ForumHub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, revocations, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		User:       appControllers.NewUserController(deps.UserService, lgr),
		Mentorship: appControllers.NewMentorshipController(deps.MentorshipService, lgr),
		Group:      appControllers.NewGroupController(deps.GroupService, deps.MemberService, lgr),
		Forum:      appControllers.NewForumController(deps.ForumService, lgr),
		ForumFeed:  websocket.NewHandler(deps.ForumHub, cfg.CORS.AllowedOrigin, lgr),
		Stats:      appControllers.NewStatsController(deps.StatsService),
		Health:     appControllers.NewHealthController(dbPool, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidation()

	router := gin.New()
	router.Use(
		appMiddleware.RequestLogger(lgr),
		gin.Recovery(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigin),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupStatic(router, cfg.Server.StoragePath)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
