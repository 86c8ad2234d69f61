package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"fitlink-backend/internal/config"
	infraCache "fitlink-backend/internal/infrastructure/cache"
	"fitlink-backend/internal/infrastructure/database"
	"fitlink-backend/internal/infrastructure/storage"
	"fitlink-backend/pkg/cache"
	"fitlink-backend/pkg/jwt"

	appHandler "fitlink-backend/internal/domains/application/handler"
	appRepo "fitlink-backend/internal/domains/application/repository"
	appService "fitlink-backend/internal/domains/application/service"
	chatHandler "fitlink-backend/internal/domains/chat/handler"
	chatRepo "fitlink-backend/internal/domains/chat/repository"
	chatService "fitlink-backend/internal/domains/chat/service"
	modHandler "fitlink-backend/internal/domains/moderation/handler"
	modService "fitlink-backend/internal/domains/moderation/service"
	notifHandler "fitlink-backend/internal/domains/notification/handler"
	notifRepo "fitlink-backend/internal/domains/notification/repository"
	notifService "fitlink-backend/internal/domains/notification/service"
	postingHandler "fitlink-backend/internal/domains/posting/handler"
	postingRepo "fitlink-backend/internal/domains/posting/repository"
	postingService "fitlink-backend/internal/domains/posting/service"
	profileHandler "fitlink-backend/internal/domains/profile/handler"
	profileRepo "fitlink-backend/internal/domains/profile/repository"
	profileService "fitlink-backend/internal/domains/profile/service"
	"fitlink-backend/internal/domains/user"
	userHandler "fitlink-backend/internal/domains/user/handler"
	userRepo "fitlink-backend/internal/domains/user/repository"
	userService "fitlink-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application; it is the root
// of the dependency graph. Everything in it is a singleton.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	Processor   *storage.ImageProcessor
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	UserRepo         user.Repository
	ProfileRepo      profileRepo.ProfileRepository
	PostingRepo      postingRepo.PostingRepository
	ApplicationRepo  appRepo.ApplicationRepository
	ConversationRepo chatRepo.ConversationRepository
	NotificationRepo notifRepo.NotificationRepository

	// ========================================
	// SERVICE LAYER
	// ========================================

	UserService         user.Service
	ProfileService      profileService.ProfileService
	ModerationService   modService.ModerationService
	PostingService      postingService.PostingService
	ApplicationService  appService.ApplicationService
	ChatService         chatService.ChatService
	NotificationService notifService.NotificationService

	// ========================================
	// HANDLER LAYER
	// ========================================

	UserHandler         *userHandler.UserHandler
	ProfileHandler      *profileHandler.ProfileHandler
	ModerationHandler   *modHandler.ModerationHandler
	PostingHandler      *postingHandler.PostingHandler
	ApplicationHandler  *appHandler.ApplicationHandler
	ChatHandler         *chatHandler.ChatHandler
	NotificationHandler *notifHandler.NotificationHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("config loaded (environment: %s)", cfg.App.Environment)

	// STEP 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("database connected")

	// STEP 3: cache
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Cache failures degrade performance, not correctness.
		log.Printf("redis connection failed (non-critical): %v", err)
	} else {
		log.Println("redis connected")
	}
	c.Cache = redisCache

	// STEP 4: object storage
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	c.Processor = storage.NewImageProcessor()

	// STEP 5: auth and background tasks
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresProfileRepository(pool)
	c.PostingRepo = postingRepo.NewPostgresPostingRepository(pool)
	c.ApplicationRepo = appRepo.NewPostgresApplicationRepository(pool)
	c.ConversationRepo = chatRepo.NewPostgresConversationRepository(pool)
	c.NotificationRepo = notifRepo.NewPostgresNotificationRepository(pool)
}

func (c *Container) initServices() {
	c.ProfileService = profileService.NewProfileService(
		c.ProfileRepo,
		c.Storage,
		c.Processor,
		c.Cache,
	)

	// Registration creates the initial draft profile through the
	// profile service.
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.ProfileService,
		c.JWTManager,
	)

	c.ModerationService = modService.NewModerationService(
		c.ProfileRepo,
		c.AsynqClient,
		c.Cache,
	)

	c.PostingService = postingService.NewPostingService(
		c.PostingRepo,
		c.ProfileRepo,
		c.Cache,
	)

	c.ApplicationService = appService.NewApplicationService(
		c.ApplicationRepo,
		c.PostingRepo,
		c.ProfileRepo,
		c.AsynqClient,
	)

	c.ChatService = chatService.NewChatService(
		c.ConversationRepo,
		c.ProfileRepo,
		c.ApplicationRepo,
		c.AsynqClient,
	)

	c.NotificationService = notifService.NewNotificationService(c.NotificationRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.ModerationHandler = modHandler.NewModerationHandler(c.ModerationService)
	c.PostingHandler = postingHandler.NewPostingHandler(c.PostingService)
	c.ApplicationHandler = appHandler.NewApplicationHandler(c.ApplicationService)
	c.ChatHandler = chatHandler.NewChatHandler(c.ChatService)
	c.NotificationHandler = notifHandler.NewNotificationHandler(c.NotificationService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases container resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("failed to close redis: %v", err)
			}
		}
	}
}
