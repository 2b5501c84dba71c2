package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/config"
	infraCache "kiosk-backend/internal/infrastructure/cache"
	"kiosk-backend/internal/infrastructure/database"
	"kiosk-backend/internal/infrastructure/email"
	"kiosk-backend/internal/infrastructure/queue"
	"kiosk-backend/internal/infrastructure/storage"
	pkgdb "kiosk-backend/pkg/database"
	"kiosk-backend/pkg/jwt"

	"kiosk-backend/internal/domains/user"
	userHandler "kiosk-backend/internal/domains/user/handler"
	userRepo "kiosk-backend/internal/domains/user/repository"
	userService "kiosk-backend/internal/domains/user/service"

	imageHandler "kiosk-backend/internal/domains/image/handler"
	imageRepo "kiosk-backend/internal/domains/image/repository"
	imageService "kiosk-backend/internal/domains/image/service"

	articleHandler "kiosk-backend/internal/domains/article/handler"
	articleRepo "kiosk-backend/internal/domains/article/repository"
	articleService "kiosk-backend/internal/domains/article/service"

	journalHandler "kiosk-backend/internal/domains/journal/handler"
	journalRepo "kiosk-backend/internal/domains/journal/repository"
	journalService "kiosk-backend/internal/domains/journal/service"

	purchaseHandler "kiosk-backend/internal/domains/purchase/handler"
	purchaseRepo "kiosk-backend/internal/domains/purchase/repository"
	purchaseService "kiosk-backend/internal/domains/purchase/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Cả cmd/api và cmd/worker dùng chung một container.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config       *config.Config
	DB           *database.PostgresDB
	Tx           pkgdb.TxManager
	Cache        *infraCache.RedisCache
	Storage      *storage.MinIOStorage
	JWTManager   *jwt.Manager
	AsynqClient  *queue.Client
	RedisOpt     asynq.RedisClientOpt
	EmailService email.EmailService

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     user.Repository
	ImageRepo    imageRepo.RepositoryInterface
	ArticleRepo  articleRepo.RepositoryInterface
	JournalRepo  journalRepo.RepositoryInterface
	PurchaseRepo purchaseRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     user.Service
	ImageService    imageService.ServiceInterface
	ArticleService  articleService.ServiceInterface
	JournalService  journalService.ServiceInterface
	PurchaseService purchaseService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	ImageHandler    *imageHandler.ImageHandler
	ArticleHandler  *articleHandler.ArticleHandler
	JournalHandler  *journalHandler.JournalHandler
	PurchaseHandler *purchaseHandler.PurchaseHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo dependency graph theo thứ tự:
// config → infrastructure → repositories → services → handlers.
// Migrations chạy trước khi repositories được dùng.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: DATABASE + MIGRATIONS
	// ========================================
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
	c.DB = db
	c.Tx = pkgdb.NewTxManager(db.Pool)

	if err := database.RunMigrations(dbConfig); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: CACHE, QUEUE, STORAGE, EMAIL
	// ========================================
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, "kiosk:")
	if err := c.Cache.Connect(ctx); err != nil {
		// Redis lỗi không chặn app: cache miss thì render lại
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	}

	c.RedisOpt = asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	c.AsynqClient = queue.NewClient(c.RedisOpt)

	objectStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = objectStorage

	c.EmailService = email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("env", cfg.App.Environment).Msg("🎉 DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.ImageRepo = imageRepo.NewPostgresRepository(pool)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool)
	c.JournalRepo = journalRepo.NewPostgresRepository(pool)
	c.PurchaseRepo = purchaseRepo.NewPostgresRepository(pool)
}

// initServices: purchase phải có trước article vì article hỏi quyền đọc
// qua PurchaseChecker.
func (c *Container) initServices() {
	cfg := c.Config

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	c.ImageService = imageService.NewImageService(
		c.ImageRepo,
		c.Storage,
		storage.NewImageProcessor(cfg.Image.MaxUploadBytes),
		imageService.Config{
			SweepBatchSize: cfg.Image.SweepBatchSize,
			StorageTimeout: cfg.MinIO.Timeout,
		},
	)

	c.PurchaseService = purchaseService.NewPurchaseService(c.PurchaseRepo, c.ArticleRepo)

	c.ArticleService = articleService.NewArticleService(
		c.ArticleRepo,
		c.Tx,
		c.JournalRepo,
		c.ImageService,
		c.PurchaseService,
		c.UserRepo,
		c.Cache,
		articleService.Config{
			CacheTTL: cfg.Article.CacheTTL,
			BaseURL:  cfg.App.BaseURL,
		},
	)

	c.JournalService = journalService.NewJournalService(
		c.JournalRepo,
		c.UserRepo,
		c.Tx,
		c.AsynqClient,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ImageHandler = imageHandler.NewImageHandler(
		c.ImageService,
		c.Config.Image.MaxUploadBytes,
		c.Config.Image.OrphanRetention,
	)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.JournalHandler = journalHandler.NewJournalHandler(c.JournalService)
	c.PurchaseHandler = purchaseHandler.NewPurchaseHandler(c.PurchaseService)
}

// Cleanup dọn dẹp resources khi shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
