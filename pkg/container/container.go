package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookcatalog-backend/internal/config"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/jwt"

	"bookcatalog-backend/internal/domains/author"
	authorHandler "bookcatalog-backend/internal/domains/author/handler"
	authorRepo "bookcatalog-backend/internal/domains/author/repository"
	authorService "bookcatalog-backend/internal/domains/author/service"

	"bookcatalog-backend/internal/domains/book"
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"

	"bookcatalog-backend/internal/domains/engagement"
	engagementHandler "bookcatalog-backend/internal/domains/engagement/handler"
	engagementRepo "bookcatalog-backend/internal/domains/engagement/repository"
	engagementService "bookcatalog-backend/internal/domains/engagement/service"

	"bookcatalog-backend/internal/domains/user"
	userHandler "bookcatalog-backend/internal/domains/user/handler"
	userRepo "bookcatalog-backend/internal/domains/user/repository"
	userService "bookcatalog-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Mongo       *database.MongoDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	QueueClient *queue.Client
	JWTManager  *jwt.Manager

	// Repositories
	AuthorRepo     author.Repository
	BookRepo       book.Repository
	UserRepo       user.Repository
	EngagementRepo engagement.Repository

	// Services
	AuthorService     author.Service
	BookService       book.Service
	UserService       user.Service
	EngagementService engagement.Service

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UserHandler   *userHandler.UserHandler
	ReviewHandler *engagementHandler.ReviewHandler
}

// NewContainer builds the whole graph. Initialization order matters:
// config, then infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("DI container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	mongoConfig, err := config.LoadMongoConfig()
	if err != nil {
		return fmt.Errorf("failed to load mongo config: %w", err)
	}

	mongoDB := database.NewMongoDB(mongoConfig)
	if err := mongoDB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := mongoDB.EnsureIndexes(ctx,
		engagementRepo.BookMetadataCollection,
		engagementRepo.AuthorMetadataCollection,
	); err != nil {
		return fmt.Errorf("failed to ensure mongo indexes: %w", err)
	}
	c.Mongo = mongoDB

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// Cache failures degrade reads, they do not block startup.
		log.Printf("WARNING: redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	c.QueueClient = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, time.Duration(c.Config.JWT.ExpiryHours)*time.Hour)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresAuthorRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.EngagementRepo = engagementRepo.NewMongoRepository(c.Mongo.Database)
}

func (c *Container) initServices() {
	c.EngagementService = engagementService.NewEngagementService(c.EngagementRepo, c.BookRepo, c.AuthorRepo)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.QueueClient)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.QueueClient)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.BookService, c.EngagementService, c.Storage)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.AuthorService, c.EngagementService, c.Storage)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ReviewHandler = engagementHandler.NewReviewHandler(c.EngagementService)
}

// Cleanup closes every connection the container owns, in reverse
// dependency order.
func (c *Container) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Printf("failed to close queue client: %v", err)
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Printf("failed to close redis: %v", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			log.Printf("failed to close mongo: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
