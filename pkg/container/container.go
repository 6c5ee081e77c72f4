package container

import (
	"context"
	"fmt"

	"bookswap-backend/internal/config"
	bookGateway "bookswap-backend/internal/domains/book/gateway/googlebooks"
	bookHandler "bookswap-backend/internal/domains/book/handler"
	bookRepository "bookswap-backend/internal/domains/book/repository"
	bookService "bookswap-backend/internal/domains/book/service"
	swapHandler "bookswap-backend/internal/domains/swap/handler"
	swapRepository "bookswap-backend/internal/domains/swap/repository"
	swapService "bookswap-backend/internal/domains/swap/service"
	"bookswap-backend/internal/domains/user"
	userHandler "bookswap-backend/internal/domains/user/handler"
	userRepository "bookswap-backend/internal/domains/user/repository"
	userService "bookswap-backend/internal/domains/user/service"
	infraCache "bookswap-backend/internal/infrastructure/cache"
	infraDB "bookswap-backend/internal/infrastructure/database"
	"bookswap-backend/pkg/cache"
	"bookswap-backend/pkg/jwt"
	"bookswap-backend/pkg/logger"
)

// Container wires the whole dependency graph in one place.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *infraDB.PostgresDB
	Cache cache.Cache

	// Shared services
	JWTManager *jwt.Manager

	// Repositories
	UserRepository user.Repository
	BookRepository bookRepository.Repository
	SwapRepository swapRepository.Repository

	// Services
	UserService user.Service
	BookService bookService.ServiceInterface
	SwapService swapService.ServiceInterface

	// Handlers
	UserHandler *userHandler.UserHandler
	BookHandler *bookHandler.BookHandler
	SwapHandler *swapHandler.SwapHandler
}

// NewContainer builds the dependency graph. The database is required;
// the cache is optional and its absence only degrades catalog lookups.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	c.initCache(ctx)
	c.initJWT()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	db := infraDB.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initCache(ctx context.Context) {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	// Cache connectivity is non-critical. Catalog lookups fall through
	// to the upstream API when Redis is down.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			logger.Warn("Redis unavailable, catalog caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	c.Cache = redisCache
}

func (c *Container) initJWT() {
	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessExpiry,
		c.Config.JWT.RefreshExpiry,
	)
}

func (c *Container) initRepositories() {
	c.UserRepository = userRepository.NewPostgresRepository(c.DB.Pool)
	c.BookRepository = bookRepository.NewPostgresRepository(c.DB.Pool)
	c.SwapRepository = swapRepository.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	catalogClient := bookGateway.NewClient(
		c.Config.Catalog.BaseURL,
		c.Config.Catalog.Timeout,
	)

	c.BookService = bookService.NewBookService(
		c.BookRepository,
		catalogClient,
		c.Cache,
		c.Config.Catalog.CacheTTL,
	)

	c.SwapService = swapService.NewSwapService(c.SwapRepository)

	c.UserService = userService.NewUserService(
		c.UserRepository,
		c.BookRepository,
		c.SwapRepository,
		c.JWTManager,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.SwapHandler = swapHandler.NewSwapHandler(c.SwapService)
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
