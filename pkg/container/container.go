package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-api/internal/config"
	infraCache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/internal/infrastructure/database/migrations"
	"library-api/pkg/cache"

	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
	loanHandler "library-api/internal/domains/loan/handler"
	loanRepo "library-api/internal/domains/loan/repository"
	loanService "library-api/internal/domains/loan/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the application's lifetime.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	BookRepo    bookRepo.RepositoryInterface
	LoanRepo    loanRepo.RepositoryInterface
	BookService bookService.ServiceInterface
	LoanService loanService.ServiceInterface
	BookHandler *bookHandler.BookHandler
	LoanHandler *loanHandler.LoanHandler
}

// NewContainer builds the whole dependency graph in order:
// config → infrastructure → repositories → services → handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

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

	if err := migrations.Run(db.ConnectionString()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Ping(ctx); err != nil {
		// Cache is an optimization, not a dependency the API dies for
		log.Printf("[CONTAINER] Redis unavailable, point lookups will hit the database: %v", err)
	}
	c.Cache = redisCache

	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, redisCache)
	c.LoanRepo = loanRepo.NewPostgresRepository(db.Pool)

	c.BookService = bookService.NewBookService(c.BookRepo)
	c.LoanService = loanService.NewLoanService(c.LoanRepo, c.BookService)

	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close database: %v", err)
		}
	}
}
