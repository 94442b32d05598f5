package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devlens/internal/cache"
	"github.com/templui/devlens/internal/config"
	"github.com/templui/devlens/internal/db"
	"github.com/templui/devlens/internal/github"
	"github.com/templui/devlens/internal/markdown"
	"github.com/templui/devlens/internal/repository"
	"github.com/templui/devlens/internal/service"
	"github.com/templui/devlens/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Cache         *cache.RedisCache // nil without REDIS_URL
	EmailService  *service.EmailService
	LeadService   *service.LeadService
	GitHubService *service.GitHubService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &App{
		Cfg: cfg,
		DB:  database,
	}

	// Repositories
	var githubUserRepository repository.GitHubUserRepository = repository.NewGitHubUserRepository(database)
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, strings.ToLower(cfg.AppName)+":")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		a.Cache = redisCache
		githubUserRepository = repository.NewCachedGitHubUserRepository(githubUserRepository, redisCache, cfg.CacheTTL)
	}

	// Storage (optional archive of raw GitHub payloads)
	var archive storage.Storage
	if cfg.S3Bucket != "" {
		archive, err = storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	} else {
		slog.Info("S3_BUCKET not set, github payload archive disabled")
	}

	// GitHub client
	githubClient, err := github.NewClient(github.Config{
		BaseURL: cfg.GitHubAPIURL,
		Token:   cfg.GitHubToken,
		Timeout: cfg.GitHubTimeout,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize github client: %w", err)
	}

	// Services
	a.EmailService = service.NewEmailService(cfg.ResendAPIKey, cfg.IsDevelopment())
	a.LeadService = service.NewLeadService(a.EmailService, markdown.NewParser(), service.LeadConfig{
		From:      cfg.EmailFrom,
		Recipient: cfg.LeadRecipient,
		Variant:   cfg.LeadTemplate,
		AppName:   cfg.AppName,
	})
	a.GitHubService = service.NewGitHubService(githubClient, githubUserRepository, archive)

	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	return errors.Join(errs...)
}
