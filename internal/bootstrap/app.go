// Package bootstrap wires configuration into the stores, services and router
// shared by the API, worker and Lambda binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/documents"
	"resume-ats/internal/queue"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/auth"
	"resume-ats/internal/shared/cache"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/server"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/storage/object"
	localstore "resume-ats/internal/shared/storage/object/local"
	s3store "resume-ats/internal/shared/storage/object/s3"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/tools"
	"resume-ats/internal/uploads"
	"resume-ats/resume/service"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Queue            queue.Client
	Cache            cache.Cache
	Tokens           *auth.Tokens
	Registry         *tools.Registry
	Health           *health.Service
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Init(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := buildTokens(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Cache:  cache.New(ctx, cfg.RedisURL, cfg.CacheTTL),
		Tokens: tokens,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Close releases the database pool and cache connection.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// buildTokens returns nil when no secret is configured; bearer tokens are then rejected.
func buildTokens(cfg config.Config) (*auth.Tokens, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		if !isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.jwt_disabled", map[string]any{"env": cfg.Env})
		}
		return nil, nil
	}
	return auth.NewTokens(cfg.JWTSecret)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var docRepo documents.Repo
	var analysisRepo analyses.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	engine := service.New()
	registry, err := tools.New(tools.Options{
		Engine:   engine,
		Cache:    app.Cache,
		CacheTTL: app.Config.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("build tool registry: %w", err)
	}

	docSvc := &documents.Service{Store: app.Store, Repo: docRepo}
	analysisSvc := &analyses.Service{
		Repo:   analysisRepo,
		Docs:   docSvc,
		Engine: engine,
		Queue:  app.Queue,
	}

	healthSvc := health.NewService(registry.Names())
	if app.DB != nil {
		healthSvc.AddCheck("database", db.Checker(app.DB))
	}
	if pinger, ok := app.Cache.(interface{ Ping(context.Context) error }); ok {
		healthSvc.AddCheck("cache", pinger.Ping)
	}

	var verifier middleware.TokenVerifier
	if app.Tokens != nil {
		verifier = app.Tokens
	}

	var uploadsHandler *uploads.Handler
	if presigner, ok := app.Store.(uploads.Presigner); ok {
		uploadsHandler = uploads.NewHandler(presigner, docSvc, app.Config.MaxUploadBytes)
	}

	app.Registry = registry
	app.Health = healthSvc
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Verifier:  verifier,
		Health:    healthSvc,
		Tools:     tools.NewHandler(registry),
		Documents: documents.NewHandler(docSvc, app.Config.MaxUploadBytes),
		Analyses:  analyses.NewHandler(analysisSvc),
		Uploads:   uploadsHandler,
	})
	return nil
}
