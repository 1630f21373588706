package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	googleauth "resume-parser/internal/auth"
	"resume-parser/internal/llm/openrouter"
	"resume-parser/internal/parser"
	"resume-parser/internal/profiles"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/server"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/storage/object"
	localstore "resume-parser/internal/shared/storage/object/local"
	s3store "resume-parser/internal/shared/storage/object/s3"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/stats"
)

// App holds the wired application.
type App struct {
	Router *gin.Engine
	Parser *parser.Service
	DB     *sql.DB
}

// Build wires stores, services and the router from configuration.
// Production requires a database; dev falls back to in-memory stores so
// the server runs without infrastructure.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB := connectDatabase(ctx, cfg)

	var statsStore stats.Store
	var profileRepo profiles.Repo
	if sqlDB != nil {
		statsStore = stats.NewPGStore(sqlDB)
		profileRepo = &profiles.PGRepo{DB: sqlDB}
	} else {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("database is required in production")
		}
		statsStore = stats.NewMemoryStore()
		profileRepo = profiles.NewMemoryRepo()
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := openrouter.NewClient(openrouter.Config{
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		BaseURL:     cfg.LLMBaseURL,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	statsSvc := stats.NewService(statsStore)
	profileSvc := profiles.NewService(profileRepo)
	parserSvc := parser.NewService(client, statsSvc, store)
	googleSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, profileSvc)

	router := server.NewRouter(server.Deps{
		Config:     cfg,
		Parse:      parser.NewHandler(parserSvc),
		Stats:      stats.NewHandler(statsSvc),
		Profiles:   profiles.NewHandler(profileSvc),
		GoogleAuth: googleSvc,
	})

	return &App{
		Router: router,
		Parser: parserSvc,
		DB:     sqlDB,
	}, nil
}

// Close releases held resources and drains background work.
func (a *App) Close() {
	if a.Parser != nil {
		a.Parser.Wait()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func connectDatabase(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		telemetry.Error("db.connect_failed", map[string]any{"error": err.Error()})
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		telemetry.Error("db.migrate_failed", map[string]any{"error": err.Error()})
		_ = conn.Close()
		return nil
	}
	return conn
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
