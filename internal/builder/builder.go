package builder

import (
	"context"
	"fmt"
	"iter"
	"net/http"

	"github.com/futig/interview-agent/internal/api"
	evaluationapi "github.com/futig/interview-agent/internal/api/evaluation"
	interviewapi "github.com/futig/interview-agent/internal/api/interview"
	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/integration/llm"
	pkgLogger "github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/pkg/validator"
	"github.com/futig/interview-agent/internal/prompt"
	"github.com/futig/interview-agent/internal/repository"
	"github.com/futig/interview-agent/internal/telegram"
	"github.com/futig/interview-agent/internal/usecase/evaluation"
	"github.com/futig/interview-agent/internal/usecase/interview"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// llmConnector is what both use cases need from the model gateway
type llmConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) string
	CompleteResult(ctx context.Context, messages []entity.ChatMessage) entity.Completion
	CompleteStream(ctx context.Context, messages []entity.ChatMessage) iter.Seq[string]
}

// core holds the use cases shared by the HTTP server and the Telegram bot
type core struct {
	interviewUC  *interview.InterviewUsecase
	evaluationUC *evaluation.EvaluationUsecase
	validator    *validator.Validator
	db           *pgxpool.Pool
	redis        *redis.Client
}

func (c *core) close() {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	c, err := buildCore(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	// Setup API handlers
	interviewHandler := interviewapi.NewHandler(c.interviewUC, c.validator)
	evaluationHandler := evaluationapi.NewHandler(c.evaluationUC, c.validator)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(interviewHandler, evaluationHandler, cfg.CORSAllowedOrigins, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     c.db,
		redis:  c.redis,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	c, err := buildCore(context.Background(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, cfg.SessionCfg, c.interviewUC, c.validator, logger)
	if err != nil {
		c.close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func buildCore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*core, error) {
	c := &core{}

	interviewRepo, err := setupInterviewRepository(ctx, cfg, c, logger)
	if err != nil {
		c.close()
		return nil, err
	}

	historyStore, err := setupHistoryStore(ctx, cfg, c, logger)
	if err != nil {
		c.close()
		return nil, err
	}
	logger.Info("Repositories initialized")

	var connector llmConnector
	if cfg.EnableMocks {
		logger.Info("Using mock LLM connector")
		connector = llm.NewMockConnector(cfg.LLMConnectorCfg.FallbackWordDelay, logger)
	} else {
		logger.Info("Using LLM gateway connector", zap.String("model", cfg.LLMConnectorCfg.Model))
		connector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	catalog, err := prompt.DefaultCatalog()
	if err != nil {
		c.close()
		return nil, fmt.Errorf("load role catalog: %w", err)
	}
	prompts := prompt.NewAssembler(catalog)

	c.validator = validator.NewValidator(cfg.MaxMessageLength)
	c.evaluationUC = evaluation.NewUsecase(connector, prompts)
	c.interviewUC = interview.NewUsecase(
		interviewRepo,
		historyStore,
		connector,
		prompts,
		c.evaluationUC,
		cfg.SessionCfg.HistoryWindow,
	)
	logger.Info("Use cases initialized")

	return c, nil
}

// setupInterviewRepository uses Postgres when DATABASE_URL is set and process memory otherwise
func setupInterviewRepository(ctx context.Context, cfg *config.Config, c *core, logger *zap.Logger) (repository.InterviewRepository, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL is not set, keeping interviews in memory")
		return repository.NewInterviewMemory(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval), nil
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	c.db = db

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(repository.DefaultMigrationsSource, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	return repository.NewInterviewPostgres(db), nil
}

func setupHistoryStore(ctx context.Context, cfg *config.Config, c *core, logger *zap.Logger) (repository.HistoryStore, error) {
	if cfg.SessionCfg.Store != config.SessionStoreRedis {
		logger.Info("Using in-memory history store", zap.Duration("ttl", cfg.SessionCfg.TTL))
		return repository.NewHistoryMemory(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval), nil
	}

	client, err := setupRedis(ctx, cfg.RedisCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup redis: %w", err)
	}
	c.redis = client

	return repository.NewHistoryRedis(client, cfg.RedisCfg.KeyPrefix, cfg.SessionCfg.TTL), nil
}
