package app

import (
	"context"
	"log"
	"time"

	"astra/internal/chat"
	"astra/internal/config"
	"astra/internal/database"
	"astra/internal/database/migration"
	"astra/internal/database/postgres"
	"astra/internal/database/seeder"
	"astra/internal/infrastructure/cache"
	"astra/internal/infrastructure/completion"
	"astra/internal/repository"
	"astra/internal/usecase"
	"astra/internal/ws"
)

// Container wires the whole service. When PostgreSQL is unreachable the
// repositories switch to the in-memory sample catalog and UsingFallback is
// set, so the API stays up for demos and local work.
type Container struct {
	Config        config.Config
	DB            database.DB
	Cache         *cache.Redis
	Hub           *ws.Hub
	Completion    completion.Client
	UsingFallback bool

	Cars        repository.CarRepository
	Reviews     repository.ReviewRepository
	CarUC       usecase.CarUsecase
	ReviewUC    usecase.ReviewUsecase
	InsightUC   usecase.InsightUsecase
	RecommendUC usecase.RecommendationUsecase
	ChatUC      usecase.ChatUsecase
	logger      *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	c := &Container{Config: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err == nil {
		if err = prepareDatabase(ctx, db, logger); err != nil {
			_ = db.Close()
		}
	}
	if err != nil {
		if logger != nil {
			logger.Printf("[App] PostgreSQL unavailable, serving in-memory sample catalog: %v", err)
		}
		c.UsingFallback = true
		c.Cars = repository.NewMemoryCarRepository()
		c.Reviews = repository.NewMemoryReviewRepository()
	} else {
		c.DB = db
		c.Cars = repository.NewPostgresCarRepository(db)
		c.Reviews = repository.NewPostgresReviewRepository(db)
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	ws.SetDefaultHub(c.Hub)
	go c.Hub.Run()

	remote := completion.NewOpenAIClient(
		cfg.Completion.BaseURL, cfg.Completion.APIKey, cfg.Completion.Model,
		cfg.Completion.Timeout, logger,
	)
	local := completion.NewOllamaClient(
		cfg.Completion.LocalBaseURL, cfg.Completion.LocalModel,
		cfg.Completion.Timeout, logger,
	)
	primary := remote
	if cfg.Completion.PrimaryModel == chat.ModelLocal && local != nil {
		primary = local
	}
	if primary == nil {
		primary = local
	}
	c.Completion = primary

	router := chat.NewRouter(remote, local, cfg.Completion.PrimaryModel, logger)
	var memory chat.MemoryStore
	if c.Cache != nil && c.Cache.Ping(ctx) == nil {
		memory = chat.NewRedisMemoryStore(c.Cache)
	} else {
		memory = chat.NewInProcessMemoryStore()
	}

	c.CarUC = usecase.NewCarUsecase(c.Cars, c.Cache, logger)
	c.ReviewUC = usecase.NewReviewUsecase(c.Cars, c.Reviews, primary, c.Cache, logger)
	c.InsightUC = usecase.NewInsightUsecase(c.Cars, c.Reviews, c.Cache, logger)
	c.RecommendUC = usecase.NewRecommendationUsecase(
		c.Cars, primary, cfg.Recommend.Strategy, cfg.Recommend.Threshold, logger,
	)
	c.ChatUC = usecase.NewChatUsecase(router, memory, c.Cars, logger)

	return c, nil
}

// prepareDatabase runs pending migrations and the idempotent seeders so a
// fresh database serves the sample catalog immediately.
func prepareDatabase(ctx context.Context, db database.DB, logger *log.Logger) error {
	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		return err
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		return err
	}
	if logger != nil {
		logger.Printf("[App] database migrated and seeded")
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
